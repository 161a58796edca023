package monitor

import (
	"context"

	"github.com/gabapcia/walletwatch/internal/portfolio"

	"github.com/stretchr/testify/mock"
)

// SnapshotFetcherMock is a mock implementation of SnapshotFetcher.
type SnapshotFetcherMock struct {
	mock.Mock
}

type SnapshotFetcherMock_Expecter struct {
	mock *mock.Mock
}

func (_m *SnapshotFetcherMock) EXPECT() *SnapshotFetcherMock_Expecter {
	return &SnapshotFetcherMock_Expecter{mock: &_m.Mock}
}

// FetchSnapshot provides a mock function with given fields: ctx, address
func (_m *SnapshotFetcherMock) FetchSnapshot(ctx context.Context, address portfolio.Address) (*portfolio.WalletSnapshot, error) {
	ret := _m.Called(ctx, address)

	if rf, ok := ret.Get(0).(func(context.Context, portfolio.Address) (*portfolio.WalletSnapshot, error)); ok {
		return rf(ctx, address)
	}

	var r0 *portfolio.WalletSnapshot
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*portfolio.WalletSnapshot)
	}
	return r0, ret.Error(1)
}

type SnapshotFetcherMock_FetchSnapshot_Call struct {
	*mock.Call
}

func (_e *SnapshotFetcherMock_Expecter) FetchSnapshot(ctx interface{}, address interface{}) *SnapshotFetcherMock_FetchSnapshot_Call {
	return &SnapshotFetcherMock_FetchSnapshot_Call{Call: _e.mock.On("FetchSnapshot", ctx, address)}
}

func (_c *SnapshotFetcherMock_FetchSnapshot_Call) Return(_a0 *portfolio.WalletSnapshot, _a1 error) *SnapshotFetcherMock_FetchSnapshot_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *SnapshotFetcherMock_FetchSnapshot_Call) RunAndReturn(run func(context.Context, portfolio.Address) (*portfolio.WalletSnapshot, error)) *SnapshotFetcherMock_FetchSnapshot_Call {
	_c.Call.Return(run, nil)
	return _c
}

// NewSnapshotFetcherMock creates a new instance of SnapshotFetcherMock. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewSnapshotFetcherMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *SnapshotFetcherMock {
	m := &SnapshotFetcherMock{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
