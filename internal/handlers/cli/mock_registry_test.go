package cli

import (
	"context"

	"github.com/gabapcia/walletwatch/internal/walletregistry"

	"github.com/stretchr/testify/mock"
)

// RegistryMock is a mock implementation of walletregistry.Service.
type RegistryMock struct {
	mock.Mock
}

type RegistryMock_Expecter struct {
	mock *mock.Mock
}

func (_m *RegistryMock) EXPECT() *RegistryMock_Expecter {
	return &RegistryMock_Expecter{mock: &_m.Mock}
}

// StartWatching provides a mock function with given fields: ctx, network, address, label
func (_m *RegistryMock) StartWatching(ctx context.Context, network string, address string, label string) (walletregistry.Wallet, error) {
	ret := _m.Called(ctx, network, address, label)
	return ret.Get(0).(walletregistry.Wallet), ret.Error(1)
}

type RegistryMock_StartWatching_Call struct {
	*mock.Call
}

func (_e *RegistryMock_Expecter) StartWatching(ctx interface{}, network interface{}, address interface{}, label interface{}) *RegistryMock_StartWatching_Call {
	return &RegistryMock_StartWatching_Call{Call: _e.mock.On("StartWatching", ctx, network, address, label)}
}

func (_c *RegistryMock_StartWatching_Call) Return(_a0 walletregistry.Wallet, _a1 error) *RegistryMock_StartWatching_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

// StopWatching provides a mock function with given fields: ctx, network, address
func (_m *RegistryMock) StopWatching(ctx context.Context, network string, address string) error {
	ret := _m.Called(ctx, network, address)
	return ret.Error(0)
}

type RegistryMock_StopWatching_Call struct {
	*mock.Call
}

func (_e *RegistryMock_Expecter) StopWatching(ctx interface{}, network interface{}, address interface{}) *RegistryMock_StopWatching_Call {
	return &RegistryMock_StopWatching_Call{Call: _e.mock.On("StopWatching", ctx, network, address)}
}

func (_c *RegistryMock_StopWatching_Call) Return(_a0 error) *RegistryMock_StopWatching_Call {
	_c.Call.Return(_a0)
	return _c
}

// Rename provides a mock function with given fields: ctx, network, address, label
func (_m *RegistryMock) Rename(ctx context.Context, network string, address string, label string) (walletregistry.Wallet, error) {
	ret := _m.Called(ctx, network, address, label)
	return ret.Get(0).(walletregistry.Wallet), ret.Error(1)
}

type RegistryMock_Rename_Call struct {
	*mock.Call
}

func (_e *RegistryMock_Expecter) Rename(ctx interface{}, network interface{}, address interface{}, label interface{}) *RegistryMock_Rename_Call {
	return &RegistryMock_Rename_Call{Call: _e.mock.On("Rename", ctx, network, address, label)}
}

func (_c *RegistryMock_Rename_Call) Return(_a0 walletregistry.Wallet, _a1 error) *RegistryMock_Rename_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

// List provides a mock function with given fields: ctx, network
func (_m *RegistryMock) List(ctx context.Context, network string) ([]walletregistry.Wallet, error) {
	ret := _m.Called(ctx, network)

	var r0 []walletregistry.Wallet
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]walletregistry.Wallet)
	}
	return r0, ret.Error(1)
}

type RegistryMock_List_Call struct {
	*mock.Call
}

func (_e *RegistryMock_Expecter) List(ctx interface{}, network interface{}) *RegistryMock_List_Call {
	return &RegistryMock_List_Call{Call: _e.mock.On("List", ctx, network)}
}

func (_c *RegistryMock_List_Call) Return(_a0 []walletregistry.Wallet, _a1 error) *RegistryMock_List_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

// NewRegistryMock creates a new instance of RegistryMock. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewRegistryMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *RegistryMock {
	m := &RegistryMock{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
