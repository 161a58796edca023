package walletregistry

import (
	"context"

	"github.com/gabapcia/walletwatch/internal/portfolio"

	"github.com/stretchr/testify/mock"
)

// WalletStorageMock is a mock implementation of WalletStorage.
type WalletStorageMock struct {
	mock.Mock
}

type WalletStorageMock_Expecter struct {
	mock *mock.Mock
}

func (_m *WalletStorageMock) EXPECT() *WalletStorageMock_Expecter {
	return &WalletStorageMock_Expecter{mock: &_m.Mock}
}

// RegisterWallet provides a mock function with given fields: ctx, w
func (_m *WalletStorageMock) RegisterWallet(ctx context.Context, w Wallet) error {
	ret := _m.Called(ctx, w)
	return ret.Error(0)
}

type WalletStorageMock_RegisterWallet_Call struct {
	*mock.Call
}

func (_e *WalletStorageMock_Expecter) RegisterWallet(ctx interface{}, w interface{}) *WalletStorageMock_RegisterWallet_Call {
	return &WalletStorageMock_RegisterWallet_Call{Call: _e.mock.On("RegisterWallet", ctx, w)}
}

func (_c *WalletStorageMock_RegisterWallet_Call) Return(_a0 error) *WalletStorageMock_RegisterWallet_Call {
	_c.Call.Return(_a0)
	return _c
}

// UnregisterWallet provides a mock function with given fields: ctx, network, address
func (_m *WalletStorageMock) UnregisterWallet(ctx context.Context, network string, address portfolio.Address) error {
	ret := _m.Called(ctx, network, address)
	return ret.Error(0)
}

type WalletStorageMock_UnregisterWallet_Call struct {
	*mock.Call
}

func (_e *WalletStorageMock_Expecter) UnregisterWallet(ctx interface{}, network interface{}, address interface{}) *WalletStorageMock_UnregisterWallet_Call {
	return &WalletStorageMock_UnregisterWallet_Call{Call: _e.mock.On("UnregisterWallet", ctx, network, address)}
}

func (_c *WalletStorageMock_UnregisterWallet_Call) Return(_a0 error) *WalletStorageMock_UnregisterWallet_Call {
	_c.Call.Return(_a0)
	return _c
}

// UpdateWallet provides a mock function with given fields: ctx, w
func (_m *WalletStorageMock) UpdateWallet(ctx context.Context, w Wallet) error {
	ret := _m.Called(ctx, w)
	return ret.Error(0)
}

type WalletStorageMock_UpdateWallet_Call struct {
	*mock.Call
}

func (_e *WalletStorageMock_Expecter) UpdateWallet(ctx interface{}, w interface{}) *WalletStorageMock_UpdateWallet_Call {
	return &WalletStorageMock_UpdateWallet_Call{Call: _e.mock.On("UpdateWallet", ctx, w)}
}

func (_c *WalletStorageMock_UpdateWallet_Call) Return(_a0 error) *WalletStorageMock_UpdateWallet_Call {
	_c.Call.Return(_a0)
	return _c
}

// ListWallets provides a mock function with given fields: ctx, network
func (_m *WalletStorageMock) ListWallets(ctx context.Context, network string) ([]Wallet, error) {
	ret := _m.Called(ctx, network)

	var r0 []Wallet
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]Wallet)
	}
	return r0, ret.Error(1)
}

type WalletStorageMock_ListWallets_Call struct {
	*mock.Call
}

func (_e *WalletStorageMock_Expecter) ListWallets(ctx interface{}, network interface{}) *WalletStorageMock_ListWallets_Call {
	return &WalletStorageMock_ListWallets_Call{Call: _e.mock.On("ListWallets", ctx, network)}
}

func (_c *WalletStorageMock_ListWallets_Call) Return(_a0 []Wallet, _a1 error) *WalletStorageMock_ListWallets_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

// NewWalletStorageMock creates a new instance of WalletStorageMock. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewWalletStorageMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *WalletStorageMock {
	m := &WalletStorageMock{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
