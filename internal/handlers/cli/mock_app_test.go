package cli

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// AppMock is a mock implementation of app.Service.
type AppMock struct {
	mock.Mock
}

type AppMock_Expecter struct {
	mock *mock.Mock
}

func (_m *AppMock) EXPECT() *AppMock_Expecter {
	return &AppMock_Expecter{mock: &_m.Mock}
}

// Start provides a mock function with given fields: ctx
func (_m *AppMock) Start(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

type AppMock_Start_Call struct {
	*mock.Call
}

func (_e *AppMock_Expecter) Start(ctx interface{}) *AppMock_Start_Call {
	return &AppMock_Start_Call{Call: _e.mock.On("Start", ctx)}
}

func (_c *AppMock_Start_Call) Return(_a0 error) *AppMock_Start_Call {
	_c.Call.Return(_a0)
	return _c
}

// Errors provides a mock function with no fields
func (_m *AppMock) Errors() <-chan error {
	ret := _m.Called()

	var r0 <-chan error
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(<-chan error)
	}
	return r0
}

type AppMock_Errors_Call struct {
	*mock.Call
}

func (_e *AppMock_Expecter) Errors() *AppMock_Errors_Call {
	return &AppMock_Errors_Call{Call: _e.mock.On("Errors")}
}

func (_c *AppMock_Errors_Call) Return(_a0 <-chan error) *AppMock_Errors_Call {
	_c.Call.Return(_a0)
	return _c
}

// Close provides a mock function with given fields: ctx
func (_m *AppMock) Close(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

type AppMock_Close_Call struct {
	*mock.Call
}

func (_e *AppMock_Expecter) Close(ctx interface{}) *AppMock_Close_Call {
	return &AppMock_Close_Call{Call: _e.mock.On("Close", ctx)}
}

func (_c *AppMock_Close_Call) Return(_a0 error) *AppMock_Close_Call {
	_c.Call.Return(_a0)
	return _c
}

// NewAppMock creates a new instance of AppMock. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewAppMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *AppMock {
	m := &AppMock{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
