package mocks

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
)

// Reader is a mock type for the nft.Reader type.
type Reader struct {
	mock.Mock
}

// OwnerOf provides a mock function with given fields: ctx, contract, tokenID.
func (_m *Reader) OwnerOf(ctx context.Context, contract common.Address, tokenID *big.Int) (common.Address, error) {
	ret := _m.Called(ctx, contract, tokenID)

	var r0 common.Address
	if rf, ok := ret.Get(0).(func(context.Context, common.Address, *big.Int) common.Address); ok {
		r0 = rf(ctx, contract, tokenID)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(common.Address)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, common.Address, *big.Int) error); ok {
		r1 = rf(ctx, contract, tokenID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// TokenURI provides a mock function with given fields: ctx, contract, tokenID.
func (_m *Reader) TokenURI(ctx context.Context, contract common.Address, tokenID *big.Int) (string, error) {
	ret := _m.Called(ctx, contract, tokenID)

	var r0 string
	if rf, ok := ret.Get(0).(func(context.Context, common.Address, *big.Int) string); ok {
		r0 = rf(ctx, contract, tokenID)
	} else {
		r0 = ret.String(0)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, common.Address, *big.Int) error); ok {
		r1 = rf(ctx, contract, tokenID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

type mockConstructorTestingTNewReader interface {
	mock.TestingT
	Cleanup(func())
}

// NewReader creates a new instance of Reader. It also registers a testing interface on the mock
// and a cleanup function to assert the mocks expectations.
func NewReader(t mockConstructorTestingTNewReader) *Reader {
	m := &Reader{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
