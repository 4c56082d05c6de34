// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/williamokano/sftp_downloader/pkg/transfer"
)

// MockDownloader is a mock implementation of the transfer.Downloader interface
type MockDownloader struct {
	mock.Mock
}

// Mode provides a mock function with given fields:
func (m *MockDownloader) Mode() string {
	ret := m.Called()

	var r0 string
	if rf, ok := ret.Get(0).(func() string); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(string)
	}

	return r0
}

// Download provides a mock function with given fields: ctx, req
func (m *MockDownloader) Download(ctx context.Context, req transfer.Request) error {
	ret := m.Called(ctx, req)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, transfer.Request) error); ok {
		r0 = rf(ctx, req)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockDownloader creates a new instance of MockDownloader
func NewMockDownloader(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDownloader {
	mock_1 := &MockDownloader{}
	mock_1.Mock.Test(t)

	t.Cleanup(func() { mock_1.AssertExpectations(t) })

	return mock_1
}
