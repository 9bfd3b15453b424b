// Package mocks provides mock implementations for testing.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// our interfaces. The mocks are generated using go:generate directives and
// provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockAPI := mocks.NewMockCaller(ctrl)
//	mockAPI.EXPECT().Get(gomock.Any(), gomock.Any(), "lakes/getAll", gomock.Any()).Return(res, nil)
package mocks

// Generate mock for the gateway Caller interface.
// This creates MockCaller with methods for all Caller interface methods:
// Get, PostJSON, PutJSON, Delete, PostMultipart, Download
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=caller_mock.go github.com/limnolab/limno-ui-api/internal/gateway Caller
