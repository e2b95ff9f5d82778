// Package mocks provides hand-maintained testify mocks for the handler's
// service interfaces.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/Gifford23/youth-xtreme-checkin/internal/domain"
)

type MockEventSvc struct {
	mock.Mock
}

func NewMockEventSvc(t *testing.T) *MockEventSvc {
	m := &MockEventSvc{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockEventSvc) CreateEvent(ctx context.Context, input domain.CreateEventInput) (*domain.Event, error) {
	args := m.Called(ctx, input)
	if v := args.Get(0); v != nil {
		return v.(*domain.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEventSvc) GetDetails(ctx context.Context, id string) (*domain.EventDetails, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.EventDetails), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEventSvc) List(ctx context.Context) ([]*domain.Event, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCheckinSvc struct {
	mock.Mock
}

func NewMockCheckinSvc(t *testing.T) *MockCheckinSvc {
	m := &MockCheckinSvc{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCheckinSvc) Register(ctx context.Context, eventID string, input domain.RegisterInput) (*domain.Registration, error) {
	args := m.Called(ctx, eventID, input)
	if v := args.Get(0); v != nil {
		return v.(*domain.Registration), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCheckinSvc) RegisterWalkIn(ctx context.Context, eventID string, input domain.WalkInInput) (*domain.Registration, error) {
	args := m.Called(ctx, eventID, input)
	if v := args.Get(0); v != nil {
		return v.(*domain.Registration), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCheckinSvc) SetStatus(ctx context.Context, eventID, registrationID string, status domain.RegistrationStatus) (*domain.Registration, error) {
	args := m.Called(ctx, eventID, registrationID, status)
	if v := args.Get(0); v != nil {
		return v.(*domain.Registration), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCheckinSvc) Delete(ctx context.Context, eventID, registrationID string) error {
	args := m.Called(ctx, eventID, registrationID)
	return args.Error(0)
}

func (m *MockCheckinSvc) Roster(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	args := m.Called(ctx, eventID)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Registration), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockScanSvc struct {
	mock.Mock
}

func NewMockScanSvc(t *testing.T) *MockScanSvc {
	m := &MockScanSvc{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockScanSvc) Scan(ctx context.Context, eventID, deviceID, raw string) (*domain.ScanResult, error) {
	args := m.Called(ctx, eventID, deviceID, raw)
	if v := args.Get(0); v != nil {
		return v.(*domain.ScanResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockGateSvc struct {
	mock.Mock
}

func NewMockGateSvc(t *testing.T) *MockGateSvc {
	m := &MockGateSvc{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockGateSvc) SubmitPin(ctx context.Context, profileID, candidate string) (bool, error) {
	args := m.Called(ctx, profileID, candidate)
	return args.Bool(0), args.Error(1)
}

func (m *MockGateSvc) EndShift(ctx context.Context, profileID string) error {
	args := m.Called(ctx, profileID)
	return args.Error(0)
}

type MockProfileSvc struct {
	mock.Mock
}

func NewMockProfileSvc(t *testing.T) *MockProfileSvc {
	m := &MockProfileSvc{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockProfileSvc) Create(ctx context.Context, input domain.CreateProfileInput) (*domain.Profile, error) {
	args := m.Called(ctx, input)
	if v := args.Get(0); v != nil {
		return v.(*domain.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileSvc) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}
