// Package mocks provides hand-maintained testify mocks for the ports
// interfaces.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/Gifford23/youth-xtreme-checkin/internal/domain"
)

type MockEventRepo struct {
	mock.Mock
}

func NewMockEventRepo(t *testing.T) *MockEventRepo {
	m := &MockEventRepo{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockEventRepo) Create(ctx context.Context, e *domain.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEventRepo) List(ctx context.Context) ([]*domain.Event, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockRegistrationRepo struct {
	mock.Mock
}

func NewMockRegistrationRepo(t *testing.T) *MockRegistrationRepo {
	m := &MockRegistrationRepo{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRegistrationRepo) Create(ctx context.Context, r *domain.Registration) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRegistrationRepo) GetByID(ctx context.Context, eventID, id string) (*domain.Registration, error) {
	args := m.Called(ctx, eventID, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Registration), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRegistrationRepo) ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	args := m.Called(ctx, eventID)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Registration), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRegistrationRepo) SetStatus(ctx context.Context, eventID, id string, status domain.RegistrationStatus) (*domain.Registration, error) {
	args := m.Called(ctx, eventID, id, status)
	if v := args.Get(0); v != nil {
		return v.(*domain.Registration), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRegistrationRepo) Delete(ctx context.Context, eventID, id string) error {
	args := m.Called(ctx, eventID, id)
	return args.Error(0)
}

func (m *MockRegistrationRepo) Summary(ctx context.Context, eventID string) (*domain.AttendanceSummary, error) {
	args := m.Called(ctx, eventID)
	if v := args.Get(0); v != nil {
		return v.(*domain.AttendanceSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockProfileRepo struct {
	mock.Mock
}

func NewMockProfileRepo(t *testing.T) *MockProfileRepo {
	m := &MockProfileRepo{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileRepo) SetVolunteer(ctx context.Context, id string, volunteer bool) error {
	args := m.Called(ctx, id, volunteer)
	return args.Error(0)
}

type MockRosterSource struct {
	mock.Mock
}

func NewMockRosterSource(t *testing.T) *MockRosterSource {
	m := &MockRosterSource{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRosterSource) Snapshot(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	args := m.Called(ctx, eventID)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Registration), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCheckinMutator struct {
	mock.Mock
}

func NewMockCheckinMutator(t *testing.T) *MockCheckinMutator {
	m := &MockCheckinMutator{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCheckinMutator) SetStatus(ctx context.Context, eventID, registrationID string, status domain.RegistrationStatus) (*domain.Registration, error) {
	args := m.Called(ctx, eventID, registrationID, status)
	if v := args.Get(0); v != nil {
		return v.(*domain.Registration), args.Error(1)
	}
	return nil, args.Error(1)
}
