package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Gifford23/youth-xtreme-checkin/internal/domain"
	"github.com/Gifford23/youth-xtreme-checkin/internal/service/ports/mocks"
)

func newTestCheckin(t *testing.T) (*mocks.MockRegistrationRepo, *mocks.MockEventRepo, *CheckinService) {
	t.Helper()
	regs := mocks.NewMockRegistrationRepo(t)
	events := mocks.NewMockEventRepo(t)
	svc := NewCheckinService(regs, events, newTestLogger(t))
	return regs, events, svc
}

func TestCheckinService_Register_Success(t *testing.T) {
	regs, events, svc := newTestCheckin(t)

	events.On("GetByID", mock.Anything, "e1").
		Return(&domain.Event{ID: "e1", Title: "Winter Retreat"}, nil).Once()
	regs.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	reg, err := svc.Register(context.Background(), "e1", domain.RegisterInput{
		Identity:    " jane@x.com ",
		DisplayName: "Jane Doe",
		PartySize:   3,
	})

	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", reg.Identity)
	assert.Equal(t, "Jane Doe", reg.DisplayName)
	assert.Equal(t, 3, reg.PartySize)
	assert.Equal(t, domain.StatusPending, reg.Status)
	assert.Equal(t, domain.OriginSelf, reg.Origin)
	assert.Nil(t, reg.CheckedInAt)
	assert.NotEmpty(t, reg.ID)
}

func TestCheckinService_Register_EmptyIdentity(t *testing.T) {
	_, _, svc := newTestCheckin(t)

	_, err := svc.Register(context.Background(), "e1", domain.RegisterInput{
		DisplayName: "Jane Doe",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCheckinService_Register_ReservedIdentity(t *testing.T) {
	_, _, svc := newTestCheckin(t)

	_, err := svc.Register(context.Background(), "e1", domain.RegisterInput{
		Identity:    domain.NewPlaceholderIdentity(),
		DisplayName: "Jane Doe",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCheckinService_Register_EventNotFound(t *testing.T) {
	_, events, svc := newTestCheckin(t)

	events.On("GetByID", mock.Anything, "missing").
		Return(nil, domain.ErrEventNotFound).Once()

	_, err := svc.Register(context.Background(), "missing", domain.RegisterInput{
		Identity:    "jane@x.com",
		DisplayName: "Jane Doe",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestCheckinService_Register_DuplicateIdentity(t *testing.T) {
	regs, events, svc := newTestCheckin(t)

	events.On("GetByID", mock.Anything, "e1").
		Return(&domain.Event{ID: "e1"}, nil).Once()
	regs.On("Create", mock.Anything, mock.Anything).
		Return(domain.ErrDuplicateIdentity).Once()

	_, err := svc.Register(context.Background(), "e1", domain.RegisterInput{
		Identity:    "jane@x.com",
		DisplayName: "Jane Doe",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateIdentity)
}

func TestCheckinService_RegisterWalkIn_Success(t *testing.T) {
	regs, events, svc := newTestCheckin(t)

	events.On("GetByID", mock.Anything, "e1").
		Return(&domain.Event{ID: "e1"}, nil).Once()
	regs.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	reg, err := svc.RegisterWalkIn(context.Background(), "e1", domain.WalkInInput{
		DisplayName: "Jane Doe",
	})

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", reg.DisplayName)
	assert.Equal(t, domain.StatusCheckedIn, reg.Status)
	assert.Equal(t, domain.OriginWalkIn, reg.Origin)
	assert.Equal(t, 1, reg.PartySize)
	require.NotNil(t, reg.CheckedInAt)
	assert.NotEmpty(t, reg.Identity)
	assert.True(t, domain.IsPlaceholderIdentity(reg.Identity))
}

func TestCheckinService_RegisterWalkIn_WithEmail(t *testing.T) {
	regs, events, svc := newTestCheckin(t)

	events.On("GetByID", mock.Anything, "e1").
		Return(&domain.Event{ID: "e1"}, nil).Once()
	regs.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	reg, err := svc.RegisterWalkIn(context.Background(), "e1", domain.WalkInInput{
		DisplayName: "Jane Doe",
		Identity:    "jane@x.com",
		PartySize:   2,
	})

	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", reg.Identity)
	assert.False(t, domain.IsPlaceholderIdentity(reg.Identity))
	assert.Equal(t, 2, reg.PartySize)
}

func TestCheckinService_RegisterWalkIn_EmptyName(t *testing.T) {
	regs, _, svc := newTestCheckin(t)

	_, err := svc.RegisterWalkIn(context.Background(), "e1", domain.WalkInInput{
		DisplayName: "   ",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	regs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckinService_SetStatus_Success(t *testing.T) {
	regs, _, svc := newTestCheckin(t)

	updated := &domain.Registration{
		ID:      "r1",
		EventID: "e1",
		Status:  domain.StatusCheckedIn,
	}
	regs.On("SetStatus", mock.Anything, "e1", "r1", domain.StatusCheckedIn).
		Return(updated, nil).Once()

	reg, err := svc.SetStatus(context.Background(), "e1", "r1", domain.StatusCheckedIn)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCheckedIn, reg.Status)
}

func TestCheckinService_SetStatus_InvalidStatus(t *testing.T) {
	regs, _, svc := newTestCheckin(t)

	_, err := svc.SetStatus(context.Background(), "e1", "r1", "vanished")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	regs.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckinService_SetStatus_NotFound(t *testing.T) {
	regs, _, svc := newTestCheckin(t)

	regs.On("SetStatus", mock.Anything, "e1", "missing", domain.StatusCheckedIn).
		Return(nil, domain.ErrRegistrationNotFound).Once()

	_, err := svc.SetStatus(context.Background(), "e1", "missing", domain.StatusCheckedIn)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRegistrationNotFound)
}

func TestCheckinService_Delete(t *testing.T) {
	regs, _, svc := newTestCheckin(t)

	regs.On("Delete", mock.Anything, "e1", "r1").Return(nil).Once()

	require.NoError(t, svc.Delete(context.Background(), "e1", "r1"))
}

func TestCheckinService_Summary(t *testing.T) {
	regs, _, svc := newTestCheckin(t)

	regs.On("Summary", mock.Anything, "e1").
		Return(&domain.AttendanceSummary{Registered: 12, CheckedIn: 7, ExpectedHeads: 20, ArrivedHeads: 11}, nil).Once()

	summary, err := svc.Summary(context.Background(), "e1")

	require.NoError(t, err)
	assert.Equal(t, 12, summary.Registered)
	assert.Equal(t, 7, summary.CheckedIn)
}

// memoryRegistrationRepo is a minimal thread-safe store for exercising the
// concurrent check-in race without a database.
type memoryRegistrationRepo struct {
	mu   sync.Mutex
	regs map[string]*domain.Registration
}

func newMemoryRegistrationRepo(regs ...*domain.Registration) *memoryRegistrationRepo {
	m := &memoryRegistrationRepo{regs: make(map[string]*domain.Registration)}
	for _, r := range regs {
		cp := *r
		m.regs[r.ID] = &cp
	}
	return m
}

func (m *memoryRegistrationRepo) Create(_ context.Context, r *domain.Registration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.regs[r.ID] = &cp
	return nil
}

func (m *memoryRegistrationRepo) GetByID(_ context.Context, _, id string) (*domain.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.regs[id]
	if !ok {
		return nil, domain.ErrRegistrationNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memoryRegistrationRepo) ListByEvent(_ context.Context, eventID string) ([]*domain.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var res []*domain.Registration
	for _, r := range m.regs {
		if r.EventID == eventID {
			cp := *r
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (m *memoryRegistrationRepo) SetStatus(_ context.Context, _, id string, status domain.RegistrationStatus) (*domain.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.regs[id]
	if !ok {
		return nil, domain.ErrRegistrationNotFound
	}
	r.Status = status
	if status == domain.StatusCheckedIn {
		if r.CheckedInAt == nil {
			now := time.Now().UTC()
			r.CheckedInAt = &now
		}
	} else {
		r.CheckedInAt = nil
	}
	cp := *r
	return &cp, nil
}

func (m *memoryRegistrationRepo) Delete(_ context.Context, _, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.regs[id]; !ok {
		return domain.ErrRegistrationNotFound
	}
	delete(m.regs, id)
	return nil
}

func (m *memoryRegistrationRepo) Summary(_ context.Context, eventID string) (*domain.AttendanceSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var s domain.AttendanceSummary
	for _, r := range m.regs {
		if r.EventID != eventID {
			continue
		}
		s.Registered++
		s.ExpectedHeads += r.PartySize
		if r.Status == domain.StatusCheckedIn {
			s.CheckedIn++
			s.ArrivedHeads += r.PartySize
		}
	}
	return &s, nil
}

// Two volunteer devices both observe the record as pending and both check it
// in. The write is an absolute set, so the race settles at checked-in with a
// single record and an unchanged check-in timestamp.
func TestCheckinService_ConcurrentCheckInIsBenign(t *testing.T) {
	repo := newMemoryRegistrationRepo(&domain.Registration{
		ID:          "r1",
		EventID:     "e1",
		Identity:    "jane@x.com",
		DisplayName: "Jane Doe",
		PartySize:   1,
		Status:      domain.StatusPending,
	})
	svc := NewCheckinService(repo, mocks.NewMockEventRepo(t), newTestLogger(t))

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SetStatus(context.Background(), "e1", "r1", domain.StatusCheckedIn)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	roster, err := repo.ListByEvent(context.Background(), "e1")
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, domain.StatusCheckedIn, roster[0].Status)
	assert.NotNil(t, roster[0].CheckedInAt)

	summary, err := repo.Summary(context.Background(), "e1")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.CheckedIn)
}
