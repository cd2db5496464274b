package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/healthfirst/provider-portal/pkg/config"
	"github.com/healthfirst/provider-portal/pkg/logger"
	"github.com/healthfirst/provider-portal/pkg/types"
)

// MockNotifier is a mock implementation of ConflictNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendConflictAlert(providerID string, conflict *types.Conflict) error {
	args := m.Called(providerID, conflict)
	return args.Error(0)
}

func newTestService() *Service {
	log := logger.New("debug")
	return &Service{
		logger: log,
		store:  NewMemoryStore(),
		alerts: NewConflictAlertManager(NewLogNotifier(log), log),
	}
}

func createTestProvider(t *testing.T, svc *Service) *types.Provider {
	provider, err := svc.CreateProvider(&types.Provider{
		Name:        "Dr. Test",
		WorkingWeek: weekdayWorkingWeek(),
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, provider.ID)
	return provider
}

func TestService_New_SeedsMockData(t *testing.T) {
	cfg := &config.Config{
		Seed: config.SeedConfig{Enabled: true, Seed: 42, Providers: 3},
	}

	svc, err := New(cfg, logger.New("debug"))
	assert.NoError(t, err)

	providers, err := svc.GetProviders()
	assert.NoError(t, err)
	assert.Len(t, providers, 3)

	for _, provider := range providers {
		templates, err := svc.GetTemplates(provider.ID)
		assert.NoError(t, err)
		assert.Len(t, templates, 1)
	}
}

func TestService_CreateProvider(t *testing.T) {
	svc := newTestService()
	provider := createTestProvider(t, svc)

	got, err := svc.GetProvider(provider.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Dr. Test", got.Name)

	_, err = svc.CreateProvider(&types.Provider{})
	assert.Error(t, err)
}

func TestService_CreateSlot(t *testing.T) {
	svc := newTestService()
	provider := createTestProvider(t, svc)
	monday := types.NewDate(2024, time.January, 15)

	slot, conflicts, err := svc.CreateSlot(&types.TimeSlot{
		ProviderID: provider.ID,
		Date:       monday,
		StartTime:  types.NewTimeOfDay(9, 0),
		EndTime:    types.NewTimeOfDay(9, 30),
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, slot.ID)
	assert.Empty(t, conflicts)

	// An overlapping second slot is stored but reported as a conflict
	_, conflicts, err = svc.CreateSlot(&types.TimeSlot{
		ProviderID: provider.ID,
		Date:       monday,
		StartTime:  types.NewTimeOfDay(9, 15),
		EndTime:    types.NewTimeOfDay(9, 45),
	})
	assert.NoError(t, err)
	assert.Len(t, conflicts, 1)
	assert.Equal(t, types.ConflictOverlapping, conflicts[0].Type)
}

func TestService_CreateSlot_UnknownProvider(t *testing.T) {
	svc := newTestService()

	_, _, err := svc.CreateSlot(&types.TimeSlot{
		ProviderID: "no-such-provider",
		Date:       types.NewDate(2024, time.January, 15),
		StartTime:  types.NewTimeOfDay(9, 0),
		EndTime:    types.NewTimeOfDay(9, 30),
	})
	assert.Error(t, err)
}

func TestService_UpdateSlot(t *testing.T) {
	svc := newTestService()
	provider := createTestProvider(t, svc)
	monday := types.NewDate(2024, time.January, 15)

	slot, _, err := svc.CreateSlot(&types.TimeSlot{
		ProviderID: provider.ID,
		Date:       monday,
		StartTime:  types.NewTimeOfDay(9, 0),
		EndTime:    types.NewTimeOfDay(9, 30),
	})
	assert.NoError(t, err)

	newStart := types.NewTimeOfDay(14, 0)
	newEnd := types.NewTimeOfDay(14, 30)
	conflicts, err := svc.UpdateSlot(slot.ID, &types.SlotModifications{
		StartTime: &newStart,
		EndTime:   &newEnd,
	})
	assert.NoError(t, err)
	assert.Empty(t, conflicts)

	updated, err := svc.GetSlots(provider.ID, &monday)
	assert.NoError(t, err)
	assert.Len(t, updated, 1)
	assert.Equal(t, newStart, updated[0].StartTime)
}

func TestService_UpdateSlot_InvalidModification(t *testing.T) {
	svc := newTestService()
	provider := createTestProvider(t, svc)

	slot, _, err := svc.CreateSlot(&types.TimeSlot{
		ProviderID: provider.ID,
		Date:       types.NewDate(2024, time.January, 15),
		StartTime:  types.NewTimeOfDay(9, 0),
		EndTime:    types.NewTimeOfDay(9, 30),
	})
	assert.NoError(t, err)

	// A modification that inverts the interval is rejected before storage
	badStart := types.NewTimeOfDay(10, 0)
	badEnd := types.NewTimeOfDay(9, 0)
	_, err = svc.UpdateSlot(slot.ID, &types.SlotModifications{
		StartTime: &badStart,
		EndTime:   &badEnd,
	})
	assert.Error(t, err)

	stored, err := svc.GetSlots(provider.ID, nil)
	assert.NoError(t, err)
	assert.Equal(t, types.NewTimeOfDay(9, 0), stored[0].StartTime)
}

func TestService_DeleteSlot(t *testing.T) {
	svc := newTestService()
	provider := createTestProvider(t, svc)
	monday := types.NewDate(2024, time.January, 15)

	first, _, err := svc.CreateSlot(&types.TimeSlot{
		ProviderID: provider.ID,
		Date:       monday,
		StartTime:  types.NewTimeOfDay(9, 0),
		EndTime:    types.NewTimeOfDay(10, 0),
	})
	assert.NoError(t, err)

	_, conflicts, err := svc.CreateSlot(&types.TimeSlot{
		ProviderID: provider.ID,
		Date:       monday,
		StartTime:  types.NewTimeOfDay(9, 30),
		EndTime:    types.NewTimeOfDay(10, 30),
	})
	assert.NoError(t, err)
	assert.Len(t, conflicts, 1)

	// Deleting one of the overlapping pair clears the conflict
	conflicts, err = svc.DeleteSlot(first.ID)
	assert.NoError(t, err)
	assert.Empty(t, conflicts)

	_, err = svc.DeleteSlot(first.ID)
	assert.Error(t, err)
}

func TestService_GenerateSlots(t *testing.T) {
	svc := newTestService()
	provider := createTestProvider(t, svc)
	monday := types.NewDate(2024, time.January, 15)

	slots, conflicts, err := svc.GenerateSlots(provider.ID, monday)
	assert.NoError(t, err)
	assert.Len(t, slots, 14)
	assert.Empty(t, conflicts)

	stored, err := svc.GetSlots(provider.ID, &monday)
	assert.NoError(t, err)
	assert.Len(t, stored, 14)
}

func TestService_GetConflicts(t *testing.T) {
	svc := newTestService()
	provider := createTestProvider(t, svc)
	monday := types.NewDate(2024, time.January, 15)
	tuesday := types.NewDate(2024, time.January, 16)

	for _, ts := range []struct {
		date       types.Date
		start, end types.TimeOfDay
	}{
		{monday, types.NewTimeOfDay(9, 0), types.NewTimeOfDay(10, 0)},
		{monday, types.NewTimeOfDay(9, 30), types.NewTimeOfDay(10, 30)},
		{tuesday, types.NewTimeOfDay(9, 0), types.NewTimeOfDay(10, 0)},
	} {
		_, _, err := svc.CreateSlot(&types.TimeSlot{
			ProviderID: provider.ID,
			Date:       ts.date,
			StartTime:  ts.start,
			EndTime:    ts.end,
		})
		assert.NoError(t, err)
	}

	all, err := svc.GetConflicts(provider.ID, nil)
	assert.NoError(t, err)
	assert.Len(t, all, 1)

	tuesdayOnly, err := svc.GetConflicts(provider.ID, &tuesday)
	assert.NoError(t, err)
	assert.Empty(t, tuesdayOnly)
}

func TestService_ValidateWorkingHours(t *testing.T) {
	svc := newTestService()
	provider := createTestProvider(t, svc)
	monday := types.NewDate(2024, time.January, 15)

	ok, err := svc.ValidateWorkingHours(&types.TimeSlot{
		ProviderID: provider.ID,
		Date:       monday,
		StartTime:  types.NewTimeOfDay(10, 0),
		EndTime:    types.NewTimeOfDay(10, 30),
	})
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.ValidateWorkingHours(&types.TimeSlot{
		ProviderID: provider.ID,
		Date:       monday,
		StartTime:  types.NewTimeOfDay(7, 0),
		EndTime:    types.NewTimeOfDay(7, 30),
	})
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestService_ApplyTemplate(t *testing.T) {
	svc := newTestService()
	provider := createTestProvider(t, svc)

	template, err := svc.CreateTemplate(testTemplate(provider.ID))
	assert.NoError(t, err)

	monday := types.NewDate(2024, time.January, 15)
	slots, conflicts, err := svc.ApplyTemplate(template.ID, monday)
	assert.NoError(t, err)
	assert.Len(t, slots, 8)
	assert.Empty(t, conflicts)

	stored, err := svc.GetSlots(provider.ID, nil)
	assert.NoError(t, err)
	assert.Len(t, stored, 8)

	// Applying the same template again doubles the slots and surfaces
	// every duplicate as an overlap
	_, conflicts, err = svc.ApplyTemplate(template.ID, monday)
	assert.NoError(t, err)
	assert.Len(t, conflicts, 8)
}

func TestService_ApplyBulkOperation(t *testing.T) {
	svc := newTestService()
	provider := createTestProvider(t, svc)
	monday := types.NewDate(2024, time.January, 15)

	slots, _, err := svc.GenerateSlots(provider.ID, monday)
	assert.NoError(t, err)

	op := &types.BulkOperation{
		Type:          types.BulkDelete,
		SelectedSlots: []string{slots[0].ID, slots[1].ID},
	}
	remaining, conflicts, err := svc.ApplyBulkOperation(provider.ID, op)
	assert.NoError(t, err)
	assert.Len(t, remaining, 12)
	assert.Empty(t, conflicts)

	stored, err := svc.GetSlots(provider.ID, nil)
	assert.NoError(t, err)
	assert.Len(t, stored, 12)
}

func TestService_HighSeverityConflictsAlert(t *testing.T) {
	log := logger.New("debug")
	notifier := &MockNotifier{}
	notifier.On("SendConflictAlert", mock.Anything, mock.Anything).Return(nil)

	svc := &Service{
		logger: log,
		store:  NewMemoryStore(),
		alerts: NewConflictAlertManager(notifier, log),
	}
	provider := createTestProvider(t, svc)
	monday := types.NewDate(2024, time.January, 15)

	_, _, err := svc.CreateSlot(&types.TimeSlot{
		ProviderID: provider.ID,
		Date:       monday,
		StartTime:  types.NewTimeOfDay(9, 0),
		EndTime:    types.NewTimeOfDay(10, 0),
	})
	assert.NoError(t, err)
	notifier.AssertNotCalled(t, "SendConflictAlert", mock.Anything, mock.Anything)

	_, conflicts, err := svc.CreateSlot(&types.TimeSlot{
		ProviderID: provider.ID,
		Date:       monday,
		StartTime:  types.NewTimeOfDay(9, 30),
		EndTime:    types.NewTimeOfDay(10, 30),
	})
	assert.NoError(t, err)
	assert.Len(t, conflicts, 1)
	notifier.AssertNumberOfCalls(t, "SendConflictAlert", 1)
}
