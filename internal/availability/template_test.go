package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/healthfirst/provider-portal/pkg/types"
)

func testTemplate(providerID string) *types.AvailabilityTemplate {
	var pattern types.WeeklyPattern
	pattern[time.Monday] = []types.SlotDefinition{
		{StartTime: types.NewTimeOfDay(9, 0), EndTime: types.NewTimeOfDay(9, 30)},
		{StartTime: types.NewTimeOfDay(10, 0), EndTime: types.NewTimeOfDay(10, 30)},
	}

	return &types.AvailabilityTemplate{
		ID:            "template-1",
		Name:          "Monday Mornings",
		ProviderID:    providerID,
		WeeklyPattern: pattern,
		DefaultSettings: types.TemplateDefaults{
			SlotDuration:           30,
			BreakDuration:          10,
			MaxAppointmentsPerSlot: 1,
			AppointmentType:        types.TypeConsultation,
			LocationType:           types.LocationClinic,
			BaseFee:                150,
			Currency:               "USD",
			InsuranceAccepted:      true,
		},
	}
}

func TestExpandTemplate(t *testing.T) {
	template := testTemplate("provider-1")
	monday := types.NewDate(2024, time.January, 15)

	slots, err := ExpandTemplate(template, monday, "provider-1")
	assert.NoError(t, err)

	// 2 definitions on one weekday over a 4-week horizon
	assert.Len(t, slots, 8)

	wantDates := []types.Date{
		types.NewDate(2024, time.January, 15),
		types.NewDate(2024, time.January, 22),
		types.NewDate(2024, time.January, 29),
		types.NewDate(2024, time.February, 5),
	}
	for i, slot := range slots {
		assert.Equal(t, wantDates[i/2], slot.Date)
		assert.Equal(t, time.Monday, slot.Date.Weekday())
		assert.Equal(t, "provider-1", slot.ProviderID)
		assert.Equal(t, "Monday Mornings", slot.TemplateName)
		assert.NoError(t, slot.Validate())
	}
}

func TestExpandTemplate_MidWeekStart(t *testing.T) {
	template := testTemplate("provider-1")
	wednesday := types.NewDate(2024, time.January, 17)

	slots, err := ExpandTemplate(template, wednesday, "provider-1")
	assert.NoError(t, err)
	assert.Len(t, slots, 8)

	// Starting mid-week, the first Monday materialized is the following one
	assert.Equal(t, types.NewDate(2024, time.January, 22), slots[0].Date)
	for _, slot := range slots {
		assert.Equal(t, time.Monday, slot.Date.Weekday())
		assert.False(t, slot.Date.Before(wednesday))
	}
}

func TestExpandTemplate_DefaultsFallback(t *testing.T) {
	template := testTemplate("provider-1")
	fee := 200.0
	duration := 45
	telehealth := types.TypeTelehealth
	template.WeeklyPattern[time.Monday][1].BaseFee = &fee
	template.WeeklyPattern[time.Monday][1].SlotDuration = &duration
	template.WeeklyPattern[time.Monday][1].AppointmentType = &telehealth

	slots, err := ExpandTemplate(template, types.NewDate(2024, time.January, 15), "provider-1")
	assert.NoError(t, err)

	// First definition inherits every default
	assert.Equal(t, 150.0, slots[0].BaseFee)
	assert.Equal(t, 30, slots[0].SlotDuration)
	assert.Equal(t, 10, slots[0].BreakDuration)
	assert.Equal(t, types.TypeConsultation, slots[0].AppointmentType)
	assert.Equal(t, "USD", slots[0].Currency)
	assert.True(t, slots[0].InsuranceAccepted)

	// Second definition overrides a subset and inherits the rest
	assert.Equal(t, 200.0, slots[1].BaseFee)
	assert.Equal(t, 45, slots[1].SlotDuration)
	assert.Equal(t, types.TypeTelehealth, slots[1].AppointmentType)
	assert.Equal(t, 10, slots[1].BreakDuration)
}

func TestExpandTemplate_UniqueIDs(t *testing.T) {
	template := testTemplate("provider-1")
	monday := types.NewDate(2024, time.January, 15)

	first, err := ExpandTemplate(template, monday, "provider-1")
	assert.NoError(t, err)
	second, err := ExpandTemplate(template, monday, "provider-1")
	assert.NoError(t, err)

	seen := make(map[string]bool)
	for _, slot := range append(first, second...) {
		assert.False(t, seen[slot.ID], "duplicate slot id %s", slot.ID)
		seen[slot.ID] = true
	}
}

func TestExpandTemplate_EmptyPattern(t *testing.T) {
	template := &types.AvailabilityTemplate{
		ID:         "template-empty",
		Name:       "Empty",
		ProviderID: "provider-1",
	}

	slots, err := ExpandTemplate(template, types.NewDate(2024, time.January, 15), "provider-1")
	assert.NoError(t, err)
	assert.Empty(t, slots)
}

func TestExpandTemplate_ProviderMismatch(t *testing.T) {
	template := testTemplate("provider-1")

	_, err := ExpandTemplate(template, types.NewDate(2024, time.January, 15), "provider-2")
	assert.Error(t, err)

	_, err = ExpandTemplate(template, types.NewDate(2024, time.January, 15), "")
	assert.Error(t, err)
}

func TestExpandTemplate_InvalidDefinition(t *testing.T) {
	template := testTemplate("provider-1")
	template.WeeklyPattern[time.Monday] = []types.SlotDefinition{
		{StartTime: types.NewTimeOfDay(10, 0), EndTime: types.NewTimeOfDay(9, 0)},
	}

	_, err := ExpandTemplate(template, types.NewDate(2024, time.January, 15), "provider-1")
	assert.Error(t, err)
}
