package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/healthfirst/provider-portal/pkg/types"
)

func TestGenerateSlots_Weekday(t *testing.T) {
	monday := types.NewDate(2024, time.January, 15)

	slots := GenerateSlots(monday, "provider-1")

	// 09:00-12:00 yields 6 half-hour slots, 13:00-17:00 yields 8
	assert.Len(t, slots, 14)
	assert.Equal(t, types.NewTimeOfDay(9, 0), slots[0].StartTime)
	assert.Equal(t, types.NewTimeOfDay(9, 30), slots[0].EndTime)
	assert.Equal(t, types.NewTimeOfDay(16, 30), slots[len(slots)-1].StartTime)
	assert.Equal(t, types.NewTimeOfDay(17, 0), slots[len(slots)-1].EndTime)

	for _, slot := range slots {
		assert.Equal(t, "provider-1", slot.ProviderID)
		assert.Equal(t, monday, slot.Date)
		assert.Equal(t, generatedSlotMinutes, slot.SlotDuration)
		assert.Equal(t, types.TypeConsultation, slot.AppointmentType)
		assert.NotEmpty(t, slot.ID)
		assert.NoError(t, slot.Validate())
	}
}

func TestGenerateSlots_Weekend(t *testing.T) {
	saturday := types.NewDate(2024, time.January, 13)
	assert.Empty(t, GenerateSlots(saturday, "provider-1"))

	sunday := types.NewDate(2024, time.January, 14)
	assert.Empty(t, GenerateSlots(sunday, "provider-1"))
}

func TestGenerateSlots_NoConflictsAmongGenerated(t *testing.T) {
	monday := types.NewDate(2024, time.January, 15)
	slots := GenerateSlots(monday, "provider-1")

	conflicts, err := DetectConflicts(slots)
	assert.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestGenerateSlots_UniqueIDs(t *testing.T) {
	monday := types.NewDate(2024, time.January, 15)
	slots := append(GenerateSlots(monday, "provider-1"), GenerateSlots(monday, "provider-1")...)

	seen := make(map[string]bool, len(slots))
	for _, slot := range slots {
		assert.False(t, seen[slot.ID])
		seen[slot.ID] = true
	}
}
