package availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/healthfirst/provider-portal/pkg/types"
)

// defaultTimezone is stamped on slots produced without an explicit zone.
const defaultTimezone = "America/New_York"

// clinicBlock is one contiguous run of same-length slots in the day plan.
type clinicBlock struct {
	start types.TimeOfDay
	end   types.TimeOfDay
}

// defaultDayPlan is the built-in slot-definition source: a morning and an
// afternoon block on weekdays, nothing on weekends. It stands in for the
// slot-provisioning API a persistent deployment would call.
var defaultDayPlan = [7][]clinicBlock{
	time.Monday:    {{types.NewTimeOfDay(9, 0), types.NewTimeOfDay(12, 0)}, {types.NewTimeOfDay(13, 0), types.NewTimeOfDay(17, 0)}},
	time.Tuesday:   {{types.NewTimeOfDay(9, 0), types.NewTimeOfDay(12, 0)}, {types.NewTimeOfDay(13, 0), types.NewTimeOfDay(17, 0)}},
	time.Wednesday: {{types.NewTimeOfDay(9, 0), types.NewTimeOfDay(12, 0)}, {types.NewTimeOfDay(13, 0), types.NewTimeOfDay(17, 0)}},
	time.Thursday:  {{types.NewTimeOfDay(9, 0), types.NewTimeOfDay(12, 0)}, {types.NewTimeOfDay(13, 0), types.NewTimeOfDay(17, 0)}},
	time.Friday:    {{types.NewTimeOfDay(9, 0), types.NewTimeOfDay(12, 0)}, {types.NewTimeOfDay(13, 0), types.NewTimeOfDay(17, 0)}},
}

const generatedSlotMinutes = 30

// GenerateSlots produces well-formed slots for the provider on the given
// date from the built-in day plan. It performs no conflict checking and
// returns an empty collection when the plan defines nothing for the
// date's weekday.
func GenerateSlots(date types.Date, providerID string) []*types.TimeSlot {
	blocks := defaultDayPlan[date.Weekday()]
	now := time.Now()

	var slots []*types.TimeSlot
	for _, block := range blocks {
		for cur := block.start; cur.AddMinutes(generatedSlotMinutes) <= block.end; cur = cur.AddMinutes(generatedSlotMinutes) {
			slots = append(slots, &types.TimeSlot{
				ID:                     uuid.New().String(),
				ProviderID:             providerID,
				Date:                   date,
				StartTime:              cur,
				EndTime:                cur.AddMinutes(generatedSlotMinutes),
				Timezone:               defaultTimezone,
				SlotDuration:           generatedSlotMinutes,
				MaxAppointmentsPerSlot: 1,
				AppointmentType:        types.TypeConsultation,
				LocationType:           types.LocationClinic,
				Currency:               "USD",
				CreatedAt:              now,
				UpdatedAt:              now,
			})
		}
	}
	return slots
}
