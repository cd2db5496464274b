package availability

import (
	"github.com/healthfirst/provider-portal/pkg/types"
)

// IsWithinWorkingHours reports whether the slot falls inside the
// provider's declared working hours for the slot's weekday. It is a
// predicate only; callers decide whether an out-of-hours slot is an
// error or merely a warning.
func IsWithinWorkingHours(slot *types.TimeSlot, provider *types.Provider) bool {
	hours := provider.WorkingWeek[slot.Date.Weekday()]
	if !hours.Available {
		return false
	}
	// Inclusive boundaries: a slot ending exactly at closing time is valid.
	return slot.StartTime >= hours.Start && slot.EndTime <= hours.End
}
