package availability

import (
	"fmt"

	"github.com/healthfirst/provider-portal/pkg/types"
)

// DetectConflicts re-derives the full conflict set from the given slot
// collection. Recomputation, not incremental patching, is the
// correctness model: every call scans the current snapshot from scratch,
// so there is never a stale conflict entry to invalidate.
//
// Booked slots stay in the scan; a booked slot overlapping another slot
// is still a reportable conflict.
func DetectConflicts(slots []*types.TimeSlot) ([]*types.Conflict, error) {
	for _, slot := range slots {
		if err := slot.Validate(); err != nil {
			return nil, err
		}
	}

	var conflicts []*types.Conflict
	conflicts = append(conflicts, detectOverlaps(slots)...)
	conflicts = append(conflicts, detectBufferViolations(slots)...)
	return conflicts, nil
}

// detectOverlaps reports every unordered pair of same-provider same-date
// slots whose half-open intervals intersect. Comparing index i against
// j > i keeps the enumeration order-independent and each pair reported
// exactly once.
func detectOverlaps(slots []*types.TimeSlot) []*types.Conflict {
	var conflicts []*types.Conflict
	for i := 0; i < len(slots); i++ {
		for j := i + 1; j < len(slots); j++ {
			a, b := slots[i], slots[j]
			if a.ProviderID != b.ProviderID || !a.Date.Equal(b.Date) {
				continue
			}
			if !types.IntervalsOverlap(a.StartTime, a.EndTime, b.StartTime, b.EndTime) {
				continue
			}
			conflicts = append(conflicts, &types.Conflict{
				ID:       fmt.Sprintf("overlap-%s-%s", a.ID, b.ID),
				Type:     types.ConflictOverlapping,
				Severity: types.SeverityHigh,
				Description: fmt.Sprintf("Slots %s-%s and %s-%s overlap on %s",
					a.StartTime, a.EndTime, b.StartTime, b.EndTime, a.Date),
				AffectedSlots:       []string{a.ID, b.ID},
				SuggestedResolution: "Adjust the start or end time of one of the overlapping slots",
			})
		}
	}
	return conflicts
}

// detectBufferViolations flags zero-gap adjacency after a slot that
// declares a break. The rule triggers on exact adjacency alone, without
// measuring whether the actual gap is shorter than the declared break; a
// provider who configured a break must not have another slot start the
// minute the prior one ends.
func detectBufferViolations(slots []*types.TimeSlot) []*types.Conflict {
	var conflicts []*types.Conflict
	for _, s := range slots {
		if s.BreakDuration <= 0 {
			continue
		}
		for _, other := range slots {
			if other.ID == s.ID || other.ProviderID != s.ProviderID || !other.Date.Equal(s.Date) {
				continue
			}
			if other.StartTime != s.EndTime {
				continue
			}
			conflicts = append(conflicts, &types.Conflict{
				ID:       fmt.Sprintf("buffer-%s-%s", s.ID, other.ID),
				Type:     types.ConflictBufferViolation,
				Severity: types.SeverityMedium,
				Description: fmt.Sprintf("Slot starting at %s on %s leaves no room for the %d-minute break after the slot ending at %s",
					other.StartTime, other.Date, s.BreakDuration, s.EndTime),
				AffectedSlots:       []string{s.ID, other.ID},
				SuggestedResolution: fmt.Sprintf("Move the following slot to start at %s or later", s.EndTime.AddMinutes(s.BreakDuration)),
			})
		}
	}
	return conflicts
}
