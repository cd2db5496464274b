package availability

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/healthfirst/provider-portal/pkg/types"
)

// ApplyBulkOperation applies one operation uniformly to the selected
// slots and returns the resulting collection. The input is never mutated:
// untouched slots are shared, changed slots are cloned. Selected ids that
// match no slot are silently skipped. No conflict checking happens here;
// callers re-run the detector on the result.
func ApplyBulkOperation(op *types.BulkOperation, slots []*types.TimeSlot) ([]*types.TimeSlot, error) {
	selected := make(map[string]bool, len(op.SelectedSlots))
	for _, id := range op.SelectedSlots {
		selected[id] = true
	}

	now := time.Now()

	switch op.Type {
	case types.BulkDelete:
		result := make([]*types.TimeSlot, 0, len(slots))
		for _, slot := range slots {
			if !selected[slot.ID] {
				result = append(result, slot)
			}
		}
		return result, nil

	case types.BulkCopy, types.BulkDuplicate:
		result := append([]*types.TimeSlot(nil), slots...)
		for _, slot := range slots {
			if !selected[slot.ID] {
				continue
			}
			clone := slot.Clone()
			clone.ID = uuid.New().String()
			if op.TargetDate != nil {
				clone.Date = *op.TargetDate
			}
			clone.CreatedAt = now
			clone.UpdatedAt = now
			result = append(result, clone)
		}
		return result, nil

	case types.BulkMove:
		result := make([]*types.TimeSlot, 0, len(slots))
		for _, slot := range slots {
			if !selected[slot.ID] {
				result = append(result, slot)
				continue
			}
			moved := slot.Clone()
			if op.TargetDate != nil {
				moved.Date = *op.TargetDate
			}
			applyModifications(moved, op.Modifications)
			moved.UpdatedAt = now
			result = append(result, moved)
		}
		return result, nil

	case types.BulkModify:
		result := make([]*types.TimeSlot, 0, len(slots))
		for _, slot := range slots {
			if !selected[slot.ID] {
				result = append(result, slot)
				continue
			}
			modified := slot.Clone()
			applyModifications(modified, op.Modifications)
			modified.UpdatedAt = now
			result = append(result, modified)
		}
		return result, nil

	default:
		return nil, types.NewValidationError(types.ErrCodeInvalidInput,
			fmt.Sprintf("unknown bulk operation type: %q", op.Type), nil)
	}
}

// applyModifications shallow-merges the non-nil modification fields into
// the slot.
func applyModifications(slot *types.TimeSlot, mods *types.SlotModifications) {
	if mods == nil {
		return
	}
	if mods.Date != nil {
		slot.Date = *mods.Date
	}
	if mods.StartTime != nil {
		slot.StartTime = *mods.StartTime
	}
	if mods.EndTime != nil {
		slot.EndTime = *mods.EndTime
	}
	if mods.SlotDuration != nil {
		slot.SlotDuration = *mods.SlotDuration
	}
	if mods.BreakDuration != nil {
		slot.BreakDuration = *mods.BreakDuration
	}
	if mods.MaxAppointmentsPerSlot != nil {
		slot.MaxAppointmentsPerSlot = *mods.MaxAppointmentsPerSlot
	}
	if mods.AppointmentType != nil {
		slot.AppointmentType = *mods.AppointmentType
	}
	if mods.LocationType != nil {
		slot.LocationType = *mods.LocationType
	}
	if mods.Address != nil {
		slot.Address = *mods.Address
	}
	if mods.RoomNumber != nil {
		slot.RoomNumber = *mods.RoomNumber
	}
	if mods.VirtualLink != nil {
		slot.VirtualLink = *mods.VirtualLink
	}
	if mods.BaseFee != nil {
		slot.BaseFee = *mods.BaseFee
	}
	if mods.Currency != nil {
		slot.Currency = *mods.Currency
	}
	if mods.InsuranceAccepted != nil {
		slot.InsuranceAccepted = *mods.InsuranceAccepted
	}
	if mods.IsBooked != nil {
		slot.IsBooked = *mods.IsBooked
	}
}
