package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/healthfirst/provider-portal/pkg/types"
)

func testBulkSlots() []*types.TimeSlot {
	monday := types.NewDate(2024, time.January, 15)
	return []*types.TimeSlot{
		testSlot("a", "provider-1", monday, types.NewTimeOfDay(9, 0), types.NewTimeOfDay(9, 30)),
		testSlot("b", "provider-1", monday, types.NewTimeOfDay(10, 0), types.NewTimeOfDay(10, 30)),
		testSlot("c", "provider-1", monday, types.NewTimeOfDay(11, 0), types.NewTimeOfDay(11, 30)),
	}
}

func TestApplyBulkOperation_Delete(t *testing.T) {
	slots := testBulkSlots()
	op := &types.BulkOperation{
		Type:          types.BulkDelete,
		SelectedSlots: []string{"a", "c"},
	}

	result, err := ApplyBulkOperation(op, slots)
	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, "b", result[0].ID)

	// Input collection is untouched
	assert.Len(t, slots, 3)
}

func TestApplyBulkOperation_Copy(t *testing.T) {
	slots := testBulkSlots()
	target := types.NewDate(2024, time.January, 22)
	op := &types.BulkOperation{
		Type:          types.BulkCopy,
		SelectedSlots: []string{"a"},
		TargetDate:    &target,
	}

	result, err := ApplyBulkOperation(op, slots)
	assert.NoError(t, err)
	assert.Len(t, result, 4)

	copied := result[3]
	assert.NotEqual(t, "a", copied.ID)
	assert.Equal(t, target, copied.Date)
	assert.Equal(t, types.NewTimeOfDay(9, 0), copied.StartTime)

	// Original stays on its original date
	assert.Equal(t, types.NewDate(2024, time.January, 15), result[0].Date)
}

func TestApplyBulkOperation_Duplicate(t *testing.T) {
	slots := testBulkSlots()
	op := &types.BulkOperation{
		Type:          types.BulkDuplicate,
		SelectedSlots: []string{"a", "b"},
	}

	result, err := ApplyBulkOperation(op, slots)
	assert.NoError(t, err)
	assert.Len(t, result, 5)

	// Duplicates keep the source date but get fresh ids
	assert.Equal(t, result[0].Date, result[3].Date)
	assert.NotEqual(t, result[0].ID, result[3].ID)
}

func TestApplyBulkOperation_Move(t *testing.T) {
	slots := testBulkSlots()
	target := types.NewDate(2024, time.January, 29)
	op := &types.BulkOperation{
		Type:          types.BulkMove,
		SelectedSlots: []string{"b"},
		TargetDate:    &target,
	}

	result, err := ApplyBulkOperation(op, slots)
	assert.NoError(t, err)
	assert.Len(t, result, 3)

	for _, slot := range result {
		if slot.ID == "b" {
			assert.Equal(t, target, slot.Date)
		} else {
			assert.Equal(t, types.NewDate(2024, time.January, 15), slot.Date)
		}
	}

	// Moving never mutates the input slots
	assert.Equal(t, types.NewDate(2024, time.January, 15), slots[1].Date)
}

func TestApplyBulkOperation_Modify(t *testing.T) {
	slots := testBulkSlots()
	newStart := types.NewTimeOfDay(14, 0)
	newEnd := types.NewTimeOfDay(14, 30)
	fee := 175.0
	op := &types.BulkOperation{
		Type:          types.BulkModify,
		SelectedSlots: []string{"a", "b"},
		Modifications: &types.SlotModifications{
			StartTime: &newStart,
			EndTime:   &newEnd,
			BaseFee:   &fee,
		},
	}

	result, err := ApplyBulkOperation(op, slots)
	assert.NoError(t, err)
	assert.Len(t, result, 3)

	for _, slot := range result {
		switch slot.ID {
		case "a", "b":
			assert.Equal(t, newStart, slot.StartTime)
			assert.Equal(t, newEnd, slot.EndTime)
			assert.Equal(t, fee, slot.BaseFee)
		default:
			assert.Equal(t, types.NewTimeOfDay(11, 0), slot.StartTime)
			assert.Equal(t, 0.0, slot.BaseFee)
		}
	}

	assert.Equal(t, types.NewTimeOfDay(9, 0), slots[0].StartTime)
}

func TestApplyBulkOperation_UnknownIDsSkipped(t *testing.T) {
	slots := testBulkSlots()
	op := &types.BulkOperation{
		Type:          types.BulkDelete,
		SelectedSlots: []string{"a", "no-such-slot"},
	}

	result, err := ApplyBulkOperation(op, slots)
	assert.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestApplyBulkOperation_EmptySelection(t *testing.T) {
	slots := testBulkSlots()
	op := &types.BulkOperation{Type: types.BulkDelete}

	result, err := ApplyBulkOperation(op, slots)
	assert.NoError(t, err)
	assert.Len(t, result, 3)
}

func TestApplyBulkOperation_UnknownType(t *testing.T) {
	op := &types.BulkOperation{
		Type:          types.BulkOperationType("explode"),
		SelectedSlots: []string{"a"},
	}

	_, err := ApplyBulkOperation(op, testBulkSlots())
	assert.Error(t, err)
}
