package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/healthfirst/provider-portal/pkg/types"
)

func testProvider() *types.Provider {
	return &types.Provider{
		ID:          "provider-1",
		Name:        "Dr. Test",
		WorkingWeek: weekdayWorkingWeek(),
	}
}

func TestIsWithinWorkingHours(t *testing.T) {
	provider := testProvider()
	monday := types.NewDate(2024, time.January, 15)

	inside := testSlot("a", provider.ID, monday, types.NewTimeOfDay(10, 0), types.NewTimeOfDay(10, 30))
	assert.True(t, IsWithinWorkingHours(inside, provider))
}

func TestIsWithinWorkingHours_Boundaries(t *testing.T) {
	provider := testProvider()
	monday := types.NewDate(2024, time.January, 15)

	// Slots touching the opening and closing boundaries are valid
	opening := testSlot("a", provider.ID, monday, types.NewTimeOfDay(9, 0), types.NewTimeOfDay(9, 30))
	assert.True(t, IsWithinWorkingHours(opening, provider))

	closing := testSlot("b", provider.ID, monday, types.NewTimeOfDay(16, 30), types.NewTimeOfDay(17, 0))
	assert.True(t, IsWithinWorkingHours(closing, provider))

	fullDay := testSlot("c", provider.ID, monday, types.NewTimeOfDay(9, 0), types.NewTimeOfDay(17, 0))
	assert.True(t, IsWithinWorkingHours(fullDay, provider))
}

func TestIsWithinWorkingHours_Outside(t *testing.T) {
	provider := testProvider()
	monday := types.NewDate(2024, time.January, 15)

	early := testSlot("a", provider.ID, monday, types.NewTimeOfDay(8, 30), types.NewTimeOfDay(9, 0))
	assert.False(t, IsWithinWorkingHours(early, provider))

	late := testSlot("b", provider.ID, monday, types.NewTimeOfDay(16, 45), types.NewTimeOfDay(17, 15))
	assert.False(t, IsWithinWorkingHours(late, provider))

	straddling := testSlot("c", provider.ID, monday, types.NewTimeOfDay(8, 0), types.NewTimeOfDay(18, 0))
	assert.False(t, IsWithinWorkingHours(straddling, provider))
}

func TestIsWithinWorkingHours_UnavailableDay(t *testing.T) {
	provider := testProvider()
	saturday := types.NewDate(2024, time.January, 13)

	slot := testSlot("a", provider.ID, saturday, types.NewTimeOfDay(10, 0), types.NewTimeOfDay(10, 30))
	assert.False(t, IsWithinWorkingHours(slot, provider))
}
