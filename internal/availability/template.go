package availability

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/healthfirst/provider-portal/pkg/types"
)

// templateHorizonWeeks is the fixed expansion horizon for availability
// templates.
const templateHorizonWeeks = 4

// ExpandTemplate materializes a weekly template into dated slots across a
// 4-week horizon beginning at startDate. Expansion does no conflict
// suppression: applying the same template twice produces two full slot
// sets that the detector will flag as overlapping, and resolving that is
// a separate, explicit step.
func ExpandTemplate(template *types.AvailabilityTemplate, startDate types.Date, providerID string) ([]*types.TimeSlot, error) {
	if providerID == "" {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, "provider ID is required", nil)
	}
	if template.ProviderID != "" && template.ProviderID != providerID {
		return nil, types.NewValidationError(types.ErrCodeProviderMismatch,
			"template belongs to a different provider", map[string]interface{}{
				"template_provider": template.ProviderID,
				"requested":         providerID,
			})
	}

	now := time.Now()
	startWeekday := startDate.Weekday()

	var slots []*types.TimeSlot
	for week := 0; week < templateHorizonWeeks; week++ {
		for day := time.Sunday; day <= time.Saturday; day++ {
			defs := template.WeeklyPattern[day]
			if len(defs) == 0 {
				continue
			}
			// Advance to the start of this week offset, then across to
			// the matching weekday within it.
			offset := (int(day) - int(startWeekday) + 7) % 7
			date := startDate.AddDays(week*7 + offset)

			for idx, def := range defs {
				slot := materializeDefinition(&def, template, date, providerID, idx, now)
				if err := slot.Validate(); err != nil {
					return nil, err
				}
				slots = append(slots, slot)
			}
		}
	}
	return slots, nil
}

// materializeDefinition turns one slot definition into a dated TimeSlot,
// falling back to the template defaults for any omitted field.
func materializeDefinition(def *types.SlotDefinition, template *types.AvailabilityTemplate, date types.Date, providerID string, idx int, now time.Time) *types.TimeSlot {
	defaults := template.DefaultSettings

	slot := &types.TimeSlot{
		// Embed date, start time and definition index so a slot's origin
		// is readable from its id; the random suffix keeps repeated
		// expansions of the same template and date distinguishable.
		ID:                     fmt.Sprintf("slot-%s-%s-%d-%s", date, def.StartTime, idx, uuid.New().String()[:8]),
		ProviderID:             providerID,
		Date:                   date,
		StartTime:              def.StartTime,
		EndTime:                def.EndTime,
		Timezone:               defaultTimezone,
		SlotDuration:           defaults.SlotDuration,
		BreakDuration:          defaults.BreakDuration,
		MaxAppointmentsPerSlot: defaults.MaxAppointmentsPerSlot,
		AppointmentType:        defaults.AppointmentType,
		LocationType:           defaults.LocationType,
		Address:                def.Address,
		RoomNumber:             def.RoomNumber,
		VirtualLink:            def.VirtualLink,
		SpecialRequirements:    append([]string(nil), def.SpecialRequirements...),
		BaseFee:                defaults.BaseFee,
		Currency:               defaults.Currency,
		InsuranceAccepted:      defaults.InsuranceAccepted,
		TemplateName:           template.Name,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	if def.SlotDuration != nil {
		slot.SlotDuration = *def.SlotDuration
	}
	if def.BreakDuration != nil {
		slot.BreakDuration = *def.BreakDuration
	}
	if def.MaxAppointmentsPerSlot != nil {
		slot.MaxAppointmentsPerSlot = *def.MaxAppointmentsPerSlot
	}
	if def.AppointmentType != nil {
		slot.AppointmentType = *def.AppointmentType
	}
	if def.LocationType != nil {
		slot.LocationType = *def.LocationType
	}
	if def.BaseFee != nil {
		slot.BaseFee = *def.BaseFee
	}
	if def.Currency != nil {
		slot.Currency = *def.Currency
	}
	if def.InsuranceAccepted != nil {
		slot.InsuranceAccepted = *def.InsuranceAccepted
	}

	return slot
}
