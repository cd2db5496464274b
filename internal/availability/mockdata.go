package availability

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/healthfirst/provider-portal/pkg/config"
	"github.com/healthfirst/provider-portal/pkg/interfaces"
	"github.com/healthfirst/provider-portal/pkg/logger"
	"github.com/healthfirst/provider-portal/pkg/types"
)

var mockSpecializations = []string{
	"Cardiology",
	"Dermatology",
	"General Practice",
	"Orthopedics",
	"Endocrinology",
	"Neurology",
	"Pediatrics",
	"Psychiatry",
}

// seedMockData populates the store with a realistic provider roster. The
// portal has no persistence layer; a fixed seed keeps the roster stable
// across restarts so the UI and tests see the same data.
func seedMockData(store interfaces.AvailabilityStore, cfg *config.SeedConfig, log *logger.Logger) error {
	faker := gofakeit.New(uint64(cfg.Seed))
	now := time.Now()

	for i := 0; i < cfg.Providers; i++ {
		provider := &types.Provider{
			ID:                     uuid.New().String(),
			Name:                   fmt.Sprintf("Dr. %s", faker.Name()),
			Specialization:         mockSpecializations[faker.Number(0, len(mockSpecializations)-1)],
			Email:                  faker.Email(),
			Phone:                  faker.Phone(),
			Timezone:               defaultTimezone,
			DefaultLocation:        fmt.Sprintf("%s Clinic", faker.City()),
			DefaultSlotDuration:    30,
			DefaultBreakDuration:   15,
			MaxAppointmentsPerSlot: 1,
			WorkingWeek:            weekdayWorkingWeek(),
			CreatedAt:              now,
			UpdatedAt:              now,
		}
		if err := store.CreateProvider(provider); err != nil {
			return fmt.Errorf("failed to seed provider: %w", err)
		}

		template := starterTemplate(provider, now)
		if err := store.CreateTemplate(template); err != nil {
			return fmt.Errorf("failed to seed template: %w", err)
		}

		log.WithProviderID(provider.ID).Debugf("Seeded provider %s (%s)", provider.Name, provider.Specialization)
	}

	log.Infof("Seeded %d mock providers", cfg.Providers)
	return nil
}

// weekdayWorkingWeek is the standard Mon-Fri 09:00-17:00 schedule.
func weekdayWorkingWeek() types.WorkingWeek {
	var week types.WorkingWeek
	for day := time.Monday; day <= time.Friday; day++ {
		week[day] = types.WorkingHours{
			Start:     types.NewTimeOfDay(9, 0),
			End:       types.NewTimeOfDay(17, 0),
			Available: true,
		}
	}
	return week
}

// starterTemplate gives every seeded provider a morning-hours weekly
// template so the template workflow is usable out of the box.
func starterTemplate(provider *types.Provider, now time.Time) *types.AvailabilityTemplate {
	var pattern types.WeeklyPattern
	for day := time.Monday; day <= time.Friday; day++ {
		pattern[day] = []types.SlotDefinition{
			{StartTime: types.NewTimeOfDay(9, 0), EndTime: types.NewTimeOfDay(9, 30)},
			{StartTime: types.NewTimeOfDay(9, 45), EndTime: types.NewTimeOfDay(10, 15)},
			{StartTime: types.NewTimeOfDay(10, 30), EndTime: types.NewTimeOfDay(11, 0)},
		}
	}

	return &types.AvailabilityTemplate{
		ID:            uuid.New().String(),
		Name:          "Standard Morning Hours",
		Description:   "Weekday morning consultations with 15-minute buffers",
		ProviderID:    provider.ID,
		WeeklyPattern: pattern,
		DefaultSettings: types.TemplateDefaults{
			SlotDuration:           provider.DefaultSlotDuration,
			BreakDuration:          provider.DefaultBreakDuration,
			MaxAppointmentsPerSlot: provider.MaxAppointmentsPerSlot,
			AppointmentType:        types.TypeConsultation,
			LocationType:           types.LocationClinic,
			BaseFee:                150,
			Currency:               "USD",
			InsuranceAccepted:      true,
		},
		IsFavorite: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
