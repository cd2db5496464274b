package types

import (
	"encoding/json"
	"time"
)

// Provider represents a practitioner and their scheduling defaults
type Provider struct {
	ID                     string      `json:"id"`
	Name                   string      `json:"name"`
	Specialization         string      `json:"specialization"`
	Email                  string      `json:"email"`
	Phone                  string      `json:"phone"`
	Timezone               string      `json:"timezone"`
	DefaultLocation        string      `json:"default_location"`
	DefaultSlotDuration    int         `json:"default_slot_duration"`
	DefaultBreakDuration   int         `json:"default_break_duration"`
	MaxAppointmentsPerSlot int         `json:"max_appointments_per_slot"`
	WorkingWeek            WorkingWeek `json:"working_hours"`
	CreatedAt              time.Time   `json:"created_at"`
	UpdatedAt              time.Time   `json:"updated_at"`
}

// WorkingHours is a provider's open interval for one weekday. Start and
// End are only meaningful when Available is true.
type WorkingHours struct {
	Start     TimeOfDay `json:"start"`
	End       TimeOfDay `json:"end"`
	Available bool      `json:"available"`
}

// WorkingWeek holds one WorkingHours entry per weekday, indexed by
// time.Weekday. A fixed-size array keeps the weekday space exhaustive at
// compile time; JSON uses day-name keys to match the portal wire shape.
type WorkingWeek [7]WorkingHours

// MarshalJSON encodes the week as a day-name keyed object.
func (w WorkingWeek) MarshalJSON() ([]byte, error) {
	out := make(map[string]WorkingHours, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		out[WeekdayName(day)] = w[day]
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a day-name keyed object. Unknown day names are a
// validation error; omitted days stay unavailable.
func (w *WorkingWeek) UnmarshalJSON(data []byte) error {
	var raw map[string]WorkingHours
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var week WorkingWeek
	for name, hours := range raw {
		day, err := ParseWeekday(name)
		if err != nil {
			return err
		}
		week[day] = hours
	}
	*w = week
	return nil
}

// AppointmentType represents appointment type values
type AppointmentType string

const (
	TypeConsultation AppointmentType = "consultation"
	TypeFollowUp     AppointmentType = "follow_up"
	TypeCheckUp      AppointmentType = "check_up"
	TypeProcedure    AppointmentType = "procedure"
	TypeTelehealth   AppointmentType = "telehealth"
)

// LocationType represents where a slot takes place
type LocationType string

const (
	LocationClinic   LocationType = "clinic"
	LocationHospital LocationType = "hospital"
	LocationHome     LocationType = "home_visit"
	LocationVirtual  LocationType = "virtual"
)

// RecurrencePattern represents how a recurring slot repeats
type RecurrencePattern string

const (
	RecurrenceDaily    RecurrencePattern = "daily"
	RecurrenceWeekly   RecurrencePattern = "weekly"
	RecurrenceBiweekly RecurrencePattern = "biweekly"
	RecurrenceMonthly  RecurrencePattern = "monthly"
)

// TimeSlot represents one bookable interval for a provider on a date.
// The interval used for overlap comparison is defined by ProviderID,
// Date, StartTime and EndTime; SlotDuration and BreakDuration are
// informational and not derived from the interval.
type TimeSlot struct {
	ID                     string            `json:"id"`
	ProviderID             string            `json:"provider_id"`
	Date                   Date              `json:"date"`
	StartTime              TimeOfDay         `json:"start_time"`
	EndTime                TimeOfDay         `json:"end_time"`
	Timezone               string            `json:"timezone"`
	SlotDuration           int               `json:"slot_duration"`
	BreakDuration          int               `json:"break_duration"`
	MaxAppointmentsPerSlot int               `json:"max_appointments_per_slot"`
	AppointmentType        AppointmentType   `json:"appointment_type"`
	LocationType           LocationType      `json:"location_type"`
	Address                string            `json:"address,omitempty"`
	RoomNumber             string            `json:"room_number,omitempty"`
	VirtualLink            string            `json:"virtual_link,omitempty"`
	SpecialRequirements    []string          `json:"special_requirements,omitempty"`
	BaseFee                float64           `json:"base_fee"`
	Currency               string            `json:"currency"`
	InsuranceAccepted      bool              `json:"insurance_accepted"`
	AcceptedInsurancePlans []string          `json:"accepted_insurance_plans,omitempty"`
	IsBooked               bool              `json:"is_booked"`
	IsRecurring            bool              `json:"is_recurring"`
	RecurrencePattern      RecurrencePattern `json:"recurrence_pattern,omitempty"`
	RecurrenceDays         []time.Weekday    `json:"recurrence_days,omitempty"`
	RecurrenceEndDate      *Date             `json:"recurrence_end_date,omitempty"`
	RecurrenceExceptions   []Date            `json:"recurrence_exceptions,omitempty"`
	TemplateName           string            `json:"template_name,omitempty"`
	CreatedAt              time.Time         `json:"created_at"`
	UpdatedAt              time.Time         `json:"updated_at"`
}

// Validate checks the slot invariants that every caller relies on.
func (s *TimeSlot) Validate() error {
	if s.ProviderID == "" {
		return NewValidationError(ErrCodeInvalidInput, "provider ID is required", nil)
	}
	if s.StartTime >= s.EndTime {
		return NewValidationError(ErrCodeInvalidInterval, "slot start time must be before end time", map[string]interface{}{
			"start_time": s.StartTime.String(),
			"end_time":   s.EndTime.String(),
		})
	}
	if s.BreakDuration < 0 {
		return NewValidationError(ErrCodeInvalidInput, "break duration must not be negative", nil)
	}
	return nil
}

// Clone returns a deep copy of the slot. Bulk operations work
// copy-on-write and must never mutate the caller's collection.
func (s *TimeSlot) Clone() *TimeSlot {
	clone := *s
	clone.SpecialRequirements = append([]string(nil), s.SpecialRequirements...)
	clone.AcceptedInsurancePlans = append([]string(nil), s.AcceptedInsurancePlans...)
	clone.RecurrenceDays = append([]time.Weekday(nil), s.RecurrenceDays...)
	clone.RecurrenceExceptions = append([]Date(nil), s.RecurrenceExceptions...)
	if s.RecurrenceEndDate != nil {
		end := *s.RecurrenceEndDate
		clone.RecurrenceEndDate = &end
	}
	return &clone
}

// SlotModifications represents a partial-field update to a slot. Nil
// fields are left untouched.
type SlotModifications struct {
	Date                   *Date              `json:"date,omitempty"`
	StartTime              *TimeOfDay         `json:"start_time,omitempty"`
	EndTime                *TimeOfDay         `json:"end_time,omitempty"`
	SlotDuration           *int               `json:"slot_duration,omitempty"`
	BreakDuration          *int               `json:"break_duration,omitempty"`
	MaxAppointmentsPerSlot *int               `json:"max_appointments_per_slot,omitempty"`
	AppointmentType        *AppointmentType   `json:"appointment_type,omitempty"`
	LocationType           *LocationType      `json:"location_type,omitempty"`
	Address                *string            `json:"address,omitempty"`
	RoomNumber             *string            `json:"room_number,omitempty"`
	VirtualLink            *string            `json:"virtual_link,omitempty"`
	BaseFee                *float64           `json:"base_fee,omitempty"`
	Currency               *string            `json:"currency,omitempty"`
	InsuranceAccepted      *bool              `json:"insurance_accepted,omitempty"`
	IsBooked               *bool              `json:"is_booked,omitempty"`
}

// ConflictType classifies a detected scheduling problem. double_booking
// and location_conflict have no generating detection pass yet; they stay
// first-class values because the resolution workflow handles all four
// kinds uniformly.
type ConflictType string

const (
	ConflictOverlapping     ConflictType = "overlapping"
	ConflictDoubleBooking   ConflictType = "double_booking"
	ConflictBufferViolation ConflictType = "buffer_violation"
	ConflictLocation        ConflictType = "location_conflict"
)

// ConflictSeverity represents how serious a conflict is
type ConflictSeverity string

const (
	SeverityLow    ConflictSeverity = "low"
	SeverityMedium ConflictSeverity = "medium"
	SeverityHigh   ConflictSeverity = "high"
)

// Conflict is a detected scheduling problem. It is always derived from
// the current slot collection and is only valid while the referenced
// slots exist unchanged.
type Conflict struct {
	ID                  string           `json:"id"`
	Type                ConflictType     `json:"type"`
	Severity            ConflictSeverity `json:"severity"`
	Description         string           `json:"description"`
	AffectedSlots       []string         `json:"affected_slots"`
	SuggestedResolution string           `json:"suggested_resolution,omitempty"`
}

// SlotDefinition is the TimeSlot shape used inside weekly templates: no
// date or id, and optional fields as pointers so the template engine can
// fall back to the template defaults for anything omitted.
type SlotDefinition struct {
	StartTime              TimeOfDay        `json:"start_time"`
	EndTime                TimeOfDay        `json:"end_time"`
	SlotDuration           *int             `json:"slot_duration,omitempty"`
	BreakDuration          *int             `json:"break_duration,omitempty"`
	MaxAppointmentsPerSlot *int             `json:"max_appointments_per_slot,omitempty"`
	AppointmentType        *AppointmentType `json:"appointment_type,omitempty"`
	LocationType           *LocationType    `json:"location_type,omitempty"`
	Address                string           `json:"address,omitempty"`
	RoomNumber             string           `json:"room_number,omitempty"`
	VirtualLink            string           `json:"virtual_link,omitempty"`
	BaseFee                *float64         `json:"base_fee,omitempty"`
	Currency               *string          `json:"currency,omitempty"`
	InsuranceAccepted      *bool            `json:"insurance_accepted,omitempty"`
	SpecialRequirements    []string         `json:"special_requirements,omitempty"`
}

// WeeklyPattern maps each weekday to its ordered slot definitions,
// indexed by time.Weekday. JSON uses day-name keys.
type WeeklyPattern [7][]SlotDefinition

// MarshalJSON encodes the pattern as a day-name keyed object, omitting
// empty days.
func (p WeeklyPattern) MarshalJSON() ([]byte, error) {
	out := make(map[string][]SlotDefinition, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		if len(p[day]) > 0 {
			out[WeekdayName(day)] = p[day]
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a day-name keyed object. Unknown day names are a
// validation error.
func (p *WeeklyPattern) UnmarshalJSON(data []byte) error {
	var raw map[string][]SlotDefinition
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var pattern WeeklyPattern
	for name, defs := range raw {
		day, err := ParseWeekday(name)
		if err != nil {
			return err
		}
		pattern[day] = defs
	}
	*p = pattern
	return nil
}

// TemplateDefaults is the fallback applied to template slot definitions
// that omit a field.
type TemplateDefaults struct {
	SlotDuration           int             `json:"slot_duration"`
	BreakDuration          int             `json:"break_duration"`
	MaxAppointmentsPerSlot int             `json:"max_appointments_per_slot"`
	AppointmentType        AppointmentType `json:"appointment_type"`
	LocationType           LocationType    `json:"location_type"`
	BaseFee                float64         `json:"base_fee"`
	Currency               string          `json:"currency"`
	InsuranceAccepted      bool            `json:"insurance_accepted"`
}

// AvailabilityTemplate is a named, reusable weekly pattern of slot
// definitions.
type AvailabilityTemplate struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	ProviderID      string           `json:"provider_id"`
	WeeklyPattern   WeeklyPattern    `json:"weekly_pattern"`
	DefaultSettings TemplateDefaults `json:"default_settings"`
	IsFavorite      bool             `json:"is_favorite"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// BulkOperationType represents the kind of bulk slot operation
type BulkOperationType string

const (
	BulkDelete    BulkOperationType = "delete"
	BulkModify    BulkOperationType = "modify"
	BulkCopy      BulkOperationType = "copy"
	BulkMove      BulkOperationType = "move"
	BulkDuplicate BulkOperationType = "duplicate"
)

// BulkOperation is an instruction applied uniformly to a selected set of
// slot ids. Unknown ids are silently skipped.
type BulkOperation struct {
	Type          BulkOperationType  `json:"type"`
	SelectedSlots []string           `json:"selected_slots"`
	TargetDate    *Date              `json:"target_date,omitempty"`
	Modifications *SlotModifications `json:"modifications,omitempty"`
}
