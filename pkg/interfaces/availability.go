package interfaces

import (
	"github.com/healthfirst/provider-portal/pkg/types"
)

// AvailabilityService defines the interface for provider availability
// management. Every mutation re-derives the provider's conflict set from
// the current slot collection and returns it alongside the result.
type AvailabilityService interface {
	// Provider management
	CreateProvider(provider *types.Provider) (*types.Provider, error)
	GetProvider(providerID string) (*types.Provider, error)
	UpdateProvider(provider *types.Provider) error
	GetProviders() ([]*types.Provider, error)

	// Slot management
	CreateSlot(slot *types.TimeSlot) (*types.TimeSlot, []*types.Conflict, error)
	UpdateSlot(slotID string, mods *types.SlotModifications) ([]*types.Conflict, error)
	DeleteSlot(slotID string) ([]*types.Conflict, error)
	GetSlots(providerID string, date *types.Date) ([]*types.TimeSlot, error)
	GenerateSlots(providerID string, date types.Date) ([]*types.TimeSlot, []*types.Conflict, error)

	// Conflict detection
	GetConflicts(providerID string, date *types.Date) ([]*types.Conflict, error)

	// Working hours validation
	ValidateWorkingHours(slot *types.TimeSlot) (bool, error)

	// Template management
	CreateTemplate(template *types.AvailabilityTemplate) (*types.AvailabilityTemplate, error)
	GetTemplate(templateID string) (*types.AvailabilityTemplate, error)
	GetTemplates(providerID string) ([]*types.AvailabilityTemplate, error)
	UpdateTemplate(template *types.AvailabilityTemplate) error
	DeleteTemplate(templateID string) error
	ApplyTemplate(templateID string, startDate types.Date) ([]*types.TimeSlot, []*types.Conflict, error)

	// Bulk operations
	ApplyBulkOperation(providerID string, op *types.BulkOperation) ([]*types.TimeSlot, []*types.Conflict, error)

	// Service management
	Start(addr string) error
	Stop() error
}

// AvailabilityStore defines the interface for availability data access.
// The portal ships with an in-memory implementation; a persistent
// adapter can replace it behind the same seam.
type AvailabilityStore interface {
	// Providers
	CreateProvider(provider *types.Provider) error
	GetProviderByID(id string) (*types.Provider, error)
	UpdateProvider(provider *types.Provider) error
	GetProviders() ([]*types.Provider, error)

	// Slots
	CreateSlot(slot *types.TimeSlot) error
	GetSlotByID(id string) (*types.TimeSlot, error)
	UpdateSlot(slot *types.TimeSlot) error
	DeleteSlot(id string) error
	GetSlots(providerID string, date *types.Date) ([]*types.TimeSlot, error)
	ReplaceSlots(providerID string, slots []*types.TimeSlot) error

	// Templates
	CreateTemplate(template *types.AvailabilityTemplate) error
	GetTemplateByID(id string) (*types.AvailabilityTemplate, error)
	GetTemplates(providerID string) ([]*types.AvailabilityTemplate, error)
	UpdateTemplate(template *types.AvailabilityTemplate) error
	DeleteTemplate(id string) error
}

// ConflictNotifier delivers conflict alerts to providers
type ConflictNotifier interface {
	SendConflictAlert(providerID string, conflict *types.Conflict) error
}
