package availability

import (
	"fmt"
	"sort"
	"sync"

	"github.com/healthfirst/provider-portal/pkg/interfaces"
	"github.com/healthfirst/provider-portal/pkg/types"
)

// MemoryStore is a mutex-guarded in-memory implementation of the
// availability store. The portal runs on in-memory data; a SQL adapter
// can replace this behind the same interface. Reads hand out clones so
// callers can never mutate stored state through a returned pointer.
type MemoryStore struct {
	mu        sync.RWMutex
	providers map[string]*types.Provider
	slots     map[string]*types.TimeSlot
	templates map[string]*types.AvailabilityTemplate
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		providers: make(map[string]*types.Provider),
		slots:     make(map[string]*types.TimeSlot),
		templates: make(map[string]*types.AvailabilityTemplate),
	}
}

var _ interfaces.AvailabilityStore = (*MemoryStore)(nil)

// CreateProvider stores a new provider
func (ms *MemoryStore) CreateProvider(provider *types.Provider) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, exists := ms.providers[provider.ID]; exists {
		return types.NewConflictError(types.ErrCodeAlreadyExists,
			fmt.Sprintf("provider %s already exists", provider.ID), nil)
	}
	copied := *provider
	ms.providers[provider.ID] = &copied
	return nil
}

// GetProviderByID retrieves a provider by id
func (ms *MemoryStore) GetProviderByID(id string) (*types.Provider, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	provider, ok := ms.providers[id]
	if !ok {
		return nil, types.NewNotFoundError(types.ErrCodeNotFound, fmt.Sprintf("provider %s not found", id))
	}
	copied := *provider
	return &copied, nil
}

// UpdateProvider replaces a stored provider
func (ms *MemoryStore) UpdateProvider(provider *types.Provider) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, ok := ms.providers[provider.ID]; !ok {
		return types.NewNotFoundError(types.ErrCodeNotFound, fmt.Sprintf("provider %s not found", provider.ID))
	}
	copied := *provider
	ms.providers[provider.ID] = &copied
	return nil
}

// GetProviders lists all providers ordered by name
func (ms *MemoryStore) GetProviders() ([]*types.Provider, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	providers := make([]*types.Provider, 0, len(ms.providers))
	for _, provider := range ms.providers {
		copied := *provider
		providers = append(providers, &copied)
	}
	sort.Slice(providers, func(i, j int) bool { return providers[i].Name < providers[j].Name })
	return providers, nil
}

// CreateSlot stores a new slot
func (ms *MemoryStore) CreateSlot(slot *types.TimeSlot) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, exists := ms.slots[slot.ID]; exists {
		return types.NewConflictError(types.ErrCodeAlreadyExists,
			fmt.Sprintf("slot %s already exists", slot.ID), nil)
	}
	ms.slots[slot.ID] = slot.Clone()
	return nil
}

// GetSlotByID retrieves a slot by id
func (ms *MemoryStore) GetSlotByID(id string) (*types.TimeSlot, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	slot, ok := ms.slots[id]
	if !ok {
		return nil, types.NewNotFoundError(types.ErrCodeNotFound, fmt.Sprintf("slot %s not found", id))
	}
	return slot.Clone(), nil
}

// UpdateSlot replaces a stored slot
func (ms *MemoryStore) UpdateSlot(slot *types.TimeSlot) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, ok := ms.slots[slot.ID]; !ok {
		return types.NewNotFoundError(types.ErrCodeNotFound, fmt.Sprintf("slot %s not found", slot.ID))
	}
	ms.slots[slot.ID] = slot.Clone()
	return nil
}

// DeleteSlot removes a slot by id
func (ms *MemoryStore) DeleteSlot(id string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, ok := ms.slots[id]; !ok {
		return types.NewNotFoundError(types.ErrCodeNotFound, fmt.Sprintf("slot %s not found", id))
	}
	delete(ms.slots, id)
	return nil
}

// GetSlots lists a provider's slots, optionally restricted to one date,
// ordered by date then start time for deterministic output.
func (ms *MemoryStore) GetSlots(providerID string, date *types.Date) ([]*types.TimeSlot, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	var slots []*types.TimeSlot
	for _, slot := range ms.slots {
		if slot.ProviderID != providerID {
			continue
		}
		if date != nil && !slot.Date.Equal(*date) {
			continue
		}
		slots = append(slots, slot.Clone())
	}
	sort.Slice(slots, func(i, j int) bool {
		if !slots[i].Date.Equal(slots[j].Date) {
			return slots[i].Date.Before(slots[j].Date)
		}
		if slots[i].StartTime != slots[j].StartTime {
			return slots[i].StartTime < slots[j].StartTime
		}
		return slots[i].ID < slots[j].ID
	})
	return slots, nil
}

// ReplaceSlots swaps a provider's entire slot collection for the given
// one. Bulk operations produce a new snapshot; this installs it.
func (ms *MemoryStore) ReplaceSlots(providerID string, slots []*types.TimeSlot) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	for _, slot := range slots {
		if slot.ProviderID != providerID {
			return types.NewValidationError(types.ErrCodeProviderMismatch,
				fmt.Sprintf("slot %s belongs to provider %s", slot.ID, slot.ProviderID), nil)
		}
	}

	for id, slot := range ms.slots {
		if slot.ProviderID == providerID {
			delete(ms.slots, id)
		}
	}
	for _, slot := range slots {
		ms.slots[slot.ID] = slot.Clone()
	}
	return nil
}

// CreateTemplate stores a new template
func (ms *MemoryStore) CreateTemplate(template *types.AvailabilityTemplate) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, exists := ms.templates[template.ID]; exists {
		return types.NewConflictError(types.ErrCodeAlreadyExists,
			fmt.Sprintf("template %s already exists", template.ID), nil)
	}
	copied := *template
	ms.templates[template.ID] = &copied
	return nil
}

// GetTemplateByID retrieves a template by id
func (ms *MemoryStore) GetTemplateByID(id string) (*types.AvailabilityTemplate, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	template, ok := ms.templates[id]
	if !ok {
		return nil, types.NewNotFoundError(types.ErrCodeNotFound, fmt.Sprintf("template %s not found", id))
	}
	copied := *template
	return &copied, nil
}

// GetTemplates lists a provider's templates ordered by name
func (ms *MemoryStore) GetTemplates(providerID string) ([]*types.AvailabilityTemplate, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	var templates []*types.AvailabilityTemplate
	for _, template := range ms.templates {
		if template.ProviderID != providerID {
			continue
		}
		copied := *template
		templates = append(templates, &copied)
	}
	sort.Slice(templates, func(i, j int) bool { return templates[i].Name < templates[j].Name })
	return templates, nil
}

// UpdateTemplate replaces a stored template
func (ms *MemoryStore) UpdateTemplate(template *types.AvailabilityTemplate) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, ok := ms.templates[template.ID]; !ok {
		return types.NewNotFoundError(types.ErrCodeNotFound, fmt.Sprintf("template %s not found", template.ID))
	}
	copied := *template
	ms.templates[template.ID] = &copied
	return nil
}

// DeleteTemplate removes a template by id
func (ms *MemoryStore) DeleteTemplate(id string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, ok := ms.templates[id]; !ok {
		return types.NewNotFoundError(types.ErrCodeNotFound, fmt.Sprintf("template %s not found", id))
	}
	delete(ms.templates, id)
	return nil
}
