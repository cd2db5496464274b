package availability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/healthfirst/provider-portal/pkg/config"
	"github.com/healthfirst/provider-portal/pkg/interfaces"
	"github.com/healthfirst/provider-portal/pkg/logger"
	"github.com/healthfirst/provider-portal/pkg/monitoring"
	"github.com/healthfirst/provider-portal/pkg/types"
)

const serviceName = "availability"

// Service implements the AvailabilityService interface. Mutations always
// flow back through conflict re-detection: every create, update, delete,
// generation, expansion and bulk operation ends with a full scan of the
// provider's current slot collection.
type Service struct {
	config        *config.Config
	logger        *logger.Logger
	store         interfaces.AvailabilityStore
	metrics       *monitoring.MetricsCollector
	tracing       *monitoring.TracingManager
	health        *monitoring.HealthManager
	alerts        *ConflictAlertManager
	server        *http.Server
	metricsServer *http.Server
}

var _ interfaces.AvailabilityService = (*Service)(nil)

// New creates a new availability service backed by the in-memory store
func New(cfg *config.Config, log *logger.Logger) (*Service, error) {
	store := NewMemoryStore()

	if cfg.Seed.Enabled {
		if err := seedMockData(store, &cfg.Seed, log); err != nil {
			return nil, fmt.Errorf("failed to seed mock data: %w", err)
		}
	}

	tracing, err := monitoring.NewTracingManager(&monitoring.TracingConfig{
		Enabled:        cfg.Tracing.Enabled,
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		OTLPEndpoint:   cfg.Tracing.OTLPEndpoint,
		Environment:    cfg.Tracing.Environment,
		SamplingRate:   cfg.Tracing.SamplingRate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	var metrics *monitoring.MetricsCollector
	if cfg.Monitoring.Enabled {
		metrics = monitoring.NewMetricsCollector(serviceName)
	}

	health := monitoring.NewHealthManager(serviceName, "1.0.0")
	health.RegisterChecker("store", monitoring.HealthCheckerFunc(func(ctx context.Context) monitoring.HealthCheck {
		if _, err := store.GetProviders(); err != nil {
			return monitoring.HealthCheck{Status: monitoring.HealthStatusUnhealthy, Message: err.Error()}
		}
		return monitoring.HealthCheck{Status: monitoring.HealthStatusHealthy}
	}))

	return &Service{
		config:  cfg,
		logger:  log,
		store:   store,
		metrics: metrics,
		tracing: tracing,
		health:  health,
		alerts:  NewConflictAlertManager(NewLogNotifier(log), log),
	}, nil
}

// CreateProvider creates a new provider
func (s *Service) CreateProvider(provider *types.Provider) (*types.Provider, error) {
	if provider.Name == "" {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, "provider name is required", nil)
	}

	if provider.ID == "" {
		provider.ID = uuid.New().String()
	}
	provider.CreatedAt = time.Now()
	provider.UpdatedAt = time.Now()

	if err := s.store.CreateProvider(provider); err != nil {
		return nil, err
	}

	s.logger.WithProviderID(provider.ID).Infof("Created provider %s", provider.Name)
	return provider, nil
}

// GetProvider retrieves a provider by id
func (s *Service) GetProvider(providerID string) (*types.Provider, error) {
	return s.store.GetProviderByID(providerID)
}

// UpdateProvider updates an existing provider
func (s *Service) UpdateProvider(provider *types.Provider) error {
	provider.UpdatedAt = time.Now()
	if err := s.store.UpdateProvider(provider); err != nil {
		return err
	}
	s.logger.WithProviderID(provider.ID).Info("Updated provider")
	return nil
}

// GetProviders lists all providers
func (s *Service) GetProviders() ([]*types.Provider, error) {
	return s.store.GetProviders()
}

// CreateSlot validates and stores a new slot, then re-runs conflict
// detection over the provider's collection
func (s *Service) CreateSlot(slot *types.TimeSlot) (*types.TimeSlot, []*types.Conflict, error) {
	if err := slot.Validate(); err != nil {
		return nil, nil, err
	}
	if _, err := s.store.GetProviderByID(slot.ProviderID); err != nil {
		return nil, nil, err
	}

	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}
	if slot.Timezone == "" {
		slot.Timezone = defaultTimezone
	}
	slot.CreatedAt = time.Now()
	slot.UpdatedAt = time.Now()

	if err := s.store.CreateSlot(slot); err != nil {
		return nil, nil, err
	}

	conflicts, err := s.rescanConflicts(slot.ProviderID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.WithProviderID(slot.ProviderID).Infof("Created slot %s (%s %s-%s), %s",
		slot.ID, slot.Date, slot.StartTime, slot.EndTime, FormatConflictSummary(conflicts))
	return slot, conflicts, nil
}

// UpdateSlot applies a partial-field update to a slot and re-runs
// conflict detection
func (s *Service) UpdateSlot(slotID string, mods *types.SlotModifications) ([]*types.Conflict, error) {
	slot, err := s.store.GetSlotByID(slotID)
	if err != nil {
		return nil, err
	}

	applyModifications(slot, mods)
	slot.UpdatedAt = time.Now()
	if err := slot.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.UpdateSlot(slot); err != nil {
		return nil, err
	}

	return s.rescanConflicts(slot.ProviderID)
}

// DeleteSlot removes a slot and re-runs conflict detection
func (s *Service) DeleteSlot(slotID string) ([]*types.Conflict, error) {
	slot, err := s.store.GetSlotByID(slotID)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteSlot(slotID); err != nil {
		return nil, err
	}
	return s.rescanConflicts(slot.ProviderID)
}

// GetSlots lists a provider's slots, optionally restricted to one date
func (s *Service) GetSlots(providerID string, date *types.Date) ([]*types.TimeSlot, error) {
	return s.store.GetSlots(providerID, date)
}

// GenerateSlots seeds the store with generated slots for a provider and
// date, then re-runs conflict detection
func (s *Service) GenerateSlots(providerID string, date types.Date) ([]*types.TimeSlot, []*types.Conflict, error) {
	if _, err := s.store.GetProviderByID(providerID); err != nil {
		return nil, nil, err
	}

	slots := GenerateSlots(date, providerID)
	for _, slot := range slots {
		if err := s.store.CreateSlot(slot); err != nil {
			return nil, nil, err
		}
	}
	if s.metrics != nil {
		s.metrics.RecordSlotsGenerated("generator", len(slots))
	}

	conflicts, err := s.rescanConflicts(providerID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.WithProviderID(providerID).Infof("Generated %d slots for %s", len(slots), date)
	return slots, conflicts, nil
}

// GetConflicts re-derives the conflict set for a provider's slots
func (s *Service) GetConflicts(providerID string, date *types.Date) ([]*types.Conflict, error) {
	slots, err := s.store.GetSlots(providerID, date)
	if err != nil {
		return nil, err
	}
	return s.detect(slots)
}

// ValidateWorkingHours reports whether a slot falls inside its provider's
// working hours
func (s *Service) ValidateWorkingHours(slot *types.TimeSlot) (bool, error) {
	if err := slot.Validate(); err != nil {
		return false, err
	}
	provider, err := s.store.GetProviderByID(slot.ProviderID)
	if err != nil {
		return false, err
	}
	return IsWithinWorkingHours(slot, provider), nil
}

// CreateTemplate stores a new availability template
func (s *Service) CreateTemplate(template *types.AvailabilityTemplate) (*types.AvailabilityTemplate, error) {
	if template.Name == "" {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, "template name is required", nil)
	}
	if _, err := s.store.GetProviderByID(template.ProviderID); err != nil {
		return nil, err
	}

	if template.ID == "" {
		template.ID = uuid.New().String()
	}
	template.CreatedAt = time.Now()
	template.UpdatedAt = time.Now()

	if err := s.store.CreateTemplate(template); err != nil {
		return nil, err
	}

	s.logger.WithProviderID(template.ProviderID).Infof("Created template %q", template.Name)
	return template, nil
}

// GetTemplate retrieves a template by id
func (s *Service) GetTemplate(templateID string) (*types.AvailabilityTemplate, error) {
	return s.store.GetTemplateByID(templateID)
}

// GetTemplates lists a provider's templates
func (s *Service) GetTemplates(providerID string) ([]*types.AvailabilityTemplate, error) {
	return s.store.GetTemplates(providerID)
}

// UpdateTemplate updates an existing template
func (s *Service) UpdateTemplate(template *types.AvailabilityTemplate) error {
	template.UpdatedAt = time.Now()
	return s.store.UpdateTemplate(template)
}

// DeleteTemplate removes a template by id
func (s *Service) DeleteTemplate(templateID string) error {
	return s.store.DeleteTemplate(templateID)
}

// ApplyTemplate expands a template across the 4-week horizon, stores the
// resulting slots and re-runs conflict detection
func (s *Service) ApplyTemplate(templateID string, startDate types.Date) ([]*types.TimeSlot, []*types.Conflict, error) {
	template, err := s.store.GetTemplateByID(templateID)
	if err != nil {
		return nil, nil, err
	}

	slots, err := ExpandTemplate(template, startDate, template.ProviderID)
	if s.metrics != nil {
		s.metrics.RecordTemplateExpansion(err == nil)
	}
	if err != nil {
		return nil, nil, err
	}

	for _, slot := range slots {
		if err := s.store.CreateSlot(slot); err != nil {
			return nil, nil, err
		}
	}
	if s.metrics != nil {
		s.metrics.RecordSlotsGenerated("template", len(slots))
	}

	conflicts, err := s.rescanConflicts(template.ProviderID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.WithProviderID(template.ProviderID).Infof("Applied template %q from %s: %d slots, %s",
		template.Name, startDate, len(slots), FormatConflictSummary(conflicts))
	return slots, conflicts, nil
}

// ApplyBulkOperation applies one operation to the provider's selected
// slots, installs the new snapshot and re-runs conflict detection
func (s *Service) ApplyBulkOperation(providerID string, op *types.BulkOperation) ([]*types.TimeSlot, []*types.Conflict, error) {
	current, err := s.store.GetSlots(providerID, nil)
	if err != nil {
		return nil, nil, err
	}

	updated, err := ApplyBulkOperation(op, current)
	if s.metrics != nil {
		s.metrics.RecordBulkOperation(string(op.Type), err == nil)
	}
	if err != nil {
		return nil, nil, err
	}

	if err := s.store.ReplaceSlots(providerID, updated); err != nil {
		return nil, nil, err
	}

	conflicts, err := s.rescanConflicts(providerID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.WithProviderID(providerID).Infof("Bulk %s over %d selected slots: %d slots remain, %s",
		op.Type, len(op.SelectedSlots), len(updated), FormatConflictSummary(conflicts))
	return updated, conflicts, nil
}

// rescanConflicts re-derives the conflict set for a provider's full slot
// collection and pushes high-severity findings through the alert manager
func (s *Service) rescanConflicts(providerID string) ([]*types.Conflict, error) {
	slots, err := s.store.GetSlots(providerID, nil)
	if err != nil {
		return nil, err
	}
	conflicts, err := s.detect(slots)
	if err != nil {
		return nil, err
	}
	s.alerts.NotifyConflicts(providerID, conflicts)
	return conflicts, nil
}

// detect runs the detector and records scan metrics
func (s *Service) detect(slots []*types.TimeSlot) ([]*types.Conflict, error) {
	start := time.Now()
	conflicts, err := DetectConflicts(slots)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordError("validation", "conflict_detector")
		}
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordConflictScan(time.Since(start))
		for _, conflict := range conflicts {
			s.metrics.RecordConflict(string(conflict.Type), string(conflict.Severity))
		}
	}
	return conflicts, nil
}

// Start starts the availability service HTTP server
func (s *Service) Start(addr string) error {
	router := mux.NewRouter()
	s.setupRoutes(router)

	var handler http.Handler = router
	if s.metrics != nil {
		middleware := monitoring.NewMonitoringMiddleware(s.metrics, s.tracing)
		handler = middleware.HTTPMiddleware(router)

		s.metricsServer = s.metrics.StartMetricsServer(
			s.config.Monitoring.PrometheusPort, s.config.Monitoring.MetricsPath)
	}

	s.server = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.config.Server.IdleTimeout) * time.Second,
	}

	s.logger.Infof("Starting Availability Service on %s", addr)
	return s.server.ListenAndServe()
}

// Stop stops the availability service
func (s *Service) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.metricsServer != nil {
		_ = s.metricsServer.Shutdown(ctx)
	}
	if err := s.tracing.Shutdown(ctx); err != nil {
		s.logger.Errorf("Error shutting down tracing: %v", err)
	}
	if s.server != nil {
		s.logger.Info("Stopping Availability Service")
		return s.server.Shutdown(ctx)
	}
	return nil
}
