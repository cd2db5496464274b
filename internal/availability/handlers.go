package availability

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/healthfirst/provider-portal/pkg/types"
)

// setupRoutes configures all HTTP routes for the availability service
func (s *Service) setupRoutes(router *mux.Router) {
	api := router.PathPrefix("/api/v1").Subrouter()

	// Provider routes
	api.HandleFunc("/providers", s.handleCreateProvider).Methods("POST")
	api.HandleFunc("/providers", s.handleGetProviders).Methods("GET")
	api.HandleFunc("/providers/{providerId}", s.handleGetProvider).Methods("GET")
	api.HandleFunc("/providers/{providerId}", s.handleUpdateProvider).Methods("PUT")

	// Slot routes
	api.HandleFunc("/providers/{providerId}/slots", s.handleGetSlots).Methods("GET")
	api.HandleFunc("/providers/{providerId}/slots", s.handleCreateSlot).Methods("POST")
	api.HandleFunc("/providers/{providerId}/slots/generate", s.handleGenerateSlots).Methods("POST")
	api.HandleFunc("/providers/{providerId}/slots/validate", s.handleValidateSlot).Methods("POST")
	api.HandleFunc("/providers/{providerId}/slots/bulk", s.handleBulkOperation).Methods("POST")
	api.HandleFunc("/providers/{providerId}/conflicts", s.handleGetConflicts).Methods("GET")
	api.HandleFunc("/slots/{id}", s.handleUpdateSlot).Methods("PUT")
	api.HandleFunc("/slots/{id}", s.handleDeleteSlot).Methods("DELETE")

	// Template routes
	api.HandleFunc("/providers/{providerId}/templates", s.handleCreateTemplate).Methods("POST")
	api.HandleFunc("/providers/{providerId}/templates", s.handleGetTemplates).Methods("GET")
	api.HandleFunc("/templates/{id}", s.handleGetTemplate).Methods("GET")
	api.HandleFunc("/templates/{id}", s.handleUpdateTemplate).Methods("PUT")
	api.HandleFunc("/templates/{id}", s.handleDeleteTemplate).Methods("DELETE")
	api.HandleFunc("/templates/{id}/apply", s.handleApplyTemplate).Methods("POST")

	// Health check
	router.HandleFunc(s.config.Monitoring.HealthPath, s.health.HTTPHandler()).Methods("GET")
}

func (s *Service) handleCreateProvider(w http.ResponseWriter, r *http.Request) {
	var provider types.Provider
	if err := json.NewDecoder(r.Body).Decode(&provider); err != nil {
		s.writeErrorResponse(w, types.NewValidationError(types.ErrCodeInvalidInput, "invalid request body", map[string]interface{}{"cause": err.Error()}))
		return
	}

	created, err := s.CreateProvider(&provider)
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusCreated, created)
}

func (s *Service) handleGetProviders(w http.ResponseWriter, r *http.Request) {
	providers, err := s.GetProviders()
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"providers": providers,
		"count":     len(providers),
	})
}

func (s *Service) handleGetProvider(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]

	provider, err := s.GetProvider(providerID)
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, provider)
}

func (s *Service) handleUpdateProvider(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]

	var provider types.Provider
	if err := json.NewDecoder(r.Body).Decode(&provider); err != nil {
		s.writeErrorResponse(w, types.NewValidationError(types.ErrCodeInvalidInput, "invalid request body", map[string]interface{}{"cause": err.Error()}))
		return
	}
	provider.ID = providerID

	if err := s.UpdateProvider(&provider); err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, &provider)
}

func (s *Service) handleGetSlots(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]

	date, err := parseDateParam(r)
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}

	slots, err := s.GetSlots(providerID, date)
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"slots": slots,
		"count": len(slots),
	})
}

func (s *Service) handleCreateSlot(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]

	var slot types.TimeSlot
	if err := json.NewDecoder(r.Body).Decode(&slot); err != nil {
		s.writeErrorResponse(w, types.NewValidationError(types.ErrCodeInvalidInput, "invalid request body", map[string]interface{}{"cause": err.Error()}))
		return
	}
	slot.ProviderID = providerID

	created, conflicts, err := s.CreateSlot(&slot)
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusCreated, map[string]interface{}{
		"slot":      created,
		"conflicts": conflicts,
	})
}

func (s *Service) handleGenerateSlots(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]

	date, err := parseDateParam(r)
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	if date == nil {
		s.writeErrorResponse(w, types.NewValidationError(types.ErrCodeInvalidInput, "date query parameter is required", nil))
		return
	}

	slots, conflicts, err := s.GenerateSlots(providerID, *date)
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusCreated, map[string]interface{}{
		"slots":     slots,
		"conflicts": conflicts,
	})
}

func (s *Service) handleValidateSlot(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]

	var slot types.TimeSlot
	if err := json.NewDecoder(r.Body).Decode(&slot); err != nil {
		s.writeErrorResponse(w, types.NewValidationError(types.ErrCodeInvalidInput, "invalid request body", map[string]interface{}{"cause": err.Error()}))
		return
	}
	slot.ProviderID = providerID

	withinHours, err := s.ValidateWorkingHours(&slot)
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"within_working_hours": withinHours,
	})
}

func (s *Service) handleBulkOperation(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]

	var op types.BulkOperation
	if err := json.NewDecoder(r.Body).Decode(&op); err != nil {
		s.writeErrorResponse(w, types.NewValidationError(types.ErrCodeInvalidInput, "invalid request body", map[string]interface{}{"cause": err.Error()}))
		return
	}

	slots, conflicts, err := s.ApplyBulkOperation(providerID, &op)
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"slots":     slots,
		"conflicts": conflicts,
	})
}

func (s *Service) handleGetConflicts(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]

	date, err := parseDateParam(r)
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}

	conflicts, err := s.GetConflicts(providerID, date)
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"conflicts": conflicts,
		"count":     len(conflicts),
	})
}

func (s *Service) handleUpdateSlot(w http.ResponseWriter, r *http.Request) {
	slotID := mux.Vars(r)["id"]

	var mods types.SlotModifications
	if err := json.NewDecoder(r.Body).Decode(&mods); err != nil {
		s.writeErrorResponse(w, types.NewValidationError(types.ErrCodeInvalidInput, "invalid request body", map[string]interface{}{"cause": err.Error()}))
		return
	}

	conflicts, err := s.UpdateSlot(slotID, &mods)
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"conflicts": conflicts,
	})
}

func (s *Service) handleDeleteSlot(w http.ResponseWriter, r *http.Request) {
	slotID := mux.Vars(r)["id"]

	conflicts, err := s.DeleteSlot(slotID)
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"conflicts": conflicts,
	})
}

func (s *Service) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]

	var template types.AvailabilityTemplate
	if err := json.NewDecoder(r.Body).Decode(&template); err != nil {
		s.writeErrorResponse(w, types.NewValidationError(types.ErrCodeInvalidInput, "invalid request body", map[string]interface{}{"cause": err.Error()}))
		return
	}
	template.ProviderID = providerID

	created, err := s.CreateTemplate(&template)
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusCreated, created)
}

func (s *Service) handleGetTemplates(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]

	templates, err := s.GetTemplates(providerID)
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"templates": templates,
		"count":     len(templates),
	})
}

func (s *Service) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	templateID := mux.Vars(r)["id"]

	template, err := s.GetTemplate(templateID)
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, template)
}

func (s *Service) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	templateID := mux.Vars(r)["id"]

	var template types.AvailabilityTemplate
	if err := json.NewDecoder(r.Body).Decode(&template); err != nil {
		s.writeErrorResponse(w, types.NewValidationError(types.ErrCodeInvalidInput, "invalid request body", map[string]interface{}{"cause": err.Error()}))
		return
	}
	template.ID = templateID

	if err := s.UpdateTemplate(&template); err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, &template)
}

func (s *Service) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	templateID := mux.Vars(r)["id"]

	if err := s.DeleteTemplate(templateID); err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Service) handleApplyTemplate(w http.ResponseWriter, r *http.Request) {
	templateID := mux.Vars(r)["id"]

	var req struct {
		StartDate types.Date `json:"start_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, types.NewValidationError(types.ErrCodeInvalidInput, "invalid request body", map[string]interface{}{"cause": err.Error()}))
		return
	}

	slots, conflicts, err := s.ApplyTemplate(templateID, req.StartDate)
	if err != nil {
		s.writeErrorResponse(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusCreated, map[string]interface{}{
		"slots":     slots,
		"conflicts": conflicts,
	})
}

// parseDateParam reads the optional ?date=YYYY-MM-DD query parameter
func parseDateParam(r *http.Request) (*types.Date, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return nil, nil
	}
	date, err := types.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

func (s *Service) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Errorf("Failed to encode response: %v", err)
	}
}

func (s *Service) writeErrorResponse(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	response := map[string]interface{}{"error": err.Error()}

	var portalErr *types.PortalError
	if errors.As(err, &portalErr) {
		switch portalErr.Type {
		case types.ErrorTypeValidation:
			statusCode = http.StatusBadRequest
		case types.ErrorTypeNotFound:
			statusCode = http.StatusNotFound
		case types.ErrorTypeConflict:
			statusCode = http.StatusConflict
		}
		response = map[string]interface{}{
			"error": map[string]interface{}{
				"type":    portalErr.Type,
				"code":    portalErr.Code,
				"message": portalErr.Message,
				"details": portalErr.Details,
			},
		}
	}

	s.writeJSONResponse(w, statusCode, response)
}
