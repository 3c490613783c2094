package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Singhutkarsh-tech/pdfpayroll/internal/calculator"
	"github.com/Singhutkarsh-tech/pdfpayroll/internal/config"
	"github.com/Singhutkarsh-tech/pdfpayroll/internal/report"
	"github.com/Singhutkarsh-tech/pdfpayroll/internal/storage"
	"github.com/Singhutkarsh-tech/pdfpayroll/internal/validator"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler wires storage, validation, and report dependencies into HTTP handlers.
type Handler struct {
	storage   storage.Storage
	validator *validator.Validator
	reports   *report.Generator
	meta      config.APISettings

	clock func() time.Time

	mu             sync.RWMutex
	rulesUpdatedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(store storage.Storage, v *validator.Validator, reports *report.Generator, meta config.APISettings, opts ...HandlerOption) *Handler {
	h := &Handler{
		storage:   store,
		validator: v,
		reports:   reports,
		meta:      meta,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.rulesUpdatedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Version:   h.meta.Version,
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetStates(w http.ResponseWriter, r *http.Request) {
	_ = r
	loaded, err := h.storage.States()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := statesResponse{
		SupportedStates: h.validator.AllowedStates(),
		LoadedStates:    loaded,
		UpdatedAt:       h.currentRulesUpdatedAt(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetStateRules(w http.ResponseWriter, r *http.Request) {
	state := r.PathValue("state")

	rules, ok := h.stateRulesFor(w, state)
	if !ok {
		return
	}

	resp := stateRulesResponse{
		State:     strings.ToLower(strings.TrimSpace(state)),
		Rules:     rules,
		UpdatedAt: h.currentRulesUpdatedAt(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePutStateRules(w http.ResponseWriter, r *http.Request) {
	state := r.PathValue("state")

	var rules calculator.StateRules
	if err := json.NewDecoder(r.Body).Decode(&rules); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	if strings.TrimSpace(rules.StateName) == "" {
		rules.StateName = state
	}

	if err := h.storage.SetStateRules(state, rules); err != nil {
		if errors.Is(err, storage.ErrInvalidRules) {
			writeError(w, http.StatusBadRequest, "Invalid state rules", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	h.markRulesUpdated()

	stored, err := h.storage.GetStateRules(state)
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := stateRulesResponse{
		State:     strings.ToLower(strings.TrimSpace(state)),
		Rules:     stored,
		UpdatedAt: h.currentRulesUpdatedAt(),
		Message:   "State rules updated successfully",
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req validator.EmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	emp, err := h.validator.ValidateEmployee(req)
	if err != nil {
		h.writeEmployeeError(w, err)
		return
	}

	rules, ok := h.stateRulesFor(w, emp.Location)
	if !ok {
		return
	}

	start := time.Now()
	breakdown := calculator.New(rules).NetSalary(emp.CTC, emp.BaseSalary, emp.Benefits)
	elapsed := time.Since(start)

	resp := calculateResponse{
		EmployeeID:        emp.EmployeeID,
		State:             emp.Location,
		SalaryBreakdown:   breakdown,
		CalculationTimeMs: elapsed.Milliseconds(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	var req validator.EmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	emp, err := h.validator.ValidateEmployee(req)
	if err != nil {
		h.writeEmployeeError(w, err)
		return
	}

	if emp.EmployeeID == "" {
		writeError(w, http.StatusBadRequest, "Invalid request", "employee_id is required for report generation")
		return
	}

	rules, ok := h.stateRulesFor(w, emp.Location)
	if !ok {
		return
	}

	breakdown := calculator.New(rules).NetSalary(emp.CTC, emp.BaseSalary, emp.Benefits)

	path, err := h.reports.WriteJSON(emp.EmployeeID, breakdown)
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := reportResponse{
		Message:    "Report generated successfully",
		ReportPath: path,
		Summary:    h.reports.Summarize(emp.EmployeeID, breakdown),
	}
	writeJSON(w, http.StatusCreated, resp)
}

// writeEmployeeError maps validation failures onto HTTP statuses.
func (h *Handler) writeEmployeeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, validator.ErrMissingField):
		writeError(w, http.StatusBadRequest, "Invalid request", err.Error())
	case errors.Is(err, validator.ErrUnknownState):
		suggestion := fmt.Sprintf("Supported states: %s", strings.Join(h.validator.AllowedStates(), ", "))
		writeError(w, http.StatusUnprocessableEntity, "Unsupported state", err.Error(), suggestion)
	case errors.Is(err, validator.ErrInvalidSalary):
		suggestion := "Keep monthly base salary plus benefits within one twelfth of the CTC"
		writeError(w, http.StatusUnprocessableEntity, "Invalid salary components", err.Error(), suggestion)
	default:
		writeInternalError(w, err)
	}
}

// stateRulesFor loads the rules for a state and writes the error response on
// failure. The boolean reports whether the rules are usable.
func (h *Handler) stateRulesFor(w http.ResponseWriter, state string) (calculator.StateRules, bool) {
	rules, err := h.storage.GetStateRules(state)
	if err != nil {
		if errors.Is(err, storage.ErrStateNotFound) {
			suggestion := fmt.Sprintf("Upload rules via PUT /api/states/%s or run the seed command", strings.ToLower(strings.TrimSpace(state)))
			writeError(w, http.StatusNotFound, "State rules not found", err.Error(), suggestion)
			return calculator.StateRules{}, false
		}
		writeInternalError(w, err)
		return calculator.StateRules{}, false
	}
	return rules, true
}

func (h *Handler) currentRulesUpdatedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rulesUpdatedAt
}

func (h *Handler) markRulesUpdated() {
	h.mu.Lock()
	h.rulesUpdatedAt = h.clock()
	h.mu.Unlock()
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type healthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

type statesResponse struct {
	SupportedStates []string  `json:"supportedStates"`
	LoadedStates    []string  `json:"loadedStates"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type stateRulesResponse struct {
	State     string                `json:"state"`
	Rules     calculator.StateRules `json:"rules"`
	UpdatedAt time.Time             `json:"updatedAt"`
	Message   string                `json:"message,omitempty"`
}

type calculateResponse struct {
	EmployeeID        string                     `json:"employeeId"`
	State             string                     `json:"state"`
	SalaryBreakdown   calculator.SalaryBreakdown `json:"salaryBreakdown"`
	CalculationTimeMs int64                      `json:"calculationTimeMs"`
}

type reportResponse struct {
	Message    string         `json:"message"`
	ReportPath string         `json:"reportPath"`
	Summary    report.Summary `json:"summary"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
