/*
handlers.go - HTTP API handlers for the payroll and rigging engines

PURPOSE:
  Exposes the calculation engines via REST. Handles HTTP request/response,
  JSON conversion at the boundary, and the caller-side state flow (load
  YTD, calculate, commit, advance) that the pure engines deliberately do
  not own.

ENDPOINTS:
  Payroll:
    POST /api/payroll/preview     Stateless calculation (client supplies YTD)
    POST /api/payroll/validate    Advisory validation report

  Employees:
    GET  /api/employees                   List employees
    POST /api/employees                   Create employee
    GET  /api/employees/{id}              Get employee
    GET  /api/employees/{id}/ytd          Accumulators for a tax year
    GET  /api/employees/{id}/periods      Committed period history
    POST /api/employees/{id}/periods      Commit a period against stored YTD

  Rigging:
    POST /api/rigging/analyze     Full lift analysis (optionally saved)
    POST /api/rigging/validate    Advisory geometry report
    GET  /api/rigging/analyses    Saved lift plans

  Tables:
    GET  /api/tables              Active statutory rate tables

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: malformed body, bad dates
  - 404: unknown employee
  - 409: period already committed for that pay date
  - 500: storage failures

SEE ALSO:
  - dto.go: request/response structures and conversions
  - server.go: router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/marko9795/boilermaker/factory"
	"github.com/marko9795/boilermaker/money"
	"github.com/marko9795/boilermaker/payroll"
	"github.com/marko9795/boilermaker/rigging"
	"github.com/marko9795/boilermaker/store/sqlite"
	"github.com/marko9795/boilermaker/tax"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store        *sqlite.Store
	Payroll      payroll.Calculator
	Rigging      rigging.Calculator
	Tables       tax.Tables
	TableFactory *factory.TableFactory
}

// NewHandler creates a handler over the given store with the built-in
// 2025 tables and default rigging config.
func NewHandler(store *sqlite.Store) *Handler {
	tables := tax.Tables2025()
	return &Handler{
		Store:        store,
		Payroll:      payroll.NewCalculator(tax.NewCalculator(tables)),
		Rigging:      rigging.NewCalculator(rigging.DefaultConfig()),
		Tables:       tables,
		TableFactory: factory.NewTableFactory(),
	}
}

// =============================================================================
// PAYROLL
// =============================================================================

// PreviewPayroll runs a stateless calculation from a client-supplied YTD.
func (h *Handler) PreviewPayroll(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	input, err := req.Input.toDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid pay period input", err)
		return
	}
	cfg := req.Config.toDomain()
	ytd := req.YearToDate.toDomain()

	result := h.Payroll.Calculate(input, cfg, ytd)
	validation := payroll.Validate(input, cfg, ytd)
	next := ytd.Next(result.Gross.TaxableWage, result.Deductions.Statutory)

	writeJSON(w, http.StatusOK, resultToDTO(result, validation, next))
}

// ValidatePayroll returns the advisory validation report only.
func (h *Handler) ValidatePayroll(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	input, err := req.Input.toDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid pay period input", err)
		return
	}

	report := payroll.Validate(input, req.Config.toDomain(), req.YearToDate.toDomain())
	writeJSON(w, http.StatusOK, validationToDTO(report))
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// ListEmployees returns all employees.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, 0, len(employees))
	for _, e := range employees {
		dtos = append(dtos, employeeToDTO(e))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateEmployee creates or replaces an employee.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.ID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "id and name are required", nil)
		return
	}

	province := tax.Province(req.Province)
	if province == "" {
		province = tax.ProvinceAlberta
	}

	emp := sqlite.Employee{
		ID:         req.ID,
		Name:       req.Name,
		TradeClass: req.TradeClass,
		Province:   province,
		HourlyRate: money.FromFloat(req.HourlyRate),
	}
	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, employeeToDTO(emp))
}

// GetEmployee fetches one employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	emp, err := h.Store.GetEmployee(r.Context(), id)
	if errors.Is(err, sqlite.ErrEmployeeNotFound) {
		writeError(w, http.StatusNotFound, "employee not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load employee", err)
		return
	}
	writeJSON(w, http.StatusOK, employeeToDTO(*emp))
}

// GetYTD returns the stored accumulators for a tax year (default: current).
func (h *Handler) GetYTD(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	year := time.Now().UTC().Year()
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid year", err)
			return
		}
		year = parsed
	}

	if _, err := h.Store.GetEmployee(r.Context(), id); errors.Is(err, sqlite.ErrEmployeeNotFound) {
		writeError(w, http.StatusNotFound, "employee not found", nil)
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load employee", err)
		return
	}

	ytd, err := h.Store.GetYTD(r.Context(), id, year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load YTD", err)
		return
	}
	writeJSON(w, http.StatusOK, ytdToDTO(ytd))
}

// CommitPeriod calculates a period against the stored YTD, persists the
// result, and advances the accumulators atomically.
func (h *Handler) CommitPeriod(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if errors.Is(err, sqlite.ErrEmployeeNotFound) {
		writeError(w, http.StatusNotFound, "employee not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load employee", err)
		return
	}

	var req CommitPeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	input, err := req.Input.toDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid pay period input", err)
		return
	}
	// Employee defaults fill gaps in the request.
	if input.Province == "" {
		input.Province = emp.Province
	}
	if input.HourlyRate.IsZero() {
		input.HourlyRate = emp.HourlyRate
	}
	cfg := req.Config.toDomain()

	ytd, err := h.Store.GetYTD(r.Context(), id, input.PayDate.Year())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load YTD", err)
		return
	}

	result := h.Payroll.Calculate(input, cfg, ytd)
	validation := payroll.Validate(input, cfg, ytd)
	next := ytd.Next(result.Gross.TaxableWage, result.Deductions.Statutory)

	inputJSON, _ := json.Marshal(req.Input)
	resultJSON, _ := json.Marshal(resultToDTO(result, validation, next))

	rec := sqlite.PayPeriodRecord{
		ID:              fmt.Sprintf("%s-%s", id, input.PayDate.Format("2006-01-02")),
		EmployeeID:      id,
		PayDate:         input.PayDate,
		GrossTotal:      result.Gross.Total,
		DeductionsTotal: result.Deductions.Total,
		NetPay:          result.Net,
		InputJSON:       string(inputJSON),
		ResultJSON:      string(resultJSON),
	}
	if err := h.Store.CommitPayPeriod(r.Context(), rec, next); err != nil {
		if errors.Is(err, sqlite.ErrDuplicatePeriod) {
			writeError(w, http.StatusConflict, "period already committed for that pay date", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to commit period", err)
		return
	}

	writeJSON(w, http.StatusCreated, resultToDTO(result, validation, next))
}

// ListPeriods returns an employee's committed period history.
func (h *Handler) ListPeriods(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	records, err := h.Store.ListPayPeriods(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list periods", err)
		return
	}

	dtos := make([]PayPeriodRecordDTO, 0, len(records))
	for _, rec := range records {
		dtos = append(dtos, PayPeriodRecordDTO{
			ID:              rec.ID,
			EmployeeID:      rec.EmployeeID,
			PayDate:         rec.PayDate.Format("2006-01-02"),
			GrossTotal:      rec.GrossTotal.Float64(),
			DeductionsTotal: rec.DeductionsTotal.Float64(),
			NetPay:          rec.NetPay.Float64(),
			CreatedAt:       rec.CreatedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// RIGGING
// =============================================================================

// AnalyzeRigging runs the full lift analysis, optionally saving it.
func (h *Handler) AnalyzeRigging(w http.ResponseWriter, r *http.Request) {
	var req RiggingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	result := h.Rigging.Analyze(req.toDomain())
	dto := riggingToDTO(result)

	if req.Save {
		inputJSON, _ := json.Marshal(req)
		resultJSON, _ := json.Marshal(dto)
		rec := sqlite.RiggingRecord{
			ID:          fmt.Sprintf("lift-%d", time.Now().UTC().UnixNano()),
			Description: req.Description,
			InputJSON:   string(inputJSON),
			ResultJSON:  string(resultJSON),
			OverallSafe: result.OverallSafe,
		}
		if err := h.Store.SaveRiggingAnalysis(r.Context(), rec); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to save analysis", err)
			return
		}
	}

	writeJSON(w, http.StatusOK, dto)
}

// ValidateRigging returns the advisory geometry report only.
func (h *Handler) ValidateRigging(w http.ResponseWriter, r *http.Request) {
	var req RiggingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	report := h.Rigging.ValidateGeometry(req.toDomain())
	writeJSON(w, http.StatusOK, ValidationDTO{
		Valid:    report.Valid,
		Errors:   []string{},
		Warnings: orEmpty(report.Warnings),
	})
}

// ListRiggingAnalyses returns saved lift plans.
func (h *Handler) ListRiggingAnalyses(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListRiggingAnalyses(r.Context(), 100)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list analyses", err)
		return
	}

	dtos := make([]RiggingRecordDTO, 0, len(records))
	for _, rec := range records {
		dtos = append(dtos, RiggingRecordDTO{
			ID:          rec.ID,
			Description: rec.Description,
			OverallSafe: rec.OverallSafe,
			CreatedAt:   rec.CreatedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// TABLES
// =============================================================================

// GetTables returns the active statutory rate tables.
func (h *Handler) GetTables(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.TableFactory.ToJSON(h.Tables))
}

// =============================================================================
// HELPERS
// =============================================================================

func employeeToDTO(e sqlite.Employee) EmployeeDTO {
	dto := EmployeeDTO{
		ID:         e.ID,
		Name:       e.Name,
		TradeClass: e.TradeClass,
		Province:   string(e.Province),
		HourlyRate: e.HourlyRate.Float64(),
	}
	if !e.CreatedAt.IsZero() {
		dto.CreatedAt = e.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
