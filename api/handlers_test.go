package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marko9795/boilermaker/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewRouter(NewHandler(store))
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func weeklyInput() PayPeriodDTO {
	return PayPeriodDTO{
		HourlyRate:    60,
		StraightHours: 40,
		PayDate:       "2025-08-15",
		Frequency:     "weekly",
		Province:      "AB",
	}
}

// =============================================================================
// PAYROLL ENDPOINTS
// =============================================================================

func TestPreviewPayroll(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/payroll/preview", PreviewRequest{
		Input: weeklyInput(),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	result := decode[PayrollResultDTO](t, rec)
	assert.Equal(t, 2400.0, result.Gross.Total)
	assert.True(t, result.Validation.Valid)
	assert.Greater(t, result.Deductions.Total, 0.0)
	assert.Equal(t, 2400.0, result.NextYearToDate.Pensionable)
	// Net identity holds through the float boundary.
	assert.InDelta(t, result.Gross.Total-result.Deductions.Total, result.Net, 0.01)
}

func TestPreviewPayroll_ClientSuppliedYTDRespected(t *testing.T) {
	// A client at the EI ceiling sees no further premium.
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/payroll/preview", PreviewRequest{
		Input:      weeklyInput(),
		YearToDate: YearToDateDTO{Pensionable: 81200, Insurable: 65700},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	result := decode[PayrollResultDTO](t, rec)
	assert.Equal(t, 0.0, result.Deductions.EI)
	assert.Equal(t, 0.0, result.Deductions.CPP1)
}

func TestPreviewPayroll_BadBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/payroll/preview", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPreviewPayroll_BadPayDate(t *testing.T) {
	router := newTestRouter(t)

	in := weeklyInput()
	in.PayDate = "Aug 15"
	rec := doJSON(t, router, http.MethodPost, "/api/payroll/preview", PreviewRequest{Input: in})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidatePayroll_ReportsWithoutBlocking(t *testing.T) {
	router := newTestRouter(t)

	in := weeklyInput()
	in.HourlyRate = 0
	in.StraightHours = -5
	rec := doJSON(t, router, http.MethodPost, "/api/payroll/validate", PreviewRequest{Input: in})
	require.Equal(t, http.StatusOK, rec.Code)

	report := decode[ValidationDTO](t, rec)
	assert.False(t, report.Valid)
	assert.Len(t, report.Errors, 2)
}

// =============================================================================
// EMPLOYEE ENDPOINTS
// =============================================================================

func createEmployee(t *testing.T, router http.Handler) {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/employees", CreateEmployeeRequest{
		ID:         "emp-1",
		Name:       "Rhea Kovacs",
		TradeClass: "boilermaker-journeyman",
		Province:   "AB",
		HourlyRate: 62.50,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestEmployeeLifecycle(t *testing.T) {
	router := newTestRouter(t)
	createEmployee(t, router)

	rec := doJSON(t, router, http.MethodGet, "/api/employees/emp-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	emp := decode[EmployeeDTO](t, rec)
	assert.Equal(t, "Rhea Kovacs", emp.Name)
	assert.Equal(t, 62.50, emp.HourlyRate)

	rec = doJSON(t, router, http.MethodGet, "/api/employees", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]EmployeeDTO](t, rec)
	assert.Len(t, list, 1)
}

func TestCreateEmployee_RequiresIDAndName(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/employees", CreateEmployeeRequest{Name: "No ID"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetEmployee_NotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/employees/ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// =============================================================================
// PERIOD COMMIT FLOW
// =============================================================================

func TestCommitPeriod_AdvancesStoredYTD(t *testing.T) {
	// GIVEN: An employee with a fresh year
	// WHEN: Committing one period and reading YTD back
	// THEN: The stored accumulators carry the period's wage

	router := newTestRouter(t)
	createEmployee(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/employees/emp-1/periods", CommitPeriodRequest{
		Input: weeklyInput(),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	result := decode[PayrollResultDTO](t, rec)
	assert.Equal(t, 2400.0, result.NextYearToDate.Pensionable)

	rec = doJSON(t, router, http.MethodGet, "/api/employees/emp-1/ytd?year=2025", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	ytd := decode[YearToDateDTO](t, rec)
	assert.Equal(t, 2400.0, ytd.Pensionable)
	assert.Equal(t, 2400.0, ytd.Insurable)

	rec = doJSON(t, router, http.MethodGet, "/api/employees/emp-1/periods", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	periods := decode[[]PayPeriodRecordDTO](t, rec)
	require.Len(t, periods, 1)
	assert.Equal(t, "2025-08-15", periods[0].PayDate)
}

func TestCommitPeriod_SecondPeriodSeesFirstYTD(t *testing.T) {
	// Two consecutive commits: the second period's CPP reflects the
	// first's accumulated pensionable earnings.
	router := newTestRouter(t)
	createEmployee(t, router)

	first := weeklyInput()
	rec := doJSON(t, router, http.MethodPost, "/api/employees/emp-1/periods", CommitPeriodRequest{Input: first})
	require.Equal(t, http.StatusCreated, rec.Code)
	r1 := decode[PayrollResultDTO](t, rec)

	second := weeklyInput()
	second.PayDate = "2025-08-22"
	rec = doJSON(t, router, http.MethodPost, "/api/employees/emp-1/periods", CommitPeriodRequest{Input: second})
	require.Equal(t, http.StatusCreated, rec.Code)
	r2 := decode[PayrollResultDTO](t, rec)

	assert.Equal(t, 4800.0, r2.NextYearToDate.Pensionable)
	assert.InDelta(t, r1.Deductions.CPP1, r2.Deductions.CPP1, 0.01)
}

func TestCommitPeriod_DuplicatePayDateConflicts(t *testing.T) {
	router := newTestRouter(t)
	createEmployee(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/employees/emp-1/periods", CommitPeriodRequest{Input: weeklyInput()})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/employees/emp-1/periods", CommitPeriodRequest{Input: weeklyInput()})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCommitPeriod_UnknownEmployee(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/employees/ghost/periods", CommitPeriodRequest{Input: weeklyInput()})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCommitPeriod_EmployeeDefaultsFillGaps(t *testing.T) {
	// An input without rate or province picks up the employee record's.
	router := newTestRouter(t)
	createEmployee(t, router)

	in := weeklyInput()
	in.HourlyRate = 0
	in.Province = ""
	rec := doJSON(t, router, http.MethodPost, "/api/employees/emp-1/periods", CommitPeriodRequest{Input: in})
	require.Equal(t, http.StatusCreated, rec.Code)

	result := decode[PayrollResultDTO](t, rec)
	// 62.50 x 40 from the employee record
	assert.Equal(t, 2500.0, result.Gross.Total)
	assert.Greater(t, result.Deductions.ProvincialTax, 0.0)
}

// =============================================================================
// RIGGING ENDPOINTS
// =============================================================================

func safeLift() RiggingRequest {
	return RiggingRequest{
		Hitch:            "vertical",
		LoadWeightKg:     1000,
		LegCount:         2,
		IncludedAngleDeg: 60,
		SpacingMM:        2000,
		SlingWLLKg:       2000,
	}
}

func TestAnalyzeRigging(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/rigging/analyze", safeLift())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	result := decode[RiggingResultDTO](t, rec)
	require.NotNil(t, result.AngleFactor)
	assert.InDelta(t, 1.1547, *result.AngleFactor, 0.001)
	assert.True(t, result.OverallSafe)
	assert.True(t, result.Balanced)
	assert.Len(t, result.LegShares, 2)
}

func TestAnalyzeRigging_SaveAndList(t *testing.T) {
	router := newTestRouter(t)

	req := safeLift()
	req.Save = true
	req.Description = "exchanger bundle pull"
	rec := doJSON(t, router, http.MethodPost, "/api/rigging/analyze", req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/rigging/analyses", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]RiggingRecordDTO](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "exchanger bundle pull", list[0].Description)
	assert.True(t, list[0].OverallSafe)
}

func TestAnalyzeRigging_WithoutSaveLeavesNoRecord(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/rigging/analyze", safeLift())
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/rigging/analyses", nil)
	list := decode[[]RiggingRecordDTO](t, rec)
	assert.Empty(t, list)
}

func TestValidateRigging_WarnsOnBadGeometry(t *testing.T) {
	router := newTestRouter(t)

	req := safeLift()
	req.IncludedAngleDeg = 160
	rec := doJSON(t, router, http.MethodPost, "/api/rigging/validate", req)
	require.Equal(t, http.StatusOK, rec.Code)

	report := decode[ValidationDTO](t, rec)
	assert.True(t, report.Valid) // advisory only
	assert.NotEmpty(t, report.Warnings)
}

// =============================================================================
// TABLES ENDPOINT
// =============================================================================

func TestGetTables(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/tables", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var tables struct {
		Year int `json:"year"`
		CPP  struct {
			YMPE float64 `json:"ympe"`
		} `json:"cpp"`
		Federal struct {
			Schedules []struct {
				EffectiveFrom string `json:"effective_from"`
			} `json:"schedules"`
		} `json:"federal"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tables))
	assert.Equal(t, 2025, tables.Year)
	assert.Equal(t, 71300.0, tables.CPP.YMPE)
	assert.Len(t, tables.Federal.Schedules, 2)
}
