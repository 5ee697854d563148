/*
validate.go - Advisory input validation

PURPOSE:
  Pure sanity checks over the calculation inputs, producing human-readable
  error and warning lists. Validation is ADVISORY and non-blocking: the
  calculation functions accept anything and clamp internally, and callers
  decide whether to proceed despite reported errors. Validation is never a
  precondition gate.

ERRORS vs WARNINGS:
  Errors flag inputs the calculation will clamp away (negative rates,
  out-of-range percentages). Warnings flag soft issues worth a second look
  (very high weekly hours, RRSP percentage above the usual contribution
  limit) that are still perfectly calculable.
*/
package payroll

import (
	"fmt"

	"github.com/marko9795/boilermaker/tax"
)

// Soft-issue thresholds.
const (
	maxReasonableWeeklyHours = 84.0
	rrspWarningPercent       = 18.0
)

// ValidationReport is the outcome of an advisory validation pass.
type ValidationReport struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// Validate checks one period's inputs and config. It never blocks a
// calculation and never mutates its arguments.
func Validate(in PayPeriodInput, cfg DeductionConfig, ytd tax.YearToDate) ValidationReport {
	var errs, warns []string

	if !in.HourlyRate.IsPositive() {
		errs = append(errs, "hourly rate must be greater than zero")
	}
	if in.StraightHours < 0 {
		errs = append(errs, "straight-time hours cannot be negative")
	}
	if in.TimeAndHalfHours < 0 {
		errs = append(errs, "time-and-a-half hours cannot be negative")
	}
	if in.DoubleTimeHours < 0 {
		errs = append(errs, "double-time hours cannot be negative")
	}
	if in.TravelHours < 0 {
		errs = append(errs, "travel hours cannot be negative")
	}
	if in.TravelRate.IsNegative() {
		errs = append(errs, "travel rate cannot be negative")
	}
	if in.ShiftPremium.IsNegative() {
		errs = append(errs, "shift premium cannot be negative")
	}
	if in.PerDiemRate.IsNegative() {
		errs = append(errs, "per-diem rate cannot be negative")
	}
	if in.PerDiemDays < 0 {
		errs = append(errs, "per-diem days cannot be negative")
	}

	if cfg.UnionDuesPercent < 0 || cfg.UnionDuesPercent > 100 {
		errs = append(errs, "union dues percentage must be between 0 and 100")
	}
	if cfg.RRSPPercent < 0 || cfg.RRSPPercent > 100 {
		errs = append(errs, "RRSP percentage must be between 0 and 100")
	}
	if cfg.OtherDeductions.IsNegative() {
		errs = append(errs, "other deductions cannot be negative")
	}

	if ytd.Pensionable.IsNegative() || ytd.Insurable.IsNegative() ||
		ytd.CPP1Paid.IsNegative() || ytd.CPP2Paid.IsNegative() || ytd.EIPaid.IsNegative() {
		errs = append(errs, "year-to-date totals cannot be negative")
	}

	if total := in.totalHoursWorked() + in.TravelHours; total > maxReasonableWeeklyHours {
		warns = append(warns, fmt.Sprintf(
			"total hours (%.1f) exceed %.0f for one period; verify the timesheet", total, maxReasonableWeeklyHours))
	}
	if cfg.RRSPPercent > rrspWarningPercent {
		warns = append(warns, fmt.Sprintf(
			"RRSP percentage (%.1f%%) exceeds the usual %.0f%% contribution room", cfg.RRSPPercent, rrspWarningPercent))
	}

	return ValidationReport{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warns,
	}
}
