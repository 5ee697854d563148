/*
Package sqlite provides the SQLite-backed state keeper around the pure
calculation engines.

PURPOSE:
  The engines are stateless: year-to-date accumulators and calculation
  history are the CALLER's responsibility. This package is that caller-side
  store - it owns employees, per-year YTD accumulators, committed pay
  periods, and saved rigging analyses. Nothing here leaks back into the
  engines; they only ever see explicit parameter values.

KEY TABLES:
  employees:         crew records (trade class, province, default rate)
  ytd_accumulators:  one row per employee per tax year, advanced only when
                     a period is committed
  pay_periods:       append-only history of committed periods (input and
                     result stored as JSON, key figures as columns)
  rigging_analyses:  saved lift plans with their full analysis

ATOMIC COMMIT:
  CommitPayPeriod inserts the period row and advances the YTD row in one
  database transaction, so the accumulators can never drift from the
  period history.

CONCURRENCY:
  sync.RWMutex over a WAL-mode database, matching the single-writer model
  SQLite provides.

USAGE:
  store, err := sqlite.New("./data/boilermaker.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/marko9795/boilermaker/money"
	"github.com/marko9795/boilermaker/tax"
)

// Sentinel errors, used with errors.Is.
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrDuplicatePeriod  = errors.New("pay period already committed")
)

// Store implements the caller-side persistence over SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a store at the given path. Use ":memory:" for tests.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		trade_class TEXT,
		province TEXT NOT NULL DEFAULT 'AB',
		hourly_rate TEXT NOT NULL DEFAULT '0',
		created_at TEXT NOT NULL
	);

	-- One row per employee per tax year; advanced only by CommitPayPeriod.
	CREATE TABLE IF NOT EXISTS ytd_accumulators (
		employee_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		pensionable TEXT NOT NULL,
		insurable TEXT NOT NULL,
		cpp1_paid TEXT NOT NULL,
		cpp2_paid TEXT NOT NULL,
		ei_paid TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (employee_id, year)
	);

	-- Append-only history of committed pay periods.
	CREATE TABLE IF NOT EXISTS pay_periods (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		pay_date TEXT NOT NULL,
		gross_total TEXT NOT NULL,
		deductions_total TEXT NOT NULL,
		net_pay TEXT NOT NULL,
		input_json TEXT NOT NULL,
		result_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		UNIQUE (employee_id, pay_date)
	);

	CREATE INDEX IF NOT EXISTS idx_pay_periods_employee
		ON pay_periods(employee_id, pay_date);

	-- Saved lift plans.
	CREATE TABLE IF NOT EXISTS rigging_analyses (
		id TEXT PRIMARY KEY,
		description TEXT,
		input_json TEXT NOT NULL,
		result_json TEXT NOT NULL,
		overall_safe BOOLEAN NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_rigging_created
		ON rigging_analyses(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// Employee is a crew record.
type Employee struct {
	ID         string
	Name       string
	TradeClass string
	Province   tax.Province
	HourlyRate money.Money
	CreatedAt  time.Time
}

// SaveEmployee inserts or replaces an employee record.
func (s *Store) SaveEmployee(ctx context.Context, e Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO employees (id, name, trade_class, province, hourly_rate, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.TradeClass, string(e.Province), e.HourlyRate.Value.String(),
		created.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}
	return nil
}

// GetEmployee fetches one employee by ID.
func (s *Store) GetEmployee(ctx context.Context, id string) (*Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, trade_class, province, hourly_rate, created_at
		FROM employees WHERE id = ?`, id)

	e, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ListEmployees returns all employees ordered by name.
func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, trade_class, province, hourly_rate, created_at
		FROM employees ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(r rowScanner) (*Employee, error) {
	var e Employee
	var province, rate, created string
	if err := r.Scan(&e.ID, &e.Name, &e.TradeClass, &province, &rate, &created); err != nil {
		return nil, err
	}
	e.Province = tax.Province(province)
	e.HourlyRate = money.MustParse(rate)
	e.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &e, nil
}

// =============================================================================
// YTD ACCUMULATORS
// =============================================================================

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// GetYTD returns the accumulators for an employee and tax year. A missing
// row is a fresh year: all zeros, no error.
func (s *Store) GetYTD(ctx context.Context, employeeID string, year int) (tax.YearToDate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getYTD(ctx, s.db, employeeID, year)
}

func (s *Store) getYTD(ctx context.Context, db querier, employeeID string, year int) (tax.YearToDate, error) {
	row := db.QueryRowContext(ctx, `
		SELECT pensionable, insurable, cpp1_paid, cpp2_paid, ei_paid
		FROM ytd_accumulators WHERE employee_id = ? AND year = ?`,
		employeeID, year)

	var pensionable, insurable, cpp1, cpp2, ei string
	err := row.Scan(&pensionable, &insurable, &cpp1, &cpp2, &ei)
	if errors.Is(err, sql.ErrNoRows) {
		return tax.YearToDate{}, nil
	}
	if err != nil {
		return tax.YearToDate{}, fmt.Errorf("failed to load YTD: %w", err)
	}

	return tax.YearToDate{
		Pensionable: money.MustParse(pensionable),
		Insurable:   money.MustParse(insurable),
		CPP1Paid:    money.MustParse(cpp1),
		CPP2Paid:    money.MustParse(cpp2),
		EIPaid:      money.MustParse(ei),
	}, nil
}

func (s *Store) saveYTD(ctx context.Context, db querier, employeeID string, year int, y tax.YearToDate) error {
	_, err := db.ExecContext(ctx, `
		INSERT OR REPLACE INTO ytd_accumulators
		(employee_id, year, pensionable, insurable, cpp1_paid, cpp2_paid, ei_paid, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		employeeID, year,
		y.Pensionable.Value.String(), y.Insurable.Value.String(),
		y.CPP1Paid.Value.String(), y.CPP2Paid.Value.String(), y.EIPaid.Value.String(),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save YTD: %w", err)
	}
	return nil
}

// SaveYTD overwrites the accumulators for an employee and year. Intended
// for corrections and data loads; normal advancement goes through
// CommitPayPeriod.
func (s *Store) SaveYTD(ctx context.Context, employeeID string, year int, y tax.YearToDate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveYTD(ctx, s.db, employeeID, year, y)
}

// =============================================================================
// PAY PERIODS
// =============================================================================

// PayPeriodRecord is one committed pay period.
type PayPeriodRecord struct {
	ID         string
	EmployeeID string
	PayDate    time.Time

	GrossTotal      money.Money
	DeductionsTotal money.Money
	NetPay          money.Money

	InputJSON  string
	ResultJSON string
	CreatedAt  time.Time
}

// CommitPayPeriod records a committed period and advances the year's
// accumulators atomically.
func (s *Store) CommitPayPeriod(ctx context.Context, rec PayPeriodRecord, nextYTD tax.YearToDate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	_, err = sqlTx.ExecContext(ctx, `
		INSERT INTO pay_periods
		(id, employee_id, pay_date, gross_total, deductions_total, net_pay, input_json, result_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.EmployeeID, rec.PayDate.UTC().Format("2006-01-02"),
		rec.GrossTotal.Value.String(), rec.DeductionsTotal.Value.String(), rec.NetPay.Value.String(),
		rec.InputJSON, rec.ResultJSON,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicatePeriod
		}
		return fmt.Errorf("failed to insert pay period: %w", err)
	}

	if err := s.saveYTD(ctx, sqlTx, rec.EmployeeID, rec.PayDate.Year(), nextYTD); err != nil {
		return err
	}
	return sqlTx.Commit()
}

// ListPayPeriods returns an employee's committed periods, newest first.
func (s *Store) ListPayPeriods(ctx context.Context, employeeID string) ([]PayPeriodRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, employee_id, pay_date, gross_total, deductions_total, net_pay,
		       input_json, result_json, created_at
		FROM pay_periods WHERE employee_id = ?
		ORDER BY pay_date DESC`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay periods: %w", err)
	}
	defer rows.Close()

	var out []PayPeriodRecord
	for rows.Next() {
		var rec PayPeriodRecord
		var payDate, gross, deductions, net, created string
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &payDate, &gross, &deductions, &net,
			&rec.InputJSON, &rec.ResultJSON, &created); err != nil {
			return nil, err
		}
		rec.PayDate, _ = time.Parse("2006-01-02", payDate)
		rec.GrossTotal = money.MustParse(gross)
		rec.DeductionsTotal = money.MustParse(deductions)
		rec.NetPay = money.MustParse(net)
		rec.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// =============================================================================
// RIGGING ANALYSES
// =============================================================================

// RiggingRecord is one saved lift plan.
type RiggingRecord struct {
	ID          string
	Description string
	InputJSON   string
	ResultJSON  string
	OverallSafe bool
	CreatedAt   time.Time
}

// SaveRiggingAnalysis stores a lift plan with its full analysis.
func (s *Store) SaveRiggingAnalysis(ctx context.Context, rec RiggingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO rigging_analyses
		(id, description, input_json, result_json, overall_safe, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Description, rec.InputJSON, rec.ResultJSON, rec.OverallSafe,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save rigging analysis: %w", err)
	}
	return nil
}

// ListRiggingAnalyses returns saved lift plans, newest first.
func (s *Store) ListRiggingAnalyses(ctx context.Context, limit int) ([]RiggingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, description, input_json, result_json, overall_safe, created_at
		FROM rigging_analyses ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list rigging analyses: %w", err)
	}
	defer rows.Close()

	var out []RiggingRecord
	for rows.Next() {
		var rec RiggingRecord
		var created string
		if err := rows.Scan(&rec.ID, &rec.Description, &rec.InputJSON, &rec.ResultJSON,
			&rec.OverallSafe, &created); err != nil {
			return nil, err
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
