// Package store keeps a history of calculated reports in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/taxwizard/tax-estimator/internal/calculation"
	"github.com/taxwizard/tax-estimator/internal/domain"
)

// AppName names the directory under the XDG data home.
const AppName = "taxcalc"

// ErrNotFound is returned when no saved result has the requested id.
var ErrNotFound = errors.New("result not found")

var _ calculation.ResultSink = (*ResultStore)(nil)

// ResultStore persists reports and lists them back for the history command.
type ResultStore struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Record is the listing view of one saved report.
type Record struct {
	ID           string
	ReturnID     string
	TaxpayerName string
	TaxYear      int
	FilingStatus domain.FilingStatus
	TaxDue       decimal.Decimal
	RefundAmount decimal.Decimal
	AmountOwed   decimal.Decimal
	CreatedAt    time.Time
}

// DefaultPath returns the database location under the XDG data home.
// On Linux: ~/.local/share/taxcalc/results.db
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, AppName, "results.db")
}

// Open opens or creates the database at path, creating parent directories as needed.
func Open(path string) (*ResultStore, error) {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &ResultStore{db: db, path: path, now: time.Now}

	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *ResultStore) Close() error {
	return s.db.Close()
}

// Path returns the database file location.
func (s *ResultStore) Path() string { return s.path }

func (s *ResultStore) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS results (
		id TEXT PRIMARY KEY,
		return_id TEXT,
		taxpayer_name TEXT,
		tax_year INTEGER NOT NULL,
		filing_status TEXT NOT NULL,
		tax_due TEXT NOT NULL,
		refund_amount TEXT NOT NULL,
		amount_owed TEXT NOT NULL,
		report_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_results_created ON results(created_at);
	CREATE INDEX IF NOT EXISTS idx_results_return ON results(return_id);
	`
	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// SaveResults stores a report under a fresh id. It satisfies calculation.ResultSink.
func (s *ResultStore) SaveResults(ctx context.Context, report *domain.Report) error {
	_, err := s.Save(ctx, report)
	return err
}

// Save stores a report and returns the generated id.
func (s *ResultStore) Save(ctx context.Context, report *domain.Report) (string, error) {
	if report == nil {
		return "", errors.New("cannot save a nil report")
	}
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to serialize report: %w", err)
	}

	id := uuid.NewString()
	res := report.Results
	query := `
	INSERT INTO results (id, return_id, taxpayer_name, tax_year, filing_status, tax_due, refund_amount, amount_owed, report_json, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.ExecContext(ctx, query,
		id,
		report.ReturnID,
		report.TaxpayerName,
		report.TaxYear,
		string(report.FilingStatus),
		res.TaxDue.StringFixed(2),
		res.RefundAmount.StringFixed(2),
		res.AmountOwed.StringFixed(2),
		string(reportJSON),
		s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert result: %w", err)
	}
	return id, nil
}

// List returns the most recent saved results, newest first. A non-positive limit lists all.
func (s *ResultStore) List(ctx context.Context, limit int) ([]Record, error) {
	query := `
	SELECT id, return_id, taxpayer_name, tax_year, filing_status, tax_due, refund_amount, amount_owed, created_at
	FROM results
	ORDER BY created_at DESC, rowid DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec                  Record
			returnID, name       sql.NullString
			status, created      string
			taxDue, refund, owed string
		)
		if err := rows.Scan(&rec.ID, &returnID, &name, &rec.TaxYear, &status, &taxDue, &refund, &owed, &created); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		rec.ReturnID = returnID.String
		rec.TaxpayerName = name.String
		rec.FilingStatus = domain.FilingStatus(status)
		rec.TaxDue = parseAmount(taxDue)
		rec.RefundAmount = parseAmount(refund)
		rec.AmountOwed = parseAmount(owed)
		rec.CreatedAt = parseTimestamp(created)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Get loads the full report saved under id.
func (s *ResultStore) Get(ctx context.Context, id string) (*domain.Report, error) {
	var reportJSON string
	err := s.db.QueryRowContext(ctx, "SELECT report_json FROM results WHERE id = ?", id).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get result: %w", err)
	}

	var report domain.Report
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &report, nil
}

// Delete removes the result saved under id.
func (s *ResultStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM results WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete result: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func parseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
