// Package storage writes discovery run snapshots to a SQLite database.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// NewService creates a SQLite-backed snapshot store at dbPath.
func NewService(dbPath string) (Service, error) {
	resolved, err := resolvePath(dbPath)
	if err != nil {
		return nil, err
	}
	if dir := filepath.Dir(resolved); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schemaV1); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &service{db: db, dbPath: resolved}, nil
}

type service struct {
	db     *sql.DB
	dbPath string
}

func resolvePath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", fmt.Errorf("db path is required")
	}
	if strings.HasPrefix(p, "~/") || p == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home dir: %w", err)
		}
		if p == "~" {
			p = home
		} else {
			p = filepath.Join(home, p[2:])
		}
	}
	return filepath.Clean(p), nil
}

func (s *service) SaveRun(ctx context.Context, input SaveRunInput) (int64, error) {
	if input.RunUUID == "" {
		input.RunUUID = fmt.Sprintf("run-%d", time.Now().UnixNano())
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (
			run_uuid, run_duration, cli_version,
			subs_requested, subs_assessed, total_resources, total_endpoints
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`, input.RunUUID, input.DurationSec, input.Version,
		input.TotalRequested, input.TotalAssessed, input.TotalResources, input.TotalEndpoints)
	if err != nil {
		return 0, err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if err = s.saveFindingsTx(ctx, tx, runID, input.Findings); err != nil {
		return 0, err
	}
	if err = s.saveFailuresTx(ctx, tx, runID, input.Failures); err != nil {
		return 0, err
	}

	err = tx.Commit()
	if err != nil {
		return 0, err
	}
	return runID, nil
}

func (s *service) saveFindingsTx(ctx context.Context, tx *sql.Tx, runID int64, findings []FindingRow) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO findings (
			run_id, subscription_id, subscription_name, tenant_id, tenant_name,
			resource_group, resource_kind, resource_name, endpoint, label
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, f := range findings {
		if _, err := stmt.ExecContext(ctx, runID,
			f.SubscriptionID, f.SubscriptionName, f.TenantID, f.TenantName,
			f.ResourceGroup, f.ResourceKind, f.ResourceName, f.Endpoint, f.Label); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) saveFailuresTx(ctx context.Context, tx *sql.Tx, runID int64, failures []FailureRow) error {
	if len(failures) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO failures (run_id, subscription_id, resource_kind, message)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, f := range failures {
		if _, err := stmt.ExecContext(ctx, runID, f.SubscriptionID, f.ResourceKind, f.Message); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) ListRunFindings(runID int64) ([]FindingRow, error) {
	rows, err := s.db.Query(`
		SELECT subscription_id, subscription_name, tenant_id, tenant_name,
		       resource_group, resource_kind, resource_name, endpoint, label
		FROM findings
		WHERE run_id = ?
		ORDER BY finding_id
	`, runID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []FindingRow
	for rows.Next() {
		var f FindingRow
		if err := rows.Scan(&f.SubscriptionID, &f.SubscriptionName, &f.TenantID, &f.TenantName,
			&f.ResourceGroup, &f.ResourceKind, &f.ResourceName, &f.Endpoint, &f.Label); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *service) GetRunSummary(runID int64) (*RunSummary, error) {
	var out RunSummary
	err := s.db.QueryRow(`
		SELECT r.run_id, r.run_uuid, COALESCE(r.cli_version, ''),
		       r.subs_requested, r.subs_assessed, r.total_resources, r.total_endpoints,
		       (SELECT COUNT(*) FROM failures WHERE run_id = r.run_id)
		FROM runs r
		WHERE r.run_id = ?
	`, runID).Scan(&out.RunID, &out.RunUUID, &out.Version,
		&out.TotalRequested, &out.TotalAssessed, &out.TotalResources, &out.TotalEndpoints,
		&out.FailureCount)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *service) Close() error {
	return s.db.Close()
}
