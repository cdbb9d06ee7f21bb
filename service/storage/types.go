package storage

import (
	"context"
)

// Service persists completed discovery runs as SQLite snapshots.
type Service interface {
	SaveRun(ctx context.Context, input SaveRunInput) (int64, error)
	ListRunFindings(runID int64) ([]FindingRow, error)
	GetRunSummary(runID int64) (*RunSummary, error)
	Close() error
}

// SaveRunInput is the payload saved for one completed run.
type SaveRunInput struct {
	RunUUID        string
	Version        string
	DurationSec    int64
	TotalRequested int
	TotalAssessed  int
	TotalResources int
	TotalEndpoints int
	Findings       []FindingRow
	Failures       []FailureRow
}

// FindingRow is a denormalized finding as stored in the snapshot.
type FindingRow struct {
	SubscriptionID   string
	SubscriptionName string
	TenantID         string
	TenantName       string
	ResourceGroup    string
	ResourceKind     string
	ResourceName     string
	Endpoint         string
	Label            string
}

// FailureRow is one recorded failure as stored in the snapshot.
type FailureRow struct {
	SubscriptionID string
	ResourceKind   string
	Message        string
}

// RunSummary provides compact run metadata.
type RunSummary struct {
	RunID          int64
	RunUUID        string
	Version        string
	TotalRequested int
	TotalAssessed  int
	TotalResources int
	TotalEndpoints int
	FailureCount   int
}
