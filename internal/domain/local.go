package domain

import "time"

// ReviewDraft is locally persisted, unsent review input for one
// package. Drafts survive restarts and are cleared when the matching
// status update succeeds. They never leave the local database.
type ReviewDraft struct {
	PackageID    string
	Subject      string
	Unit         string
	TargetStatus PackageStatus
	Notes        string
	UpdatedAt    time.Time
}

// ReviewAction is one locally logged review decision, kept as an
// append-only audit trail of what this reviewer did from this machine.
type ReviewAction struct {
	ID         string
	PackageID  string
	Action     string // "status_update", "revision_request", "delete"
	OldStatus  PackageStatus
	NewStatus  PackageStatus
	ReviewerID string
	Notes      string
	CreatedAt  time.Time
}
