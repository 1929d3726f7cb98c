package domain

import (
	"fmt"
	"strings"
	"time"
)

// ComponentRevision is one reviewer feedback item targeting a single
// content component. It exists only as an outbound request payload; the
// service does not echo it back.
type ComponentRevision struct {
	ComponentType ComponentType    `json:"component_type"`
	Feedback      string           `json:"feedback"`
	Priority      RevisionPriority `json:"priority"`
}

// Normalize trims feedback and applies the default priority.
func (r *ComponentRevision) Normalize() {
	r.Feedback = strings.TrimSpace(r.Feedback)
	if r.Priority == "" {
		r.Priority = PriorityMedium
	}
}

// Validate checks the revision is submittable. Feedback must be
// non-empty after trimming and the component type must be known.
func (r ComponentRevision) Validate() error {
	if !ValidComponentTypes[string(r.ComponentType)] {
		return NewValidationError("component_type", fmt.Sprintf("unknown component type %q", r.ComponentType))
	}
	if strings.TrimSpace(r.Feedback) == "" {
		return NewValidationError("feedback", "Feedback cannot be empty")
	}
	return nil
}

// RevisionRequest is the body of PUT /api/v1/content/{id}/revise. The
// interactive flows submit one revision at a time, but the contract
// carries an array so feedback can be batched in a single call.
type RevisionRequest struct {
	PackageID  string              `json:"package_id"`
	Subject    string              `json:"subject"`
	Unit       string              `json:"unit"`
	Revisions  []ComponentRevision `json:"revisions"`
	ReviewerID string              `json:"reviewer_id,omitempty"`
}

// Validate normalizes every revision and rejects the request before any
// network call when it cannot be submitted.
func (r *RevisionRequest) Validate() error {
	if r.PackageID == "" {
		return NewValidationError("package_id", "Package ID is required")
	}
	if len(r.Revisions) == 0 {
		return NewValidationError("revisions", "At least one revision is required")
	}
	for i := range r.Revisions {
		r.Revisions[i].Normalize()
		if err := r.Revisions[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// RevisionEntry is one record in a package's revision history. Entries
// are append-only from the client's perspective: the service moves them
// from in_progress to completed or failed, observed only by re-fetch.
type RevisionEntry struct {
	RevisionID        string          `json:"revision_id"`
	Timestamp         time.Time       `json:"timestamp"`
	ComponentsRevised []ComponentType `json:"components_revised"`
	FeedbackSummary   string          `json:"feedback_summary"`
	Status            RevisionState   `json:"status"`
	RevisedBy         string          `json:"revised_by,omitempty"`
}
