package domain

import "time"

// GenerationMetadata describes how a package was produced by the
// generation service.
type GenerationMetadata struct {
	CreatedAt        time.Time `json:"created_at"`
	GeneratedBy      string    `json:"generated_by"`
	GenerationTimeMs int64     `json:"generation_time_ms"`
	CoherenceScore   float64   `json:"coherence_score"`
	ValidationPassed bool      `json:"validation_passed"`
	RetryCount       int       `json:"retry_count"`
}

// ContentPackage is one bundle of generated educational material for a
// subject/unit/skill/subskill. The generation service owns every field;
// the client only ever holds a cached copy invalidated by re-fetch.
type ContentPackage struct {
	ID       string `json:"id"`
	Subject  string `json:"subject"`
	Unit     string `json:"unit"`
	Skill    string `json:"skill"`
	Subskill string `json:"subskill"`
	Grade    string `json:"grade,omitempty"`

	Status    PackageStatus `json:"status"`
	CreatedBy string        `json:"created_by,omitempty"`

	// Content holds the embedded component payloads keyed by component
	// type ("reading", "visual", "audio", "practice"). Payload shape is
	// component-specific and opaque to the client beyond display.
	Content map[ComponentType]map[string]any `json:"content,omitempty"`

	GenerationMetadata *GenerationMetadata `json:"generation_metadata,omitempty"`

	ReviewStatus string       `json:"review_status,omitempty"`
	ReviewedBy   string       `json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time   `json:"reviewed_at,omitempty"`
	ReviewNotes  []ReviewNote `json:"review_notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasComponent reports whether the package carries embedded content for
// the given component type.
func (p *ContentPackage) HasComponent(ct ComponentType) bool {
	if p.Content == nil {
		return false
	}
	_, ok := p.Content[ct]
	return ok
}

// CoherenceScore returns the coherence score, or 0 when generation
// metadata is absent.
func (p *ContentPackage) CoherenceScore() float64 {
	if p.GenerationMetadata == nil {
		return 0
	}
	return p.GenerationMetadata.CoherenceScore
}

// DisplayID returns a short identifier for list rendering. Package IDs
// from the service look like "pkg_1718822400"; anything longer than 14
// runes is truncated.
func (p *ContentPackage) DisplayID() string {
	if len(p.ID) > 14 {
		return p.ID[:13] + "…"
	}
	return p.ID
}

// ReviewNote is one immutable entry in a package's review history,
// appended each time a status update succeeds.
type ReviewNote struct {
	Note       string        `json:"note"`
	Status     PackageStatus `json:"status"`
	Timestamp  time.Time     `json:"timestamp"`
	ReviewerID string        `json:"reviewer_id"`
}

// ReviewInfo is the review-side view of a package: its current status
// plus the accumulated review and revision history.
type ReviewInfo struct {
	PackageID     string          `json:"package_id"`
	Status        PackageStatus   `json:"status"`
	ReviewedBy    string          `json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time      `json:"reviewed_at,omitempty"`
	ReviewHistory []ReviewNote    `json:"review_history"`
	Revisions     []RevisionEntry `json:"revisions"`
}
