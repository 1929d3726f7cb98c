package domain

type PackageStatus string

const (
	StatusDraft         PackageStatus = "draft"
	StatusGenerating    PackageStatus = "generating"
	StatusGenerated     PackageStatus = "generated"
	StatusUnderReview   PackageStatus = "under_review"
	StatusApproved      PackageStatus = "approved"
	StatusRejected      PackageStatus = "rejected"
	StatusNeedsRevision PackageStatus = "needs_revision"
	StatusPublished     PackageStatus = "published"
)

// ValidPackageStatuses is the canonical set of accepted package status strings.
var ValidPackageStatuses = map[string]bool{
	"draft": true, "generating": true, "generated": true,
	"under_review": true, "approved": true, "rejected": true,
	"needs_revision": true, "published": true,
}

// KnownTransitions maps each status to the transitions the review workflow
// normally takes. It is display guidance only: the service accepts any
// status from any status, and the client does not enforce legality.
var KnownTransitions = map[PackageStatus][]PackageStatus{
	StatusDraft:         {StatusGenerated},
	StatusGenerating:    {StatusGenerated},
	StatusGenerated:     {StatusUnderReview},
	StatusUnderReview:   {StatusApproved, StatusRejected, StatusNeedsRevision},
	StatusNeedsRevision: {StatusUnderReview},
	StatusApproved:      {StatusPublished},
}

type ComponentType string

const (
	ComponentReading  ComponentType = "reading"
	ComponentVisual   ComponentType = "visual"
	ComponentAudio    ComponentType = "audio"
	ComponentPractice ComponentType = "practice"
)

// AllComponentTypes lists the four content components in generation order.
var AllComponentTypes = []ComponentType{
	ComponentReading, ComponentVisual, ComponentAudio, ComponentPractice,
}

// ValidComponentTypes is the canonical set of accepted component type strings.
var ValidComponentTypes = map[string]bool{
	"reading": true, "visual": true, "audio": true, "practice": true,
}

type RevisionPriority string

const (
	PriorityLow    RevisionPriority = "low"
	PriorityMedium RevisionPriority = "medium"
	PriorityHigh   RevisionPriority = "high"
)

type RevisionState string

const (
	RevisionInProgress RevisionState = "in_progress"
	RevisionCompleted  RevisionState = "completed"
	RevisionFailed     RevisionState = "failed"
)

type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "beginner"
	DifficultyIntermediate DifficultyLevel = "intermediate"
	DifficultyAdvanced     DifficultyLevel = "advanced"
)

// DifficultyFromTarget buckets a curriculum target difficulty (1-10 scale)
// into a difficulty level.
func DifficultyFromTarget(target float64) DifficultyLevel {
	switch {
	case target <= 2:
		return DifficultyBeginner
	case target <= 4:
		return DifficultyIntermediate
	default:
		return DifficultyAdvanced
	}
}

type GenerationMode string

const (
	ModeManual     GenerationMode = "manual"
	ModeCurriculum GenerationMode = "curriculum"
)
