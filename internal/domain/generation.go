package domain

import "strings"

// GenerationRequest is the body of POST /api/v1/generate-content.
type GenerationRequest struct {
	Subject         string          `json:"subject"`
	Unit            string          `json:"unit"`
	Skill           string          `json:"skill"`
	Subskill        string          `json:"subskill"`
	DifficultyLevel DifficultyLevel `json:"difficulty_level,omitempty"`
	Prerequisites   []string        `json:"prerequisites,omitempty"`
	EducatorID      string          `json:"educator_id,omitempty"`
	Priority        string          `json:"priority,omitempty"`
}

// Validate trims the identifying fields and rejects the request when any
// of them is empty. Difficulty defaults to intermediate, priority to
// medium, mirroring the service-side defaults.
func (r *GenerationRequest) Validate() error {
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"subject", &r.Subject},
		{"unit", &r.Unit},
		{"skill", &r.Skill},
		{"subskill", &r.Subskill},
	} {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			return NewValidationError(f.name, "Field cannot be empty")
		}
	}
	if r.DifficultyLevel == "" {
		r.DifficultyLevel = DifficultyIntermediate
	}
	if r.Priority == "" {
		r.Priority = "medium"
	}
	return nil
}

// CurriculumReferenceRequest asks the service to auto-populate a
// generation request from curriculum metadata for one subskill.
type CurriculumReferenceRequest struct {
	SubskillID              string   `json:"subskill_id"`
	AutoPopulate            bool     `json:"auto_populate"`
	DifficultyLevelOverride string   `json:"difficulty_level_override,omitempty"`
	PrerequisitesOverride   []string `json:"prerequisites_override,omitempty"`
}

// EnhancedGenerationRequest is the body of POST
// /api/v1/generate-content-enhanced. Exactly one of ManualRequest or
// CurriculumRequest is set, selected by Mode.
type EnhancedGenerationRequest struct {
	Mode               GenerationMode              `json:"mode"`
	ManualRequest      *GenerationRequest          `json:"manual_request,omitempty"`
	CurriculumRequest  *CurriculumReferenceRequest `json:"curriculum_request,omitempty"`
	CustomInstructions string                      `json:"custom_instructions,omitempty"`
	ContentTypes       []ComponentType             `json:"content_types,omitempty"`
}

// Validate checks mode/payload consistency and defaults ContentTypes to
// all four components.
func (r *EnhancedGenerationRequest) Validate() error {
	switch r.Mode {
	case ModeManual:
		if r.ManualRequest == nil {
			return NewValidationError("manual_request", "Manual mode requires a manual request")
		}
		if err := r.ManualRequest.Validate(); err != nil {
			return err
		}
	case ModeCurriculum:
		if r.CurriculumRequest == nil {
			return NewValidationError("curriculum_request", "Curriculum mode requires a curriculum request")
		}
		if strings.TrimSpace(r.CurriculumRequest.SubskillID) == "" {
			return NewValidationError("subskill_id", "Subskill ID is required")
		}
	default:
		return NewValidationError("mode", "Mode must be \"manual\" or \"curriculum\"")
	}
	if len(r.ContentTypes) == 0 {
		r.ContentTypes = append([]ComponentType(nil), AllComponentTypes...)
	}
	return nil
}
