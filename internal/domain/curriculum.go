package domain

// Curriculum metadata mirrors the service's curriculum browse payloads.
// The client only reads these; curriculum data is loaded and owned
// server-side.

type Subskill struct {
	SubskillID          string  `json:"subskill_id"`
	SubskillDescription string  `json:"subskill_description"`
	DifficultyStart     float64 `json:"difficulty_start"`
	DifficultyEnd       float64 `json:"difficulty_end"`
	TargetDifficulty    float64 `json:"target_difficulty"`
}

// DifficultyLevel buckets the subskill's target difficulty.
func (s Subskill) DifficultyLevel() DifficultyLevel {
	return DifficultyFromTarget(s.TargetDifficulty)
}

type Skill struct {
	SkillID          string     `json:"skill_id"`
	SkillDescription string     `json:"skill_description"`
	Subskills        []Subskill `json:"subskills"`
}

type Unit struct {
	UnitID    string  `json:"unit_id"`
	UnitTitle string  `json:"unit_title"`
	Skills    []Skill `json:"skills"`
}

type Curriculum struct {
	Subject string `json:"subject"`
	Grade   string `json:"grade"`
	Units   []Unit `json:"units"`
}

// SubskillContext is the generation pre-fill context for one subskill:
// where it sits in the curriculum plus prerequisites and learning path.
type SubskillContext struct {
	SubskillID          string   `json:"subskill_id"`
	SubskillDescription string   `json:"subskill_description"`
	Subject             string   `json:"subject"`
	Grade               string   `json:"grade"`
	Unit                string   `json:"unit"`
	Skill               string   `json:"skill"`
	DifficultyLevel     string   `json:"difficulty_level"`
	TargetDifficulty    float64  `json:"target_difficulty"`
	Prerequisites       []string `json:"prerequisites"`
	NextSubskill        string   `json:"next_subskill,omitempty"`
	LearningPath        []string `json:"learning_path,omitempty"`
}

// CurriculumStatus summarizes what curriculum data the service has loaded.
type CurriculumStatus struct {
	Loaded        bool     `json:"loaded"`
	SubjectCount  int      `json:"subject_count"`
	SubskillCount int      `json:"subskill_count"`
	Subjects      []string `json:"subjects"`
}
