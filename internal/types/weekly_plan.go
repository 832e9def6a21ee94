package types

// PlanDocument is the value stored in learning_plan.plan_json. Raw is the
// verbatim model output and is kept even when Structured parsed, so nothing
// the model said is ever lost.
type PlanDocument struct {
	Structured *WeeklyPlan `json:"structured,omitempty"`
	Raw        string      `json:"raw"`
}

// WeeklyPlan is the shape the model is asked to return: five days, each an
// ordered list of activities.
type WeeklyPlan struct {
	Theme    string    `json:"theme,omitempty"`
	Overview string    `json:"overview,omitempty"`
	Days     []PlanDay `json:"days"`
}

type PlanDay struct {
	Day        int            `json:"day"`
	Activities []PlanActivity `json:"activities"`
}

type PlanActivity struct {
	Title                       string        `json:"title"`
	Objective                   string        `json:"objective"`
	CurriculumCodes             []string      `json:"curriculum_codes,omitempty"`
	Materials                   []string      `json:"materials,omitempty"`
	Instructions                string        `json:"instructions"`
	AdultSupport                *AdultSupport `json:"adult_support,omitempty"`
	DeclarativeLanguageExamples []string      `json:"declarative_language_examples,omitempty"`
	Modifications               string        `json:"modifications,omitempty"`
	EstimatedDuration           string        `json:"estimated_duration,omitempty"`
}

// AdultSupport is required by the prompt contract but tolerated when absent;
// the schema keeps it optional.
type AdultSupport struct {
	SetupGuidance     string `json:"setup_guidance"`
	FacilitationTips  string `json:"facilitation_tips"`
	RegulationSupport string `json:"regulation_support"`
	ExtensionIdeas    string `json:"extension_ideas"`
}
