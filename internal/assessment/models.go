package assessment

type Option struct {
	Label  string `yaml:"label" json:"label"`
	Points int    `yaml:"points" json:"-"` // never sent to the browser
}

type Question struct {
	ID      string   `yaml:"id" json:"id"`
	Prompt  string   `yaml:"prompt" json:"prompt"`
	Options []Option `yaml:"options" json:"options"`
}

type Section struct {
	ID        string     `yaml:"id" json:"id"`
	Title     string     `yaml:"title" json:"title"`
	Questions []Question `yaml:"questions" json:"questions"`
}

type Questionnaire struct {
	Title    string    `yaml:"title" json:"title"`
	Sections []Section `yaml:"sections" json:"sections"`

	byID  map[string]*Question
	order []string
}

// AnswerSet maps question id -> selected option label.
type AnswerSet map[string]string

// QuestionPoints is one line of a score breakdown.
type QuestionPoints struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
	Points     int    `json:"points"`
	MaxPoints  int    `json:"max_points"`
}

type SectionPoints struct {
	SectionID string `json:"section_id"`
	Title     string `json:"title"`
	Points    int    `json:"points"`
	MaxPoints int    `json:"max_points"`
}

// Result is the outcome of scoring one AnswerSet.
type Result struct {
	Score     int              `json:"score"`
	MaxScore  int              `json:"max_score"`
	Tier      string           `json:"tier"`
	Questions []QuestionPoints `json:"questions"`
	Sections  []SectionPoints  `json:"sections"`
}
