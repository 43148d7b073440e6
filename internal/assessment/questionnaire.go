package assessment

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed questionnaire.yaml
var builtinYAML []byte

var (
	defaultOnce sync.Once
	defaultQ    *Questionnaire
)

// Default returns the built-in 17-question LinkedIn questionnaire.
func Default() *Questionnaire {
	defaultOnce.Do(func() {
		q, err := Parse(builtinYAML)
		if err != nil {
			panic(fmt.Sprintf("assessment: built-in questionnaire: %v", err))
		}
		defaultQ = q
	})
	return defaultQ
}

// Parse decodes a questionnaire definition and indexes its questions.
func Parse(data []byte) (*Questionnaire, error) {
	var q Questionnaire
	if err := yaml.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("parse questionnaire: %w", err)
	}
	if err := q.index(); err != nil {
		return nil, err
	}
	return &q, nil
}

func (q *Questionnaire) index() error {
	q.byID = map[string]*Question{}
	q.order = q.order[:0]
	for si := range q.Sections {
		s := &q.Sections[si]
		for qi := range s.Questions {
			qq := &s.Questions[qi]
			if qq.ID == "" {
				return fmt.Errorf("section %q: question %d has no id", s.ID, qi+1)
			}
			if _, dup := q.byID[qq.ID]; dup {
				return fmt.Errorf("duplicate question id %q", qq.ID)
			}
			if len(qq.Options) == 0 {
				return fmt.Errorf("question %q has no options", qq.ID)
			}
			seen := map[string]bool{}
			for _, o := range qq.Options {
				if seen[o.Label] {
					return fmt.Errorf("question %q: duplicate option %q", qq.ID, o.Label)
				}
				if o.Points < 0 {
					return fmt.Errorf("question %q: option %q has negative points", qq.ID, o.Label)
				}
				seen[o.Label] = true
			}
			q.byID[qq.ID] = qq
			q.order = append(q.order, qq.ID)
		}
	}
	return nil
}

// Question looks up a question by id.
func (q *Questionnaire) Question(id string) (Question, bool) {
	qq, ok := q.byID[id]
	if !ok {
		return Question{}, false
	}
	return *qq, true
}

// QuestionIDs returns ids in presentation order.
func (q *Questionnaire) QuestionIDs() []string {
	out := make([]string, len(q.order))
	copy(out, q.order)
	return out
}

// MaxScore is the sum of every question's best option.
func (q *Questionnaire) MaxScore() int {
	total := 0
	for _, id := range q.order {
		total += q.byID[id].MaxPoints()
	}
	return total
}

func (qq Question) MaxPoints() int {
	best := 0
	for _, o := range qq.Options {
		if o.Points > best {
			best = o.Points
		}
	}
	return best
}

// PointsFor returns the points for a selected label. Unknown labels score 0.
func (qq Question) PointsFor(label string) int {
	for _, o := range qq.Options {
		if o.Label == label {
			return o.Points
		}
	}
	return 0
}

func (qq Question) HasOption(label string) bool {
	for _, o := range qq.Options {
		if o.Label == label {
			return true
		}
	}
	return false
}
