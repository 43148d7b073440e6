package assessment

import (
	"fmt"
	"sort"
	"strings"
)

// FieldError describes one problem with a submitted answer.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when an AnswerSet is incomplete or holds values
// outside a question's option set.
type ValidationError struct {
	Fields []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid answers: " + strings.Join(parts, "; ")
}

// Validate checks that every question is answered with one of its options and
// that no unknown keys are present.
func (q *Questionnaire) Validate(answers AnswerSet) error {
	var errs []FieldError
	for _, id := range q.order {
		v, ok := answers[id]
		if !ok || v == "" {
			errs = append(errs, FieldError{Field: id, Message: "answer required"})
			continue
		}
		if !q.byID[id].HasOption(v) {
			errs = append(errs, FieldError{Field: id, Message: fmt.Sprintf("%q is not an allowed option", v)})
		}
	}
	var extra []string
	for k := range answers {
		if _, ok := q.byID[k]; !ok {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		errs = append(errs, FieldError{Field: k, Message: "unknown question"})
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// Validate checks answers against the built-in questionnaire.
func Validate(answers AnswerSet) error { return Default().Validate(answers) }

// Best returns the AnswerSet choosing the highest-value option everywhere.
func (q *Questionnaire) Best() AnswerSet {
	out := AnswerSet{}
	for _, id := range q.order {
		qq := q.byID[id]
		best := qq.Options[0]
		for _, o := range qq.Options[1:] {
			if o.Points > best.Points {
				best = o
			}
		}
		out[id] = best.Label
	}
	return out
}

// Worst returns the AnswerSet choosing the lowest-value option everywhere.
func (q *Questionnaire) Worst() AnswerSet {
	out := AnswerSet{}
	for _, id := range q.order {
		qq := q.byID[id]
		worst := qq.Options[0]
		for _, o := range qq.Options[1:] {
			if o.Points < worst.Points {
				worst = o
			}
		}
		out[id] = worst.Label
	}
	return out
}
