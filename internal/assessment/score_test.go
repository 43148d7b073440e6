package assessment

import (
	"errors"
	"strconv"
	"testing"
)

func TestDefaultQuestionnaireShape(t *testing.T) {
	q := Default()
	if got := len(q.Sections); got != 4 {
		t.Fatalf("sections = %d, want 4", got)
	}
	ids := q.QuestionIDs()
	if len(ids) != 17 {
		t.Fatalf("questions = %d, want 17", len(ids))
	}
	for i, id := range ids {
		want := "q" + strconv.Itoa(i+1)
		if id != want {
			t.Errorf("question %d id = %q, want %q", i, id, want)
		}
	}
	if got := q.MaxScore(); got != 100 {
		t.Errorf("MaxScore = %d, want 100", got)
	}
}

func TestScoreBestIs100(t *testing.T) {
	if got := Score(Default().Best()); got != 100 {
		t.Fatalf("Score(best) = %d, want 100", got)
	}
}

func TestScoreWorstIsZero(t *testing.T) {
	worst := Default().Worst()
	if got := Score(worst); got != 0 {
		t.Fatalf("Score(worst) = %d, want 0", got)
	}
	if worst["q11"] != "0" || worst["q1"] != "No" {
		t.Errorf("unexpected worst answers: q1=%q q11=%q", worst["q1"], worst["q11"])
	}
}

func TestScorePointTable(t *testing.T) {
	tests := []struct {
		q      string
		answer string
		points int
	}{
		{"q1", "Yes", 5},
		{"q2", "Yes", 5},
		{"q3", "Yes", 5},
		{"q4", "Yes, detailed", 10},
		{"q4", "Yes, brief", 5},
		{"q5", "Yes", 5},
		{"q6", "Yes, detailed", 10},
		{"q6", "Yes, brief", 5},
		{"q7", "Yes, 5+ skills", 5},
		{"q7", "Yes, 1-4 skills", 2},
		{"q8", "Yes, 5+ endorsements", 5},
		{"q8", "Yes, 1-4 endorsements", 2},
		{"q9", "Yes, 3+ items", 5},
		{"q9", "Yes, 1-2 items", 2},
		{"q10", "Yes, 1+ recommendation", 5},
		{"q11", "500+", 10},
		{"q11", "100-499", 5},
		{"q11", "1-99", 2},
		{"q11", "0", 0},
		{"q12", "Yes, regularly", 5},
		{"q12", "Sometimes", 2},
		{"q13", "Yes, regularly", 5},
		{"q13", "Sometimes", 2},
		{"q14", "Yes, 5+ entities", 5},
		{"q14", "Yes, 1-4 entities", 2},
		{"q15", "Yes, regularly", 5},
		{"q15", "Yes, occasionally", 2},
		{"q16", "Yes, regularly", 5},
		{"q16", "Sometimes", 2},
		{"q17", "Yes", 5},
		{"q17", "No", 0},
		{"q12", "whatever", 0},
	}
	for _, tt := range tests {
		t.Run(tt.q+"/"+tt.answer, func(t *testing.T) {
			answers := Default().Worst()
			answers[tt.q] = tt.answer
			if got := Score(answers); got != tt.points {
				t.Errorf("Score with %s=%q = %d, want %d", tt.q, tt.answer, got, tt.points)
			}
		})
	}
}

// Changing one answer moves the total by exactly that option's delta,
// whatever the other answers are.
func TestScoreIsPureSum(t *testing.T) {
	q := Default()
	bases := []AnswerSet{q.Best(), q.Worst()}
	for _, base := range bases {
		baseScore := q.Score(base)
		for _, id := range q.QuestionIDs() {
			qq, _ := q.Question(id)
			for _, o := range qq.Options {
				next := AnswerSet{}
				for k, v := range base {
					next[k] = v
				}
				next[id] = o.Label
				want := baseScore - qq.PointsFor(base[id]) + o.Points
				if got := q.Score(next); got != want {
					t.Errorf("%s=%q: score %d, want %d", id, o.Label, got, want)
				}
			}
		}
	}
}

func TestTierBoundaries(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, TierBeginner},
		{30, TierBeginner},
		{31, TierDeveloping},
		{60, TierDeveloping},
		{61, TierProficient},
		{80, TierProficient},
		{81, TierMaster},
		{100, TierMaster},
		{-1, TierOutOfRange},
		{101, TierOutOfRange},
	}
	for _, tt := range tests {
		if got := Tier(tt.score); got != tt.want {
			t.Errorf("Tier(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	q := Default()
	if err := q.Validate(q.Best()); err != nil {
		t.Fatalf("Validate(best): %v", err)
	}

	answers := q.Best()
	delete(answers, "q3")
	answers["q7"] = "Yes, 100 skills"
	answers["q99"] = "Yes"

	err := q.Validate(answers)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	want := []string{"q3", "q7", "q99"}
	if len(ve.Fields) != len(want) {
		t.Fatalf("got %d field errors (%v), want %d", len(ve.Fields), ve.Fields, len(want))
	}
	for i, f := range want {
		if ve.Fields[i].Field != f {
			t.Errorf("field error %d = %q, want %q", i, ve.Fields[i].Field, f)
		}
	}
}

func TestAssessBreakdown(t *testing.T) {
	q := Default()
	answers := q.Worst()
	answers["q4"] = "Yes, brief"
	answers["q11"] = "500+"
	answers["q17"] = "Yes"

	res, err := q.Assess(answers)
	if err != nil {
		t.Fatal(err)
	}
	if res.Score != 20 || res.MaxScore != 100 || res.Tier != TierBeginner {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(res.Questions) != 17 {
		t.Fatalf("breakdown has %d questions", len(res.Questions))
	}
	wantSections := []int{5, 0, 10, 5}
	sum := 0
	for i, s := range res.Sections {
		if s.Points != wantSections[i] {
			t.Errorf("section %s = %d, want %d", s.SectionID, s.Points, wantSections[i])
		}
		sum += s.MaxPoints
	}
	if sum != 100 {
		t.Errorf("section max sum = %d, want 100", sum)
	}
}

func TestAssessRejectsIncomplete(t *testing.T) {
	if _, err := Assess(AnswerSet{"q1": "Yes"}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestParseRejectsBadDefinitions(t *testing.T) {
	cases := map[string]string{
		"duplicate id": `sections: [{id: a, questions: [{id: x, options: [{label: Y}]}, {id: x, options: [{label: Y}]}]}]`,
		"no options":   `sections: [{id: a, questions: [{id: x}]}]`,
		"dup option":   `sections: [{id: a, questions: [{id: x, options: [{label: Y}, {label: Y}]}]}]`,
		"negative":     `sections: [{id: a, questions: [{id: x, options: [{label: Y, points: -1}]}]}]`,
		"bad yaml":     `sections: [`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); err == nil {
				t.Errorf("Parse accepted %s", name)
			}
		})
	}
}
