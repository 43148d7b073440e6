package assessment

// Tier labels, bucketed by closed score ranges.
const (
	TierBeginner   = "Beginner/Limited Usage: Time to explore LinkedIn's potential!"
	TierDeveloping = "Developing User: You're on the right track! Let's optimize your profile."
	TierProficient = "Proficient User: Great start! Leverage advanced features for more opportunities."
	TierMaster     = "LinkedIn Master: You're an inspiration! Keep networking and growing."
	TierOutOfRange = "Score out of range."
)

// Score sums the per-question points of answers. Questions that are missing
// or answered with an unlisted value contribute 0.
func (q *Questionnaire) Score(answers AnswerSet) int {
	total := 0
	for _, id := range q.order {
		total += q.byID[id].PointsFor(answers[id])
	}
	return total
}

// Score scores answers against the built-in questionnaire.
func Score(answers AnswerSet) int { return Default().Score(answers) }

// Tier maps a score onto its qualitative label.
func Tier(score int) string {
	switch {
	case score >= 0 && score <= 30:
		return TierBeginner
	case score >= 31 && score <= 60:
		return TierDeveloping
	case score >= 61 && score <= 80:
		return TierProficient
	case score >= 81 && score <= 100:
		return TierMaster
	default:
		return TierOutOfRange
	}
}

// Assess validates answers, then scores them with a per-question and
// per-section breakdown.
func (q *Questionnaire) Assess(answers AnswerSet) (Result, error) {
	if err := q.Validate(answers); err != nil {
		return Result{}, err
	}
	res := Result{MaxScore: q.MaxScore()}
	for _, s := range q.Sections {
		sp := SectionPoints{SectionID: s.ID, Title: s.Title}
		for _, qq := range s.Questions {
			pts := qq.PointsFor(answers[qq.ID])
			res.Questions = append(res.Questions, QuestionPoints{
				QuestionID: qq.ID,
				Answer:     answers[qq.ID],
				Points:     pts,
				MaxPoints:  qq.MaxPoints(),
			})
			sp.Points += pts
			sp.MaxPoints += qq.MaxPoints()
			res.Score += pts
		}
		res.Sections = append(res.Sections, sp)
	}
	res.Tier = Tier(res.Score)
	return res, nil
}

// Assess runs Assess on the built-in questionnaire.
func Assess(answers AnswerSet) (Result, error) { return Default().Assess(answers) }
