package session

// State is the per-browser session: whether the questionnaire has been
// scored, and the score that unlocks the certificate.
type State struct {
	ID     string `json:"id"`
	Scored bool   `json:"scored"`
	Score  int    `json:"score"`
	Tier   string `json:"tier,omitempty"`
}

// RecordScore marks the session as scored.
func (s *State) RecordScore(score int, tier string) {
	s.Scored = true
	s.Score = score
	s.Tier = tier
}

// CertificateAllowed is true only once a score exists.
func (s *State) CertificateAllowed() bool { return s != nil && s.Scored }
