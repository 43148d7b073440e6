package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	DefaultCookieName = "seminar_session"
	DefaultTTL        = 8 * time.Hour
	issuer            = "mindengage-seminar"
)

type Options struct {
	Secret     string
	TTL        time.Duration
	CookieName string
	Secure     bool
}

// Manager keeps session state in a signed cookie so the server holds none.
type Manager struct {
	hmac       []byte
	ttl        time.Duration
	cookieName string
	secure     bool
	now        func() time.Time
}

func NewManager(opts Options) (*Manager, error) {
	if opts.Secret == "" {
		return nil, errors.New("session secret is required")
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	return &Manager{
		hmac:       []byte(opts.Secret),
		ttl:        opts.TTL,
		cookieName: opts.CookieName,
		secure:     opts.Secure,
		now:        time.Now,
	}, nil
}

type Claims struct {
	Scored bool   `json:"scored"`
	Score  int    `json:"score"`
	Tier   string `json:"tier,omitempty"`
	jwt.RegisteredClaims
}

// New returns an empty state with a fresh id.
func (m *Manager) New() *State {
	return &State{ID: uuid.NewString()}
}

func (m *Manager) Issue(st *State) (string, error) {
	now := m.now()
	claims := &Claims{
		Scored: st.Scored,
		Score:  st.Score,
		Tier:   st.Tier,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        st.ID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.hmac)
}

func (m *Manager) Parse(tokenStr string) (*State, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return m.hmac, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, err
	}
	c, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || c.ID == "" {
		return nil, errors.New("invalid session token")
	}
	return &State{ID: c.ID, Scored: c.Scored, Score: c.Score, Tier: c.Tier}, nil
}

// Load reads the session cookie. Missing, expired or tampered cookies give a
// fresh state.
func (m *Manager) Load(r *http.Request) *State {
	c, err := r.Cookie(m.cookieName)
	if err != nil || c.Value == "" {
		return m.New()
	}
	st, err := m.Parse(c.Value)
	if err != nil {
		return m.New()
	}
	return st
}

func (m *Manager) Save(w http.ResponseWriter, st *State) error {
	tok, err := m.Issue(st)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    tok,
		Path:     "/",
		MaxAge:   int(m.ttl / time.Second),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Middleware attaches the request's session state to its context.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := m.Load(r)
		next.ServeHTTP(w, r.WithContext(WithState(r.Context(), st)))
	})
}
