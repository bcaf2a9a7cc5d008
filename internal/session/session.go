// Package session keeps per-visitor form state between page loads.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rootwave/site/internal/lead"
)

// CookieName carries the session id.
const CookieName = "rootwave_session"

const cleanupInterval = 1 * time.Minute

// Download is a CSV backup waiting to be fetched by the browser.
type Download struct {
	Name string
	Data []byte
}

// Session is one visitor's lead form plus the side effects of its last
// submission that the next page render has to deliver. It serves as the
// controller's dispatcher, download target and toast surface.
type Session struct {
	ID   string
	Lead *lead.Controller

	mu       sync.Mutex
	link     string
	download *Download
	toasts   []lead.Toast
	lastSeen time.Time
}

// Open queues the deep link for the next render.
func (s *Session) Open(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.link = url
}

// Write queues a CSV backup for download by the browser.
func (s *Session) Write(name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.download = &Download{Name: name, Data: data}
	return nil
}

// Notify queues a toast for the next render.
func (s *Session) Notify(t lead.Toast) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toasts = append(s.toasts, t)
}

// TakeLink returns and clears the queued deep link.
func (s *Session) TakeLink() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	link := s.link
	s.link = ""
	return link
}

// TakeToasts returns and clears the queued toasts.
func (s *Session) TakeToasts() []lead.Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	toasts := s.toasts
	s.toasts = nil
	return toasts
}

// PendingDownload returns the name of the queued backup, if any.
func (s *Session) PendingDownload() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.download == nil {
		return "", false
	}
	return s.download.Name, true
}

// TakeDownload returns and clears the queued backup.
func (s *Session) TakeDownload() (Download, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.download == nil {
		return Download{}, false
	}
	d := *s.download
	s.download = nil
	return d, true
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen.Before(cutoff)
}

// Factory builds the lead controller of a new session.
type Factory func(s *Session) (*lead.Controller, error)

// Store holds sessions in memory and expires idle ones.
type Store struct {
	ttl         time.Duration
	factory     Factory
	now         func() time.Time
	mu          sync.Mutex
	sessions    map[string]*Session
	cleanupDone chan struct{}
	closeOnce   sync.Once
}

// NewStore creates a store whose sessions expire after ttl without requests.
//
// Close must be called on shutdown to stop the cleanup goroutine.
func NewStore(ttl time.Duration, factory Factory) (*Store, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive, got %s", ttl)
	}
	if factory == nil {
		return nil, errors.New("controller factory is required")
	}
	st := &Store{
		ttl:         ttl,
		factory:     factory,
		now:         time.Now,
		sessions:    make(map[string]*Session),
		cleanupDone: make(chan struct{}),
	}
	go st.cleanupLoop()
	return st, nil
}

// Get returns the live session with id.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok || s.idleSince(st.now().Add(-st.ttl)) {
		return nil, false
	}
	s.touch(st.now())
	return s, true
}

// New creates and stores a fresh session.
func (st *Store) New() (*Session, error) {
	s := &Session{ID: uuid.NewString()}
	ctrl, err := st.factory(s)
	if err != nil {
		return nil, fmt.Errorf("creating lead controller: %w", err)
	}
	s.Lead = ctrl
	s.touch(st.now())

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s, nil
}

// FromRequest returns the request's session, or nil when it has none.
func (st *Store) FromRequest(r *http.Request) *Session {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}
	s, ok := st.Get(c.Value)
	if !ok {
		return nil
	}
	return s
}

// Ensure returns the request's session, creating one and setting the cookie
// when needed.
func (st *Store) Ensure(w http.ResponseWriter, r *http.Request) (*Session, error) {
	if s := st.FromRequest(r); s != nil {
		return s, nil
	}
	s, err := st.New()
	if err != nil {
		return nil, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    s.ID,
		Path:     "/",
		MaxAge:   int(st.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})
	return s, nil
}

// Len returns the number of stored sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

func (st *Store) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			st.cleanup()
		case <-st.cleanupDone:
			return
		}
	}
}

// cleanup drops sessions idle for longer than the ttl. Sessions with a
// submission in flight are kept.
func (st *Store) cleanup() {
	cutoff := st.now().Add(-st.ttl)

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, s := range st.sessions {
		if s.idleSince(cutoff) && !s.Lead.Submitting() {
			delete(st.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		slog.Debug("expired sessions", "removed", removed, "remaining", len(st.sessions))
	}
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (st *Store) Close() {
	st.closeOnce.Do(func() {
		close(st.cleanupDone)
	})
}
