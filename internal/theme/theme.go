// Package theme holds the dark/light preference. State only changes through
// Reduce, and only a Toggle is persisted.
package theme

import (
	"context"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/city-guide/internal/store"
)

// State is the current theme.
type State struct {
	Dark bool `json:"dark"`
}

// Name returns "dark" or "light".
func (s State) Name() string {
	if s.Dark {
		return store.ThemeDark
	}
	return store.ThemeLight
}

// EventKind identifies an Event.
type EventKind int

const (
	// Init resolves the starting state from the stored and system preferences.
	Init EventKind = iota
	// Toggle flips the state.
	Toggle
)

// Event is an input to Reduce. Stored and PrefersDark are read by Init only.
type Event struct {
	Kind        EventKind
	Stored      string
	PrefersDark bool
}

// Reduce returns the state after e. A stored preference wins over the system
// one.
func Reduce(s State, e Event) State {
	switch e.Kind {
	case Init:
		switch e.Stored {
		case store.ThemeDark:
			return State{Dark: true}
		case store.ThemeLight:
			return State{Dark: false}
		}
		return State{Dark: e.PrefersDark}
	case Toggle:
		return State{Dark: !s.Dark}
	}
	return s
}

// PrefersDark interprets a client color-scheme hint such as the
// Sec-CH-Prefers-Color-Scheme header. Quotes are allowed.
func PrefersDark(hint string) bool {
	return strings.EqualFold(strings.Trim(strings.TrimSpace(hint), `"`), "dark")
}

// Store persists one preference per client.
type Store interface {
	GetTheme(ctx context.Context, clientID string) (string, error)
	SetTheme(ctx context.Context, clientID, theme string) error
}

// Service is the only read/toggle entry point for the preference.
type Service struct {
	store Store
	mu    sync.Mutex
}

// NewService creates a Service backed by st.
func NewService(st Store) *Service {
	return &Service{store: st}
}

// Get returns the client's current state without persisting anything.
func (s *Service) Get(ctx context.Context, clientID string, prefersDark bool) (State, error) {
	stored, err := s.store.GetTheme(ctx, clientID)
	if err != nil {
		return State{}, eris.Wrap(err, "theme: load preference")
	}
	return Reduce(State{}, Event{Kind: Init, Stored: stored, PrefersDark: prefersDark}), nil
}

// Toggle flips the client's state and persists the result.
func (s *Service) Toggle(ctx context.Context, clientID string, prefersDark bool) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.Get(ctx, clientID, prefersDark)
	if err != nil {
		return State{}, err
	}
	next := Reduce(cur, Event{Kind: Toggle})
	if err := s.store.SetTheme(ctx, clientID, next.Name()); err != nil {
		return State{}, eris.Wrap(err, "theme: save preference")
	}
	zap.L().Debug("theme toggled",
		zap.String("client_id", clientID),
		zap.String("theme", next.Name()),
	)
	return next, nil
}
