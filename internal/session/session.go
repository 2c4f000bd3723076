// Package session keeps the client's local state: who the user claims to
// be and which meetings they created. It mirrors what the browser build
// kept in local storage, so the host decision is exactly as trusting: a
// matching email string is all it takes.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/appifylab/webinar-platform/internal/domain"
)

var (
	ErrEmailRequired = errors.New("please enter both email and name")
	ErrInvalidEmail  = errors.New("please enter a valid email address")
	ErrNotLoggedIn   = errors.New("not logged in")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type state struct {
	Session *domain.UserSession `json:"session,omitempty"`
	// Hosts maps a meeting id to the creator's email, the sole record of
	// who is host.
	Hosts   map[string]string               `json:"meeting_hosts"`
	Configs map[string]domain.MeetingConfig `json:"meeting_configs"`
}

// Store persists client state as a JSON file.
type Store struct {
	path  string
	state state
}

func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		state: state{
			Hosts:   make(map[string]string),
			Configs: make(map[string]domain.MeetingConfig),
		},
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	if err := json.Unmarshal(raw, &s.state); err != nil {
		// a corrupt state file is discarded, same as an unparseable
		// stored browser session
		s.state = state{
			Hosts:   make(map[string]string),
			Configs: make(map[string]domain.MeetingConfig),
		}
		return s, nil
	}
	if s.state.Hosts == nil {
		s.state.Hosts = make(map[string]string)
	}
	if s.state.Configs == nil {
		s.state.Configs = make(map[string]domain.MeetingConfig)
	}
	return s, nil
}

func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	raw, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}

// Login validates the self-asserted identity and computes the role for the
// meeting context: a match against the invite-link host email or the
// locally recorded creator email makes the user host.
func (s *Store) Login(email, name, meetingID, inviteHostEmail string) (domain.UserSession, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)

	if email == "" || name == "" {
		return domain.UserSession{}, ErrEmailRequired
	}
	if !emailPattern.MatchString(email) {
		return domain.UserSession{}, ErrInvalidEmail
	}

	sess := domain.NewUserSession(email, name, s.IsHost(email, meetingID, inviteHostEmail))
	s.state.Session = &sess
	if err := s.save(); err != nil {
		return domain.UserSession{}, err
	}
	return sess, nil
}

func (s *Store) Logout() error {
	s.state.Session = nil
	return s.save()
}

func (s *Store) Current() (domain.UserSession, error) {
	if s.state.Session == nil {
		return domain.UserSession{}, ErrNotLoggedIn
	}
	return *s.state.Session, nil
}

// RecordMeeting stores the creation-time config and marks the creator as
// the meeting's host.
func (s *Store) RecordMeeting(cfg domain.MeetingConfig) error {
	s.state.Hosts[cfg.ID] = cfg.HostEmail
	s.state.Configs[cfg.ID] = cfg
	return s.save()
}

func (s *Store) HostEmail(meetingID string) string {
	return s.state.Hosts[meetingID]
}

func (s *Store) Config(meetingID string) (domain.MeetingConfig, bool) {
	cfg, ok := s.state.Configs[meetingID]
	return cfg, ok
}

// IsHost reports whether email matches either of the two host records: the
// invite-link parameter or the stored creator email for the meeting.
func (s *Store) IsHost(email, meetingID, inviteHostEmail string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	if inviteHostEmail != "" && inviteHostEmail == email {
		return true
	}
	return meetingID != "" && s.state.Hosts[meetingID] == email
}
