package domain

import "time"

type Role string

const (
	RoleHost        Role = "host"
	RoleParticipant Role = "participant"
)

// UserSession is the client-side identity record. The role is decided by
// comparing the self-asserted email against the creator email recorded for
// the meeting; no trusted authority is involved, so it only shapes the
// local UI behavior. Real in-meeting privilege comes from the preset sent
// at join time.
type UserSession struct {
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Role        Role     `json:"role"`
	Permissions []string `json:"permissions"`
}

// NewUserSession builds a session with the permission set matching the role.
func NewUserSession(email, name string, isHost bool) UserSession {
	s := UserSession{
		Email: email,
		Name:  name,
		Role:  RoleParticipant,
		// viewer permissions
		Permissions: []string{"chat", "view"},
	}
	if isHost {
		s.Role = RoleHost
		s.Permissions = []string{"present", "record", "moderate", "kick"}
	}
	return s
}

// IsHost reports whether the session carries the host role.
func (s UserSession) IsHost() bool { return s.Role == RoleHost }

// MeetingConfig is the client's denormalized copy of creation-time
// parameters. It is not reconciled with the gateway's record.
type MeetingConfig struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	HostEmail        string    `json:"hostEmail"`
	MaxParticipants  int       `json:"maxParticipants"`
	RecordingEnabled bool      `json:"recordingEnabled"`
	ChatEnabled      bool      `json:"chatEnabled"`
	CreatedAt        time.Time `json:"createdAt"`
}
