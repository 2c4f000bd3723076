package domain

import "time"

// Upstream preset templates. The preset decides the capabilities the
// RealtimeKit service grants to a participant, which makes it the only
// server-side role distinction in the platform.
const (
	PresetPresenter = "webinar_presenter"
	PresetViewer    = "webinar_viewer"
)

// ValidPreset reports whether name is one of the accepted preset templates.
func ValidPreset(name string) bool {
	return name == PresetPresenter || name == PresetViewer
}

// MeetingRecord is the gateway's local metadata for one meeting. It is a
// best-effort lookup kept next to the upstream state, not a source of truth.
type MeetingRecord struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	PreferredRegion   string    `json:"preferred_region"`
	CreatedAt         time.Time `json:"created_at"`
	CreatedByIP       string    `json:"created_by_ip"`
	ParticipantsCount int       `json:"participants_count"`
	// MaxParticipants is zero unless a limit was configured at creation
	// time. A zero value disables the participant-limit guard.
	MaxParticipants int `json:"max_participants,omitempty"`
}
