package domain

// Lifecycle event names delivered by the upstream webhook.
const (
	EventMeetingStarted    = "meeting.started"
	EventMeetingEnded      = "meeting.ended"
	EventParticipantJoined = "participant.joined"
	EventParticipantLeft   = "participant.left"
	EventRecordingStarted  = "recording.started"
	EventRecordingStopped  = "recording.stopped"
)

// Event is the envelope posted by the upstream service to the webhook
// endpoint. Fields beyond these are ignored.
type Event struct {
	Event           string `json:"event"`
	MeetingID       string `json:"meetingId"`
	ParticipantName string `json:"participantName,omitempty"`
}
