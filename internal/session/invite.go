package session

import (
	"errors"
	"fmt"
	"net/url"
)

var ErrInvalidInviteLink = errors.New("invite link carries no meeting id")

// BuildInviteLink renders the shareable join URL. The host email rides
// along so invitees can see who is hosting; it is also one of the two
// inputs to the host-role decision.
func BuildInviteLink(origin, meetingID, hostEmail string) string {
	return fmt.Sprintf("%s/?meetingId=%s&hostEmail=%s",
		origin, url.QueryEscape(meetingID), url.QueryEscape(hostEmail))
}

// ParseInviteLink extracts the meeting id and host email from an invite
// URL. The host email is optional.
func ParseInviteLink(raw string) (meetingID, hostEmail string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("parse invite link: %w", err)
	}

	q := u.Query()
	meetingID = q.Get("meetingId")
	if meetingID == "" {
		return "", "", ErrInvalidInviteLink
	}
	return meetingID, q.Get("hostEmail"), nil
}
