package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/appifylab/webinar-platform/internal/domain"
	"github.com/appifylab/webinar-platform/internal/store"
	"github.com/appifylab/webinar-platform/internal/upstream/realtimekit"
)

type fakeUpstream struct {
	createCalls int
	joinCalls   int
	getCalls    int

	createErr error
	joinErr   error
	getErr    error

	lastJoinReq realtimekit.AddParticipantRequest
}

func (f *fakeUpstream) CreateMeeting(_ context.Context, req realtimekit.CreateMeetingRequest) (*realtimekit.Result, realtimekit.Meeting, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, realtimekit.Meeting{}, f.createErr
	}
	m := realtimekit.Meeting{ID: "meeting-abc123def", Title: req.Title, PreferredRegion: req.PreferredRegion}
	body := map[string]any{"success": true, "data": map[string]any{"id": m.ID, "title": m.Title}}
	return &realtimekit.Result{Body: body}, m, nil
}

func (f *fakeUpstream) AddParticipant(_ context.Context, meetingID string, req realtimekit.AddParticipantRequest) (*realtimekit.Result, realtimekit.Participant, error) {
	f.joinCalls++
	f.lastJoinReq = req
	if f.joinErr != nil {
		return nil, realtimekit.Participant{}, f.joinErr
	}
	p := realtimekit.Participant{ID: "p-1", Name: req.Name, PresetName: req.PresetName, Token: "jwt-token-value"}
	body := map[string]any{"success": true, "data": map[string]any{"token": p.Token}}
	return &realtimekit.Result{Body: body}, p, nil
}

func (f *fakeUpstream) GetMeeting(_ context.Context, meetingID string) (*realtimekit.Result, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	body := map[string]any{"success": true, "data": map[string]any{"id": meetingID}}
	return &realtimekit.Result{Body: body}, nil
}

func TestMeetingServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects an empty title without an upstream call", func(t *testing.T) {
		up := &fakeUpstream{}
		svc := NewMeetingService(up, store.NewInMemoryMeetingStore(), nil)

		for _, title := range []string{"", "   ", "\t\n"} {
			_, err := svc.Create(ctx, CreateMeetingInput{Title: title})
			require.ErrorIs(t, err, ErrTitleRequired)
		}
		require.Zero(t, up.createCalls)
	})

	t.Run("accepts a 100 character title but rejects 101", func(t *testing.T) {
		up := &fakeUpstream{}
		svc := NewMeetingService(up, store.NewInMemoryMeetingStore(), nil)

		_, err := svc.Create(ctx, CreateMeetingInput{Title: strings.Repeat("a", 100)})
		require.NoError(t, err)

		_, err = svc.Create(ctx, CreateMeetingInput{Title: strings.Repeat("a", 101)})
		require.ErrorIs(t, err, ErrTitleTooLong)
		require.Equal(t, 1, up.createCalls)
	})

	t.Run("defaults the region and caches the meeting", func(t *testing.T) {
		up := &fakeUpstream{}
		meetings := store.NewInMemoryMeetingStore()
		svc := NewMeetingService(up, meetings, nil)

		res, err := svc.Create(ctx, CreateMeetingInput{Title: "  Town Hall  ", ClientIP: "192.0.2.1"})
		require.NoError(t, err)
		require.Equal(t, "meeting-abc123def", res.Meeting.ID)

		rec, err := meetings.Get(ctx, "meeting-abc123def")
		require.NoError(t, err)
		require.Equal(t, "Town Hall", rec.Title)
		require.Equal(t, "ap-south-1", rec.PreferredRegion)
		require.Equal(t, "192.0.2.1", rec.CreatedByIP)
	})

	t.Run("propagates upstream failures", func(t *testing.T) {
		up := &fakeUpstream{createErr: realtimekit.ErrTimeout}
		meetings := store.NewInMemoryMeetingStore()
		svc := NewMeetingService(up, meetings, nil)

		_, err := svc.Create(ctx, CreateMeetingInput{Title: "Town Hall"})
		require.ErrorIs(t, err, realtimekit.ErrTimeout)

		n, err := meetings.Count(ctx)
		require.NoError(t, err)
		require.Zero(t, n)
	})
}

func TestMeetingServiceJoin(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, meetings store.MeetingStore, max int) {
		t.Helper()
		require.NoError(t, meetings.Put(ctx, &domain.MeetingRecord{
			ID:              "meeting-abc123def",
			Title:           "Town Hall",
			CreatedAt:       time.Now().UTC(),
			MaxParticipants: max,
		}))
	}

	t.Run("rejects short meeting ids before the upstream call", func(t *testing.T) {
		up := &fakeUpstream{}
		svc := NewMeetingService(up, store.NewInMemoryMeetingStore(), nil)

		_, err := svc.Join(ctx, JoinMeetingInput{MeetingID: "short", Name: "Alice", PresetName: domain.PresetViewer})
		require.ErrorIs(t, err, ErrInvalidMeetingID)
		require.Zero(t, up.joinCalls)
	})

	t.Run("validates name and preset", func(t *testing.T) {
		up := &fakeUpstream{}
		svc := NewMeetingService(up, store.NewInMemoryMeetingStore(), nil)

		_, err := svc.Join(ctx, JoinMeetingInput{MeetingID: "meeting-abc123def", Name: "  ", PresetName: domain.PresetViewer})
		require.ErrorIs(t, err, ErrNameRequired)

		_, err = svc.Join(ctx, JoinMeetingInput{MeetingID: "meeting-abc123def", Name: strings.Repeat("a", 51), PresetName: domain.PresetViewer})
		require.ErrorIs(t, err, ErrNameTooLong)

		_, err = svc.Join(ctx, JoinMeetingInput{MeetingID: "meeting-abc123def", Name: "Alice", PresetName: "group_call_host"})
		require.ErrorIs(t, err, ErrInvalidPreset)

		require.Zero(t, up.joinCalls)
	})

	t.Run("generates a custom participant id when absent", func(t *testing.T) {
		up := &fakeUpstream{}
		svc := NewMeetingService(up, store.NewInMemoryMeetingStore(), nil)

		_, err := svc.Join(ctx, JoinMeetingInput{MeetingID: "meeting-abc123def", Name: "Alice", PresetName: domain.PresetViewer})
		require.NoError(t, err)
		require.Regexp(t, `^participant_\d+$`, up.lastJoinReq.CustomParticipantID)
	})

	t.Run("counts participants for cached meetings", func(t *testing.T) {
		up := &fakeUpstream{}
		meetings := store.NewInMemoryMeetingStore()
		seed(t, meetings, 0)
		svc := NewMeetingService(up, meetings, nil)

		res, err := svc.Join(ctx, JoinMeetingInput{MeetingID: "meeting-abc123def", Name: "Alice", PresetName: domain.PresetViewer})
		require.NoError(t, err)
		require.NotNil(t, res.ParticipantCount)
		require.Equal(t, 1, *res.ParticipantCount)

		res, err = svc.Join(ctx, JoinMeetingInput{MeetingID: "meeting-abc123def", Name: "Bob", PresetName: domain.PresetViewer})
		require.NoError(t, err)
		require.Equal(t, 2, *res.ParticipantCount)
	})

	t.Run("returns a nil count for unknown meetings", func(t *testing.T) {
		up := &fakeUpstream{}
		svc := NewMeetingService(up, store.NewInMemoryMeetingStore(), nil)

		res, err := svc.Join(ctx, JoinMeetingInput{MeetingID: "meeting-elsewhere", Name: "Alice", PresetName: domain.PresetViewer})
		require.NoError(t, err)
		require.Nil(t, res.ParticipantCount)
		require.Equal(t, 1, up.joinCalls)
	})

	t.Run("enforces the participant limit and rolls back the count", func(t *testing.T) {
		up := &fakeUpstream{}
		meetings := store.NewInMemoryMeetingStore()
		seed(t, meetings, 2)
		svc := NewMeetingService(up, meetings, nil)

		for _, name := range []string{"Alice", "Bob"} {
			_, err := svc.Join(ctx, JoinMeetingInput{MeetingID: "meeting-abc123def", Name: name, PresetName: domain.PresetViewer})
			require.NoError(t, err)
		}

		_, err := svc.Join(ctx, JoinMeetingInput{MeetingID: "meeting-abc123def", Name: "Carol", PresetName: domain.PresetViewer})
		var limitErr *ParticipantLimitError
		require.ErrorAs(t, err, &limitErr)
		require.Equal(t, 2, limitErr.Max)
		require.Equal(t, 2, up.joinCalls)

		rec, err := meetings.Get(ctx, "meeting-abc123def")
		require.NoError(t, err)
		require.Equal(t, 2, rec.ParticipantsCount)
	})

	t.Run("rolls back the count when the upstream call fails", func(t *testing.T) {
		up := &fakeUpstream{joinErr: realtimekit.ErrNotFound}
		meetings := store.NewInMemoryMeetingStore()
		seed(t, meetings, 0)
		svc := NewMeetingService(up, meetings, nil)

		_, err := svc.Join(ctx, JoinMeetingInput{MeetingID: "meeting-abc123def", Name: "Alice", PresetName: domain.PresetViewer})
		require.ErrorIs(t, err, realtimekit.ErrNotFound)

		rec, err := meetings.Get(ctx, "meeting-abc123def")
		require.NoError(t, err)
		require.Zero(t, rec.ParticipantsCount)
	})
}

func TestMeetingServiceGet(t *testing.T) {
	ctx := context.Background()

	t.Run("serves cached meetings without touching the upstream", func(t *testing.T) {
		up := &fakeUpstream{}
		meetings := store.NewInMemoryMeetingStore()
		require.NoError(t, meetings.Put(ctx, &domain.MeetingRecord{ID: "meeting-abc123def", Title: "Town Hall"}))
		svc := NewMeetingService(up, meetings, nil)

		res, err := svc.Get(ctx, "meeting-abc123def")
		require.NoError(t, err)
		require.True(t, res.Cached)
		require.Equal(t, "Town Hall", res.Record.Title)
		require.Zero(t, up.getCalls)
	})

	t.Run("falls through to the upstream on a cache miss", func(t *testing.T) {
		up := &fakeUpstream{}
		svc := NewMeetingService(up, store.NewInMemoryMeetingStore(), nil)

		res, err := svc.Get(ctx, "meeting-elsewhere")
		require.NoError(t, err)
		require.False(t, res.Cached)
		require.Nil(t, res.Record)
		require.Equal(t, 1, up.getCalls)
	})

	t.Run("propagates an upstream not found", func(t *testing.T) {
		up := &fakeUpstream{getErr: realtimekit.ErrNotFound}
		svc := NewMeetingService(up, store.NewInMemoryMeetingStore(), nil)

		_, err := svc.Get(ctx, "meeting-missing1")
		require.True(t, errors.Is(err, realtimekit.ErrNotFound))
	})
}
