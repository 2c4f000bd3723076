package store

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/appifylab/webinar-platform/internal/domain"
)

const (
	meetingKeyPrefix = "webinar:meeting:"
	meetingIndexKey  = "webinar:meetings"
)

// RedisMeetingStore keeps records in Redis hashes so several gateway
// processes can share one view of the meeting map. Counter updates use
// HINCRBY and stay atomic across processes.
type RedisMeetingStore struct {
	client *redis.Client
}

func NewRedisMeetingStore(client *redis.Client) *RedisMeetingStore {
	return &RedisMeetingStore{client: client}
}

func (s *RedisMeetingStore) Put(ctx context.Context, rec *domain.MeetingRecord) error {
	key := meetingKeyPrefix + rec.ID

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, map[string]any{
		"id":                 rec.ID,
		"title":              rec.Title,
		"preferred_region":   rec.PreferredRegion,
		"created_at":         rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		"created_by_ip":      rec.CreatedByIP,
		"participants_count": rec.ParticipantsCount,
		"max_participants":   rec.MaxParticipants,
	})
	pipe.SAdd(ctx, meetingIndexKey, rec.ID)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisMeetingStore) Get(ctx context.Context, id string) (*domain.MeetingRecord, error) {
	fields, err := s.client.HGetAll(ctx, meetingKeyPrefix+id).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrMeetingNotFound
	}

	rec := &domain.MeetingRecord{
		ID:              fields["id"],
		Title:           fields["title"],
		PreferredRegion: fields["preferred_region"],
		CreatedByIP:     fields["created_by_ip"],
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, fields["created_at"])
	rec.ParticipantsCount, _ = strconv.Atoi(fields["participants_count"])
	rec.MaxParticipants, _ = strconv.Atoi(fields["max_participants"])
	return rec, nil
}

func (s *RedisMeetingStore) Delete(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	del := pipe.Del(ctx, meetingKeyPrefix+id)
	pipe.SRem(ctx, meetingIndexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	if del.Val() == 0 {
		return ErrMeetingNotFound
	}
	return nil
}

func (s *RedisMeetingStore) Increment(ctx context.Context, id string) (int, error) {
	key := meetingKeyPrefix + id

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if exists == 0 {
		return 0, ErrMeetingNotFound
	}

	n, err := s.client.HIncrBy(ctx, key, "participants_count", 1).Result()
	return int(n), err
}

func (s *RedisMeetingStore) Decrement(ctx context.Context, id string) (int, error) {
	key := meetingKeyPrefix + id

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if exists == 0 {
		return 0, ErrMeetingNotFound
	}

	n, err := s.client.HIncrBy(ctx, key, "participants_count", -1).Result()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		// floor at zero
		if err := s.client.HSet(ctx, key, "participants_count", 0).Err(); err != nil {
			return 0, err
		}
		n = 0
	}
	return int(n), nil
}

func (s *RedisMeetingStore) Count(ctx context.Context) (int, error) {
	n, err := s.client.SCard(ctx, meetingIndexKey).Result()
	return int(n), err
}
