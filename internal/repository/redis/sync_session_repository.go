package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"chatfolders-be/pkg/syncer"

	goredis "github.com/redis/go-redis/v9"
)

// SyncSession is the per-device sync lifecycle record. Each browser profile
// the extension runs in gets its own session keyed by (user, device).
type SyncSession struct {
	UserID    string       `json:"user_id"`
	DeviceID  string       `json:"device_id"`
	State     syncer.State `json:"state"`
	LastError string       `json:"last_error,omitempty"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type SyncSessionRepository struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewSyncSessionRepository(client *goredis.Client, ttl time.Duration) *SyncSessionRepository {
	return &SyncSessionRepository{
		client: client,
		ttl:    ttl,
	}
}

func sessionKey(userId, deviceId string) string {
	return fmt.Sprintf("sync:session:%s:%s", userId, deviceId)
}

func (r *SyncSessionRepository) Save(ctx context.Context, session *SyncSession) error {
	session.UpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal sync session: %w", err)
	}
	return r.client.Set(ctx, sessionKey(session.UserID, session.DeviceID), data, r.ttl).Err()
}

// Get returns nil without error when no session exists for the device.
func (r *SyncSessionRepository) Get(ctx context.Context, userId, deviceId string) (*SyncSession, error) {
	data, err := r.client.Get(ctx, sessionKey(userId, deviceId)).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session SyncSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sync session: %w", err)
	}
	return &session, nil
}

func (r *SyncSessionRepository) Delete(ctx context.Context, userId, deviceId string) error {
	return r.client.Del(ctx, sessionKey(userId, deviceId)).Err()
}

// DeleteAllForUser clears every device session, used when cloud sync is
// disabled account-wide.
func (r *SyncSessionRepository) DeleteAllForUser(ctx context.Context, userId string) error {
	iter := r.client.Scan(ctx, 0, fmt.Sprintf("sync:session:%s:*", userId), 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
