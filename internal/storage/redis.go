package storage

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// SettingsStore keeps one flat hash per admin client. Values are written as
// strings and parsed back by the service layer, which owns the defaults.
type SettingsStore struct {
	Client *redis.Client
}

func NewSettingsStore(client *redis.Client) *SettingsStore {
	return &SettingsStore{Client: client}
}

func (s *SettingsStore) settingsKey(clientID string) string {
	return "settings:" + clientID
}

// Load returns the raw stored fields. An absent client yields an empty map.
func (s *SettingsStore) Load(ctx context.Context, clientID string) (map[string]string, error) {
	return s.Client.HGetAll(ctx, s.settingsKey(clientID)).Result()
}

func (s *SettingsStore) Save(ctx context.Context, clientID string, fields map[string]interface{}) error {
	return s.Client.HSet(ctx, s.settingsKey(clientID), fields).Err()
}
