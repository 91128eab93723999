package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"io.winapps.moodjournal/internal/kvstore"
	notificationsmodels "io.winapps.moodjournal/internal/models/notifications"
)

// PushTokenKey is where the registered device token is kept
const PushTokenKey = "push_token"

var ErrNoPushToken = errors.New("no push token registered")

// TokenStore persists the single device push token next to the journal
type TokenStore struct {
	kv kvstore.Store
}

func NewTokenStore(kv kvstore.Store) *TokenStore {
	return &TokenStore{kv: kv}
}

func (s *TokenStore) Save(ctx context.Context, token notificationsmodels.PushToken) error {
	raw, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode push token: %w", err)
	}
	if err := s.kv.Set(ctx, PushTokenKey, string(raw)); err != nil {
		return fmt.Errorf("failed to save push token: %w", err)
	}
	return nil
}

func (s *TokenStore) Load(ctx context.Context) (notificationsmodels.PushToken, error) {
	var token notificationsmodels.PushToken
	raw, err := s.kv.Get(ctx, PushTokenKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return token, ErrNoPushToken
	}
	if err != nil {
		return token, fmt.Errorf("failed to read push token: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &token); err != nil {
		return token, fmt.Errorf("failed to decode push token: %w", err)
	}
	if token.Target() == "" {
		return token, ErrNoPushToken
	}
	return token, nil
}
