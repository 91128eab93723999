package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

var ErrFCMUnavailable = errors.New("FCM client not initialized")

type Notification struct {
	Title     string
	Body      string
	Data      map[string]string
	ChannelID string
}

// Notifier delivers a notification to one device token
type Notifier interface {
	Send(ctx context.Context, token string, n Notification) error
}

// FCMClient is the part of *messaging.Client the notifier uses
type FCMClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// PushNotifier sends Expo tokens through the Expo push service and every
// other token through FCM
type PushNotifier struct {
	fcm        FCMClient
	expoURL    string
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

// NewPushNotifier creates a notifier. fcm may be nil, in which case only Expo
// tokens can be served.
func NewPushNotifier(fcm FCMClient, expoURL string, logger *zap.SugaredLogger) *PushNotifier {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &PushNotifier{
		fcm:        fcm,
		expoURL:    expoURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

func isExpoToken(token string) bool {
	return strings.HasPrefix(token, "ExponentPushToken[") || strings.HasPrefix(token, "ExpoPushToken[")
}

func (p *PushNotifier) Send(ctx context.Context, token string, n Notification) error {
	if token == "" {
		return errors.New("empty push token")
	}
	if isExpoToken(token) {
		return p.sendExpoPush(ctx, token, n)
	}

	if p.fcm == nil {
		return ErrFCMUnavailable
	}

	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: n.Data,
		Android: &messaging.AndroidConfig{
			Notification: &messaging.AndroidNotification{
				ChannelID: n.ChannelID,
				Priority:  messaging.PriorityHigh,
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: n.Title,
						Body:  n.Body,
					},
					Sound: "default",
				},
			},
		},
	}

	response, err := p.fcm.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("error sending message: %w", err)
	}

	p.logger.Infow("push notification sent", "provider", "fcm", "message_id", response)
	return nil
}

type expoMessage struct {
	To    string            `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Sound string            `json:"sound"`
	Data  map[string]string `json:"data,omitempty"`
}

func (p *PushNotifier) sendExpoPush(ctx context.Context, token string, n Notification) error {
	payload := []expoMessage{{
		To:    token,
		Title: n.Title,
		Body:  n.Body,
		Sound: "default",
		Data:  n.Data,
	}}
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode expo payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.expoURL, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("expo push request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("expo push failed with status %d", resp.StatusCode)
	}

	p.logger.Infow("push notification sent", "provider", "expo")
	return nil
}
