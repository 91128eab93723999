package models

import "time"

type PushToken struct {
	ExpoPushToken string    `json:"expo_push_token"`
	FCMToken      string    `json:"fcm_token,omitempty"`
	Platform      string    `json:"platform"`
	Timezone      string    `json:"timezone"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Target returns the token notifications should be sent to, preferring FCM
func (p PushToken) Target() string {
	if p.FCMToken != "" {
		return p.FCMToken
	}
	return p.ExpoPushToken
}
