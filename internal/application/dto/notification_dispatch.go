package dto

import "time"

type EnqueueNotificationCommand struct {
	ChatID    string
	Kind      string
	Text      string
	PhotoURLs []string
}

type DispatchNotificationsCommand struct {
	WorkerID      string
	BatchSize     int
	MaxAttempts   int
	LeaseDuration time.Duration
	RetryBackoff  time.Duration
	Now           time.Time
}

type DispatchNotificationsOutput struct {
	Claimed   int `json:"claimed"`
	Delivered int `json:"delivered"`
	Retried   int `json:"retried"`
	Failed    int `json:"failed"`
}
