package dto

type SettingsResource struct {
	LowBalanceThreshold string `json:"low_balance_threshold"`
	SoundAlertsEnabled  bool   `json:"sound_alerts_enabled"`
	NotificationsChatID string `json:"notifications_chat_id,omitempty"`
}

type GetSettingsQuery struct {
	UserID int64
}

type UpdateSettingsCommand struct {
	UserID              int64
	LowBalanceThreshold string
	SoundAlertsEnabled  bool
	NotificationsChatID string
}
