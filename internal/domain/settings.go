package domain

type SoundType string

const (
	SoundDefault SoundType = "default"
	SoundBell    SoundType = "bell"
	SoundChime   SoundType = "chime"
	SoundPing    SoundType = "ping"
)

func (s SoundType) Valid() bool {
	switch s {
	case SoundDefault, SoundBell, SoundChime, SoundPing:
		return true
	}
	return false
}

const (
	MinNotificationDuration = 3000
	MaxNotificationDuration = 15000
)

// NotificationSettings are per admin client and never shared across clients.
type NotificationSettings struct {
	Enabled      bool      `json:"enabled"`
	Duration     int       `json:"duration"` // milliseconds
	SoundEnabled bool      `json:"sound_enabled"`
	Sound        SoundType `json:"sound"`
	Volume       float64   `json:"volume"` // 0.0 to 1.0
}

func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		Enabled:      true,
		Duration:     8000,
		SoundEnabled: true,
		Sound:        SoundDefault,
		Volume:       0.3,
	}
}
