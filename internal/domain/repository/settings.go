package repository

import "context"

// SettingsRepository exposes operational flags consulted by request flows.
type SettingsRepository interface {
	RedemptionPaused(ctx context.Context) (bool, error)
	SetRedemptionPaused(ctx context.Context, paused bool) error
}
