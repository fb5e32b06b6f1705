package storage

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

type settingsRepository struct {
	kv     KV
	logger *slog.Logger

	mu sync.Mutex
}

// Load never fails outward. A missing key, a read error or a corrupt
// document all yield the defaults; a partial document merges over them.
func (r *settingsRepository) Load(ctx context.Context) Settings {
	return r.load(ctx)
}

func (r *settingsRepository) Update(ctx context.Context, patch SettingsPatch) Settings {
	r.mu.Lock()
	defer r.mu.Unlock()

	settings := r.load(ctx)
	if patch.Notifications != nil {
		settings.Notifications = *patch.Notifications
	}
	if patch.Vibration != nil {
		settings.Vibration = *patch.Vibration
	}
	if patch.HideByDefault != nil {
		settings.HideByDefault = *patch.HideByDefault
	}
	r.save(ctx, settings)
	return settings
}

func (r *settingsRepository) Reset(ctx context.Context) Settings {
	r.mu.Lock()
	defer r.mu.Unlock()

	settings := DefaultSettings()
	r.save(ctx, settings)
	return settings
}

func (r *settingsRepository) load(ctx context.Context) Settings {
	settings := DefaultSettings()

	doc, ok, err := r.kv.Get(ctx, KeySettings)
	if err != nil {
		r.logger.Warn("load settings, falling back to defaults", "error", err)
		return settings
	}
	if !ok {
		return settings
	}

	// Decoding into a defaults-initialized struct makes missing keys in a
	// stale document fall back field by field.
	if err := json.Unmarshal(doc, &settings); err != nil {
		r.logger.Warn("decode settings document, falling back to defaults", "error", err)
		return DefaultSettings()
	}
	return settings
}

func (r *settingsRepository) save(ctx context.Context, settings Settings) {
	doc, err := json.Marshal(settings)
	if err != nil {
		r.logger.Warn("encode settings document", "error", err)
		return
	}
	if err := r.kv.Set(ctx, KeySettings, doc); err != nil {
		r.logger.Warn("persist settings document", "error", err)
	}
}
