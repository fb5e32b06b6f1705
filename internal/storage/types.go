package storage

import (
	"context"
	"errors"
	"time"

	"github.com/Maksym-Tykhonenko/ProtouchKeyCycleOlya/internal/tips"
)

var (
	ErrValidation   = errors.New("storage: validation failed")
	ErrNotFound     = errors.New("storage: not found")
	ErrSchemaTooNew = errors.New("storage: schema version newer than code")
)

// Interval is the rotation period of a reminder, in days. Only the three
// enumerated values are accepted for new or edited reminders.
type Interval int

const (
	Interval10 Interval = 10
	Interval30 Interval = 30
	Interval60 Interval = 60
)

func (i Interval) Valid() bool {
	return i == Interval10 || i == Interval30 || i == Interval60
}

const millisPerDay = 86_400_000

// Reminder is one persisted "change this credential" entry. CreatedAt is an
// epoch-millisecond timestamp fixed at creation; edits never touch it.
type Reminder struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Comment   string   `json:"comment,omitempty"`
	Interval  Interval `json:"interval"`
	CreatedAt int64    `json:"createdAt"`
}

// DaysLeft derives the countdown from stored fields and the given time. It is
// never cached in the persisted document. Elapsed days floor by full 24-hour
// blocks since CreatedAt, so a reminder created at 23:59 counts one elapsed
// day 86.4M milliseconds later, not at the next midnight. The value floors at
// zero and stays there; an overdue reminder never resets itself.
func (r Reminder) DaysLeft(now time.Time) int {
	elapsed := floorDiv(now.UnixMilli()-r.CreatedAt, millisPerDay)
	left := int64(r.Interval) - elapsed
	if left < 0 {
		return 0
	}
	return int(left)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// Settings is the total preferences document. Loads always return every
// field; missing keys in a stale persisted document fall back to defaults.
type Settings struct {
	Notifications bool `json:"notifications"`
	Vibration     bool `json:"vibration"`
	HideByDefault bool `json:"hideByDefault"`
}

func DefaultSettings() Settings {
	return Settings{
		Notifications: true,
		Vibration:     true,
		HideByDefault: true,
	}
}

// SettingsPatch carries the fields an update wants to change; nil fields keep
// their current value.
type SettingsPatch struct {
	Notifications *bool
	Vibration     *bool
	HideByDefault *bool
}

type CreateReminderRequest struct {
	Title    string
	Comment  string
	Interval Interval
}

type UpdateReminderRequest struct {
	ID       string
	Title    string
	Comment  string
	Interval Interval
}

// KV is the adapter boundary every repository reads and writes through. Get
// reports ok=false when the key has never been written. Remove issues one
// delete per key with no cross-key atomicity.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, doc []byte) error
	Remove(ctx context.Context, keys ...string) error
}

// ReminderRepository owns the protouch.reminders document. Reads never fail
// outward: a broken or unreadable document behaves as an empty collection.
// Writes are best-effort and attempted once.
type ReminderRepository interface {
	// List returns reminders ordered by ascending days left, ties keeping
	// insertion order.
	List(ctx context.Context) []Reminder
	Create(ctx context.Context, req CreateReminderRequest) (*Reminder, error)
	Update(ctx context.Context, req UpdateReminderRequest) (*Reminder, error)
	// Delete is an idempotent no-op for an absent id.
	Delete(ctx context.Context, id string)
	DeleteAll(ctx context.Context)
}

// SettingsRepository owns the protouch.settings document.
type SettingsRepository interface {
	Load(ctx context.Context) Settings
	Update(ctx context.Context, patch SettingsPatch) Settings
	Reset(ctx context.Context) Settings
}

// SavedTipRepository owns the protouch.saved.tips document, a set of catalog
// ids. Toggle rejects ids that do not resolve in the compiled-in catalog.
type SavedTipRepository interface {
	// ListSaved returns bookmarked tips in catalog order, not save order.
	ListSaved(ctx context.Context) []tips.Tip
	IsSaved(ctx context.Context, id string) bool
	Toggle(ctx context.Context, id string) (bool, error)
	Clear(ctx context.Context)
}
