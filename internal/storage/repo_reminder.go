package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jmhodges/clock"
)

type reminderRepository struct {
	kv     KV
	clk    clock.Clock
	logger *slog.Logger

	// Serializes read-modify-write cycles against the reminders document so
	// two quick successive mutations cannot clobber each other.
	mu sync.Mutex
}

func (r *reminderRepository) List(ctx context.Context) []Reminder {
	items := r.load(ctx)
	if items == nil {
		items = []Reminder{}
	}
	now := r.clk.Now()
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].DaysLeft(now) < items[j].DaysLeft(now)
	})
	return items
}

func (r *reminderRepository) Create(ctx context.Context, req CreateReminderRequest) (*Reminder, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: reminder title is required", ErrValidation)
	}
	if !req.Interval.Valid() {
		return nil, fmt.Errorf("%w: interval must be 10, 30 or 60 days", ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	reminder := Reminder{
		ID:        uuid.NewString(),
		Title:     title,
		Comment:   strings.TrimSpace(req.Comment),
		Interval:  req.Interval,
		CreatedAt: r.clk.Now().UnixMilli(),
	}

	items := append(r.load(ctx), reminder)
	r.save(ctx, items)
	return &reminder, nil
}

func (r *reminderRepository) Update(ctx context.Context, req UpdateReminderRequest) (*Reminder, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: reminder title is required", ErrValidation)
	}
	if !req.Interval.Valid() {
		return nil, fmt.Errorf("%w: interval must be 10, 30 or 60 days", ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.load(ctx)
	for i := range items {
		if items[i].ID != req.ID {
			continue
		}
		// Edit in place: id and createdAt survive any number of edits.
		items[i].Title = title
		items[i].Comment = strings.TrimSpace(req.Comment)
		items[i].Interval = req.Interval
		r.save(ctx, items)
		updated := items[i]
		return &updated, nil
	}
	return nil, fmt.Errorf("%w: reminder %s", ErrNotFound, req.ID)
}

func (r *reminderRepository) Delete(ctx context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.load(ctx)
	kept := items[:0]
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return
	}
	r.save(ctx, kept)
}

func (r *reminderRepository) DeleteAll(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.kv.Remove(ctx, KeyReminders); err != nil {
		r.logger.Warn("clear reminders", "error", err)
	}
}

func (r *reminderRepository) load(ctx context.Context) []Reminder {
	doc, ok, err := r.kv.Get(ctx, KeyReminders)
	if err != nil {
		r.logger.Warn("load reminders, falling back to empty", "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	var items []Reminder
	if err := json.Unmarshal(doc, &items); err != nil {
		r.logger.Warn("decode reminders document, falling back to empty", "error", err)
		return nil
	}
	return items
}

func (r *reminderRepository) save(ctx context.Context, items []Reminder) {
	doc, err := json.Marshal(items)
	if err != nil {
		r.logger.Warn("encode reminders document", "error", err)
		return
	}
	if err := r.kv.Set(ctx, KeyReminders, doc); err != nil {
		// Best-effort persistence: one attempt, no retry.
		r.logger.Warn("persist reminders document", "error", err)
	}
}
