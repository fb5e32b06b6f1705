package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Maksym-Tykhonenko/ProtouchKeyCycleOlya/internal/tips"
)

type savedTipRepository struct {
	kv     KV
	logger *slog.Logger

	mu sync.Mutex
}

func (r *savedTipRepository) ListSaved(ctx context.Context) []tips.Tip {
	saved := r.load(ctx)

	// Catalog order, not save order. Always a non-nil slice so JSON output
	// stays an array.
	out := make([]tips.Tip, 0, len(saved))
	for _, tip := range tips.Catalog() {
		if _, ok := saved[tip.ID]; ok {
			out = append(out, tip)
		}
	}
	return out
}

func (r *savedTipRepository) IsSaved(ctx context.Context, id string) bool {
	_, ok := r.load(ctx)[id]
	return ok
}

// Toggle flips membership for a catalog id and returns the new state. Ids
// absent from the catalog are rejected and leave the set unchanged.
func (r *savedTipRepository) Toggle(ctx context.Context, id string) (bool, error) {
	if _, ok := tips.ByID(id); !ok {
		return false, fmt.Errorf("%w: unknown tip id %q", ErrValidation, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	order := r.loadOrder(ctx)
	next := make([]string, 0, len(order)+1)
	found := false
	for _, saved := range order {
		if saved == id {
			found = true
			continue
		}
		next = append(next, saved)
	}
	if !found {
		next = append(next, id)
	}
	r.save(ctx, next)
	return !found, nil
}

func (r *savedTipRepository) Clear(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.kv.Remove(ctx, KeySavedTips); err != nil {
		r.logger.Warn("clear saved tips", "error", err)
	}
}

func (r *savedTipRepository) load(ctx context.Context) map[string]struct{} {
	order := r.loadOrder(ctx)
	if len(order) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(order))
	for _, id := range order {
		set[id] = struct{}{}
	}
	return set
}

// The document keeps save order; reads apply catalog order on top.
func (r *savedTipRepository) loadOrder(ctx context.Context) []string {
	doc, ok, err := r.kv.Get(ctx, KeySavedTips)
	if err != nil {
		r.logger.Warn("load saved tips, falling back to empty", "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	var ids []string
	if err := json.Unmarshal(doc, &ids); err != nil {
		r.logger.Warn("decode saved tips document, falling back to empty", "error", err)
		return nil
	}
	return ids
}

func (r *savedTipRepository) save(ctx context.Context, ids []string) {
	doc, err := json.Marshal(ids)
	if err != nil {
		r.logger.Warn("encode saved tips document", "error", err)
		return
	}
	if err := r.kv.Set(ctx, KeySavedTips, doc); err != nil {
		r.logger.Warn("persist saved tips document", "error", err)
	}
}
