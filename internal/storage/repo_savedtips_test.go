package storage

import (
	"context"
	"testing"

	"github.com/Maksym-Tykhonenko/ProtouchKeyCycleOlya/internal/tips"
	"github.com/stretchr/testify/require"
)

func TestSavedTipsToggleIsItsOwnInverse(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	saved, err := store.SavedTips.Toggle(ctx, "5")
	require.NoError(t, err)
	require.True(t, saved)
	require.True(t, store.SavedTips.IsSaved(ctx, "5"))

	saved, err = store.SavedTips.Toggle(ctx, "5")
	require.NoError(t, err)
	require.False(t, saved)
	require.False(t, store.SavedTips.IsSaved(ctx, "5"))

	listed := store.SavedTips.ListSaved(ctx)
	require.NotNil(t, listed)
	require.Empty(t, listed)
}

func TestSavedTipsToggleRejectsUnknownID(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.SavedTips.Toggle(ctx, "3")
	require.NoError(t, err)

	for _, id := range []string{"0", "16", "abc", ""} {
		_, err := store.SavedTips.Toggle(ctx, id)
		require.ErrorIs(t, err, ErrValidation)
	}

	// Numeric aliases of valid positions are rejected too; only the exact
	// catalog id strings are members.
	for _, id := range []string{"01", "007", "+5", " 3"} {
		_, err := store.SavedTips.Toggle(ctx, id)
		require.ErrorIs(t, err, ErrValidation)
		require.False(t, store.SavedTips.IsSaved(ctx, id))
	}

	// The rejected toggles left the set unchanged.
	listed := store.SavedTips.ListSaved(ctx)
	require.Len(t, listed, 1)
	require.Equal(t, "3", listed[0].ID)
}

func TestSavedTipsListInCatalogOrderNotSaveOrder(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"9", "2", "15"} {
		_, err := store.SavedTips.Toggle(ctx, id)
		require.NoError(t, err)
	}

	listed := store.SavedTips.ListSaved(ctx)
	require.Len(t, listed, 3)
	require.Equal(t, "2", listed[0].ID)
	require.Equal(t, "9", listed[1].ID)
	require.Equal(t, "15", listed[2].ID)

	for _, tip := range listed {
		expected, ok := tips.ByID(tip.ID)
		require.True(t, ok)
		require.Equal(t, expected, tip)
	}
}

func TestSavedTipsClear(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.SavedTips.Toggle(ctx, "1")
	require.NoError(t, err)
	_, err = store.SavedTips.Toggle(ctx, "2")
	require.NoError(t, err)

	store.SavedTips.Clear(ctx)
	require.Empty(t, store.SavedTips.ListSaved(ctx))
	require.False(t, store.SavedTips.IsSaved(ctx, "1"))
}

func TestSavedTipsToleratesCorruptDocument(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeySavedTips, []byte(`{broken`)))
	require.Empty(t, store.SavedTips.ListSaved(ctx))
	require.False(t, store.SavedTips.IsSaved(ctx, "1"))

	saved, err := store.SavedTips.Toggle(ctx, "1")
	require.NoError(t, err)
	require.True(t, saved)
}
