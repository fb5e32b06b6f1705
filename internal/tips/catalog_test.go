package tips

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalogHasFifteenOrderedEntries(t *testing.T) {
	t.Parallel()

	catalog := Catalog()
	require.Len(t, catalog, 15)
	require.Equal(t, 15, Len())

	for i, tip := range catalog {
		require.Equal(t, strconv.Itoa(i+1), tip.ID)
		require.Equal(t, "Tip #"+tip.ID, tip.Title)
		require.NotEmpty(t, tip.Text)
	}
}

func TestByID(t *testing.T) {
	t.Parallel()

	first, ok := ByID("1")
	require.True(t, ok)
	require.Equal(t, "Use different passwords for each account.", first.Text)

	last, ok := ByID("15")
	require.True(t, ok)
	require.Equal(t, "Log out from services you no longer use.", last.Text)

	for _, id := range []string{"0", "16", "-1", "abc", "", "1.5"} {
		_, ok := ByID(id)
		require.False(t, ok, "expected id %q to be unknown", id)
	}
}

func TestByIDRequiresCanonicalID(t *testing.T) {
	t.Parallel()

	// Strings that parse to an in-range number are still not catalog ids
	// unless they match the stored id exactly.
	for _, id := range []string{"01", "007", "+5", " 1", "1 ", "0x5"} {
		_, ok := ByID(id)
		require.False(t, ok, "expected alias %q to be rejected", id)
	}
}

func TestCatalogReturnsACopy(t *testing.T) {
	t.Parallel()

	mutated := Catalog()
	mutated[0].Text = "changed"

	fresh, ok := ByID("1")
	require.True(t, ok)
	require.Equal(t, "Use different passwords for each account.", fresh.Text)
}
