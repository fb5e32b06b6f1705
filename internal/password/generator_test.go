package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const ambiguousChars = "lIO01"

func TestGenerateLengthAndClassCoverage(t *testing.T) {
	t.Parallel()

	for _, length := range []int{3, 4, 8, 16, 24, 64} {
		for i := 0; i < 50; i++ {
			out, err := Generate(length)
			require.NoError(t, err)
			require.Len(t, out, length)
			require.True(t, strings.ContainsAny(out, lowerChars), "missing lowercase in %q", out)
			require.True(t, strings.ContainsAny(out, upperChars), "missing uppercase in %q", out)
			require.True(t, strings.ContainsAny(out, digitChars), "missing digit in %q", out)
		}
	}
}

func TestGenerateExcludesAmbiguousGlyphs(t *testing.T) {
	t.Parallel()

	for i := 0; i < 200; i++ {
		out, err := Generate(32)
		require.NoError(t, err)
		require.False(t, strings.ContainsAny(out, ambiguousChars), "ambiguous glyph in %q", out)
	}
}

func TestGenerateRejectsTooShortLength(t *testing.T) {
	t.Parallel()

	for _, length := range []int{-1, 0, 1, 2} {
		_, err := Generate(length)
		require.ErrorIs(t, err, ErrLengthTooShort)
	}
}

func TestGenerateDoesNotRepeat(t *testing.T) {
	t.Parallel()

	// Probabilistic: 1000 draws from a ~93-bit space should never collide.
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		out, err := Generate(DefaultLength)
		require.NoError(t, err)
		_, dup := seen[out]
		require.False(t, dup, "duplicate password %q", out)
		seen[out] = struct{}{}
	}
}

func TestGenerateShufflesClassSeedPositions(t *testing.T) {
	t.Parallel()

	// The class-guaranteed characters must not be anchored at the first
	// three positions: over many runs a digit has to show up in position 0.
	for i := 0; i < 1000; i++ {
		out, err := Generate(DefaultLength)
		require.NoError(t, err)
		if strings.ContainsRune(digitChars, rune(out[0])) {
			return
		}
	}
	t.Fatal("digit never appeared in the first position across 1000 runs")
}
