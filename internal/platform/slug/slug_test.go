package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"focusstake/internal/platform/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Alice Doe":          "alice-doe",
		"  --bob__smith--  ": "bob-smith",
		"vault-authority":    "vault-authority",
		"émile":              "mile",
		"!!!":                "anonymous",
		"":                   "anonymous",
	}
	for in, want := range cases {
		require.Equal(t, want, slug.Make(in), in)
	}
}

func TestMakeBoundsLength(t *testing.T) {
	t.Parallel()
	got := slug.Make(strings.Repeat("ab ", 50))
	require.LessOrEqual(t, len(got), 64)
	require.False(t, strings.HasSuffix(got, "-"))
}
