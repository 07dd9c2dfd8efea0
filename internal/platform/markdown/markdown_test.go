package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"focusstake/internal/platform/markdown"
)

func TestNoteRoundTrip(t *testing.T) {
	t.Parallel()
	note := markdown.Note{
		Meta: map[string]any{"owner": "alice", "session_number": 3},
		Body: "# Focus session 3\n",
	}
	rendered, err := note.Render()
	require.NoError(t, err)
	require.Equal(t, "---\nowner: alice\nsession_number: 3\n---\n\n# Focus session 3\n", rendered)

	parsed, err := markdown.Parse(rendered)
	require.NoError(t, err)
	require.Equal(t, "alice", parsed.Meta["owner"])
	require.Equal(t, 3, parsed.Meta["session_number"])
	require.Equal(t, "\n# Focus session 3\n", parsed.Body)
}

func TestParseEdgeCases(t *testing.T) {
	t.Parallel()
	plain, err := markdown.Parse("just text\n")
	require.NoError(t, err)
	require.Empty(t, plain.Meta)
	require.Equal(t, "just text\n", plain.Body)

	crlf, err := markdown.Parse("---\r\nowner: bob\r\n---\r\nbody\r\n")
	require.NoError(t, err)
	require.Equal(t, "bob", crlf.Meta["owner"])
	require.Equal(t, "body\n", crlf.Body)

	headerOnly, err := markdown.Parse("---\nowner: carol\n---")
	require.NoError(t, err)
	require.Equal(t, "carol", headerOnly.Meta["owner"])
	require.Empty(t, headerOnly.Body)

	_, err = markdown.Parse("---\nowner: dave\n")
	require.Error(t, err)
}

func TestBlockReplaceKeepsSurroundingText(t *testing.T) {
	t.Parallel()
	b := markdown.Block{Start: "<!-- start -->", End: "<!-- end -->"}

	require.Equal(t, "<!-- start -->\none\n<!-- end -->\n", b.Replace("", "one"))

	body := b.Replace("# Notes\nmine", "one")
	require.Equal(t, "# Notes\nmine\n\n<!-- start -->\none\n<!-- end -->\n", body)

	body = b.Replace(body+"\nafter\n", "two")
	require.Equal(t, "# Notes\nmine\n\n<!-- start -->\ntwo\n<!-- end -->\n\nafter\n", body)

	content, ok := b.Content(body)
	require.True(t, ok)
	require.Equal(t, "two", content)

	_, ok = b.Content("no markers")
	require.False(t, ok)
}
