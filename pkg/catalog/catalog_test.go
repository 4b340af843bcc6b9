package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praaatap/gdit.site/pkg/domain"
)

func TestDefault_DeclarationOrder(t *testing.T) {
	c := Default()

	assert.Equal(t, []string{
		"gdit init", "gdit add .", "gdit add", "gdit status", "gdit commit",
		"gdit push", "gdit pull", "gdit log", "gdit whoami", "help", "clear",
	}, c.Keys())
	assert.Equal(t, DefaultSuggestions, c.Suggestions())
}

func TestDefault_StatusHasEightLines(t *testing.T) {
	e, ok := Default().Lookup("gdit status")
	require.True(t, ok)
	require.Len(t, e.Lines, 8)
	assert.Equal(t, "📁 Repository: my-project", e.Lines[1].Text)
	assert.Equal(t, domain.KindSuccess, e.Lines[3].Kind)
	assert.Equal(t, "  New:       README.md", e.Lines[7].Text)
}

func TestDefault_ClearIsEmpty(t *testing.T) {
	e, ok := Default().Lookup(ClearCommand)
	require.True(t, ok)
	assert.Empty(t, e.Lines)
}

func TestDefault_HelpMentionsEverySuggestion(t *testing.T) {
	e, ok := Default().Lookup(HelpCommand)
	require.True(t, ok)
	var joined string
	for _, l := range e.Lines {
		joined += l.Text + "\n"
	}
	for _, s := range DefaultSuggestions {
		assert.Contains(t, joined, s)
	}
}

func TestNew_RejectsDuplicates(t *testing.T) {
	_, err := New([]Entry{{Command: "Help"}, {Command: "help "}})
	assert.ErrorIs(t, err, domain.ErrDuplicateCommand)
}

func TestNew_AppendsClear(t *testing.T) {
	c, err := New([]Entry{{Command: "ls"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"ls", "clear"}, c.Keys())
}

func TestEntries_IsolatedFromCaller(t *testing.T) {
	c := Default()
	entries := c.Entries()
	entries[0].Lines[0].Text = "mutated"

	e, _ := c.Lookup("gdit init")
	assert.Equal(t, "◐ Creating Drive folder...", e.Lines[0].Text)
}

func TestParse_YAML(t *testing.T) {
	data := []byte(`
suggestions: [deploy]
commands:
  - command: Deploy
    description: Ship it
    lines:
      - kind: info
        text: "◐ Deploying..."
      - kind: success
        text: "✓ Done"
      - text: ""
`)
	c, err := Parse(data, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"deploy", "clear"}, c.Keys())
	assert.Equal(t, []string{"deploy"}, c.Suggestions())
	e, _ := c.Lookup("deploy")
	assert.Equal(t, []domain.OutputLine{
		domain.Line(domain.KindInfo, "◐ Deploying..."),
		domain.Line(domain.KindSuccess, "✓ Done"),
		domain.Line(domain.KindOutput, ""),
	}, e.Lines)
}

func TestParse_UnknownKind(t *testing.T) {
	_, err := Parse([]byte(`{"commands":[{"command":"x","lines":[{"kind":"blink","text":"?"}]}]}`), true)
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}

func TestLoadFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"commands":[{"command":"whoami","lines":[{"kind":"output","text":"me"}]}]}`), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	e, ok := c.Lookup("whoami")
	require.True(t, ok)
	assert.Equal(t, "me", e.Lines[0].Text)
}

func TestMarkdown_ListsCommands(t *testing.T) {
	md := Default().Markdown()
	assert.Contains(t, md, "| `gdit whoami` | User info | 5 |")
	assert.Contains(t, md, "Try: `gdit init`")
}
