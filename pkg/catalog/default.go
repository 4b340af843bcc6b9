package catalog

import "github.com/praaatap/gdit.site/pkg/domain"

func out(text string) domain.OutputLine     { return domain.Line(domain.KindOutput, text) }
func success(text string) domain.OutputLine { return domain.Line(domain.KindSuccess, text) }
func info(text string) domain.OutputLine    { return domain.Line(domain.KindInfo, text) }

var stageLines = []domain.OutputLine{
	info("◐ Scanning files..."),
	out("  Found 14 files (2.3 MB)"),
	success("✓ Staged 14 files"),
}

// DefaultSuggestions are the commands offered as one-click buttons.
var DefaultSuggestions = []string{"gdit init", "gdit add .", "gdit status", "gdit commit", "gdit push"}

// DefaultEntries is the catalog shipped with the site, in matching order.
var DefaultEntries = []Entry{
	{
		Command:     "gdit init",
		Description: "Initialize repository",
		Lines: []domain.OutputLine{
			info("◐ Creating Drive folder..."),
			success("✓ Created folder: my-project"),
			success("✓ Repository initialized"),
			out(""),
			out("  Remote: https://drive.google.com/drive/folders/abc123"),
		},
	},
	{Command: "gdit add .", Description: "Stage all files", Lines: stageLines},
	{Command: "gdit add", Description: "Stage files", Lines: stageLines},
	{
		Command:     "gdit status",
		Description: "Show status",
		Lines: []domain.OutputLine{
			out(""),
			out("📁 Repository: my-project"),
			out("━━━━━━━━━━━━━━━━━━━━━━━━━━━"),
			success("✓ 14 files staged"),
			out(""),
			out("  Modified:  src/index.ts"),
			out("  Modified:  package.json"),
			out("  New:       README.md"),
		},
	},
	{
		Command:     "gdit commit",
		Description: "Commit changes",
		Lines: []domain.OutputLine{
			success("✓ Committed: Update project files"),
			out("  14 files | +234 -12 lines"),
		},
	},
	{
		Command:     "gdit push",
		Description: "Push to Drive",
		Lines: []domain.OutputLine{
			info("◐ Comparing with remote..."),
			info("◐ Uploading to Google Drive..."),
			out(""),
			out("  [████████████████████████████████] 100%"),
			out(""),
			success("✓ 14 files pushed successfully"),
			out(""),
			out("📊 Push Summary"),
			out("━━━━━━━━━━━━━━━━━━━━"),
			out("   New files:     3"),
			out("   Updated:       11"),
			out("   Total size:    2.3 MB"),
			out("   Time:          1.2s"),
		},
	},
	{
		Command:     "gdit pull",
		Description: "Pull from Drive",
		Lines: []domain.OutputLine{
			info("◐ Fetching from Google Drive..."),
			out(""),
			out("  [████████████████████████████████] 100%"),
			out(""),
			success("✓ 8 files downloaded"),
			out("  No conflicts detected"),
		},
	},
	{
		Command:     "gdit log",
		Description: "View history",
		Lines: []domain.OutputLine{
			out(""),
			out("📜 Commit History"),
			out("━━━━━━━━━━━━━━━━━━━━━━━━━━━"),
			out(""),
			success("● a1b2c3d Update project files"),
			out("  Dec 25, 2024 • 14 files • ✓ pushed"),
			out(""),
			success("● e4f5g6h Initial commit"),
			out("  Dec 24, 2024 • 8 files • ✓ pushed"),
		},
	},
	{
		Command:     "gdit whoami",
		Description: "User info",
		Lines: []domain.OutputLine{
			out(""),
			out("👤 User Information"),
			out("━━━━━━━━━━━━━━━━━━━━━━━━━"),
			out("  Email:    developer@example.com"),
			out("  Storage:  2.3 GB / 15 GB used"),
		},
	},
	{
		Command:     HelpCommand,
		Description: "List commands",
		Lines: []domain.OutputLine{
			out(""),
			out("📖 Available Commands:"),
			out("━━━━━━━━━━━━━━━━━━━━━━━━━"),
			out("  gdit init      Initialize repository"),
			out("  gdit add .     Stage all files"),
			out("  gdit status    Show status"),
			out("  gdit commit    Commit changes"),
			out("  gdit push      Push to Drive"),
			out("  gdit pull      Pull from Drive"),
			out("  gdit log       View history"),
			out("  gdit whoami    User info"),
			out("  clear          Clear terminal"),
		},
	},
	{Command: ClearCommand, Description: "Clear terminal"},
}

// Default returns the catalog shipped with the site.
func Default() *Catalog {
	c, err := New(DefaultEntries, WithSuggestions(DefaultSuggestions...))
	if err != nil {
		panic("catalog: invalid default entries: " + err.Error())
	}
	return c
}
