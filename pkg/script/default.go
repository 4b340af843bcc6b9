package script

import (
	"time"

	"github.com/praaatap/gdit.site/pkg/domain"
)

func line(kind domain.Kind, text string, delayMs int) domain.ScriptLine {
	return domain.ScriptLine{Kind: kind, Text: text, PostDelay: time.Duration(delayMs) * time.Millisecond}
}

// DefaultScript returns the landing-page demo: init, add, commit and push.
func DefaultScript() []domain.ScriptLine {
	const (
		cmd     = domain.KindCommand
		out     = domain.KindOutput
		ok      = domain.KindSuccess
		info    = domain.KindInfo
		comment = domain.KindComment
	)
	return []domain.ScriptLine{
		line(comment, "# Initialize a new gdit repository", 0),
		line(cmd, "gdit init", 500),
		line(info, "◐ Creating Drive folder...", 300),
		line(ok, "✓ Created folder: my-project", 400),
		line(ok, "✓ Repository initialized", 200),
		line(out, "", 300),
		line(cmd, "gdit add .", 600),
		line(info, "◐ Scanning files...", 200),
		line(ok, "✓ Staged 14 files (2.3 MB)", 300),
		line(out, "", 300),
		line(cmd, `gdit commit -m "Initial commit"`, 500),
		line(ok, "✓ Committed: Initial commit", 300),
		line(out, "", 300),
		line(cmd, "gdit push", 500),
		line(info, "◐ Uploading to Google Drive...", 300),
		line(out, "  [████████████████████████████████] 100%", 800),
		line(ok, "✓ 14 files pushed successfully", 200),
		line(out, "", 200),
		line(out, "📊 Push Summary", 100),
		line(out, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━", 50),
		line(out, "   New files:     14", 50),
		line(out, "   Total size:    2.3 MB", 50),
		line(out, "   Time:          1.2s", 50),
	}
}
