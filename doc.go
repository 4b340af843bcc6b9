/*
Package gdit is a scripted terminal simulation engine for the gdit command-line
tool's demo. It fakes a live command line without executing anything.

Two engines share a command catalog:

  - a Player autoplays a fixed script, typing commands one character at a time
    and then blinking the cursor forever;
  - a Session answers free-text input by replaying the matching catalog entry
    line by line, with delays that depend on the kind of each line.

Both run on a clock.Scheduler. clock.Real drives them in wall time; clock.Virtual
makes every run deterministic, which the tests and the MCP adapter rely on.

# Usage

	eng, err := gdit.New(gdit.WithSeed(42))
	if err != nil {
		log.Fatal(err)
	}

	s := eng.NewSession(clock.NewReal())
	s.Submit("gdit status")
	_ = s.Wait(ctx)

	for _, line := range s.Lines() {
		fmt.Println(line.Text)
	}

Hosts render the transcript however they like: pkg/runner for plain text or
JSON lines, internal/presentation/tui for a terminal UI, pkg/adapters/http for
a browser widget and pkg/adapters/mcp for AI agents.
*/
package gdit
