/*
Package runner hosts the gdit engines on a plain terminal or a JSON pipe.

It is the bridge between the engines (playback.Session, script.Player) and the outside
world. Transcript events are forwarded to a pluggable IOHandler; input is sanitized
before it reaches the engine.

# Key Components

  - Runner: reads input, submits it and streams playback until the session is idle.
  - IOHandler: decouples presentation from the loop.
  - TextHandler: coloured output through termenv, with a redrawn typing line.
  - JSONHandler: one JSON object per line, for scripting and tests.

# Usage

	s := playback.New(catalog.Default(), clock.NewReal())
	r := runner.NewRunner(runner.WithInputHandler(runner.NewJSONHandler(os.Stdin, os.Stdout)))

	if err := r.Run(ctx, s); err != nil {
		log.Fatal(err)
	}
*/
package runner
