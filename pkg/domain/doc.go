/*
Package domain contains the core value types shared by the gdit terminal simulation engines.

It defines what a simulated terminal shows (OutputLine), what the autoplay demo types
(ScriptLine) and how far it has got (Cursor). This package is kept pure and free of
timers, I/O or rendering concerns; those live in the engines and presentation layers.

# Key Entities

  - Kind: The visual category of a line (command echo, output, success, error, info, comment).
  - OutputLine: An immutable line of a transcript.
  - ScriptLine: An element of the fixed autoplay script, with its post-line delay.
  - Cursor: The monotonic progress pointer of the autoplay engine.
  - LifecycleHooks: Observability callbacks invoked by both engines.
*/
package domain
