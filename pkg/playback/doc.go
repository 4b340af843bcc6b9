/*
Package playback implements the interactive terminal engine.

A Session accepts one line of free text at a time, echoes it, resolves it against the
command catalog and replays the canned output into its transcript on a timer. While a
command is playing the session is Busy and further submissions are silently dropped.

Every scheduled continuation carries the generation it was submitted under. Reset bumps
the generation, so output still in flight from before a reset never lands in the new
transcript.
*/
package playback
