/*
Package clock provides the cooperative scheduling abstraction both playback engines run on.

Engines never sleep. Each step schedules its continuation through a Scheduler, so the
same engine code runs against wall-clock timers in production (Real) and against a
manually advanced virtual clock in tests and fast-forward adapters (Virtual).
*/
package clock
