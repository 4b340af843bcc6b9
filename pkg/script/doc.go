/*
Package script implements the autoplay terminal engine.

A Player plays one fixed script exactly once. Command lines are typed a character at a
time with a randomised delay; every other line appears whole. When the script runs out
the player settles into Done and blinks its cursor forever at a fixed period.

The random source and the scheduler are injected, so a seeded run on a virtual clock is
fully reproducible.
*/
package script
