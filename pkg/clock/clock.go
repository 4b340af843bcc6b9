package clock

import "time"

// Timer is a handle to a scheduled task.
type Timer interface {
	// Stop prevents the task from running. It returns false if the task
	// already ran or was already stopped.
	Stop() bool
}

// Scheduler runs tasks after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
	Now() time.Time
}

// Real schedules tasks on wall-clock timers.
type Real struct{}

// NewReal returns a wall-clock scheduler.
func NewReal() Real {
	return Real{}
}

func (Real) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

func (Real) Now() time.Time {
	return time.Now()
}
