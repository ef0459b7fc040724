package clock

import "time"

// Clock - источник текущего времени для чека.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystem возвращает системные часы (time.Now, локальная зона).
func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

type fixedClock struct {
	now time.Time
}

// NewFixed возвращает часы, которые всегда показывают t.
func NewFixed(t time.Time) Clock {
	return fixedClock{now: t}
}

func (f fixedClock) Now() time.Time {
	return f.now
}
