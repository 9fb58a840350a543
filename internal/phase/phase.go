package phase

import (
	"errors"
	"time"

	"santahub/internal/model"
)

// State represents the current lifecycle phase of an event. It is computed
// from the event boundaries on every call, never stored.
type State string

const (
	StateUpcoming        State = "upcoming"
	StatePreregistration State = "preregistration"
	StateRegistration    State = "registration"
	StateEnded           State = "ended"
)

func (s State) String() string {
	return string(s)
}

var ErrInvalidBoundaries = errors.New("event boundaries must be strictly increasing")

// Info is the result of a phase computation: the state plus the boundary
// the live countdown runs toward. Target is nil once the event has ended.
type Info struct {
	State  State
	Target *time.Time
}

// Compute derives the phase from the three registration boundaries using
// closed-open intervals. EventStart is informational and plays no part here.
// Boundaries are validated at event creation, so the switch is total.
func Compute(e *model.Event, now time.Time) Info {
	switch {
	case now.Before(e.PreregistrationStart):
		t := e.PreregistrationStart
		return Info{State: StateUpcoming, Target: &t}
	case now.Before(e.RegistrationStart):
		t := e.RegistrationStart
		return Info{State: StatePreregistration, Target: &t}
	case now.Before(e.RegistrationEnd):
		t := e.RegistrationEnd
		return Info{State: StateRegistration, Target: &t}
	default:
		return Info{State: StateEnded}
	}
}

// Remaining is a countdown value decomposed into whole units.
type Remaining struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Until decomposes target−now, clamped to zero once the target has passed.
func Until(target, now time.Time) Remaining {
	d := target.Sub(now)
	if d < 0 {
		d = 0
	}
	return Remaining{
		Days:    int(d / (24 * time.Hour)),
		Hours:   int(d % (24 * time.Hour) / time.Hour),
		Minutes: int(d % time.Hour / time.Minute),
		Seconds: int(d % time.Minute / time.Second),
	}
}

func CanPreregister(e *model.Event, now time.Time) bool {
	return Compute(e, now).State == StatePreregistration
}

func CanRegister(e *model.Event, now time.Time) bool {
	return Compute(e, now).State == StateRegistration
}

// CanConfirm applies only to existing preregistration-type records;
// confirmation is open exactly while the main registration window is.
func CanConfirm(e *model.Event, now time.Time) bool {
	return Compute(e, now).State == StateRegistration
}

// ValidateBoundaries rejects boundary triples that are not strictly
// increasing. Called at event create/update so Compute never sees bad input.
func ValidateBoundaries(preregStart, regStart, regEnd time.Time) error {
	if !preregStart.Before(regStart) || !regStart.Before(regEnd) {
		return ErrInvalidBoundaries
	}
	return nil
}
