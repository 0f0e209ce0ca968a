package schedule

import (
	"strings"
	"time"

	"k8s.io/utils/clock"
)

// Evaluation is the outcome of evaluating a schedule pair, with the inputs
// that produced it.
type Evaluation struct {
	State    DesiredState
	Timezone string
	LocalNow time.Time
	Start    Segment
	Stop     Segment
}

// Evaluate returns the state the schedule implies at now.
func Evaluate(pair TagPair, now time.Time) (DesiredState, error) {
	ev, err := Explain(pair, now)
	if err != nil {
		return "", err
	}
	return ev.State, nil
}

// Explain evaluates the schedule at now and returns the full evaluation.
func Explain(pair TagPair, now time.Time) (Evaluation, error) {
	tz, err := resolveTimezone(pair)
	if err != nil {
		return Evaluation{}, err
	}
	for _, t := range []*Tag{pair.Start, pair.Stop} {
		if err := validateValue(t); err != nil {
			return Evaluation{}, err
		}
	}
	loc, err := loadLocation(tz)
	if err != nil {
		return Evaluation{}, err
	}

	localNow := now.In(loc)
	idx, err := DayIndex(localNow.Weekday())
	if err != nil {
		return Evaluation{}, err
	}

	ev := Evaluation{
		Timezone: tz,
		LocalNow: localNow,
		Start:    todaySegment(pair.Start, idx),
		Stop:     todaySegment(pair.Stop, idx),
	}
	ev.State, err = decide(ev.Start, ev.Stop, localNow)
	if err != nil {
		return Evaluation{}, err
	}
	return ev, nil
}

// decide applies the precedence guards. Order matters: a "running" or
// "stopped" literal on either side overrides whatever the other side says.
func decide(start, stop Segment, localNow time.Time) (DesiredState, error) {
	if start.Kind == SegmentRunning || stop.Kind == SegmentRunning {
		return DesiredRunning, nil
	}
	if start.Kind == SegmentStopped || stop.Kind == SegmentStopped {
		return DesiredStopped, nil
	}
	if start.Kind == SegmentNoSchedule && stop.Kind == SegmentNoSchedule {
		return DesiredNone, nil
	}

	if start.Kind == SegmentNoSchedule {
		stopAt, err := stop.At(localNow)
		if err != nil {
			return "", err
		}
		if !localNow.Before(stopAt) {
			return DesiredStopped, nil
		}
		return DesiredNone, nil
	}

	if stop.Kind == SegmentNoSchedule {
		startAt, err := start.At(localNow)
		if err != nil {
			return "", err
		}
		if !localNow.Before(startAt) {
			return DesiredRunning, nil
		}
		return DesiredNone, nil
	}

	stopAt, err := stop.At(localNow)
	if err != nil {
		return "", err
	}
	startAt, err := start.At(localNow)
	if err != nil {
		return "", err
	}
	if !localNow.Before(startAt) && !localNow.After(stopAt) {
		return DesiredRunning, nil
	}
	return DesiredStopped, nil
}

// resolveTimezone returns the timezone shared by both tags. A missing side
// takes the timezone of the present one.
func resolveTimezone(pair TagPair) (string, error) {
	switch {
	case pair.Start == nil && pair.Stop == nil:
		return "", invalid(ErrEmptyPair, "nothing to evaluate")
	case pair.Start == nil:
		return pair.Stop.Timezone, nil
	case pair.Stop == nil:
		return pair.Start.Timezone, nil
	}
	if pair.Start.Timezone != pair.Stop.Timezone {
		return "", invalid(ErrTimezoneMismatch, "start %q, stop %q", pair.Start.Timezone, pair.Stop.Timezone)
	}
	return pair.Start.Timezone, nil
}

func validateValue(t *Tag) error {
	if t == nil {
		return nil
	}
	if n := len(t.Segments()); n != segmentCount {
		return invalid(ErrMalformedValue, "%s tag %q has %d segments", t.Role, t.Key, n)
	}
	return nil
}

func loadLocation(tz string) (*time.Location, error) {
	if strings.EqualFold(tz, "UTC") {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, invalid(ErrUnknownTimezone, "%q: %v", tz, err)
	}
	return loc, nil
}

// todaySegment returns the tag's segment for day idx. A missing tag has no
// schedule on any day.
func todaySegment(t *Tag, idx int) Segment {
	if t == nil {
		return ParseSegment("")
	}
	return ParseSegment(t.Segments()[idx])
}

// Evaluator evaluates schedules against a clock.
type Evaluator struct {
	clock clock.PassiveClock
}

// NewEvaluator returns an Evaluator reading the current time from c.
// A nil clock uses the system clock.
func NewEvaluator(c clock.PassiveClock) *Evaluator {
	if c == nil {
		c = clock.RealClock{}
	}
	return &Evaluator{clock: c}
}

// Evaluate evaluates pair at the clock's current instant.
func (e *Evaluator) Evaluate(pair TagPair) (Evaluation, error) {
	return Explain(pair, e.clock.Now())
}
