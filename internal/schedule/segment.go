package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SegmentKind classifies one day's schedule value.
type SegmentKind int

const (
	// SegmentNoSchedule is "n/a" or an empty segment.
	SegmentNoSchedule SegmentKind = iota
	// SegmentRunning forces the instance on for the whole day.
	SegmentRunning
	// SegmentStopped forces the instance off for the whole day.
	SegmentStopped
	// SegmentClock is anything else, read as an HHhMM clock time.
	SegmentClock
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentNoSchedule:
		return "no-schedule"
	case SegmentRunning:
		return "running"
	case SegmentStopped:
		return "stopped"
	case SegmentClock:
		return "clock"
	}
	return fmt.Sprintf("SegmentKind(%d)", int(k))
}

var clockPattern = regexp.MustCompile(`^(\d{1,2})h(\d{1,2})$`)

// Segment is one day's value from a schedule tag.
type Segment struct {
	Raw  string
	Kind SegmentKind
}

// ParseSegment normalizes and classifies a raw day segment.
// Clock times are not decoded until [Segment.At] needs them.
func ParseSegment(raw string) Segment {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch v {
	case "running":
		return Segment{Raw: v, Kind: SegmentRunning}
	case "stopped":
		return Segment{Raw: v, Kind: SegmentStopped}
	case "n/a", "":
		return Segment{Raw: v, Kind: SegmentNoSchedule}
	}
	return Segment{Raw: v, Kind: SegmentClock}
}

// At returns the segment's clock time on ref's calendar date, in ref's location.
func (s Segment) At(ref time.Time) (time.Time, error) {
	if s.Kind != SegmentClock {
		return time.Time{}, invalid(ErrInvalidSegment, "%q is not a clock time", s.Raw)
	}
	hour, minute, err := parseClock(s.Raw)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := ref.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, ref.Location()), nil
}

func parseClock(v string) (int, int, error) {
	parts := clockPattern.FindStringSubmatch(v)
	if parts == nil {
		return 0, 0, invalid(ErrInvalidSegment, "%q is not in HHhMM form", v)
	}
	hour, _ := strconv.Atoi(parts[1])
	minute, _ := strconv.Atoi(parts[2])
	if hour > 23 || minute > 59 {
		return 0, 0, invalid(ErrInvalidSegment, "%q is out of range", v)
	}
	return hour, minute, nil
}
