package schedule

import "strings"

// DesiredState is the run-state a schedule implies for a single instant.
type DesiredState string

const (
	// DesiredRunning means the instance should be running.
	DesiredRunning DesiredState = "running"
	// DesiredStopped means the instance should be stopped.
	DesiredStopped DesiredState = "stopped"
	// DesiredNone means the schedule has no opinion; leave the instance as-is.
	DesiredNone DesiredState = "none"
)

func (s DesiredState) String() string {
	return string(s)
}

// Title returns the state with a leading capital, as used in log lines.
func (s DesiredState) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}
