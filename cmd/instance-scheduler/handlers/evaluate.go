package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/imamik/instance-scheduler/internal/schedule"
	"github.com/imamik/instance-scheduler/internal/util/labels"
)

// EvaluateOptions carries the evaluate command's flags.
type EvaluateOptions struct {
	Start    string
	Stop     string
	Timezone string
	// At overrides the evaluation instant; zero means now.
	At   time.Time
	JSON bool
}

// evaluation is the JSON form of an evaluate result.
type evaluation struct {
	Timezone  string `json:"timezone"`
	LocalTime string `json:"local_time"`
	Weekday   string `json:"weekday"`
	Start     string `json:"start_segment"`
	Stop      string `json:"stop_segment"`
	Desired   string `json:"desired"`
}

// Evaluate handles the evaluate command.
//
// It builds the tag pair a user would attach to an instance and reports the
// desired state at the requested instant. Validation failures are returned
// as errors.
func Evaluate(out io.Writer, opts EvaluateOptions) error {
	if opts.Start == "" && opts.Stop == "" {
		return fmt.Errorf("at least one of --start or --stop is required")
	}

	tags := map[string]string{}
	if opts.Start != "" {
		tags["StartTime-"+opts.Timezone+"-SMTWTFS"] = labels.DecodeScheduleValue(opts.Start)
	}
	if opts.Stop != "" {
		tags["StopTime-"+opts.Timezone+"-SMTWTFS"] = labels.DecodeScheduleValue(opts.Stop)
	}
	pair, ok := schedule.ParseTags(tags)
	if !ok {
		return fmt.Errorf("timezone %q cannot be used in a tag key (want UTC or Region/City)", opts.Timezone)
	}

	at := opts.At
	if at.IsZero() {
		at = newClock().Now()
	}

	ev, err := schedule.Explain(pair, at)
	if err != nil {
		return fmt.Errorf("invalid schedule: %w", err)
	}

	result := evaluation{
		Timezone:  ev.Timezone,
		LocalTime: ev.LocalNow.Format(time.RFC3339),
		Weekday:   ev.LocalNow.Weekday().String(),
		Start:     ev.Start.Raw,
		Stop:      ev.Stop.Raw,
		Desired:   ev.State.String(),
	}

	if opts.JSON {
		b, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		fmt.Fprintln(out, string(b))
		return nil
	}

	if isInteractiveTTY() {
		fmt.Fprint(out, renderEvaluation(result))
	} else {
		fmt.Fprint(out, plainEvaluation(result))
	}
	return nil
}
