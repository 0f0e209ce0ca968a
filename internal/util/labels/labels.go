package labels

import (
	"strings"

	"github.com/imamik/instance-scheduler/internal/schedule"
)

// DaySeparator is the separator used in place of '|' in Hetzner label values.
const DaySeparator = "_"

// DecodeScheduleValue converts a Hetzner label value into the canonical
// pipe-delimited schedule value. Values that already contain a pipe are
// returned unchanged.
func DecodeScheduleValue(v string) string {
	if strings.Contains(v, "|") {
		return v
	}
	return strings.ReplaceAll(v, DaySeparator, "|")
}

// DecodeScheduleLabels returns a copy of labels with every schedule label
// value decoded. Other labels are copied unchanged.
func DecodeScheduleLabels(labels map[string]string) map[string]string {
	out := make(map[string]string, len(labels))
	for k, v := range labels {
		if isScheduleKey(k) {
			v = DecodeScheduleValue(v)
		}
		out[k] = v
	}
	return out
}

func isScheduleKey(k string) bool {
	if _, ok := schedule.MatchStartKey(k); ok {
		return true
	}
	_, ok := schedule.MatchStopKey(k)
	return ok
}
