package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeScheduleValue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"underscores", "_08h00_08h00_08h00_08h00_08h00_", "|08h00|08h00|08h00|08h00|08h00|"},
		{"literals", "running_stopped_____", "running|stopped|||||"},
		{"already canonical", "n/a|08h00|08h00|08h00|08h00|08h00|n/a", "n/a|08h00|08h00|08h00|08h00|08h00|n/a"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, DecodeScheduleValue(tt.in))
		})
	}
}

func TestDecodeScheduleLabels(t *testing.T) {
	t.Parallel()
	in := map[string]string{
		"StartTime-UTC-SMTWTFS": "_08h00______",
		"stoptime-utc-smtwtfs":  "_18h00______",
		"team":                  "platform_ops",
	}
	out := DecodeScheduleLabels(in)

	assert.Equal(t, "|08h00|||||", out["StartTime-UTC-SMTWTFS"])
	assert.Equal(t, "|18h00|||||", out["stoptime-utc-smtwtfs"])
	assert.Equal(t, "platform_ops", out["team"], "non-schedule labels are untouched")
	assert.Equal(t, "_08h00______", in["StartTime-UTC-SMTWTFS"], "input is not mutated")
}
