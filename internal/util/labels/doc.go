// Package labels adapts schedule tags to Hetzner Cloud labels.
//
// Hetzner label values may only contain alphanumerics, '-', '_' and '.', so
// the pipe-delimited schedule format cannot be stored verbatim. On Hetzner the
// day separator is written as '_' and an absent day as an empty segment:
//
//	StartTime-UTC-SMTWTFS = _08h00_08h00_08h00_08h00_08h00_
//
// [DecodeScheduleValue] restores the canonical pipe form before evaluation.
package labels
