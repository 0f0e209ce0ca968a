// Package schedule evaluates weekly start/stop schedules stored in instance tags.
//
// A schedule is a pair of tags. The key of each tag names its role and the
// timezone the schedule is written in:
//
//	StartTime-Europe/Berlin-SMTWTFS = 08h00|08h00|08h00|08h00|08h00|n/a|n/a
//	StopTime-Europe/Berlin-SMTWTFS  = 18h00|18h00|18h00|18h00|16h30|n/a|n/a
//
// The value holds seven pipe-separated segments, Sunday first. Each segment is
// a clock time (HHhMM, 24-hour), the literal "running" or "stopped" (forces
// that state for the whole day), or "n/a"/empty (no opinion for that role).
//
// # Evaluation
//
// [Evaluate] resolves today's segments in the schedule's timezone and returns
// a [DesiredState]. The guards run in a fixed order and the first match wins:
//
//  1. either segment is "running"  -> running
//  2. either segment is "stopped"  -> stopped
//  3. both segments are no-schedule -> none
//  4. only start is no-schedule    -> stopped once the stop time has passed, else none
//  5. only stop is no-schedule     -> running once the start time has passed, else none
//  6. both are clock times         -> running inside [start, stop], else stopped
//
// All boundaries are inclusive.
//
// Malformed values, mismatched timezones and undecodable segments are
// reported as [ValidationError] values wrapping one of the package sentinels.
package schedule
