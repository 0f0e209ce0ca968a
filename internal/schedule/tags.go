package schedule

import (
	"regexp"
	"slices"
	"strings"
)

// Role identifies which side of a schedule pair a tag describes.
type Role string

const (
	// RoleStart marks a StartTime tag.
	RoleStart Role = "start"
	// RoleStop marks a StopTime tag.
	RoleStop Role = "stop"
)

// segmentCount is the number of day segments in a tag value, Sunday first.
const segmentCount = 7

var (
	startKeyPattern = regexp.MustCompile(`(?i)^StartTime-(\w+/\w+|UTC)-SMTWTFS`)
	stopKeyPattern  = regexp.MustCompile(`(?i)^StopTime-(\w+/\w+|UTC)-SMTWTFS`)
)

// Tag is one side of a schedule as found on an instance.
type Tag struct {
	Role     Role
	Key      string
	Value    string
	Timezone string
}

// Segments splits the tag value into its day segments.
func (t *Tag) Segments() []string {
	return strings.Split(t.Value, "|")
}

// TagPair holds the start and stop tags of an instance. Either side may be nil.
type TagPair struct {
	Start *Tag
	Stop  *Tag
}

// Empty reports whether neither side of the pair is present.
func (p TagPair) Empty() bool {
	return p.Start == nil && p.Stop == nil
}

// MatchStartKey reports whether key is a start-schedule key and returns its timezone.
func MatchStartKey(key string) (string, bool) {
	return matchKey(startKeyPattern, key)
}

// MatchStopKey reports whether key is a stop-schedule key and returns its timezone.
func MatchStopKey(key string) (string, bool) {
	return matchKey(stopKeyPattern, key)
}

func matchKey(pattern *regexp.Regexp, key string) (string, bool) {
	m := pattern.FindStringSubmatch(key)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ParseTags locates the schedule tags in an instance's tag set.
//
// At most one start and one stop tag are returned. When several keys match the
// same role, the lexically smallest key wins. ok is false when neither side is
// present; that is "no schedule", not an error.
func ParseTags(tags map[string]string) (pair TagPair, ok bool) {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		if pair.Start == nil {
			if tz, found := MatchStartKey(k); found {
				pair.Start = &Tag{Role: RoleStart, Key: k, Value: tags[k], Timezone: tz}
				continue
			}
		}
		if pair.Stop == nil {
			if tz, found := MatchStopKey(k); found {
				pair.Stop = &Tag{Role: RoleStop, Key: k, Value: tags[k], Timezone: tz}
			}
		}
	}

	return pair, !pair.Empty()
}
