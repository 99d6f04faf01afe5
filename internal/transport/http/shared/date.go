package shared

import "time"

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseDate reads an RFC3339 timestamp or a plain calendar date. An empty
// string is the zero time, not an error; optional fields decide presence
// upstream.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	var err error
	for _, layout := range dateLayouts {
		var parsed time.Time
		if parsed, err = time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, err
}
