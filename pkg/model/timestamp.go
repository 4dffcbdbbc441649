package model

import (
	"strconv"
	"strings"
	"time"
)

// Timestamp is a unix-seconds value as emitted by the Radio France
// GraphQL API. The field arrives either as a bare number or as a
// quoted string, depending on the endpoint.
type Timestamp time.Time

func (t Timestamp) MarshalJSON() ([]byte, error) {
	stamp := strconv.FormatInt(time.Time(t).Unix(), 10)
	return []byte(stamp), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		return nil
	}

	ts, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}

	*t = Timestamp(time.Unix(ts, 0).UTC())
	return nil
}

// Time returns the timestamp as *time.Time, nil for the zero value.
func (t Timestamp) Time() *time.Time {
	tt := time.Time(t)
	if tt.IsZero() {
		return nil
	}
	return &tt
}
