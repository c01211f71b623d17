package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// MoodList is an ordered set of mood tags. It is stored as a JSON array
// in a TEXT column. Early clients sent (and stored) a single bare tag
// instead of an array; both decoders accept that form and migrate it to
// a one-element list.
type MoodList []string

func (m MoodList) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(m))
	if err != nil {
		return nil, fmt.Errorf("encode moods: %w", err)
	}
	return string(b), nil
}

func (m *MoodList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = nil
		return nil
	case string:
		return m.decode([]byte(v))
	case []byte:
		return m.decode(v)
	default:
		return fmt.Errorf("unsupported moods column type %T", src)
	}
}

func (m *MoodList) decode(b []byte) error {
	if len(b) == 0 {
		*m = nil
		return nil
	}
	if b[0] != '[' && b[0] != '"' {
		// legacy row: raw tag, no JSON encoding at all
		*m = MoodList{string(b)}
		return nil
	}
	return m.UnmarshalJSON(b)
}

func (m *MoodList) UnmarshalJSON(b []byte) error {
	var single string
	if err := json.Unmarshal(b, &single); err == nil {
		*m = MoodList{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return fmt.Errorf("decode moods: %w", err)
	}
	*m = MoodList(many)
	return nil
}

// Contains reports whether tag is one of the list entries.
func (m MoodList) Contains(tag string) bool {
	for _, t := range m {
		if t == tag {
			return true
		}
	}
	return false
}
