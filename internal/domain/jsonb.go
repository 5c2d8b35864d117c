package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// JSONMap maps a JSONB column onto an opaque field map. Change-request
// payloads are deliberately schemaless, so this is the storage type for
// proposed data and prior snapshots.
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return fmt.Errorf("unsupported scan type for JSONMap: %T", src)
}

// GetString reads a string-valued key, tolerating absent or non-string
// entries.
func (m JSONMap) GetString(key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// GetBool reads a boolean flag; clients send both true and "true".
func (m JSONMap) GetBool(key string) bool {
	switch v := m[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}

// TimeLog is an append-only list of event timestamps stored as JSONB.
type TimeLog []time.Time

func (l TimeLog) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]time.Time{})
	}
	return json.Marshal(l)
}

func (l *TimeLog) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("unsupported scan type for TimeLog: %T", src)
}
