// Package json_util holds JSON helper types shared across the persistence
// layer.
package json_util

import (
	"errors"
)

// RawMessage carries pre-encoded JSON, such as the details column of an
// audit record, through marshaling untouched. An empty value encodes as
// "null".
type RawMessage []byte

func (m RawMessage) MarshalJSON() ([]byte, error) {
	if len(m) == 0 {
		return []byte("null"), nil
	}
	return m, nil
}

// UnmarshalJSON stores a copy of data in *m.
func (m *RawMessage) UnmarshalJSON(data []byte) error {
	if m == nil {
		return errors.New("json_util.RawMessage: UnmarshalJSON on nil pointer")
	}
	*m = append((*m)[0:0], data...)
	return nil
}
