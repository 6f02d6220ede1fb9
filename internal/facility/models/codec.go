package models

import (
	"encoding/json"
	"fmt"
)

// Codec serializes canonical facilities into the verbatim payload kept on a
// record. It is injected so callers control the wire format.
type Codec interface {
	Marshal(f *Facility) ([]byte, error)
	Unmarshal(data []byte) (*Facility, error)
}

// JSONCodec stores the decoded source document when there is one and falls
// back to encoding the typed view for facilities built in code.
type JSONCodec struct{}

func (JSONCodec) Marshal(f *Facility) ([]byte, error) {
	if len(f.Raw) > 0 {
		return append([]byte(nil), f.Raw...), nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("marshal facility: %w", err)
	}
	return b, nil
}

func (JSONCodec) Unmarshal(data []byte) (*Facility, error) {
	var f Facility
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshal facility: %w", err)
	}
	return &f, nil
}
