package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SchemaVersion is the current version of the persisted record envelope.
const SchemaVersion = 1

// record wraps a persisted payload with a schema version so future layout
// changes can be migrated on load.
type record struct {
	SchemaVersion int             `json:"schema_version"`
	Payload       json.RawMessage `json:"payload"`
}

// MarshalRecord serializes payload inside a versioned envelope.
func MarshalRecord(payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload failed: %w", err)
	}
	return json.Marshal(record{SchemaVersion: SchemaVersion, Payload: raw})
}

// UnmarshalRecord decodes a versioned record into payload. Data written
// before the envelope was introduced is a bare JSON array; it is accepted
// as version 0 and migrated transparently. Anything else that fails to
// decode, or carries a version newer than this build understands, is
// reported as ErrCorruptRecord.
func UnmarshalRecord(data []byte, payload any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		// Legacy un-versioned blob.
		if err := json.Unmarshal(trimmed, payload); err != nil {
			return fmt.Errorf("%w: %v", ErrCorruptRecord, err)
		}
		return nil
	}

	var rec record
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	if rec.SchemaVersion > SchemaVersion || rec.Payload == nil {
		return fmt.Errorf("%w: unsupported schema version %d", ErrCorruptRecord, rec.SchemaVersion)
	}
	if err := json.Unmarshal(rec.Payload, payload); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	return nil
}
