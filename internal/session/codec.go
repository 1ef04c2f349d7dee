package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"bsk-backend/internal/models"
)

// ErrCorruptState marks a persisted record that cannot be decoded. It never
// leaves the store: Load resets to an empty state instead.
var ErrCorruptState = errors.New("corrupt user record")

func encodeRecord(record models.UserRecord) ([]byte, error) {
	record.Version = models.CurrentRecordVersion
	return json.Marshal(record)
}

// decodeRecord parses a stored blob. migrated reports that the blob was
// written by an older schema and should be rewritten.
func decodeRecord(raw []byte) (record models.UserRecord, migrated bool, err error) {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return models.UserRecord{}, false, fmt.Errorf("%w: null record", ErrCorruptState)
	}
	if err := json.Unmarshal(raw, &record); err != nil {
		return models.UserRecord{}, false, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}

	switch {
	case record.Version == models.CurrentRecordVersion:
		return record, false, nil
	case record.Version == 0:
		// Unversioned records predate the version field and share its layout.
		record.Version = models.CurrentRecordVersion
		return record, true, nil
	default:
		return models.UserRecord{}, false, fmt.Errorf("%w: unsupported version %d", ErrCorruptState, record.Version)
	}
}
