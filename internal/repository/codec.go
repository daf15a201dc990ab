package repository

import (
	"encoding/json"
	"errors"
	"fmt"
)

// recordCodecVersion prefixes every persisted record so the layout can be
// migrated later without guessing at the payload format.
const recordCodecVersion byte = 0x01

// Encoded size caps per table. Exceeding a cap is a hard capacity error
// surfaced to the caller, never a silent truncation.
const (
	MaxUserRecordSize   = 1024
	MaxTicketRecordSize = 4096
	MaxAssetRecordSize  = 1024
)

var (
	// ErrRecordTooLarge reports a record whose encoded form exceeds its
	// table's size cap.
	ErrRecordTooLarge = errors.New("record exceeds maximum encoded size")
	// ErrBadRecord reports a stored record that cannot be decoded.
	ErrBadRecord = errors.New("malformed record encoding")
)

// encodeRecord serializes v as a version byte followed by its JSON body and
// enforces the table's size cap.
func encodeRecord(v any, maxSize int) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 0, len(body)+1)
	buf = append(buf, recordCodecVersion)
	buf = append(buf, body...)
	if len(buf) > maxSize {
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrRecordTooLarge, len(buf), maxSize)
	}
	return buf, nil
}

// decodeRecord reverses encodeRecord.
func decodeRecord(data []byte, v any) error {
	if len(data) == 0 {
		return ErrBadRecord
	}
	if data[0] != recordCodecVersion {
		return fmt.Errorf("%w: unsupported version %#x", ErrBadRecord, data[0])
	}
	return json.Unmarshal(data[1:], v)
}
