package log

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Journal CBOR modes. Writers are strict and canonical: map keys are sorted
// and lengths definite, so identical events always produce identical bytes
// and journals can be compared or deduplicated byte for byte. Timestamps are
// RFC 3339 strings with nanoseconds, matching the resolution of Duration.
//
// Readers are lenient. Keys this version does not know are skipped, and
// absent optional keys (Operands, Elapsed, Output) decode as zero values,
// so a journal stays readable across versions that add event fields.
var (
	journalEncMode cbor.EncMode
	journalDecMode cbor.DecMode
)

func init() {
	var err error

	journalEncMode, err = cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create journal CBOR encoder mode: %v", err))
	}

	journalDecMode, err = cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create journal CBOR decoder mode: %v", err))
	}
}

// EncodeEvent returns the canonical journal encoding of one event.
func EncodeEvent(event Event) ([]byte, error) {
	return journalEncMode.Marshal(event)
}

// DecodeEvent decodes a single journal record.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := journalDecMode.Unmarshal(data, &event); err != nil {
		return Event{}, fmt.Errorf("decode journal event: %w", err)
	}
	return event, nil
}

// NewEncoder returns a stream encoder that appends journal records to w.
// A journal file is nothing more than records written back to back.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return journalEncMode.NewEncoder(w)
}

// NewDecoder returns a stream decoder over a journal. Decode returns io.EOF
// after the last complete record.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return journalDecMode.NewDecoder(r)
}
