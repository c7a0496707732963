package duration

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// cborEncMode is the CBOR encoder mode for durations.
var cborEncMode cbor.EncMode

// cborDecMode is the CBOR decoder mode for durations.
var cborDecMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
	}
	cborEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create duration CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}
	cborDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create duration CBOR decoder mode: %v", err))
	}
}

// CBOR major types accepted by UnmarshalCBOR.
const (
	cborUnsigned = 0
	cborNegative = 1
	cborText     = 3
)

// MarshalCBOR encodes d as a CBOR integer nanosecond count.
func (d Duration) MarshalCBOR() ([]byte, error) {
	return cborEncMode.Marshal(int64(d))
}

// UnmarshalCBOR decodes a CBOR integer nanosecond count or a CBOR text
// string in duration syntax.
func (d *Duration) UnmarshalCBOR(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("duration: empty CBOR data")
	}

	switch major := data[0] >> 5; major {
	case cborUnsigned, cborNegative:
		var n int64
		if err := cborDecMode.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("duration: %w", err)
		}
		*d = Duration(n)
		return nil
	case cborText:
		var s string
		if err := cborDecMode.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("duration: %w", err)
		}
		v, err := Parse(s)
		if err != nil {
			return err
		}
		*d = v
		return nil
	default:
		return fmt.Errorf("duration: cannot decode CBOR major type %d", major)
	}
}

// MarshalText encodes d in canonical form. encoding/json uses it as well.
func (d Duration) MarshalText() ([]byte, error) {
	return AppendFormat(nil, d), nil
}

// UnmarshalText parses text in duration syntax.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Set implements flag.Value.
func (d *Duration) Set(s string) error {
	return d.UnmarshalText([]byte(s))
}

// MarshalYAML encodes d in canonical form.
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalYAML accepts a string in duration syntax or an integer
// nanosecond count.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("duration: line %d: expected a scalar value", node.Line)
	}

	if node.ShortTag() == "!!int" {
		var n int64
		if err := node.Decode(&n); err != nil {
			return fmt.Errorf("duration: line %d: %w", node.Line, err)
		}
		*d = Duration(n)
		return nil
	}

	v, err := Parse(node.Value)
	if err != nil {
		return fmt.Errorf("duration: line %d: %w", node.Line, err)
	}
	*d = v
	return nil
}
