package duration

import (
	"encoding/json"
	"errors"
	"flag"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCBORInteger(t *testing.T) {
	for _, d := range []Duration{0, 1, -1, Hour, -5033, MaxDuration, MinDuration} {
		data, err := cbor.Marshal(d)
		require.NoError(t, err)

		var n int64
		require.NoError(t, cbor.Unmarshal(data, &n))
		assert.Equal(t, int64(d), n, "CBOR payload should be the nanosecond count")

		var back Duration
		require.NoError(t, cbor.Unmarshal(data, &back))
		assert.Equal(t, d, back)
	}
}

func TestCBORTextString(t *testing.T) {
	data, err := cbor.Marshal("+1m6s833ms500us33ns")
	require.NoError(t, err)

	var d Duration
	require.NoError(t, cbor.Unmarshal(data, &d))
	assert.Equal(t, Duration(66833500033), d)

	bad, err := cbor.Marshal("10unknown")
	require.NoError(t, err)
	err = cbor.Unmarshal(bad, &d)
	assert.True(t, errors.Is(err, ErrFormat), "got %v", err)
}

func TestCBORRejectsOtherTypes(t *testing.T) {
	for _, v := range []any{true, 1.5, []byte{1, 2}, []int{1}} {
		data, err := cbor.Marshal(v)
		require.NoError(t, err)

		var d Duration
		assert.Error(t, cbor.Unmarshal(data, &d), "decoding %T", v)
	}
}

func TestCBORInStruct(t *testing.T) {
	type record struct {
		Timeout Duration   `cbor:"1,keyasint"`
		Steps   []Duration `cbor:"2,keyasint"`
		Limit   *Duration  `cbor:"3,keyasint,omitempty"`
	}
	limit := -Minute
	in := record{Timeout: 30 * Second, Steps: []Duration{Millisecond, MinDuration}, Limit: &limit}

	data, err := cbor.Marshal(in)
	require.NoError(t, err)

	var out record
	require.NoError(t, cbor.Unmarshal(data, &out))
	assert.Equal(t, in.Timeout, out.Timeout)
	assert.Equal(t, in.Steps, out.Steps)
	require.NotNil(t, out.Limit)
	assert.Equal(t, limit, *out.Limit)
}

func TestJSON(t *testing.T) {
	type payload struct {
		D Duration `json:"d"`
	}

	data, err := json.Marshal(payload{D: MustParse("61m61s")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"+1h2m1s"}`, string(data))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"d":"-5us33ns"}`), &p))
	assert.Equal(t, Duration(-5033), p.D)

	err = json.Unmarshal([]byte(`{"d":"10"}`), &p)
	assert.True(t, errors.Is(err, ErrFormat), "got %v", err)
}

func TestYAML(t *testing.T) {
	type settings struct {
		Timeout Duration `yaml:"timeout"`
		Grain   Duration `yaml:"grain"`
	}

	var s settings
	src := "timeout: +2h30m\ngrain: 1000\n"
	require.NoError(t, yaml.Unmarshal([]byte(src), &s))
	assert.Equal(t, Duration(9000000000000), s.Timeout)
	assert.Equal(t, Duration(1000), s.Grain)

	out, err := yaml.Marshal(s)
	require.NoError(t, err)

	var back settings
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, s, back)
	assert.Contains(t, string(out), "1us")
}

func TestYAMLErrors(t *testing.T) {
	var d Duration

	err := yaml.Unmarshal([]byte(`"10unknown"`), &d)
	assert.True(t, errors.Is(err, ErrFormat), "got %v", err)

	err = yaml.Unmarshal([]byte("[1, 2]"), &d)
	assert.Error(t, err)

	err = yaml.Unmarshal([]byte("99999999999999999999"), &d)
	assert.Error(t, err)
}

func TestFlagValue(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	var d Duration
	fs.Var(&d, "timeout", "timeout")

	require.NoError(t, fs.Parse([]string{"-timeout", "1m30s"}))
	assert.Equal(t, 90*Second, d)
	assert.Equal(t, "+1m30s", fs.Lookup("timeout").Value.String())

	var bad Duration
	assert.Error(t, bad.Set("1x"))
}
