package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleData mirrors the SAMPLE_DATA table in the original implementation's
// protocol_spec.py: each row is a logical list and its packed wire form.
var sampleData = []struct {
	name   string
	items  []interface{}
	packed string
}{
	{"empty", []interface{}{}, "[000000:]"},
	{"single", []interface{}{"hello"}, "[000001:000005:hello:]"},
	{"pair", []interface{}{"hello", "world"}, "[000002:000005:hello:000005:world:]"},
	{"nested", []interface{}{[]interface{}{"element"}}, "[000001:000024:[000001:000007:element:]:]"},
}

func TestPackSampleData(t *testing.T) {
	for _, tc := range sampleData {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Pack(tc.items)
			require.NoError(t, err)
			assert.Equal(t, tc.packed, got)
		})
	}
}

func TestUnpackSampleData(t *testing.T) {
	for _, tc := range sampleData {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Unpack(tc.packed)
			require.NoError(t, err)
			assert.Equal(t, tc.items, got)
		})
	}
}

func TestPackNonStrings(t *testing.T) {
	got, err := Pack([]interface{}{1})
	require.NoError(t, err)
	assert.Equal(t, "[000001:000001:1:]", got)

	got, err = Pack([]interface{}{nil})
	require.NoError(t, err)
	assert.Equal(t, "[000001:000004:null:]", got)
}

func TestUnpackRequiresBrackets(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		reason string
	}{
		{"empty", "", "has no leading '['"},
		{"no trailing bracket", "[hello", "has no trailing ']'"},
		{"no leading bracket", "hello]", "has no leading '['"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Unpack(tc.input)
			require.Error(t, err)
			var uerr *UnpackingError
			require.ErrorAs(t, err, &uerr)
			assert.Equal(t, tc.reason, uerr.Reason)
		})
	}
}

func TestUnpackValueRejectsNonString(t *testing.T) {
	_, err := UnpackValue(1)
	require.Error(t, err)
	var nerr *NotAStringError
	require.ErrorAs(t, err, &nerr)

	_, err = UnpackValue(nil)
	require.Error(t, err)
}

func TestUnpackDetectsUnderConsumption(t *testing.T) {
	// Declares 2 items but only supplies 1.
	_, err := Unpack("[000002:000005:hello:]")
	require.Error(t, err)
}

func TestUnpackDetectsOverConsumption(t *testing.T) {
	// Ends with ']' so the leading/trailing bracket check passes, but an
	// extra byte sits between the list's own closing ']' and the final one.
	_, err := Unpack("[000000:]x]")
	require.Error(t, err)
	var uerr *UnpackingError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "has trailing data after list", uerr.Reason)
}

func TestRoundTripArbitraryNesting(t *testing.T) {
	items := []interface{}{
		"id1",
		[]interface{}{"a", []interface{}{"b", "c"}, "d"},
		"tail",
	}
	packed, err := Pack(items)
	require.NoError(t, err)

	back, err := Unpack(packed)
	require.NoError(t, err)
	assert.Equal(t, items, back)
}

func TestPackEncodingOverflow(t *testing.T) {
	huge := make([]interface{}, countLimit)
	for i := range huge {
		huge[i] = ""
	}
	_, err := Pack(huge)
	require.Error(t, err)
	var eerr *EncodingError
	require.ErrorAs(t, err, &eerr)
}
