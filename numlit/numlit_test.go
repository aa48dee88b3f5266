package numlit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntForms(t *testing.T) {
	cases := map[string]int64{
		"42":    42,
		"0x1F":  31,
		"0x1f":  31,
		"0o17":  15,
		"0755":  493,
		"0":     0,
		"-5":    -5,
	}
	for raw, want := range cases {
		got, err := ParseInt(raw)
		require.NoErrorf(t, err, "raw=%s", raw)
		assert.Equalf(t, want, got, "raw=%s", raw)
	}
}

func TestParseFloat(t *testing.T) {
	v, err := ParseFloat("3.14")
	require.NoError(t, err)
	assert.InDelta(t, 3.14, v, 1e-9)
}

func TestNormalizeOctalDigits(t *testing.T) {
	cases := map[string]string{
		"0755": "755",
		"0o17": "17",
		"0O17": "17",
	}
	for raw, want := range cases {
		assert.Equalf(t, want, NormalizeOctalDigits(raw), "raw=%s", raw)
	}
}

func TestParseIntInvalid(t *testing.T) {
	_, err := ParseInt("not-a-number")
	assert.Error(t, err)
}
