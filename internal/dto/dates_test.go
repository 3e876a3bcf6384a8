package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRoundTrip(t *testing.T) {
	for _, s := range []string{"2001-09-14", "2024-02-29", "1999-01-01"} {
		d, err := ParseDate(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, d.String())

		encoded, err := json.Marshal(d)
		require.NoError(t, err)
		assert.Equal(t, `"`+s+`"`, string(encoded))

		var decoded Date
		require.NoError(t, json.Unmarshal(encoded, &decoded))
		assert.Equal(t, s, decoded.String())
	}
}

func TestParseDateRejectsMalformed(t *testing.T) {
	for _, s := range []string{
		"14/09/2001",
		"2001-9-14",
		"2001-09-14T00:00:00",
		"2001-13-01",
		"not a date",
		"",
	} {
		_, err := ParseDate(s)
		assert.Error(t, err, s)
	}
}

func TestDateTimeRoundTrip(t *testing.T) {
	for _, s := range []string{
		"2024-03-01T08:00:00",
		"2024-12-31T23:59:59",
		"2000-01-01T00:00:00",
	} {
		d, err := ParseDateTime(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, d.String())

		encoded, err := json.Marshal(d)
		require.NoError(t, err)

		var decoded DateTime
		require.NoError(t, json.Unmarshal(encoded, &decoded))
		assert.Equal(t, s, decoded.String())
	}
}

func TestParseDateTimeRejectsZoneDesignators(t *testing.T) {
	// The wire format is local naive time; zone designators are not part of
	// the contract and must not be silently accepted.
	for _, s := range []string{
		"2024-03-01T08:00:00Z",
		"2024-03-01T08:00:00+07:00",
		"2024-03-01 08:00:00",
		"2024-03-01",
		"",
	} {
		_, err := ParseDateTime(s)
		assert.Error(t, err, s)
	}
}

func TestDateTimeSecondPrecisionLossless(t *testing.T) {
	original := time.Date(2024, 3, 1, 8, 30, 45, 0, time.UTC)
	encoded := DateTime(original).String()
	decoded, err := ParseDateTime(encoded)
	require.NoError(t, err)
	assert.True(t, decoded.Time().Equal(original))
}

func TestDateUnmarshalRejectsNonString(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`20010914`), &d))

	var dt DateTime
	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &dt))
}

func TestDateScanFromDriverValues(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2001, 9, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2001-09-14", d.String())

	require.NoError(t, d.Scan([]byte("2001-09-14")))
	assert.Equal(t, "2001-09-14", d.String())

	assert.Error(t, d.Scan(42))
}
