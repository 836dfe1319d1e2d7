package insurance

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateTravelsAsDateOnly(t *testing.T) {
	d := NewDate(2026, 9, 15)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-09-15"`, string(raw))
}

func TestDateUnmarshalToleratesTimestamps(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2026-09-15T14:30:00Z"`), &d))
	assert.Equal(t, "2026-09-15", d.String())

	require.NoError(t, json.Unmarshal([]byte(`"2026-09-15"`), &d))
	assert.Equal(t, "2026-09-15", d.String())

	assert.Error(t, json.Unmarshal([]byte(`"15/09/2026"`), &d))
}

func TestDateScanTruncatesTimeOfDay(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2026, 9, 15, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, "2026-09-15", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())
}

func TestValidType(t *testing.T) {
	for _, typ := range Types {
		assert.True(t, ValidType(typ), typ)
	}
	assert.False(t, ValidType("boat"))
	assert.False(t, ValidType(""))
	assert.False(t, ValidType("Auto"))
}
