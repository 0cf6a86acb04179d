package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_UnmarshalDateOnly(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"1999-04-02"`), &d))

	assert.Equal(t, 1999, d.Year())
	assert.Equal(t, time.April, d.Month())
	assert.Equal(t, 2, d.Day())
}

func TestDate_UnmarshalRFC3339(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"1999-04-02T00:00:00.000Z"`), &d))

	assert.Equal(t, 1999, d.Year())
}

func TestDate_UnmarshalRejectsGarbage(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"02/04/1999"`), &d))
}

func TestDate_MarshalRoundTrip(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"1999-04-02"`), &d))

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1999-04-02T00:00:00Z"`, string(out))
}
