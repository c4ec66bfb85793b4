package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 1, d.Day())
	assert.Equal(t, "2024-03-01", d.String())

	for _, bad := range []string{"", "01/03/2024", "2024-13-01", "2024-02-30", "2024-03-01T00:00:00Z"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestNewDate_DropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	d := NewDate(time.Date(2024, 3, 1, 23, 30, 0, 0, loc))
	assert.Equal(t, "2024-03-01", d.String())
}

func TestDate_JSON(t *testing.T) {
	type wrapper struct {
		D Date `json:"d"`
	}

	b, err := json.Marshal(wrapper{D: NewDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2024-03-01"}`, string(b))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"d":"2023-12-31"}`), &w))
	assert.Equal(t, "2023-12-31", w.D.String())

	assert.Error(t, json.Unmarshal([]byte(`{"d":"yesterday"}`), &w))
}
