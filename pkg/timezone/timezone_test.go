package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToLocal(t *testing.T) {
	utc := time.Date(2025, 7, 9, 1, 30, 0, 0, time.UTC)

	local, err := ToLocal(utc, "Asia/Kolkata")
	require.NoError(t, err)
	assert.Equal(t, "2025-07-09 07:00", local)

	local, err = ToLocal(utc, "UTC")
	require.NoError(t, err)
	assert.Equal(t, "2025-07-09 01:30", local)
}

func TestToLocalInvalidZone(t *testing.T) {
	_, err := ToLocal(time.Now(), "Mars/Nowhere")
	require.ErrorIs(t, err, ErrInvalidTimezone)
	assert.Contains(t, err.Error(), "Mars/Nowhere")
}

func TestToUTC(t *testing.T) {
	utc, err := ToUTC("2025-07-09 07:00", AuthoringZone)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 7, 9, 1, 30, 0, 0, time.UTC), utc)
}

func TestToUTCBadInput(t *testing.T) {
	_, err := ToUTC("2025-07-09 07:00", "Not/AZone")
	require.ErrorIs(t, err, ErrInvalidTimezone)

	_, err = ToUTC("not a time", AuthoringZone)
	require.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	zones := []string{"Asia/Kolkata", "America/New_York", "Europe/Madrid", "UTC"}
	utc := time.Date(2025, 7, 9, 1, 30, 0, 0, time.UTC)

	for _, zone := range zones {
		local, err := ToLocal(utc, zone)
		require.NoError(t, err)

		back, err := ToUTC(local, zone)
		require.NoError(t, err)
		assert.Equal(t, utc, back, "round trip through %s", zone)
	}
}

func TestLocationCached(t *testing.T) {
	first, err := Location("Asia/Kolkata")
	require.NoError(t, err)

	second, err := Location("Asia/Kolkata")
	require.NoError(t, err)
	assert.Same(t, first, second)
}
