package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	t.Run("valid time", func(t *testing.T) {
		ts, err := NewTimeStringFromString("08:00")
		require.NoError(t, err)
		assert.Equal(t, "08:00", ts.String())
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := NewTimeStringFromString("8am")
		assert.ErrorIs(t, err, ErrInvalidTimeString)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := NewTimeStringFromString("25:00")
		assert.ErrorIs(t, err, ErrInvalidTimeString)
	})
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2025, 10, 15, 14, 30, 45, 0, time.UTC)
	assert.Equal(t, TimeString("14:30"), NewTimeString(moment))
}

func TestTimeString_Minutes(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		minutes, err := TimeString("14:30").Minutes()
		require.NoError(t, err)
		assert.Equal(t, 870, minutes)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := TimeString("garbage").Minutes()
		assert.ErrorIs(t, err, ErrInvalidTimeString)
	})
}

func TestTimeString_AddMinutes(t *testing.T) {
	t.Run("adds duration", func(t *testing.T) {
		result, err := TimeString("08:00").AddMinutes(240)
		require.NoError(t, err)
		assert.Equal(t, TimeString("12:00"), result)
	})

	t.Run("keeps leading zeros", func(t *testing.T) {
		result, err := TimeString("08:00").AddMinutes(65)
		require.NoError(t, err)
		assert.Equal(t, TimeString("09:05"), result)
	})

	t.Run("does not cross midnight", func(t *testing.T) {
		_, err := TimeString("23:00").AddMinutes(120)
		assert.ErrorIs(t, err, ErrInvalidTimeString)
	})

	t.Run("negative result", func(t *testing.T) {
		_, err := TimeString("01:00").AddMinutes(-120)
		assert.ErrorIs(t, err, ErrInvalidTimeString)
	})
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("08:00").IsBefore("14:00"))
	assert.False(t, TimeString("14:00").IsBefore("14:00"))
	assert.True(t, TimeString("14:00").IsAfter("08:00"))
	assert.False(t, TimeString("08:00").IsAfter("08:00"))
}
