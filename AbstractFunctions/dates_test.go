package AbstractFunctions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetTodayWindow(t *testing.T) {
	start, end := GetTodayWindow()

	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 0, start.Minute())
	assert.Equal(t, 0, start.Second())
	assert.Equal(t, 24*time.Hour, end.Sub(start))

	now := time.Now()
	assert.False(t, now.Before(start))
	assert.True(t, now.Before(end))
}

func TestRoundRate(t *testing.T) {
	assert.Equal(t, 0.33, RoundRate(1.0/3.0))
	assert.Equal(t, 0.67, RoundRate(2.0/3.0))
	assert.Equal(t, 0.0, RoundRate(0))
	assert.Equal(t, 1.0, RoundRate(1))
	assert.Equal(t, 0.5, RoundRate(0.5))
}
