package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClockIn(t *testing.T) {
	loc := time.FixedZone("GMT", 0)
	now := ClockIn(loc)()
	assert.Equal(t, loc, now.Location())
	assert.WithinDuration(t, time.Now(), now, time.Second)

	assert.Equal(t, time.UTC, ClockIn(nil)().Location())
}

func TestFixedClock(t *testing.T) {
	ts := time.Date(2025, 3, 6, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, ts, FixedClock(ts)())
}
