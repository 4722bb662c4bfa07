package kma

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequestTime(t *testing.T) {
	// 05:29 UTC = 14:29 KST, rounds down to 14:00.
	now := time.Date(2026, 1, 15, 5, 29, 0, 0, time.UTC)
	assert.Equal(t, "202601151400", RequestTime(now))

	// 14:45 KST rounds down to 14:30.
	now = time.Date(2026, 1, 15, 5, 45, 0, 0, time.UTC)
	assert.Equal(t, "202601151430", RequestTime(now))
}

func TestLatestBaseDateTime(t *testing.T) {
	// 15:10 KST: the latest publication is the 14:00 run.
	now := time.Date(2026, 1, 15, 6, 10, 0, 0, time.UTC)
	baseDate, baseTime := LatestBaseDateTime(now)
	assert.Equal(t, "20260115", baseDate)
	assert.Equal(t, "1400", baseTime)

	// Publication hour itself counts.
	now = time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC) // 17:00 KST
	_, baseTime = LatestBaseDateTime(now)
	assert.Equal(t, "1700", baseTime)

	// 01:30 KST is before the day's first run; the previous day's 2300 is used.
	now = time.Date(2026, 1, 14, 16, 30, 0, 0, time.UTC) // 01:30 KST on the 15th
	baseDate, baseTime = LatestBaseDateTime(now)
	assert.Equal(t, "20260114", baseDate)
	assert.Equal(t, "2300", baseTime)
}
