package kma

import (
	"fmt"
	"time"
)

// KST is the fixed Korea Standard Time offset. KMA publishes everything in
// KST; a fixed zone avoids depending on the host tzdata.
var KST = time.FixedZone("KST", 9*60*60)

// publishHours are the short-term forecast publication hours (KST).
var publishHours = []int{2, 5, 8, 11, 14, 17, 20, 23}

// RequestTime returns the YYYYMMDDHHMM sea-obs request time: now in KST
// rounded down to the nearest :00 or :30.
func RequestTime(now time.Time) string {
	kst := now.In(KST)
	minute := 0
	if kst.Minute() >= 30 {
		minute = 30
	}
	return fmt.Sprintf("%04d%02d%02d%02d%02d", kst.Year(), kst.Month(), kst.Day(), kst.Hour(), minute)
}

// LatestBaseDateTime returns the base_date/base_time pair of the most recent
// short-term forecast publication at the given instant. Before the first
// publication of the day (02 KST) the previous day's 2300 run is used.
func LatestBaseDateTime(now time.Time) (baseDate, baseTime string) {
	kst := now.In(KST)
	hour := kst.Hour()

	latest := -1
	for _, h := range publishHours {
		if h <= hour {
			latest = h
		}
	}

	day := kst
	if latest < 0 {
		latest = 23
		day = kst.AddDate(0, 0, -1)
	}
	return day.Format("20060102"), fmt.Sprintf("%02d00", latest)
}
