package attendance

import (
	"math"
	"strings"
	"time"
)

// LateRemarkPrefix marks records whose check-in fell after the cutoff.
const LateRemarkPrefix = "Late check-in."

// IsLate reports whether a check-in time falls after the cutoff. The cutoff
// minute itself is still on time: with a 09:30 cutoff, 09:30:59 passes and
// 09:31 is late.
func IsLate(checkIn time.Time, cutoffHour, cutoffMinute int) bool {
	return checkIn.Hour() > cutoffHour ||
		(checkIn.Hour() == cutoffHour && checkIn.Minute() > cutoffMinute)
}

// LateRemarks prefixes the caller's remarks for a late check-in.
func LateRemarks(remarks string) string {
	remarks = strings.TrimSpace(remarks)
	if remarks == "" {
		return LateRemarkPrefix
	}
	return LateRemarkPrefix + " " + remarks
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// WorkHours is the elapsed check-in to check-out span in decimal hours,
// rounded to two places.
func WorkHours(checkIn, checkOut time.Time) float64 {
	return round2(checkOut.Sub(checkIn).Hours())
}

// ExtraHours is the portion of workHours beyond the standard day, floored at
// zero and rounded to two places.
func ExtraHours(workHours, standardHours float64) float64 {
	extra := workHours - standardHours
	if extra < 0 {
		return 0
	}
	return round2(extra)
}

// Summarize reduces a record set to per-status counts and hour totals.
func Summarize(records []Record) Summary {
	var sum Summary
	sum.TotalDays = len(records)
	for _, rec := range records {
		switch rec.Status {
		case StatusPresent:
			sum.PresentDays++
		case StatusAbsent:
			sum.AbsentDays++
		case StatusLeave:
			sum.LeaveDays++
		case StatusHalfDay:
			sum.HalfDays++
		}
		if strings.HasPrefix(rec.Remarks, LateRemarkPrefix) {
			sum.LateDays++
		}
		if rec.WorkHours != nil {
			sum.TotalWorkHours = round2(sum.TotalWorkHours + *rec.WorkHours)
		}
		if rec.ExtraHours != nil {
			sum.TotalExtraHours = round2(sum.TotalExtraHours + *rec.ExtraHours)
		}
	}
	return sum
}
