package layout

import (
	"math"
	"strconv"
	"time"

	"yearwheel/pkg/angle"
	"yearwheel/pkg/model"
)

// DefaultRotationOffset is the angle, in degrees, at which January 1st is
// drawn. Zero degrees points at three o'clock, so -105 puts the start of
// the year half a month before twelve o'clock.
const DefaultRotationOffset = -105.0

// DegreesPerMonth is the fixed angular slot of every month.
const DegreesPerMonth = 30.0

const (
	MonthsPerYear    = 12
	MonthsPerQuarter = 3
	QuartersPerYear  = 4
	DaysPerWeek      = 7
	maxWeeks         = 53
)

// Locales with month names.
const (
	LocaleSV = "sv"
	LocaleEN = "en"
)

var monthNames = map[string][MonthsPerYear]string{
	LocaleSV: {
		"Januari", "Februari", "Mars", "April", "Maj", "Juni",
		"Juli", "Augusti", "September", "Oktober", "November", "December",
	},
	LocaleEN: {
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
}

// MonthNames returns the month names of locale. Unknown locales get
// Swedish.
func MonthNames(locale string) [MonthsPerYear]string {
	if names, ok := monthNames[locale]; ok {
		return names
	}
	return monthNames[LocaleSV]
}

// Date returns the UTC midnight of year, month (0-11) and day. Out of range
// values roll over the way time.Date does: February 29th of a common year
// is March 1st, day 0 is the last day of the previous month.
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.UTC)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(math.Round(midnight(to).Sub(midnight(from)).Hours() / 24))
}

// IsLeapYear applies the Gregorian rule.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInYear returns 365 or 366.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// DaysInMonth returns the length of month (0-11) in year. Months outside
// 0-11 roll into the neighbouring years.
func DaysInMonth(year, month int) int {
	return Date(year, month+1, 0).Day()
}

// DayOfYear returns the 1-based day number of t within its own year.
func DayOfYear(t time.Time) int {
	return t.YearDay()
}

// DayNumber returns the day number of t counted from January 1st of year,
// which is day 1. Dates before the year give zero or negative numbers.
func DayNumber(year int, t time.Time) int {
	return daysBetween(Date(year, 0, 1), t) + 1
}

// DateToAngle maps t onto the wheel in degrees. Each month takes a 30
// degree slot; days divide their month's slot evenly. The result is not
// normalized.
func DateToAngle(t time.Time, offset float64) float64 {
	month := int(t.Month()) - 1
	dim := float64(DaysInMonth(t.Year(), month))
	deg := float64(month)*DegreesPerMonth + float64(t.Day()-1)/dim*DegreesPerMonth
	return deg + offset
}

// AngleToDate is the inverse of DateToAngle at day granularity. Any angle
// is accepted; it is normalized before the month is read.
func AngleToDate(deg float64, year int, offset float64) time.Time {
	monthF := angle.NormalizeDegrees(deg-offset) / DegreesPerMonth
	if r := math.Round(monthF); math.Abs(monthF-r) < 1e-9 {
		monthF = r
	}
	whole := math.Floor(monthF)
	month := int(whole) % MonthsPerYear
	progress := monthF - whole

	dim := DaysInMonth(year, month)
	day := int(math.Floor(progress*float64(dim)+1e-9)) + 1
	if day < 1 {
		day = 1
	}
	if day > dim {
		day = dim
	}
	return Date(year, month, day)
}

// ItemAngles returns the start and end angle of item in degrees, clipped to
// year. The end angle covers the whole end day. ok is false when the item
// has bad dates or lies outside the year.
func ItemAngles(item model.Item, year int, offset float64) (start, end float64, ok bool) {
	from, to, err := item.Span()
	if err != nil || to.Before(from) || !item.Overlaps(year) {
		return 0, 0, false
	}
	if first := Date(year, 0, 1); from.Before(first) {
		from = first
	}
	if last := Date(year, 11, 31); to.After(last) {
		to = last
	}
	start = DateToAngle(from, offset)
	dim := float64(DaysInMonth(to.Year(), int(to.Month())-1))
	end = DateToAngle(to, offset) + DegreesPerMonth/dim
	return start, end, true
}

// WeekID is an ISO 8601 week.
type WeekID struct {
	Year int
	Week int
}

func isoWeekday(t time.Time) int {
	if wd := int(t.Weekday()); wd != 0 {
		return wd
	}
	return 7
}

// ISOWeek returns the ISO week of t: the week belongs to the year of its
// Thursday.
func ISOWeek(t time.Time) WeekID {
	thursday := midnight(t).AddDate(0, 0, 4-isoWeekday(t))
	yearStart := time.Date(thursday.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	days := float64(daysBetween(yearStart, thursday))
	return WeekID{
		Year: thursday.Year(),
		Week: int(math.Ceil((days + 1) / DaysPerWeek)),
	}
}

// WeekStart returns the Monday of ISO week in year. January 4th always
// falls in week 1.
func WeekStart(year, week int) time.Time {
	jan4 := Date(year, 0, 4)
	monday := jan4.AddDate(0, 0, 1-isoWeekday(jan4))
	return monday.AddDate(0, 0, (week-1)*DaysPerWeek)
}

// WeeksInYear returns 52 or 53.
func WeeksInYear(year int) int {
	return ISOWeek(Date(year, 11, 28)).Week
}

// GenerateWeeks lists the ISO week numbers of year as strings, in order.
// It walks every Monday from the one on or before January 1st and keeps
// the weeks whose Thursday falls in year.
func GenerateWeeks(year int) []string {
	day := Date(year, 0, 1)
	day = day.AddDate(0, 0, 1-isoWeekday(day))

	seen := make(map[int]bool, maxWeeks)
	weeks := make([]string, 0, maxWeeks)
	for day.Year() <= year && len(weeks) < maxWeeks {
		id := ISOWeek(day)
		if id.Year == year && !seen[id.Week] {
			seen[id.Week] = true
			weeks = append(weeks, strconv.Itoa(id.Week))
		}
		day = day.AddDate(0, 0, DaysPerWeek)
	}
	return weeks
}

// MonthSegment is one month as a day range of its year.
type MonthSegment struct {
	Month       int // 0-11
	Name        string
	StartDay    int
	EndDay      int
	DaysInMonth int
}

// QuarterSegment groups three consecutive months.
type QuarterSegment struct {
	Quarter       int // 1-4
	StartDay      int
	EndDay        int
	Months        []int
	DaysInQuarter int
}

// WeekSegment is one ISO week as a day range relative to the target year.
type WeekSegment struct {
	Week     int
	StartDay int
	EndDay   int
	Days     int
}

// MonthSegments partitions the days of year into months.
func MonthSegments(year int, locale string) []MonthSegment {
	names := MonthNames(locale)
	segments := make([]MonthSegment, 0, MonthsPerYear)
	day := 1
	for m := 0; m < MonthsPerYear; m++ {
		dim := DaysInMonth(year, m)
		segments = append(segments, MonthSegment{
			Month:       m,
			Name:        names[m],
			StartDay:    day,
			EndDay:      day + dim - 1,
			DaysInMonth: dim,
		})
		day += dim
	}
	return segments
}

// QuarterSegments groups MonthSegments by quarter.
func QuarterSegments(year int) []QuarterSegment {
	months := MonthSegments(year, LocaleSV)
	segments := make([]QuarterSegment, 0, QuartersPerYear)
	for q := 0; q < QuartersPerYear; q++ {
		group := months[q*MonthsPerQuarter : (q+1)*MonthsPerQuarter]
		seg := QuarterSegment{
			Quarter:  q + 1,
			StartDay: group[0].StartDay,
			EndDay:   group[len(group)-1].EndDay,
		}
		for _, m := range group {
			seg.Months = append(seg.Months, m.Month)
		}
		seg.DaysInQuarter = seg.EndDay - seg.StartDay + 1
		segments = append(segments, seg)
	}
	return segments
}

// WeekSegments maps GenerateWeeks onto day ranges. Day numbers are relative
// to January 1st of year, so week 1 may start at day 0 or earlier and the
// last week may end past the year's final day.
func WeekSegments(year int) []WeekSegment {
	weeks := GenerateWeeks(year)
	segments := make([]WeekSegment, 0, len(weeks))
	for _, w := range weeks {
		n, _ := strconv.Atoi(w)
		start := DayNumber(year, WeekStart(year, n))
		segments = append(segments, WeekSegment{
			Week:     n,
			StartDay: start,
			EndDay:   start + DaysPerWeek - 1,
			Days:     DaysPerWeek,
		})
	}
	return segments
}
