package ics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yearwheel/internal/log"
	"yearwheel/pkg/model"
)

func calendar(events ...[]string) string {
	lines := []string{"BEGIN:VCALENDAR", "VERSION:2.0", "PRODID:-//yearwheel//test//EN"}
	for _, ev := range events {
		lines = append(lines, "BEGIN:VEVENT")
		lines = append(lines, ev...)
		lines = append(lines, "END:VEVENT")
	}
	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, "\r\n") + "\r\n"
}

var sample = calendar(
	[]string{
		"UID:single@example.com",
		"DTSTART:20250310T090000Z",
		"DTEND:20250312T170000Z",
		"SUMMARY:Konferens",
		"DESCRIPTION:Stockholm",
		"CATEGORIES:Resa,Extern",
	},
	[]string{
		"UID:allday@example.com",
		"DTSTART;VALUE=DATE:20250601",
		"DTEND;VALUE=DATE:20250603",
		"SUMMARY:Midsommar",
	},
	[]string{
		"UID:weekly@example.com",
		"DTSTART:20250106T080000Z",
		"DTEND:20250106T090000Z",
		"RRULE:FREQ=WEEKLY;COUNT=4",
		"EXDATE:20250113T080000Z",
		"SUMMARY:Veckomöte",
	},
	[]string{
		"UID:weekly@example.com",
		"RECURRENCE-ID:20250120T080000Z",
		"DTSTART:20250121T080000Z",
		"DTEND:20250121T090000Z",
		"SUMMARY:Flyttat möte",
	},
	[]string{
		"UID:old@example.com",
		"DTSTART:20240105T100000Z",
		"DTEND:20240105T110000Z",
		"SUMMARY:Förra året",
	},
	[]string{
		"DTSTART:20250105T100000Z",
		"SUMMARY:No uid",
	},
)

func options() Options {
	return Options{RingID: "r", ActivityID: "g", Year: 2025, Logger: log.Discard()}
}

func TestParse(t *testing.T) {
	events, err := Parse(strings.NewReader(sample), nil, log.Discard())
	require.NoError(t, err)
	require.Len(t, events, 5)

	single := events[0]
	assert.Equal(t, "single@example.com", single.UID)
	assert.Equal(t, "Stockholm", single.Description)
	assert.Equal(t, []string{"Resa", "Extern"}, single.Categories)
	assert.False(t, single.AllDay)
	assert.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), single.Start.UTC())

	allDay := events[1]
	assert.True(t, allDay.AllDay)
	assert.Equal(t, time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), allDay.End)

	weekly := events[2]
	assert.Equal(t, "FREQ=WEEKLY;COUNT=4", weekly.RawRRule)
	require.Len(t, weekly.ExDates, 1)
	assert.False(t, weekly.IsOverride())
	assert.True(t, events[3].IsOverride())
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse(strings.NewReader("HELLO:world\r\n"), nil, log.Discard())
	assert.Error(t, err)
}

func TestImport(t *testing.T) {
	res, err := ImportReader(strings.NewReader(sample), options())
	require.NoError(t, err)
	assert.Empty(t, res.Truncated)
	assert.Zero(t, res.Skipped)

	type row struct{ id, name, start, end string }
	var got []row
	for _, it := range res.Items {
		got = append(got, row{it.ID, it.Name, it.StartDate, it.EndDate})
		assert.Equal(t, "r", it.RingID)
		assert.Equal(t, "g", it.ActivityID)
	}
	assert.Equal(t, []row{
		{"weekly@example.com-20250106", "Veckomöte", "2025-01-06", "2025-01-06"},
		{"weekly@example.com-20250121", "Flyttat möte", "2025-01-21", "2025-01-21"},
		{"weekly@example.com-20250127", "Veckomöte", "2025-01-27", "2025-01-27"},
		{"single@example.com", "Konferens", "2025-03-10", "2025-03-12"},
		{"allday@example.com", "Midsommar", "2025-06-01", "2025-06-02"},
	}, got)
}

func TestImportAllYears(t *testing.T) {
	opts := options()
	opts.Year = 0
	res, err := ImportReader(strings.NewReader(sample), opts)
	require.NoError(t, err)
	require.Len(t, res.Items, 6)
	assert.Equal(t, "2024-01-05", res.Items[0].StartDate)
}

func TestImportCap(t *testing.T) {
	cal := calendar(
		[]string{
			"UID:daily@example.com",
			"DTSTART:20250101T120000Z",
			"DTEND:20250101T130000Z",
			"RRULE:FREQ=DAILY",
			"SUMMARY:Daily",
		},
		[]string{
			"UID:broken@example.com",
			"DTSTART:20250101T120000Z",
			"RRULE:FREQ=SOMETIMES",
			"SUMMARY:Broken",
		},
	)
	opts := options()
	opts.MaxOccurrences = 10
	res, err := ImportReader(strings.NewReader(cal), opts)
	require.NoError(t, err)
	assert.Len(t, res.Items, 10)
	assert.Equal(t, []string{"daily@example.com"}, res.Truncated)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, "2025-01-10", res.Items[9].StartDate)
}

func TestImportMidnightEnd(t *testing.T) {
	cal := calendar([]string{
		"UID:late@example.com",
		"DTSTART:20250401T220000Z",
		"DTEND:20250402T000000Z",
		"SUMMARY:Sent",
	})
	res, err := ImportReader(strings.NewReader(cal), options())
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "2025-04-01", res.Items[0].EndDate)

	opts := options()
	opts.Location, err = ParseLocation("Europe/Stockholm")
	require.NoError(t, err)
	res, err = ImportReader(strings.NewReader(cal), opts)
	require.NoError(t, err)
	assert.Equal(t, "2025-04-02", res.Items[0].StartDate)
}

func TestImportZonedSeries(t *testing.T) {
	cal := calendar(
		[]string{
			"UID:zoned@example.com",
			"DTSTART;TZID=Europe/Stockholm:20250106T080000",
			"DTEND;TZID=Europe/Stockholm:20250106T090000",
			"RRULE:FREQ=WEEKLY;COUNT=4",
			"EXDATE;TZID=Europe/Stockholm:20250113T080000",
			"SUMMARY:Avstämning",
		},
		[]string{
			"UID:zoned@example.com",
			"RECURRENCE-ID;TZID=Europe/Stockholm:20250120T080000",
			"DTSTART;TZID=Europe/Stockholm:20250121T100000",
			"DTEND;TZID=Europe/Stockholm:20250121T110000",
			"SUMMARY:Flyttad avstämning",
		},
		[]string{
			"UID:zoned@example.com",
			"RECURRENCE-ID;TZID=Europe/Stockholm:20250203T080000",
			"DTSTART;TZID=Europe/Stockholm:20250204T080000",
			"DTEND;TZID=Europe/Stockholm:20250204T090000",
			"SUMMARY:Extra avstämning",
		},
	)

	events, err := Parse(strings.NewReader(cal), nil, log.Discard())
	require.NoError(t, err)
	require.Len(t, events, 3)
	require.Len(t, events[0].ExDates, 1)
	assert.Equal(t, time.Date(2025, 1, 13, 7, 0, 0, 0, time.UTC), events[0].ExDates[0].UTC())
	require.NotNil(t, events[1].Recurrence)
	assert.Equal(t, time.Date(2025, 1, 20, 7, 0, 0, 0, time.UTC), events[1].Recurrence.UTC())

	for _, zone := range []string{"UTC", "Europe/Stockholm"} {
		opts := options()
		opts.Location, err = ParseLocation(zone)
		require.NoError(t, err)
		res, err := Import(events, opts)
		require.NoError(t, err)

		var got []string
		for _, it := range res.Items {
			got = append(got, it.ID+" "+it.Name)
		}
		assert.Equal(t, []string{
			"zoned@example.com-20250106 Avstämning",
			"zoned@example.com-20250121 Flyttad avstämning",
			"zoned@example.com-20250127 Avstämning",
			"zoned@example.com-20250204 Extra avstämning",
		}, got, zone)
	}
}

func TestImportErrors(t *testing.T) {
	_, err := Import(nil, Options{})
	assert.Error(t, err)

	opts := options()
	opts.Year = 10000
	_, err = Import(nil, opts)
	assert.Error(t, err)

	_, err = ImportFile(filepath.Join(t.TempDir(), "missing.ics"), options())
	assert.Error(t, err)

	_, err = ParseLocation("Nowhere/City")
	assert.Error(t, err)
}

func TestImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cal.ics")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))
	res, err := ImportFile(path, options())
	require.NoError(t, err)
	assert.Len(t, res.Items, 5)
}

func TestMerge(t *testing.T) {
	s := &model.Structure{
		Rings:          []model.Ring{{ID: "r", Name: "Ring", Type: model.RingInner, Visible: true, Orientation: model.Vertical}},
		ActivityGroups: []model.ActivityGroup{{ID: "g", Name: "Group", Color: "#0EA5E9", Visible: true}},
		Items: []model.Item{
			{ID: "single@example.com", Name: "Gammal", StartDate: "2025-01-01", EndDate: "2025-01-02", RingID: "r", ActivityID: "g"},
		},
	}
	res, err := ImportReader(strings.NewReader(sample), options())
	require.NoError(t, err)
	require.NoError(t, Merge(s, res.Items))
	assert.Len(t, s.Items, 5)
	assert.Equal(t, "Konferens", s.Items[0].Name)

	bad := res.Items[0]
	bad.ID = "other"
	bad.RingID = "missing"
	assert.ErrorIs(t, Merge(s, []model.Item{bad}), model.ErrInvalidStructure)
	assert.ErrorIs(t, Merge(nil, nil), model.ErrInvalidStructure)
}
