package model

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
title: Verksamhetsplan
year: 2025
rings:
  - id: r1
    name: Projekt
    type: inner
    ring_order: 1
  - id: r0
    name: Aktiviteter
    type: inner
    ring_order: 0
    orientation: horizontal
  - id: r2
    name: Kampanjer
    type: outer
    color: "#334155"
  - id: hidden
    name: Arkiv
    type: outer
    visible: false
activityGroups:
  - id: g1
    name: Marknad
    color: "#3B82F6"
  - id: g2
    name: Intern
    color: "#10B981"
    visible: false
labels:
  - id: l1
    name: Viktig
    color: "#EF4444"
  - id: l2
    name: Dold
    color: "#94A3B8"
    visible: false
items:
  - id: i1
    name: Lansering
    startDate: "2025-03-01"
    endDate: "2025-04-15"
    ringId: r1
    activityId: g1
    labelId: l1
  - id: i2
    name: Planering
    startDate: "2025-01-10"
    endDate: "2025-01-20"
    ringId: r0
    activityId: g1
  - id: i3
    name: Internt
    startDate: "2025-02-01"
    endDate: "2025-02-02"
    ringId: r0
    activityId: g2
  - id: i4
    name: Etikett dold
    startDate: "2025-05-01"
    endDate: "2025-05-02"
    ringId: r0
    activityId: g1
    labelId: l2
  - id: i5
    name: Arkiverad
    startDate: "2025-06-01"
    endDate: "2025-06-02"
    ringId: hidden
    activityId: g1
  - id: i6
    name: Årsskifte
    startDate: "2025-12-20"
    endDate: "2026-01-10"
    ringId: r2
    activityId: g1
`

func loadSample(t *testing.T) *Structure {
	t.Helper()
	s, err := Load(strings.NewReader(sampleYAML))
	require.NoError(t, err)
	return s
}

func TestLoadAppliesDefaults(t *testing.T) {
	s := loadSample(t)
	require.Len(t, s.Rings, 4)
	assert.True(t, s.Rings[0].Visible)
	assert.Equal(t, Vertical, s.Rings[0].Orientation)
	assert.Equal(t, Horizontal, s.Rings[1].Orientation)
	assert.False(t, s.Rings[3].Visible)
	assert.True(t, s.ActivityGroups[0].Visible)
	assert.False(t, s.ActivityGroups[1].Visible)
	assert.Equal(t, "Verksamhetsplan", s.Title)
}

func TestLoadLegacyActivities(t *testing.T) {
	doc := `
rings: [{id: r, name: Ring, type: outer}]
activities: [{id: a, name: Act, color: "#112233"}]
items: [{id: i, name: Item, startDate: "2024-01-01", endDate: "2024-01-02", ringId: r, activityId: a}]
`
	s, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, s.ActivityGroups, 1)
	assert.Equal(t, "a", s.ActivityGroups[0].ID)
	assert.Nil(t, s.Activities)
}

func TestLoadAcceptsJSON(t *testing.T) {
	doc := `{"rings":[{"id":"r","name":"Ring","type":"inner"}],"activityGroups":[],"labels":[],"items":[]}`
	s, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	assert.True(t, s.Rings[0].Visible)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	s := &Structure{
		Rings: []Ring{
			{ID: "r", Name: "", Type: "middle", Orientation: Vertical, Visible: true},
			{ID: "r", Name: "Dup", Type: RingOuter, Orientation: "diagonal", Color: "red"},
		},
		ActivityGroups: []ActivityGroup{{ID: "g", Name: "G"}},
		Labels:         []Label{{ID: "l", Name: "L", Color: "#12345"}},
		Items: []Item{
			{ID: "i", Name: "I", StartDate: "2024-05-02", EndDate: "2024-05-01", RingID: "x", ActivityID: "y", LabelID: "z"},
			{ID: "j", Name: "J", StartDate: "2024/05/01", EndDate: "2024-05-01", RingID: "r", ActivityID: "g"},
		},
	}
	err := s.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidStructure)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))

	msg := err.Error()
	for _, want := range []string{
		"rings.0.name",
		"rings.0.type",
		"rings.1.id: duplicate ring id",
		"rings.1.orientation",
		"rings.1.color",
		"activityGroups.0.color: color is required",
		"labels.0.color",
		"items.0.endDate: end date must be on or after start date",
		"non-existent ring: x",
		"non-existent activity: y",
		"non-existent label: z",
		"items.1.startDate",
	} {
		assert.Contains(t, msg, want)
	}
}

func TestValidateEmptyStructure(t *testing.T) {
	assert.NoError(t, (&Structure{}).Validate())
}

func TestVisibleRingsOrdered(t *testing.T) {
	s := loadSample(t)
	inner := s.VisibleRings(RingInner)
	require.Len(t, inner, 2)
	assert.Equal(t, "Aktiviteter", inner[0].Name)
	assert.Equal(t, "Projekt", inner[1].Name)

	outer := s.VisibleRings(RingOuter)
	require.Len(t, outer, 1)
	assert.Equal(t, "r2", outer[0].ID)

	assert.Len(t, s.VisibleRings(""), 3)
}

func TestRenderableFiltersHiddenRecords(t *testing.T) {
	s := loadSample(t)
	items := s.Renderable(2025)
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"i2", "i1", "i6"}, ids)

	next := s.Renderable(2026)
	require.Len(t, next, 1)
	assert.Equal(t, "i6", next[0].ID)

	assert.Empty(t, s.Renderable(2030))
	assert.Len(t, s.ItemsForRing("r0", 2025), 1)
}

func TestYears(t *testing.T) {
	s := loadSample(t)
	assert.Equal(t, []int{2025, 2026}, s.Years())
	assert.Equal(t, []int{2019}, (&Structure{Year: 2019}).Years())
}

func TestLookups(t *testing.T) {
	s := loadSample(t)
	r, err := s.Ring("r2")
	require.NoError(t, err)
	assert.Equal(t, "Kampanjer", r.Name)

	_, err = s.Ring("nope")
	assert.ErrorIs(t, err, ErrUnknownRing)

	_, ok := s.Label("l1")
	assert.True(t, ok)
	_, ok = s.ActivityGroup("missing")
	assert.False(t, ok)
}

func TestEncodeRoundTrip(t *testing.T) {
	s := loadSample(t)
	var buf bytes.Buffer
	require.NoError(t, s.Encode(&buf))

	again, err := Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, s.Rings, again.Rings)
	assert.Equal(t, s.Items, again.Items)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", FormatDate(d))

	_, err = ParseDate("2023-02-29")
	assert.Error(t, err)
}
