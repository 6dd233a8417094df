package leagues

import (
	"errors"
	"testing"
	"time"
)

var seasonStart = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func groupsRound(number int, groups ...[]int64) Round {
	return Round{Number: number, Groups: groups}
}

func TestAllocateSlotsFillsCourtsBackToBack(t *testing.T) {
	cfg := SlotConfig{
		SeasonStart:   seasonStart,
		MatchDuration: time.Hour,
		PlayStart:     "18:00",
		PlayEnd:       "20:00",
	}
	divisions := []DivisionRounds{{
		DivisionID: 1,
		Rounds: []Round{groupsRound(1,
			[]int64{1, 2}, []int64{3, 4}, []int64{5, 6}, []int64{7, 8}, []int64{9, 10},
		)},
	}}

	allocation, err := AllocateSlots(cfg, divisions)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if len(allocation.Scheduled) != 4 || len(allocation.Makeup) != 1 {
		t.Fatalf("expected 4 scheduled and 1 makeup, got %d and %d", len(allocation.Scheduled), len(allocation.Makeup))
	}

	want := []struct {
		court int
		start time.Time
	}{
		{1, time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)},
		{2, time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)},
		{1, time.Date(2026, 3, 2, 19, 0, 0, 0, time.UTC)},
		{2, time.Date(2026, 3, 2, 19, 0, 0, 0, time.UTC)},
	}
	for i, match := range allocation.Scheduled {
		if match.Court != want[i].court || !match.StartTime.Equal(want[i].start) {
			t.Fatalf("slot %d: expected court %d at %v, got court %d at %v", i, want[i].court, want[i].start, match.Court, match.StartTime)
		}
		if !match.EndTime.Equal(match.StartTime.Add(time.Hour)) {
			t.Fatalf("slot %d: expected one hour match, ends %v", i, match.EndTime)
		}
		if match.WeekNumber != 1 || match.IsMakeup {
			t.Fatalf("slot %d: unexpected week/makeup %+v", i, match)
		}
	}

	makeup := allocation.Makeup[0]
	if !makeup.IsMakeup || makeup.Court != 0 || !makeup.StartTime.IsZero() || makeup.WeekNumber != 1 {
		t.Fatalf("unexpected makeup match %+v", makeup)
	}
	if makeup.Players[0] != 9 || makeup.Players[1] != 10 {
		t.Fatalf("expected last group to be the makeup, got %v", makeup.Players)
	}
}

func TestAllocateSlotsWeeksAndDivisionOrder(t *testing.T) {
	cfg := SlotConfig{
		SeasonStart:   seasonStart,
		MatchDuration: 90 * time.Minute,
		PlayStart:     "6:30 PM",
	}
	divisions := []DivisionRounds{
		{DivisionID: 10, Rounds: []Round{groupsRound(1, []int64{1, 2}), groupsRound(2, []int64{1, 3})}},
		{DivisionID: 20, Rounds: []Round{groupsRound(1, []int64{5, 6}, []int64{7, 8})}},
	}

	allocation, err := AllocateSlots(cfg, divisions)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if len(allocation.Scheduled) != 3 || len(allocation.Makeup) != 1 {
		t.Fatalf("expected 3 scheduled and 1 makeup, got %d and %d", len(allocation.Scheduled), len(allocation.Makeup))
	}
	if allocation.Scheduled[0].DivisionID != 10 || allocation.Scheduled[1].DivisionID != 20 {
		t.Fatalf("expected divisions in input order, got %+v", allocation.Scheduled[:2])
	}
	if allocation.Makeup[0].DivisionID != 20 || allocation.Makeup[0].WeekNumber != 1 {
		t.Fatalf("expected second division overflow in week 1, got %+v", allocation.Makeup[0])
	}

	week2 := allocation.Scheduled[2]
	wantStart := time.Date(2026, 3, 9, 18, 30, 0, 0, time.UTC)
	if week2.WeekNumber != 2 || week2.Court != 1 || !week2.StartTime.Equal(wantStart) {
		t.Fatalf("expected week 2 on court 1 at %v, got %+v", wantStart, week2)
	}
}

func TestAllocateSlotsBeyondSeasonBecomesMakeup(t *testing.T) {
	cfg := SlotConfig{
		SeasonStart:   seasonStart,
		MatchDuration: time.Hour,
		PlayStart:     "18:00",
		SeasonWeeks:   1,
	}
	divisions := []DivisionRounds{{
		DivisionID: 1,
		Rounds:     []Round{groupsRound(1, []int64{1, 2}), groupsRound(2, []int64{1, 3})},
	}}

	allocation, err := AllocateSlots(cfg, divisions)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if len(allocation.Scheduled) != 1 || len(allocation.Makeup) != 1 {
		t.Fatalf("expected 1 scheduled and 1 makeup, got %d and %d", len(allocation.Scheduled), len(allocation.Makeup))
	}
	if allocation.Makeup[0].WeekNumber != 2 {
		t.Fatalf("expected makeup in week 2, got %d", allocation.Makeup[0].WeekNumber)
	}
}

func TestAllocateSlotsRejectsBadConfig(t *testing.T) {
	cases := map[string]SlotConfig{
		"zero duration":    {SeasonStart: seasonStart, PlayStart: "18:00"},
		"missing start":    {MatchDuration: time.Hour, PlayStart: "18:00"},
		"bad play start":   {SeasonStart: seasonStart, MatchDuration: time.Hour, PlayStart: "evening"},
		"end before start": {SeasonStart: seasonStart, MatchDuration: time.Hour, PlayStart: "18:00", PlayEnd: "17:00"},
	}
	for name, cfg := range cases {
		if _, err := AllocateSlots(cfg, nil); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestAllocateSlotsShortWindowStillOneSlot(t *testing.T) {
	cfg := SlotConfig{
		SeasonStart:   seasonStart,
		MatchDuration: 2 * time.Hour,
		PlayStart:     "18:00",
		PlayEnd:       "19:00",
	}
	divisions := []DivisionRounds{{
		DivisionID: 1,
		Rounds:     []Round{groupsRound(1, []int64{1, 2}, []int64{3, 4}, []int64{5, 6})},
	}}
	allocation, err := AllocateSlots(cfg, divisions)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if len(allocation.Scheduled) != 2 || len(allocation.Makeup) != 1 {
		t.Fatalf("expected one slot per court, got %d scheduled and %d makeup", len(allocation.Scheduled), len(allocation.Makeup))
	}
}

func TestSeasonWeeks(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"same day", seasonStart, seasonStart, 1},
		{"one full week", seasonStart, seasonStart.AddDate(0, 0, 6), 1},
		{"eighth day", seasonStart, seasonStart.AddDate(0, 0, 7), 2},
		{"three weeks", seasonStart, seasonStart.AddDate(0, 0, 20), 3},
		{"end before start", seasonStart, seasonStart.AddDate(0, 0, -1), 0},
		{"missing end", seasonStart, time.Time{}, 0},
	}
	for _, tc := range cases {
		if got := SeasonWeeks(tc.start, tc.end); got != tc.want {
			t.Fatalf("%s: expected %d weeks, got %d", tc.name, tc.want, got)
		}
	}
}
