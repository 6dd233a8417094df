package leagues

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func testLeague(gameType GameType) League {
	return League{
		ID:            1,
		Name:          "Spring Ladder",
		GameType:      gameType,
		RankingMethod: RankByWins,
		PointsToWin:   11,
		WinByTwo:      true,
		GamesPerMatch: 3,
		MatchDuration: time.Hour,
		PlayStart:     "18:00",
		Dates:         DateRanges{SeasonStart: seasonStart},
	}
}

func rosterFor(divisionID int64, ids []int64) []RosterEntry {
	roster := make([]RosterEntry, 0, len(ids))
	for _, id := range ids {
		roster = append(roster, RosterEntry{PlayerID: id, DivisionID: divisionID})
	}
	return roster
}

func TestGenerateScheduleRejectsBadRoster(t *testing.T) {
	ctx := context.Background()
	league := testLeague(GameTypeDoubles)
	divisions := []Division{{ID: 1, LeagueID: 1, Name: "Open"}}

	cases := map[string][]RosterEntry{
		"empty":            nil,
		"too small":        rosterFor(1, playerIDs(3)),
		"unknown division": append(rosterFor(1, playerIDs(4)), RosterEntry{PlayerID: 900, DivisionID: 2}),
		"duplicate player": append(rosterFor(1, playerIDs(4)), RosterEntry{PlayerID: 101, DivisionID: 1}),
		"invalid player":   append(rosterFor(1, playerIDs(4)), RosterEntry{PlayerID: 0, DivisionID: 1}),
	}
	for name, roster := range cases {
		if _, err := GenerateSchedule(ctx, league, divisions, roster); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}

	if _, err := GenerateSchedule(ctx, testLeague("SQUASH"), divisions, rosterFor(1, playerIDs(4))); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected unknown game type to fail, got %v", err)
	}
}

func TestGenerateScheduleNoDoubleBooking(t *testing.T) {
	league := testLeague(GameTypeSingles)
	league.PlayEnd = "21:00"
	divisions := []Division{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	roster := append(rosterFor(1, playerIDs(5)), rosterFor(2, []int64{201, 202, 203, 204})...)

	schedule, err := GenerateSchedule(context.Background(), league, divisions, roster)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if total := len(schedule.Scheduled) + len(schedule.Makeup); total != 10+6 {
		t.Fatalf("expected 16 matches, got %d", total)
	}

	type courtTime struct {
		court int
		start time.Time
	}
	playerWeeks := make(map[[2]int64]int)
	slotsUsed := make(map[courtTime]bool)
	for _, match := range append(append([]ScheduledMatch(nil), schedule.Scheduled...), schedule.Makeup...) {
		for _, p := range match.Players {
			key := [2]int64{int64(match.WeekNumber), p}
			playerWeeks[key]++
			if playerWeeks[key] > 1 {
				t.Fatalf("player %d plays twice in week %d", p, match.WeekNumber)
			}
		}
		if match.IsMakeup {
			continue
		}
		slot := courtTime{match.Court, match.StartTime}
		if slotsUsed[slot] {
			t.Fatalf("court %d double booked at %v", match.Court, match.StartTime)
		}
		slotsUsed[slot] = true
	}

	// Division A has an odd roster, so one player sits out every week.
	byes := 0
	for _, bye := range schedule.Byes {
		if bye.DivisionID != 1 || len(bye.PlayerIDs) != 1 {
			t.Fatalf("unexpected bye %+v", bye)
		}
		byes++
	}
	if byes != 5 {
		t.Fatalf("expected 5 byes, got %d", byes)
	}
}

func TestGenerateScheduleSmallDivisionGetsByes(t *testing.T) {
	league := testLeague(GameTypeCutthroat)
	divisions := []Division{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	roster := append(rosterFor(1, playerIDs(3)), rosterFor(2, []int64{201, 202})...)

	schedule, err := GenerateSchedule(context.Background(), league, divisions, roster)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(schedule.Scheduled) != 1 || schedule.Scheduled[0].DivisionID != 1 {
		t.Fatalf("expected one division A match, got %+v", schedule.Scheduled)
	}
	if len(schedule.Byes) != 1 || schedule.Byes[0].DivisionID != 2 || !reflect.DeepEqual(schedule.Byes[0].PlayerIDs, []int64{201, 202}) {
		t.Fatalf("expected division B players on a bye, got %+v", schedule.Byes)
	}
}

func TestGenerateScheduleCutthroatOverflowsToMakeup(t *testing.T) {
	league := testLeague(GameTypeCutthroat)
	divisions := []Division{{ID: 1, Name: "Open"}}

	schedule, err := GenerateSchedule(context.Background(), league, divisions, rosterFor(1, playerIDs(9)))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(schedule.Scheduled) == 0 {
		t.Fatalf("expected scheduled matches")
	}

	perWeek := make(map[int][2]int)
	for _, match := range schedule.Scheduled {
		counts := perWeek[match.WeekNumber]
		counts[0]++
		perWeek[match.WeekNumber] = counts
	}
	for _, match := range schedule.Makeup {
		counts := perWeek[match.WeekNumber]
		counts[1]++
		perWeek[match.WeekNumber] = counts
	}
	for week, counts := range perWeek {
		if counts[0] != 2 || counts[1] != 1 {
			t.Fatalf("week %d: expected 2 scheduled and 1 makeup, got %v", week, counts)
		}
	}
}

func TestGenerateScheduleDeterministic(t *testing.T) {
	league := testLeague(GameTypeDoubles)
	league.PlayEnd = "22:00"
	divisions := []Division{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	roster := append(rosterFor(1, playerIDs(7)), rosterFor(2, []int64{201, 202, 203, 204, 205})...)

	first, err := GenerateSchedule(context.Background(), league, divisions, roster)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := GenerateSchedule(context.Background(), league, divisions, roster)
	if err != nil {
		t.Fatalf("generate again: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("schedules differ between runs")
	}
}
