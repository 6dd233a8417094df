package leagues

import (
	"context"

	"github.com/rs/zerolog/log"
)

// DivisionBye records the players of one division who sit out a week.
type DivisionBye struct {
	DivisionID int64   `json:"divisionId"`
	WeekNumber int     `json:"weekNumber"`
	PlayerIDs  []int64 `json:"playerIds"`
}

type Schedule struct {
	Scheduled []ScheduledMatch
	Makeup    []ScheduledMatch
	Byes      []DivisionBye
}

// GenerateSchedule builds the full season for a league from its confirmed
// roster. Divisions are processed in the given order and players within a
// division keep their roster order, so the same input always yields the same
// schedule.
func GenerateSchedule(ctx context.Context, league League, divisions []Division, roster []RosterEntry) (Schedule, error) {
	groupSize := league.GameType.PlayersPerMatch()
	if groupSize == 0 {
		return Schedule{}, invalidInputf("unknown game type %q", league.GameType)
	}
	if len(roster) == 0 {
		return Schedule{}, invalidInputf("roster is empty")
	}
	if len(roster) < groupSize {
		return Schedule{}, invalidInputf("%s needs at least %d players, roster has %d", league.GameType, groupSize, len(roster))
	}

	byDivision, err := groupRoster(divisions, roster)
	if err != nil {
		return Schedule{}, err
	}

	logger := log.Ctx(ctx).With().
		Str("component", "league_scheduler").
		Int64("league_id", league.ID).
		Str("game_type", string(league.GameType)).
		Logger()

	var schedule Schedule
	plan := make([]DivisionRounds, 0, len(divisions))
	for _, division := range divisions {
		players := byDivision[division.ID]
		if len(players) == 0 {
			continue
		}
		if len(players) < groupSize {
			logger.Info().
				Int64("division_id", division.ID).
				Int("players", len(players)).
				Int("group_size", groupSize).
				Msg("Division too small for a match; all players receive byes")
		}
		rounds := GeneratePairings(players, groupSize)
		for _, round := range rounds {
			if len(round.Byes) > 0 {
				schedule.Byes = append(schedule.Byes, DivisionBye{
					DivisionID: division.ID,
					WeekNumber: round.Number,
					PlayerIDs:  round.Byes,
				})
			}
		}
		plan = append(plan, DivisionRounds{DivisionID: division.ID, Rounds: rounds})
	}

	allocation, err := AllocateSlots(SlotConfig{
		SeasonStart:   league.Dates.SeasonStart,
		MatchDuration: league.MatchDuration,
		PlayStart:     league.PlayStart,
		PlayEnd:       league.PlayEnd,
		SeasonWeeks:   SeasonWeeks(league.Dates.SeasonStart, league.Dates.SeasonEnd),
	}, plan)
	if err != nil {
		return Schedule{}, err
	}
	schedule.Scheduled = allocation.Scheduled
	schedule.Makeup = allocation.Makeup

	logger.Info().
		Int("scheduled", len(schedule.Scheduled)).
		Int("makeup", len(schedule.Makeup)).
		Msg("Generated league schedule")
	return schedule, nil
}

func groupRoster(divisions []Division, roster []RosterEntry) (map[int64][]int64, error) {
	known := make(map[int64]struct{}, len(divisions))
	for _, division := range divisions {
		known[division.ID] = struct{}{}
	}

	seen := make(map[int64]struct{}, len(roster))
	byDivision := make(map[int64][]int64, len(divisions))
	for _, entry := range roster {
		if entry.PlayerID <= 0 {
			return nil, invalidInputf("roster entry has invalid player id %d", entry.PlayerID)
		}
		if _, dup := seen[entry.PlayerID]; dup {
			return nil, invalidInputf("player %d appears more than once in the roster", entry.PlayerID)
		}
		if _, ok := known[entry.DivisionID]; !ok {
			return nil, invalidInputf("player %d is registered in unknown division %d", entry.PlayerID, entry.DivisionID)
		}
		seen[entry.PlayerID] = struct{}{}
		byDivision[entry.DivisionID] = append(byDivision[entry.DivisionID], entry.PlayerID)
	}
	return byDivision, nil
}
