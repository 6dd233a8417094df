package leagues

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	dbgen "github.com/codr1/pickleleague/internal/db/generated"
)

// leagueFromRow builds a League and derives its status from the calendar at
// now.
func leagueFromRow(row dbgen.League, now time.Time) (League, error) {
	gameType, err := ParseGameType(row.GameType)
	if err != nil {
		return League{}, fmt.Errorf("league %d: %w", row.ID, err)
	}
	ranking, err := ParseRankingMethod(row.RankingMethod)
	if err != nil {
		return League{}, fmt.Errorf("league %d: %w", row.ID, err)
	}
	league := League{
		ID:            row.ID,
		Name:          row.Name,
		GameType:      gameType,
		RankingMethod: ranking,
		PointsToWin:   int(row.PointsToWin),
		WinByTwo:      row.WinByTwo,
		GamesPerMatch: int(row.GamesPerMatch),
		MatchDuration: time.Duration(row.MatchDurationMinutes) * time.Minute,
		PlayStart:     row.PlayStartTime,
		PlayEnd:       row.PlayEndTime.String,
		Dates: DateRanges{
			RegistrationStart: nullTime(row.RegistrationStart),
			RegistrationEnd:   nullTime(row.RegistrationEnd),
			SeasonStart:       row.StartDate,
			SeasonEnd:         row.EndDate,
		},
	}
	league.Status = DeriveStatus(now, league.Dates)
	return league, nil
}

func divisionFromRow(row dbgen.Division) Division {
	return Division{
		ID:        row.ID,
		LeagueID:  row.LeagueID,
		Name:      row.Name,
		SortOrder: int(row.SortOrder),
	}
}

func matchFromRow(row dbgen.LeagueMatch) Match {
	match := Match{
		ID:               row.ID,
		LeagueID:         row.LeagueID,
		DivisionID:       row.DivisionID,
		Round:            int(row.RoundNumber),
		WeekNumber:       int(row.WeekNumber),
		Player1ID:        row.Player1ID,
		Player2ID:        row.Player2ID,
		Player3ID:        row.Player3ID.Int64,
		Player4ID:        row.Player4ID.Int64,
		Court:            int(row.CourtNumber.Int64),
		IsMakeup:         row.IsMakeup,
		Status:           MatchStatus(row.Status),
		Player1Confirmed: row.Player1Confirmed,
		Player2Confirmed: row.Player2Confirmed,
		WinnerID:         row.WinnerID.Int64,
		ReportedByID:     row.ReportedByID.Int64,
		StatusReason:     row.StatusReason.String,
		Version:          row.Version,
	}
	if row.ScheduledTime.Valid {
		scheduled := row.ScheduledTime.Time
		match.ScheduledTime = &scheduled
	}
	if row.ReportedAt.Valid {
		reported := row.ReportedAt.Time
		match.ReportedAt = &reported
	}
	return match
}

func gameFromRow(row dbgen.MatchGame) Game {
	scores := []int{int(row.Player1Score), int(row.Player2Score)}
	if row.Player3Score.Valid {
		scores = append(scores, int(row.Player3Score.Int64))
	}
	return Game{
		Number:   int(row.GameNumber),
		Scores:   scores,
		WinnerID: row.WinnerID.Int64,
	}
}

func createGameParams(matchID int64, game Game) dbgen.CreateMatchGameParams {
	params := dbgen.CreateMatchGameParams{
		MatchID:      matchID,
		GameNumber:   int64(game.Number),
		Player1Score: int64(game.Scores[0]),
		Player2Score: int64(game.Scores[1]),
		WinnerID:     nullInt64(game.WinnerID),
	}
	if len(game.Scores) > 2 {
		params.Player3Score = sql.NullInt64{Int64: int64(game.Scores[2]), Valid: true}
	}
	return params
}

func createMatchParams(leagueID int64, scheduled ScheduledMatch) (dbgen.CreateLeagueMatchParams, error) {
	if len(scheduled.Players) < 2 {
		return dbgen.CreateLeagueMatchParams{}, fmt.Errorf("match in division %d week %d has %d players", scheduled.DivisionID, scheduled.WeekNumber, len(scheduled.Players))
	}
	params := dbgen.CreateLeagueMatchParams{
		LeagueID:    leagueID,
		DivisionID:  scheduled.DivisionID,
		RoundNumber: int64(scheduled.Round),
		WeekNumber:  int64(scheduled.WeekNumber),
		Player1ID:   scheduled.Players[0],
		Player2ID:   scheduled.Players[1],
		IsMakeup:    scheduled.IsMakeup,
		Status:      string(MatchScheduled),
	}
	if len(scheduled.Players) > 2 {
		params.Player3ID = nullInt64(scheduled.Players[2])
	}
	if len(scheduled.Players) > 3 {
		params.Player4ID = nullInt64(scheduled.Players[3])
	}
	if !scheduled.IsMakeup {
		params.CourtNumber = sql.NullInt64{Int64: int64(scheduled.Court), Valid: true}
		params.ScheduledTime = sql.NullTime{Time: scheduled.StartTime, Valid: true}
	}
	return params, nil
}

func disputeFromRow(row dbgen.DisputedScore) (DisputeRecord, error) {
	var games []GameScore
	if err := json.Unmarshal([]byte(row.GamesJSON), &games); err != nil {
		return DisputeRecord{}, fmt.Errorf("decode disputed games %d: %w", row.ID, err)
	}
	return DisputeRecord{
		ID:        row.ID,
		MatchID:   row.MatchID,
		PlayerID:  row.PlayerID,
		Games:     games,
		Reason:    row.Reason,
		CreatedAt: row.CreatedAt,
	}, nil
}

func nullInt64(value int64) sql.NullInt64 {
	if value == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: value, Valid: true}
}

func nullTime(value sql.NullTime) time.Time {
	if !value.Valid {
		return time.Time{}
	}
	return value.Time
}
