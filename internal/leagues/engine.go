package leagues

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codr1/pickleleague/internal/db"
	dbgen "github.com/codr1/pickleleague/internal/db/generated"
)

// Engine runs the league operations against storage. Every operation runs in
// a single transaction; match updates are additionally guarded by the match
// version.
type Engine struct {
	db  *db.DB
	now func() time.Time
}

type EngineOption func(*Engine)

// WithClock overrides the clock used to stamp score reports and to derive
// league status.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func NewEngine(database *db.DB, opts ...EngineOption) *Engine {
	engine := &Engine{db: database, now: time.Now}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

type ScheduleResult struct {
	Scheduled []Match       `json:"scheduled"`
	Makeup    []Match       `json:"makeup"`
	Byes      []DivisionBye `json:"byes"`
}

func (e *Engine) logger(ctx context.Context) zerolog.Logger {
	return log.Ctx(ctx).With().Str("component", "league_engine").Logger()
}

// GenerateSchedule builds and stores the season schedule for a league. It
// fails with ErrScheduleExists when the league already has matches.
func (e *Engine) GenerateSchedule(ctx context.Context, leagueID int64) (ScheduleResult, error) {
	logger := e.logger(ctx).With().Int64("league_id", leagueID).Logger()

	var result ScheduleResult
	err := e.db.RunInTx(ctx, func(tx *db.DB) error {
		league, err := loadLeague(ctx, tx.Queries, leagueID, e.now())
		if err != nil {
			return err
		}

		existing, err := tx.Queries.CountLeagueMatches(ctx, leagueID)
		if err != nil {
			return fmt.Errorf("count matches for league %d: %w", leagueID, err)
		}
		if existing > 0 {
			return ErrScheduleExists
		}

		divisionRows, err := tx.Queries.ListLeagueDivisions(ctx, leagueID)
		if err != nil {
			return fmt.Errorf("list divisions for league %d: %w", leagueID, err)
		}
		divisions := make([]Division, 0, len(divisionRows))
		for _, row := range divisionRows {
			divisions = append(divisions, divisionFromRow(row))
		}

		rosterRows, err := tx.Queries.ListConfirmedRoster(ctx, leagueID)
		if err != nil {
			return fmt.Errorf("list roster for league %d: %w", leagueID, err)
		}
		roster := make([]RosterEntry, 0, len(rosterRows))
		for _, row := range rosterRows {
			roster = append(roster, RosterEntry{
				PlayerID:   row.PlayerID,
				PlayerName: row.PlayerName,
				DivisionID: row.DivisionID,
			})
		}

		schedule, err := GenerateSchedule(ctx, league, divisions, roster)
		if err != nil {
			return err
		}

		result.Scheduled, err = insertMatches(ctx, tx.Queries, leagueID, schedule.Scheduled)
		if err != nil {
			return err
		}
		result.Makeup, err = insertMatches(ctx, tx.Queries, leagueID, schedule.Makeup)
		if err != nil {
			return err
		}
		result.Byes = schedule.Byes
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrScheduleExists) && !errors.Is(err, ErrInvalidInput) && !IsNotFound(err) {
			logger.Error().Err(err).Msg("Failed to generate league schedule")
		}
		return ScheduleResult{}, err
	}

	logger.Info().
		Int("scheduled", len(result.Scheduled)).
		Int("makeup", len(result.Makeup)).
		Msg("Stored league schedule")
	return result, nil
}

func insertMatches(ctx context.Context, q *dbgen.Queries, leagueID int64, scheduled []ScheduledMatch) ([]Match, error) {
	matches := make([]Match, 0, len(scheduled))
	for _, item := range scheduled {
		params, err := createMatchParams(leagueID, item)
		if err != nil {
			return nil, err
		}
		row, err := q.CreateLeagueMatch(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("insert match for division %d week %d: %w", item.DivisionID, item.WeekNumber, err)
		}
		matches = append(matches, matchFromRow(row))
	}
	return matches, nil
}

// SubmitScore records a score report. The reporter's side is marked as
// confirmed and the match moves to IN_PROGRESS. A reporter may resubmit,
// which replaces the games and clears the other side's confirmation.
func (e *Engine) SubmitScore(ctx context.Context, matchID, reporterID int64, games []GameScore) (Match, error) {
	logger := e.logger(ctx).With().
		Int64("match_id", matchID).
		Int64("player_id", reporterID).
		Logger()

	var updated Match
	err := e.db.RunInTx(ctx, func(tx *db.DB) error {
		match, league, err := loadMatchWithLeague(ctx, tx.Queries, matchID, e.now())
		if err != nil {
			return err
		}
		if !match.HasPlayer(reporterID) {
			return fmt.Errorf("player %d in match %d: %w", reporterID, matchID, ErrUnauthorized)
		}
		if match.Status.Closed() {
			return fmt.Errorf("match %d is %s: %w", matchID, match.Status, ErrMatchClosed)
		}
		if match.ReportedByID != 0 && match.ReportedByID != reporterID {
			return fmt.Errorf("match %d reported by player %d: %w", matchID, match.ReportedByID, ErrReportConflict)
		}
		if err := ValidateGames(league, games); err != nil {
			return err
		}

		resolved, winnerID := ResolveGames(league, match, games)
		if err := tx.Queries.DeleteMatchGames(ctx, matchID); err != nil {
			return fmt.Errorf("clear games for match %d: %w", matchID, err)
		}
		for _, game := range resolved {
			if err := tx.Queries.CreateMatchGame(ctx, createGameParams(matchID, game)); err != nil {
				return fmt.Errorf("insert game %d for match %d: %w", game.Number, matchID, err)
			}
		}

		side := confirmingSide(match, reporterID)
		reportedAt := e.now().UTC()
		match.Status = MatchInProgress
		match.Player1Confirmed = side == 1
		match.Player2Confirmed = side == 2
		match.WinnerID = winnerID
		match.ReportedByID = reporterID
		match.ReportedAt = &reportedAt
		match.StatusReason = ""
		if err := saveMatchState(ctx, tx.Queries, match); err != nil {
			return err
		}

		updated, err = loadMatchWithGames(ctx, tx.Queries, matchID)
		return err
	})
	if err != nil {
		return Match{}, err
	}

	logger.Info().
		Int("games", len(updated.Games)).
		Int64("winner_id", updated.WinnerID).
		Msg("Score reported")
	return updated, nil
}

// ConfirmScore marks the confirming player's side as agreeing with the
// current report. Once both sides agree the match is COMPLETED.
func (e *Engine) ConfirmScore(ctx context.Context, matchID, confirmerID int64) (Match, error) {
	logger := e.logger(ctx).With().
		Int64("match_id", matchID).
		Int64("player_id", confirmerID).
		Logger()

	var updated Match
	err := e.db.RunInTx(ctx, func(tx *db.DB) error {
		match, err := loadMatch(ctx, tx.Queries, matchID)
		if err != nil {
			return err
		}
		if !match.HasPlayer(confirmerID) {
			return fmt.Errorf("player %d in match %d: %w", confirmerID, matchID, ErrUnauthorized)
		}
		if match.ReportedByID == 0 {
			return fmt.Errorf("match %d: %w", matchID, ErrNoReport)
		}
		if match.Status.Closed() {
			return fmt.Errorf("match %d is %s: %w", matchID, match.Status, ErrMatchClosed)
		}

		switch confirmingSide(match, confirmerID) {
		case 1:
			if match.Player1Confirmed {
				return ErrAlreadyConfirmed
			}
			match.Player1Confirmed = true
		case 2:
			if match.Player2Confirmed {
				return ErrAlreadyConfirmed
			}
			match.Player2Confirmed = true
		default:
			return fmt.Errorf("player %d in match %d: %w", confirmerID, matchID, ErrNotConfirmingSide)
		}
		if match.Player1Confirmed && match.Player2Confirmed {
			match.Status = MatchCompleted
		}
		if err := saveMatchState(ctx, tx.Queries, match); err != nil {
			return err
		}

		updated, err = loadMatchWithGames(ctx, tx.Queries, matchID)
		return err
	})
	if err != nil {
		return Match{}, err
	}

	logger.Info().Str("status", string(updated.Status)).Msg("Score confirmed")
	return updated, nil
}

// DisputeScore records a participant's competing scores. The reported games
// stay as they are; the match moves to DISPUTED for an administrator.
func (e *Engine) DisputeScore(ctx context.Context, matchID, disputerID int64, games []GameScore) (DisputeRecord, error) {
	logger := e.logger(ctx).With().
		Int64("match_id", matchID).
		Int64("player_id", disputerID).
		Logger()

	var record DisputeRecord
	err := e.db.RunInTx(ctx, func(tx *db.DB) error {
		match, league, err := loadMatchWithLeague(ctx, tx.Queries, matchID, e.now())
		if err != nil {
			return err
		}
		if !match.HasPlayer(disputerID) {
			return fmt.Errorf("player %d in match %d: %w", disputerID, matchID, ErrUnauthorized)
		}
		if match.Status == MatchCompleted {
			return fmt.Errorf("match %d is %s: %w", matchID, match.Status, ErrMatchClosed)
		}
		if err := ValidateGames(league, games); err != nil {
			return err
		}

		payload, err := json.Marshal(games)
		if err != nil {
			return fmt.Errorf("encode disputed games: %w", err)
		}
		row, err := tx.Queries.CreateDisputedScore(ctx, dbgen.CreateDisputedScoreParams{
			MatchID:   matchID,
			PlayerID:  disputerID,
			GamesJSON: string(payload),
			Reason:    fmt.Sprintf("disputed by player %d", disputerID),
		})
		if err != nil {
			return fmt.Errorf("insert dispute for match %d: %w", matchID, err)
		}

		match.Status = MatchDisputed
		match.StatusReason = row.Reason
		if err := saveMatchState(ctx, tx.Queries, match); err != nil {
			return err
		}

		record, err = disputeFromRow(row)
		return err
	})
	if err != nil {
		return DisputeRecord{}, err
	}

	logger.Info().Int64("dispute_id", record.ID).Msg("Score disputed")
	return record, nil
}

// ComputeStandings ranks a division from its reported matches. Results are
// computed from storage on every call.
func (e *Engine) ComputeStandings(ctx context.Context, divisionID int64) ([]StandingsRow, error) {
	var standings []StandingsRow
	err := e.db.RunInTx(ctx, func(tx *db.DB) error {
		divisionRow, err := tx.Queries.GetDivision(ctx, divisionID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return notFoundf("division %d", divisionID)
			}
			return fmt.Errorf("load division %d: %w", divisionID, err)
		}
		league, err := loadLeague(ctx, tx.Queries, divisionRow.LeagueID, e.now())
		if err != nil {
			return err
		}

		registered, err := tx.Queries.ListDivisionRegisteredPlayers(ctx, divisionID)
		if err != nil {
			return fmt.Errorf("list registered players for division %d: %w", divisionID, err)
		}
		participants, err := tx.Queries.ListDivisionMatchPlayers(ctx, divisionID)
		if err != nil {
			return fmt.Errorf("list match players for division %d: %w", divisionID, err)
		}
		players := make([]PlayerRef, 0, len(registered)+len(participants))
		seen := make(map[int64]struct{}, len(registered)+len(participants))
		for _, list := range [][]dbgen.PlayerName{registered, participants} {
			for _, player := range list {
				if _, ok := seen[player.ID]; ok {
					continue
				}
				seen[player.ID] = struct{}{}
				players = append(players, PlayerRef{ID: player.ID, Name: player.Name})
			}
		}

		matchRows, err := tx.Queries.ListDivisionReportedMatches(ctx, divisionID)
		if err != nil {
			return fmt.Errorf("list matches for division %d: %w", divisionID, err)
		}
		gameRows, err := tx.Queries.ListDivisionGames(ctx, divisionID)
		if err != nil {
			return fmt.Errorf("list games for division %d: %w", divisionID, err)
		}
		gamesByMatch := make(map[int64][]Game, len(matchRows))
		for _, row := range gameRows {
			gamesByMatch[row.MatchID] = append(gamesByMatch[row.MatchID], gameFromRow(row))
		}
		matches := make([]Match, 0, len(matchRows))
		for _, row := range matchRows {
			match := matchFromRow(row)
			match.Games = gamesByMatch[match.ID]
			matches = append(matches, match)
		}

		standings = BuildStandings(ctx, league, players, matches)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return standings, nil
}

// GetMatch returns a match with its games.
func (e *Engine) GetMatch(ctx context.Context, matchID int64) (Match, error) {
	return loadMatchWithGames(ctx, e.db.Queries, matchID)
}

// ListLeagueMatches returns every match of a league in week order, without
// games.
func (e *Engine) ListLeagueMatches(ctx context.Context, leagueID int64) ([]Match, error) {
	if _, err := loadLeague(ctx, e.db.Queries, leagueID, e.now()); err != nil {
		return nil, err
	}
	rows, err := e.db.Queries.ListLeagueMatches(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list matches for league %d: %w", leagueID, err)
	}
	matches := make([]Match, 0, len(rows))
	for _, row := range rows {
		matches = append(matches, matchFromRow(row))
	}
	return matches, nil
}

// ListDisputes returns the dispute history of a match, oldest first.
func (e *Engine) ListDisputes(ctx context.Context, matchID int64) ([]DisputeRecord, error) {
	if _, err := loadMatch(ctx, e.db.Queries, matchID); err != nil {
		return nil, err
	}
	rows, err := e.db.Queries.ListMatchDisputes(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list disputes for match %d: %w", matchID, err)
	}
	records := make([]DisputeRecord, 0, len(rows))
	for _, row := range rows {
		record, err := disputeFromRow(row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// GetLeague returns a league with its status derived from the engine clock.
func (e *Engine) GetLeague(ctx context.Context, leagueID int64) (League, error) {
	return loadLeague(ctx, e.db.Queries, leagueID, e.now())
}

// ListLeagues returns every league, oldest first, each with its status
// derived from the engine clock.
func (e *Engine) ListLeagues(ctx context.Context) ([]League, error) {
	rows, err := e.db.Queries.ListLeagues(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}
	now := e.now()
	leagues := make([]League, 0, len(rows))
	for _, row := range rows {
		league, err := leagueFromRow(row, now)
		if err != nil {
			return nil, err
		}
		leagues = append(leagues, league)
	}
	return leagues, nil
}

func loadLeague(ctx context.Context, q *dbgen.Queries, leagueID int64, now time.Time) (League, error) {
	row, err := q.GetLeague(ctx, leagueID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return League{}, notFoundf("league %d", leagueID)
		}
		return League{}, fmt.Errorf("load league %d: %w", leagueID, err)
	}
	return leagueFromRow(row, now)
}

func loadMatch(ctx context.Context, q *dbgen.Queries, matchID int64) (Match, error) {
	row, err := q.GetLeagueMatch(ctx, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Match{}, notFoundf("match %d", matchID)
		}
		return Match{}, fmt.Errorf("load match %d: %w", matchID, err)
	}
	return matchFromRow(row), nil
}

func loadMatchWithGames(ctx context.Context, q *dbgen.Queries, matchID int64) (Match, error) {
	match, err := loadMatch(ctx, q, matchID)
	if err != nil {
		return Match{}, err
	}
	rows, err := q.ListMatchGames(ctx, matchID)
	if err != nil {
		return Match{}, fmt.Errorf("load games for match %d: %w", matchID, err)
	}
	for _, row := range rows {
		match.Games = append(match.Games, gameFromRow(row))
	}
	return match, nil
}

func loadMatchWithLeague(ctx context.Context, q *dbgen.Queries, matchID int64, now time.Time) (Match, League, error) {
	match, err := loadMatch(ctx, q, matchID)
	if err != nil {
		return Match{}, League{}, err
	}
	league, err := loadLeague(ctx, q, match.LeagueID, now)
	if err != nil {
		return Match{}, League{}, err
	}
	return match, league, nil
}

// saveMatchState writes the mutable score fields of match, failing with
// ErrConcurrentUpdate when the stored version moved on.
func saveMatchState(ctx context.Context, q *dbgen.Queries, match Match) error {
	params := dbgen.UpdateMatchScoreStateParams{
		Status:           string(match.Status),
		Player1Confirmed: match.Player1Confirmed,
		Player2Confirmed: match.Player2Confirmed,
		WinnerID:         nullInt64(match.WinnerID),
		ReportedByID:     nullInt64(match.ReportedByID),
		StatusReason:     sql.NullString{String: match.StatusReason, Valid: match.StatusReason != ""},
		ID:               match.ID,
		Version:          match.Version,
	}
	if match.ReportedAt != nil {
		params.ReportedAt = sql.NullTime{Time: *match.ReportedAt, Valid: true}
	}
	updated, err := q.UpdateMatchScoreState(ctx, params)
	if err != nil {
		return fmt.Errorf("update match %d: %w", match.ID, err)
	}
	if updated == 0 {
		return fmt.Errorf("match %d version %d: %w", match.ID, match.Version, ErrConcurrentUpdate)
	}
	return nil
}
