package dbgen

import (
	"context"
	"database/sql"
)

const matchColumns = `id, league_id, division_id, round_number, week_number, player1_id, player2_id,
    player3_id, player4_id, court_number, scheduled_time, is_makeup, status, player1_confirmed,
    player2_confirmed, winner_id, reported_by_id, reported_at, status_reason, version, created_at,
    updated_at`

func scanLeagueMatch(row interface{ Scan(...interface{}) error }) (LeagueMatch, error) {
	var i LeagueMatch
	err := row.Scan(
		&i.ID,
		&i.LeagueID,
		&i.DivisionID,
		&i.RoundNumber,
		&i.WeekNumber,
		&i.Player1ID,
		&i.Player2ID,
		&i.Player3ID,
		&i.Player4ID,
		&i.CourtNumber,
		&i.ScheduledTime,
		&i.IsMakeup,
		&i.Status,
		&i.Player1Confirmed,
		&i.Player2Confirmed,
		&i.WinnerID,
		&i.ReportedByID,
		&i.ReportedAt,
		&i.StatusReason,
		&i.Version,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func (q *Queries) listLeagueMatches(ctx context.Context, query string, args ...interface{}) ([]LeagueMatch, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []LeagueMatch
	for rows.Next() {
		i, err := scanLeagueMatch(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countLeagueMatches = `SELECT COUNT(*) FROM league_matches WHERE league_id = ?`

func (q *Queries) CountLeagueMatches(ctx context.Context, leagueID int64) (int64, error) {
	row := q.db.QueryRowContext(ctx, countLeagueMatches, leagueID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createLeagueMatch = `
INSERT INTO league_matches (
    league_id, division_id, round_number, week_number, player1_id, player2_id,
    player3_id, player4_id, court_number, scheduled_time, is_makeup, status
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateLeagueMatchParams struct {
	LeagueID      int64
	DivisionID    int64
	RoundNumber   int64
	WeekNumber    int64
	Player1ID     int64
	Player2ID     int64
	Player3ID     sql.NullInt64
	Player4ID     sql.NullInt64
	CourtNumber   sql.NullInt64
	ScheduledTime sql.NullTime
	IsMakeup      bool
	Status        string
}

func (q *Queries) CreateLeagueMatch(ctx context.Context, arg CreateLeagueMatchParams) (LeagueMatch, error) {
	result, err := q.db.ExecContext(ctx, createLeagueMatch,
		arg.LeagueID,
		arg.DivisionID,
		arg.RoundNumber,
		arg.WeekNumber,
		arg.Player1ID,
		arg.Player2ID,
		arg.Player3ID,
		arg.Player4ID,
		arg.CourtNumber,
		arg.ScheduledTime,
		arg.IsMakeup,
		arg.Status,
	)
	if err != nil {
		return LeagueMatch{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return LeagueMatch{}, err
	}
	return q.GetLeagueMatch(ctx, id)
}

const getLeagueMatch = `SELECT ` + matchColumns + ` FROM league_matches WHERE id = ?`

func (q *Queries) GetLeagueMatch(ctx context.Context, id int64) (LeagueMatch, error) {
	return scanLeagueMatch(q.db.QueryRowContext(ctx, getLeagueMatch, id))
}

const listLeagueMatches = `SELECT ` + matchColumns + `
FROM league_matches
WHERE league_id = ?
ORDER BY week_number, is_makeup, scheduled_time, court_number, id`

func (q *Queries) ListLeagueMatches(ctx context.Context, leagueID int64) ([]LeagueMatch, error) {
	return q.listLeagueMatches(ctx, listLeagueMatches, leagueID)
}

const listDivisionReportedMatches = `SELECT ` + matchColumns + `
FROM league_matches
WHERE division_id = ? AND status IN ('IN_PROGRESS', 'COMPLETED', 'DISPUTED')
ORDER BY week_number, id`

func (q *Queries) ListDivisionReportedMatches(ctx context.Context, divisionID int64) ([]LeagueMatch, error) {
	return q.listLeagueMatches(ctx, listDivisionReportedMatches, divisionID)
}

const updateMatchScoreState = `
UPDATE league_matches
SET status = ?,
    player1_confirmed = ?,
    player2_confirmed = ?,
    winner_id = ?,
    reported_by_id = ?,
    reported_at = ?,
    status_reason = ?,
    version = version + 1,
    updated_at = CURRENT_TIMESTAMP
WHERE id = ? AND version = ?
`

type UpdateMatchScoreStateParams struct {
	Status           string
	Player1Confirmed bool
	Player2Confirmed bool
	WinnerID         sql.NullInt64
	ReportedByID     sql.NullInt64
	ReportedAt       sql.NullTime
	StatusReason     sql.NullString
	ID               int64
	Version          int64
}

// UpdateMatchScoreState applies the change only when the stored version still
// matches and returns the number of rows updated.
func (q *Queries) UpdateMatchScoreState(ctx context.Context, arg UpdateMatchScoreStateParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateMatchScoreState,
		arg.Status,
		arg.Player1Confirmed,
		arg.Player2Confirmed,
		arg.WinnerID,
		arg.ReportedByID,
		arg.ReportedAt,
		arg.StatusReason,
		arg.ID,
		arg.Version,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
