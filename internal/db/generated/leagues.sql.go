package dbgen

import (
	"context"
	"database/sql"
	"time"
)

const leagueColumns = `id, name, game_type, ranking_method, points_to_win, win_by_two, games_per_match,
    match_duration_minutes, play_start_time, play_end_time, registration_start, registration_end,
    start_date, end_date, created_at, updated_at`

func scanLeague(row interface{ Scan(...interface{}) error }) (League, error) {
	var i League
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.GameType,
		&i.RankingMethod,
		&i.PointsToWin,
		&i.WinByTwo,
		&i.GamesPerMatch,
		&i.MatchDurationMinutes,
		&i.PlayStartTime,
		&i.PlayEndTime,
		&i.RegistrationStart,
		&i.RegistrationEnd,
		&i.StartDate,
		&i.EndDate,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createLeague = `
INSERT INTO leagues (
    name, game_type, ranking_method, points_to_win, win_by_two, games_per_match,
    match_duration_minutes, play_start_time, play_end_time, registration_start,
    registration_end, start_date, end_date
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateLeagueParams struct {
	Name                 string
	GameType             string
	RankingMethod        string
	PointsToWin          int64
	WinByTwo             bool
	GamesPerMatch        int64
	MatchDurationMinutes int64
	PlayStartTime        string
	PlayEndTime          sql.NullString
	RegistrationStart    sql.NullTime
	RegistrationEnd      sql.NullTime
	StartDate            time.Time
	EndDate              time.Time
}

func (q *Queries) CreateLeague(ctx context.Context, arg CreateLeagueParams) (League, error) {
	result, err := q.db.ExecContext(ctx, createLeague,
		arg.Name,
		arg.GameType,
		arg.RankingMethod,
		arg.PointsToWin,
		arg.WinByTwo,
		arg.GamesPerMatch,
		arg.MatchDurationMinutes,
		arg.PlayStartTime,
		arg.PlayEndTime,
		arg.RegistrationStart,
		arg.RegistrationEnd,
		arg.StartDate,
		arg.EndDate,
	)
	if err != nil {
		return League{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return League{}, err
	}
	return q.GetLeague(ctx, id)
}

const getLeague = `SELECT ` + leagueColumns + ` FROM leagues WHERE id = ?`

func (q *Queries) GetLeague(ctx context.Context, id int64) (League, error) {
	return scanLeague(q.db.QueryRowContext(ctx, getLeague, id))
}

const listLeagues = `SELECT ` + leagueColumns + ` FROM leagues ORDER BY id`

func (q *Queries) ListLeagues(ctx context.Context) ([]League, error) {
	rows, err := q.db.QueryContext(ctx, listLeagues)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []League
	for rows.Next() {
		i, err := scanLeague(rows)
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
