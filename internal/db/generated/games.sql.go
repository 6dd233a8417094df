package dbgen

import (
	"context"
	"database/sql"
)

const gameColumns = `id, match_id, game_number, player1_score, player2_score, player3_score, winner_id`

func (q *Queries) listMatchGames(ctx context.Context, query string, arg int64) ([]MatchGame, error) {
	rows, err := q.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []MatchGame
	for rows.Next() {
		var i MatchGame
		if err := rows.Scan(
			&i.ID,
			&i.MatchID,
			&i.GameNumber,
			&i.Player1Score,
			&i.Player2Score,
			&i.Player3Score,
			&i.WinnerID,
		); err != nil {
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

const createMatchGame = `
INSERT INTO match_games (match_id, game_number, player1_score, player2_score, player3_score, winner_id)
VALUES (?, ?, ?, ?, ?, ?)
`

type CreateMatchGameParams struct {
	MatchID      int64
	GameNumber   int64
	Player1Score int64
	Player2Score int64
	Player3Score sql.NullInt64
	WinnerID     sql.NullInt64
}

func (q *Queries) CreateMatchGame(ctx context.Context, arg CreateMatchGameParams) error {
	_, err := q.db.ExecContext(ctx, createMatchGame,
		arg.MatchID,
		arg.GameNumber,
		arg.Player1Score,
		arg.Player2Score,
		arg.Player3Score,
		arg.WinnerID,
	)
	return err
}

const deleteMatchGames = `DELETE FROM match_games WHERE match_id = ?`

func (q *Queries) DeleteMatchGames(ctx context.Context, matchID int64) error {
	_, err := q.db.ExecContext(ctx, deleteMatchGames, matchID)
	return err
}

const listMatchGames = `SELECT ` + gameColumns + ` FROM match_games WHERE match_id = ? ORDER BY game_number`

func (q *Queries) ListMatchGames(ctx context.Context, matchID int64) ([]MatchGame, error) {
	return q.listMatchGames(ctx, listMatchGames, matchID)
}

const listDivisionGames = `
SELECT g.id, g.match_id, g.game_number, g.player1_score, g.player2_score, g.player3_score, g.winner_id
FROM match_games g
JOIN league_matches m ON m.id = g.match_id
WHERE m.division_id = ?
ORDER BY g.match_id, g.game_number
`

func (q *Queries) ListDivisionGames(ctx context.Context, divisionID int64) ([]MatchGame, error) {
	return q.listMatchGames(ctx, listDivisionGames, divisionID)
}
