package dbgen

import (
	"context"
	"database/sql"
)

const createPlayer = `
INSERT INTO players (name, email)
VALUES (?, ?)
`

type CreatePlayerParams struct {
	Name  string
	Email sql.NullString
}

func (q *Queries) CreatePlayer(ctx context.Context, arg CreatePlayerParams) (Player, error) {
	result, err := q.db.ExecContext(ctx, createPlayer, arg.Name, arg.Email)
	if err != nil {
		return Player{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return Player{}, err
	}
	return q.GetPlayer(ctx, id)
}

const getPlayer = `
SELECT id, name, email, created_at
FROM players
WHERE id = ?
`

func (q *Queries) GetPlayer(ctx context.Context, id int64) (Player, error) {
	row := q.db.QueryRowContext(ctx, getPlayer, id)
	var i Player
	err := row.Scan(&i.ID, &i.Name, &i.Email, &i.CreatedAt)
	return i, err
}

const listDivisionMatchPlayers = `
SELECT DISTINCT p.id, p.name
FROM players p
JOIN league_matches m
    ON p.id IN (m.player1_id, m.player2_id, m.player3_id, m.player4_id)
WHERE m.division_id = ?
ORDER BY p.id
`

type PlayerName struct {
	ID   int64
	Name string
}

func (q *Queries) ListDivisionMatchPlayers(ctx context.Context, divisionID int64) ([]PlayerName, error) {
	return q.listPlayerNames(ctx, listDivisionMatchPlayers, divisionID)
}

const listDivisionRegisteredPlayers = `
SELECT p.id, p.name
FROM registrations r
JOIN players p ON p.id = r.player_id
WHERE r.division_id = ? AND r.status = 'CONFIRMED'
ORDER BY r.created_at, r.id
`

func (q *Queries) ListDivisionRegisteredPlayers(ctx context.Context, divisionID int64) ([]PlayerName, error) {
	return q.listPlayerNames(ctx, listDivisionRegisteredPlayers, divisionID)
}

func (q *Queries) listPlayerNames(ctx context.Context, query string, divisionID int64) ([]PlayerName, error) {
	rows, err := q.db.QueryContext(ctx, query, divisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PlayerName
	for rows.Next() {
		var i PlayerName
		if err := rows.Scan(&i.ID, &i.Name); err != nil {
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
