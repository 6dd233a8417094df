package dbgen

import "context"

const createRegistration = `
INSERT INTO registrations (league_id, division_id, player_id, status)
VALUES (?, ?, ?, ?)
`

type CreateRegistrationParams struct {
	LeagueID   int64
	DivisionID int64
	PlayerID   int64
	Status     string
}

func (q *Queries) CreateRegistration(ctx context.Context, arg CreateRegistrationParams) (Registration, error) {
	result, err := q.db.ExecContext(ctx, createRegistration, arg.LeagueID, arg.DivisionID, arg.PlayerID, arg.Status)
	if err != nil {
		return Registration{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return Registration{}, err
	}
	row := q.db.QueryRowContext(ctx, getRegistration, id)
	var i Registration
	err = row.Scan(&i.ID, &i.LeagueID, &i.DivisionID, &i.PlayerID, &i.Status, &i.CreatedAt)
	return i, err
}

const getRegistration = `
SELECT id, league_id, division_id, player_id, status, created_at
FROM registrations
WHERE id = ?
`

const listConfirmedRoster = `
SELECT r.player_id, p.name, r.division_id
FROM registrations r
JOIN players p ON p.id = r.player_id
WHERE r.league_id = ? AND r.status = 'CONFIRMED'
ORDER BY r.created_at, r.id
`

type ListConfirmedRosterRow struct {
	PlayerID   int64
	PlayerName string
	DivisionID int64
}

func (q *Queries) ListConfirmedRoster(ctx context.Context, leagueID int64) ([]ListConfirmedRosterRow, error) {
	rows, err := q.db.QueryContext(ctx, listConfirmedRoster, leagueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListConfirmedRosterRow
	for rows.Next() {
		var i ListConfirmedRosterRow
		if err := rows.Scan(&i.PlayerID, &i.PlayerName, &i.DivisionID); err != nil {
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
