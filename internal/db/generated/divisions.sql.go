package dbgen

import "context"

const createDivision = `
INSERT INTO divisions (league_id, name, sort_order)
VALUES (?, ?, ?)
`

type CreateDivisionParams struct {
	LeagueID  int64
	Name      string
	SortOrder int64
}

func (q *Queries) CreateDivision(ctx context.Context, arg CreateDivisionParams) (Division, error) {
	result, err := q.db.ExecContext(ctx, createDivision, arg.LeagueID, arg.Name, arg.SortOrder)
	if err != nil {
		return Division{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return Division{}, err
	}
	return q.GetDivision(ctx, id)
}

const getDivision = `
SELECT id, league_id, name, sort_order, created_at
FROM divisions
WHERE id = ?
`

func (q *Queries) GetDivision(ctx context.Context, id int64) (Division, error) {
	row := q.db.QueryRowContext(ctx, getDivision, id)
	var i Division
	err := row.Scan(&i.ID, &i.LeagueID, &i.Name, &i.SortOrder, &i.CreatedAt)
	return i, err
}

const listLeagueDivisions = `
SELECT id, league_id, name, sort_order, created_at
FROM divisions
WHERE league_id = ?
ORDER BY sort_order, id
`

func (q *Queries) ListLeagueDivisions(ctx context.Context, leagueID int64) ([]Division, error) {
	rows, err := q.db.QueryContext(ctx, listLeagueDivisions, leagueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Division
	for rows.Next() {
		var i Division
		if err := rows.Scan(&i.ID, &i.LeagueID, &i.Name, &i.SortOrder, &i.CreatedAt); err != nil {
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
