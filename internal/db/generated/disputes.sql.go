package dbgen

import "context"

const createDisputedScore = `
INSERT INTO disputed_scores (match_id, player_id, games_json, reason)
VALUES (?, ?, ?, ?)
`

type CreateDisputedScoreParams struct {
	MatchID   int64
	PlayerID  int64
	GamesJSON string
	Reason    string
}

func (q *Queries) CreateDisputedScore(ctx context.Context, arg CreateDisputedScoreParams) (DisputedScore, error) {
	result, err := q.db.ExecContext(ctx, createDisputedScore, arg.MatchID, arg.PlayerID, arg.GamesJSON, arg.Reason)
	if err != nil {
		return DisputedScore{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return DisputedScore{}, err
	}
	row := q.db.QueryRowContext(ctx, getDisputedScore, id)
	var i DisputedScore
	err = row.Scan(&i.ID, &i.MatchID, &i.PlayerID, &i.GamesJSON, &i.Reason, &i.CreatedAt)
	return i, err
}

const getDisputedScore = `
SELECT id, match_id, player_id, games_json, reason, created_at
FROM disputed_scores
WHERE id = ?
`

const listMatchDisputes = `
SELECT id, match_id, player_id, games_json, reason, created_at
FROM disputed_scores
WHERE match_id = ?
ORDER BY id
`

func (q *Queries) ListMatchDisputes(ctx context.Context, matchID int64) ([]DisputedScore, error) {
	rows, err := q.db.QueryContext(ctx, listMatchDisputes, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []DisputedScore
	for rows.Next() {
		var i DisputedScore
		if err := rows.Scan(&i.ID, &i.MatchID, &i.PlayerID, &i.GamesJSON, &i.Reason, &i.CreatedAt); err != nil {
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
