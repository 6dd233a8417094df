package dbgen

import (
	"database/sql"
	"time"
)

type League struct {
	ID                   int64          `json:"id"`
	Name                 string         `json:"name"`
	GameType             string         `json:"gameType"`
	RankingMethod        string         `json:"rankingMethod"`
	PointsToWin          int64          `json:"pointsToWin"`
	WinByTwo             bool           `json:"winByTwo"`
	GamesPerMatch        int64          `json:"gamesPerMatch"`
	MatchDurationMinutes int64          `json:"matchDurationMinutes"`
	PlayStartTime        string         `json:"playStartTime"`
	PlayEndTime          sql.NullString `json:"playEndTime"`
	RegistrationStart    sql.NullTime   `json:"registrationStart"`
	RegistrationEnd      sql.NullTime   `json:"registrationEnd"`
	StartDate            time.Time      `json:"startDate"`
	EndDate              time.Time      `json:"endDate"`
	CreatedAt            time.Time      `json:"createdAt"`
	UpdatedAt            time.Time      `json:"updatedAt"`
}

type Division struct {
	ID        int64     `json:"id"`
	LeagueID  int64     `json:"leagueId"`
	Name      string    `json:"name"`
	SortOrder int64     `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
}

type Player struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Email     sql.NullString `json:"email"`
	CreatedAt time.Time      `json:"createdAt"`
}

type Registration struct {
	ID         int64     `json:"id"`
	LeagueID   int64     `json:"leagueId"`
	DivisionID int64     `json:"divisionId"`
	PlayerID   int64     `json:"playerId"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

type LeagueMatch struct {
	ID               int64          `json:"id"`
	LeagueID         int64          `json:"leagueId"`
	DivisionID       int64          `json:"divisionId"`
	RoundNumber      int64          `json:"roundNumber"`
	WeekNumber       int64          `json:"weekNumber"`
	Player1ID        int64          `json:"player1Id"`
	Player2ID        int64          `json:"player2Id"`
	Player3ID        sql.NullInt64  `json:"player3Id"`
	Player4ID        sql.NullInt64  `json:"player4Id"`
	CourtNumber      sql.NullInt64  `json:"courtNumber"`
	ScheduledTime    sql.NullTime   `json:"scheduledTime"`
	IsMakeup         bool           `json:"isMakeup"`
	Status           string         `json:"status"`
	Player1Confirmed bool           `json:"player1Confirmed"`
	Player2Confirmed bool           `json:"player2Confirmed"`
	WinnerID         sql.NullInt64  `json:"winnerId"`
	ReportedByID     sql.NullInt64  `json:"reportedById"`
	ReportedAt       sql.NullTime   `json:"reportedAt"`
	StatusReason     sql.NullString `json:"statusReason"`
	Version          int64          `json:"version"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

type MatchGame struct {
	ID           int64         `json:"id"`
	MatchID      int64         `json:"matchId"`
	GameNumber   int64         `json:"gameNumber"`
	Player1Score int64         `json:"player1Score"`
	Player2Score int64         `json:"player2Score"`
	Player3Score sql.NullInt64 `json:"player3Score"`
	WinnerID     sql.NullInt64 `json:"winnerId"`
}

type DisputedScore struct {
	ID        int64     `json:"id"`
	MatchID   int64     `json:"matchId"`
	PlayerID  int64     `json:"playerId"`
	GamesJSON string    `json:"gamesJson"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}
