package leagues

import (
	"strings"
	"time"
)

// CourtCount is the fixed court inventory every league schedules onto.
const CourtCount = 2

type GameType string

const (
	GameTypeSingles   GameType = "SINGLES"
	GameTypeDoubles   GameType = "DOUBLES"
	GameTypeCutthroat GameType = "CUTTHROAT"
)

// PlayersPerMatch returns the number of player slots a match of this type fills,
// or 0 for an unknown type.
func (g GameType) PlayersPerMatch() int {
	switch g {
	case GameTypeSingles:
		return 2
	case GameTypeDoubles:
		return 4
	case GameTypeCutthroat:
		return 3
	default:
		return 0
	}
}

// ScoresPerGame is the number of scores recorded per game. Doubles scores are
// kept per side, so both singles and doubles record two.
func (g GameType) ScoresPerGame() int {
	switch g {
	case GameTypeSingles, GameTypeDoubles:
		return 2
	case GameTypeCutthroat:
		return 3
	default:
		return 0
	}
}

func ParseGameType(raw string) (GameType, error) {
	switch GameType(strings.ToUpper(strings.TrimSpace(raw))) {
	case GameTypeSingles:
		return GameTypeSingles, nil
	case GameTypeDoubles:
		return GameTypeDoubles, nil
	case GameTypeCutthroat:
		return GameTypeCutthroat, nil
	default:
		return "", invalidInputf("unknown game type %q", raw)
	}
}

type RankingMethod string

const (
	RankByWins   RankingMethod = "BY_WINS"
	RankByPoints RankingMethod = "BY_POINTS"
)

func ParseRankingMethod(raw string) (RankingMethod, error) {
	switch RankingMethod(strings.ToUpper(strings.TrimSpace(raw))) {
	case RankByWins:
		return RankByWins, nil
	case RankByPoints:
		return RankByPoints, nil
	default:
		return "", invalidInputf("unknown ranking method %q", raw)
	}
}

type MatchStatus string

const (
	MatchScheduled  MatchStatus = "SCHEDULED"
	MatchInProgress MatchStatus = "IN_PROGRESS"
	MatchCompleted  MatchStatus = "COMPLETED"
	MatchDisputed   MatchStatus = "DISPUTED"
)

// Closed reports whether the match has left the reporting lifecycle. Only an
// administrator can reopen a closed match.
func (s MatchStatus) Closed() bool {
	return s == MatchCompleted || s == MatchDisputed
}

// countsTowardStandings reports whether scores recorded on a match in this
// status feed provisional standings.
func (s MatchStatus) countsTowardStandings() bool {
	return s == MatchInProgress || s == MatchCompleted || s == MatchDisputed
}

const (
	RegistrationPending   = "PENDING"
	RegistrationConfirmed = "CONFIRMED"
	RegistrationWithdrawn = "WITHDRAWN"
)

const (
	defaultGamesPerMatch = 3
	timeOfDayLayout      = "15:04"
)

type League struct {
	ID            int64
	Name          string
	GameType      GameType
	RankingMethod RankingMethod
	PointsToWin   int
	WinByTwo      bool
	GamesPerMatch int
	MatchDuration time.Duration
	// PlayStart and PlayEnd are "HH:MM" times of day. An empty PlayEnd means
	// one time slot per court each week.
	PlayStart string
	PlayEnd   string
	Dates     DateRanges
	// Status is derived from Dates when the league is read; it is never
	// stored.
	Status Status
}

// MaxGames returns the most games a single score report may carry.
func (l League) MaxGames() int {
	if l.GamesPerMatch <= 0 {
		return defaultGamesPerMatch
	}
	return l.GamesPerMatch
}

type Division struct {
	ID        int64
	LeagueID  int64
	Name      string
	SortOrder int
}

// RosterEntry is one confirmed registration as the scheduler sees it.
type RosterEntry struct {
	PlayerID   int64
	PlayerName string
	DivisionID int64
}

// Match is a scheduled or played match. Player slots hold 0 when unused.
type Match struct {
	ID               int64       `json:"id"`
	LeagueID         int64       `json:"leagueId"`
	DivisionID       int64       `json:"divisionId"`
	Round            int         `json:"round"`
	WeekNumber       int         `json:"weekNumber"`
	Player1ID        int64       `json:"player1Id"`
	Player2ID        int64       `json:"player2Id"`
	Player3ID        int64       `json:"player3Id,omitempty"`
	Player4ID        int64       `json:"player4Id,omitempty"`
	Court            int         `json:"court,omitempty"`
	ScheduledTime    *time.Time  `json:"scheduledTime,omitempty"`
	IsMakeup         bool        `json:"isMakeup"`
	Status           MatchStatus `json:"status"`
	Player1Confirmed bool        `json:"player1Confirmed"`
	Player2Confirmed bool        `json:"player2Confirmed"`
	WinnerID         int64       `json:"winnerId,omitempty"`
	ReportedByID     int64       `json:"reportedById,omitempty"`
	ReportedAt       *time.Time  `json:"reportedAt,omitempty"`
	StatusReason     string      `json:"statusReason,omitempty"`
	Version          int64       `json:"version"`
	Games            []Game      `json:"games,omitempty"`
}

// Slots returns the populated player slots in order.
func (m Match) Slots() []int64 {
	slots := make([]int64, 0, 4)
	for _, id := range []int64{m.Player1ID, m.Player2ID, m.Player3ID, m.Player4ID} {
		if id != 0 {
			slots = append(slots, id)
		}
	}
	return slots
}

// HasPlayer reports whether playerID occupies any slot of the match.
func (m Match) HasPlayer(playerID int64) bool {
	if playerID <= 0 {
		return false
	}
	for _, id := range m.Slots() {
		if id == playerID {
			return true
		}
	}
	return false
}

type Game struct {
	Number   int   `json:"number"`
	Scores   []int `json:"scores"`
	WinnerID int64 `json:"winnerId,omitempty"`
}

// GameScore is one game of a score report, scores ordered by match slot (or
// by side for doubles).
type GameScore struct {
	Scores []int `json:"scores"`
}

type DisputeRecord struct {
	ID        int64       `json:"id"`
	MatchID   int64       `json:"matchId"`
	PlayerID  int64       `json:"playerId"`
	Games     []GameScore `json:"games"`
	Reason    string      `json:"reason"`
	CreatedAt time.Time   `json:"createdAt"`
}
