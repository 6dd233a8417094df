package leagues

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"
)

type PlayerRef struct {
	ID   int64
	Name string
}

type StandingsRow struct {
	Rank          int     `json:"rank"`
	PlayerID      int64   `json:"playerId"`
	PlayerName    string  `json:"playerName"`
	MatchesPlayed int     `json:"matchesPlayed"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinPercentage float64 `json:"winPercentage"`
	GamesWon      int     `json:"gamesWon"`
	GamesLost     int     `json:"gamesLost"`
	PointsFor     int     `json:"pointsFor"`
}

// BuildStandings aggregates a division's reported matches into ranked rows.
// Every player in players gets a row even without results. Matches must carry
// their games.
func BuildStandings(ctx context.Context, league League, players []PlayerRef, matches []Match) []StandingsRow {
	logger := log.Ctx(ctx).With().
		Str("component", "league_standings").
		Int64("league_id", league.ID).
		Logger()

	rows := make(map[int64]*StandingsRow, len(players))
	order := make([]int64, 0, len(players))
	entry := func(playerID int64) *StandingsRow {
		row, ok := rows[playerID]
		if !ok {
			row = &StandingsRow{PlayerID: playerID}
			rows[playerID] = row
			order = append(order, playerID)
		}
		return row
	}
	for _, player := range players {
		entry(player.ID).PlayerName = player.Name
	}

	slots := league.GameType.ScoresPerGame()
	for _, match := range matches {
		if !match.Status.countsTowardStandings() || slots == 0 {
			continue
		}
		sides := make([][]int64, slots)
		for _, playerID := range match.Slots() {
			idx := scoreIndex(match, league.GameType, playerID)
			if idx < 0 || idx >= slots {
				continue
			}
			sides[idx] = append(sides[idx], playerID)
			entry(playerID)
		}

		gameWinners := make([]int, 0, len(match.Games))
		for _, game := range match.Games {
			if len(game.Scores) != slots || !gameCounts(league, game.Scores) {
				continue
			}
			winner := strictMaxSlot(game.Scores)
			gameWinners = append(gameWinners, winner)
			for idx, score := range game.Scores {
				for _, playerID := range sides[idx] {
					row := rows[playerID]
					row.PointsFor += score
					switch {
					case winner == noWinner:
					case winner == idx:
						row.GamesWon++
					default:
						row.GamesLost++
					}
				}
			}
		}

		leader := MatchWinnerSlot(gameWinners, slots)
		if leader == noWinner {
			if len(gameWinners) > 0 {
				logger.Info().
					Int64("match_id", match.ID).
					Msg("Match has no single game-win leader; outcome skipped")
			}
			continue
		}
		for idx, side := range sides {
			for _, playerID := range side {
				row := rows[playerID]
				row.MatchesPlayed++
				if idx == leader {
					row.Wins++
				} else {
					row.Losses++
				}
			}
		}
	}

	ordered := make([]*StandingsRow, 0, len(order))
	for _, playerID := range order {
		row := rows[playerID]
		if row.MatchesPlayed > 0 {
			row.WinPercentage = float64(row.Wins*100) / float64(row.MatchesPlayed)
		}
		ordered = append(ordered, row)
	}
	sortStandings(ordered, league.RankingMethod)

	standings := make([]StandingsRow, 0, len(ordered))
	for i, row := range ordered {
		row.Rank = i + 1
		standings = append(standings, *row)
	}
	return standings
}

// gameCounts reports whether anyone reached the winning score. Games that
// never got there were abandoned and are ignored.
func gameCounts(league League, scores []int) bool {
	for _, score := range scores {
		if score >= league.PointsToWin {
			return true
		}
	}
	return false
}

func strictMaxSlot(scores []int) int {
	top := noWinner
	tied := false
	for i, score := range scores {
		switch {
		case top == noWinner || score > scores[top]:
			top = i
			tied = false
		case score == scores[top]:
			tied = true
		}
	}
	if tied {
		return noWinner
	}
	return top
}

func sortStandings(ordered []*StandingsRow, method RankingMethod) {
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if method == RankByPoints {
			if a.PointsFor != b.PointsFor {
				return a.PointsFor > b.PointsFor
			}
			if a.Wins != b.Wins {
				return a.Wins > b.Wins
			}
			if a.GamesWon != b.GamesWon {
				return a.GamesWon > b.GamesWon
			}
		} else {
			if a.WinPercentage != b.WinPercentage {
				return a.WinPercentage > b.WinPercentage
			}
			if a.Wins != b.Wins {
				return a.Wins > b.Wins
			}
			if a.GamesWon != b.GamesWon {
				return a.GamesWon > b.GamesWon
			}
			if a.PointsFor != b.PointsFor {
				return a.PointsFor > b.PointsFor
			}
		}
		if a.PlayerName != b.PlayerName {
			return a.PlayerName < b.PlayerName
		}
		return a.PlayerID < b.PlayerID
	})
}
