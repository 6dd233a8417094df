package leagues

// noWinner marks a game or match without a single winning slot.
const noWinner = -1

// ValidateGames rejects malformed reports and reports in which more than one
// player reached the winning score. It never decides winners; a legal game
// may still have none.
func ValidateGames(league League, games []GameScore) error {
	want := league.GameType.ScoresPerGame()
	if want == 0 {
		return invalidInputf("unknown game type %q", league.GameType)
	}
	if league.PointsToWin <= 0 {
		return invalidInputf("league points to win must be positive")
	}
	if len(games) == 0 {
		return invalidInputf("at least one game is required")
	}
	if len(games) > league.MaxGames() {
		return invalidInputf("at most %d games may be reported, got %d", league.MaxGames(), len(games))
	}

	for i, game := range games {
		if len(game.Scores) != want {
			return invalidInputf("game %d: expected %d scores, got %d", i+1, want, len(game.Scores))
		}
		reached := 0
		for _, score := range game.Scores {
			if score < 0 {
				return invalidInputf("game %d: scores must be 0 or greater", i+1)
			}
			if score >= league.PointsToWin {
				reached++
			}
		}
		if reached > 1 {
			return &ScoreIntegrityError{Game: i + 1, PointsToWin: league.PointsToWin}
		}
	}
	return nil
}

// GameWinnerSlot returns the index of the winning score, or -1 when nobody
// met the winning condition. Cutthroat takes the unique high score once it
// reaches the target; the two-sided formats also apply win-by-two when the
// league requires it.
func GameWinnerSlot(league League, scores []int) int {
	if len(scores) == 0 {
		return noWinner
	}
	top := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[top] {
			top = i
		}
	}
	runnerUp := -1
	for i, score := range scores {
		if i == top {
			continue
		}
		if score == scores[top] {
			return noWinner
		}
		if score > runnerUp {
			runnerUp = score
		}
	}
	if scores[top] < league.PointsToWin {
		return noWinner
	}
	if league.GameType == GameTypeCutthroat {
		return top
	}
	if league.WinByTwo && scores[top]-runnerUp < 2 {
		return noWinner
	}
	return top
}

// MatchWinnerSlot returns the slot with strictly the most game wins, or -1.
func MatchWinnerSlot(gameWinners []int, slots int) int {
	if slots <= 0 {
		return noWinner
	}
	tally := make([]int, slots)
	for _, winner := range gameWinners {
		if winner >= 0 && winner < slots {
			tally[winner]++
		}
	}
	leader := noWinner
	tied := false
	for slot, wins := range tally {
		if wins == 0 {
			continue
		}
		switch {
		case leader == noWinner || wins > tally[leader]:
			leader = slot
			tied = false
		case wins == tally[leader]:
			tied = true
		}
	}
	if tied {
		return noWinner
	}
	return leader
}

// ResolveGames turns a validated report into game rows and the match winner.
// A winner id of 0 means the match has no winner yet.
func ResolveGames(league League, match Match, games []GameScore) ([]Game, int64) {
	resolved := make([]Game, 0, len(games))
	winners := make([]int, 0, len(games))
	for i, game := range games {
		slot := GameWinnerSlot(league, game.Scores)
		winners = append(winners, slot)
		resolved = append(resolved, Game{
			Number:   i + 1,
			Scores:   append([]int(nil), game.Scores...),
			WinnerID: scorePlayer(match, slot),
		})
	}
	return resolved, scorePlayer(match, MatchWinnerSlot(winners, league.GameType.ScoresPerGame()))
}

// scoreIndex maps a player to the position of their score within a game.
// Doubles partners share their side's score.
func scoreIndex(match Match, gameType GameType, playerID int64) int {
	if playerID <= 0 {
		return noWinner
	}
	switch playerID {
	case match.Player1ID:
		return 0
	case match.Player2ID:
		return 1
	case match.Player3ID:
		if gameType == GameTypeDoubles {
			return 0
		}
		return 2
	case match.Player4ID:
		if gameType == GameTypeDoubles {
			return 1
		}
	}
	return noWinner
}

// confirmingSide returns 1 or 2 when playerID is the match's player1 or
// player2, or 0. Only those two players gate completion; doubles partners and a
// cutthroat third player never confirm.
func confirmingSide(match Match, playerID int64) int {
	if playerID <= 0 {
		return 0
	}
	switch playerID {
	case match.Player1ID:
		return 1
	case match.Player2ID:
		return 2
	}
	return 0
}

// scorePlayer names the player credited with a score index: the slot player,
// or the first player of a doubles side.
func scorePlayer(match Match, idx int) int64 {
	switch idx {
	case 0:
		return match.Player1ID
	case 1:
		return match.Player2ID
	case 2:
		return match.Player3ID
	default:
		return 0
	}
}
