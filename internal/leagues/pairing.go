package leagues

import "sort"

// Round is one week's partition of a division: every player is either in
// exactly one group or in Byes.
type Round struct {
	Number int
	Groups [][]int64
	Byes   []int64
}

// GeneratePairings produces the round-robin cycle for one division. Pairs use
// the circle method; larger groups start from the same rotation and fill each
// group with the players who have not yet shared one, continuing until every
// pair has played together. Output depends only on the input order.
func GeneratePairings(players []int64, groupSize int) []Round {
	if len(players) == 0 || groupSize < 2 {
		return nil
	}
	if len(players) < groupSize {
		return []Round{{Number: 1, Byes: append([]int64(nil), players...)}}
	}
	if groupSize == 2 {
		return buildCirclePairs(players)
	}
	return buildRotatingGroups(players, groupSize)
}

// phantomSlot is the rotation entry that stands in for a missing opponent. It
// is an index, never an id, so every player id stays a real player.
const phantomSlot = -1

func buildCirclePairs(players []int64) []Round {
	working := make([]int, 0, len(players)+1)
	for i := range players {
		working = append(working, i)
	}
	if len(working)%2 == 1 {
		working = append(working, phantomSlot)
	}

	rounds := len(working) - 1
	result := make([]Round, 0, rounds)
	for round := 0; round < rounds; round++ {
		current := Round{Number: round + 1}
		for i := 0; i < len(working)/2; i++ {
			left := working[i]
			right := working[len(working)-1-i]
			switch {
			case left == phantomSlot:
				current.Byes = append(current.Byes, players[right])
			case right == phantomSlot:
				current.Byes = append(current.Byes, players[left])
			default:
				if i == 0 && round%2 == 1 {
					left, right = right, left
				}
				current.Groups = append(current.Groups, []int64{players[left], players[right]})
			}
		}
		result = append(result, current)
		rotateIndices(working)
	}
	return result
}

func buildRotatingGroups(players []int64, groupSize int) []Round {
	n := len(players)
	met := make([][]bool, n)
	for i := range met {
		met[i] = make([]bool, n)
	}
	uncovered := n * (n - 1) / 2
	byeCounts := make([]int, n)
	byesPerRound := n % groupSize
	maxRounds := n*(n-1)/2 + n

	openPartners := func(p int, among []int) int {
		count := 0
		for _, q := range among {
			if q != p && !met[p][q] {
				count++
			}
		}
		return count
	}

	working := make([]int, n)
	for i := range working {
		working[i] = i
	}
	everyone := append([]int(nil), working...)

	var result []Round
	for round := 0; uncovered > 0 && round < maxRounds; round++ {
		position := make([]int, n)
		for pos, p := range working {
			position[p] = pos
		}

		sitting := make([]bool, n)
		if byesPerRound > 0 {
			candidates := append([]int(nil), working...)
			sort.SliceStable(candidates, func(i, j int) bool {
				a, b := candidates[i], candidates[j]
				if byeCounts[a] != byeCounts[b] {
					return byeCounts[a] < byeCounts[b]
				}
				openA, openB := openPartners(a, everyone), openPartners(b, everyone)
				if openA != openB {
					return openA < openB
				}
				return position[a] > position[b]
			})
			for _, p := range candidates[:byesPerRound] {
				sitting[p] = true
			}
		}

		unassigned := make([]int, 0, n)
		for _, p := range working {
			if !sitting[p] {
				unassigned = append(unassigned, p)
			}
		}

		current := Round{Number: round + 1}
		for len(unassigned) > 0 {
			seedIdx := 0
			for i := 1; i < len(unassigned); i++ {
				if openPartners(unassigned[i], unassigned) > openPartners(unassigned[seedIdx], unassigned) {
					seedIdx = i
				}
			}
			group := []int{unassigned[seedIdx]}
			unassigned = removeAt(unassigned, seedIdx)

			for len(group) < groupSize && len(unassigned) > 0 {
				bestIdx := 0
				bestGain := -1
				for i, candidate := range unassigned {
					gain := openPartners(candidate, group)
					if gain > bestGain {
						bestIdx = i
						bestGain = gain
					}
				}
				group = append(group, unassigned[bestIdx])
				unassigned = removeAt(unassigned, bestIdx)
			}

			ids := make([]int64, 0, len(group))
			for i, p := range group {
				ids = append(ids, players[p])
				for _, q := range group[:i] {
					if !met[p][q] {
						met[p][q] = true
						met[q][p] = true
						uncovered--
					}
				}
			}
			current.Groups = append(current.Groups, ids)
		}

		for _, p := range working {
			if sitting[p] {
				byeCounts[p]++
				current.Byes = append(current.Byes, players[p])
			}
		}
		result = append(result, current)
		rotateIndices(working)
	}
	return result
}

// rotateIndices keeps the first entry fixed and moves the last entry to the
// second position.
func rotateIndices(order []int) {
	if len(order) <= 2 {
		return
	}
	last := order[len(order)-1]
	copy(order[2:], order[1:len(order)-1])
	order[1] = last
}

func removeAt(values []int, idx int) []int {
	return append(values[:idx], values[idx+1:]...)
}
