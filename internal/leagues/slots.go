package leagues

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// SlotConfig describes the weekly court inventory.
type SlotConfig struct {
	SeasonStart   time.Time
	MatchDuration time.Duration
	PlayStart     string
	PlayEnd       string
	// SeasonWeeks bounds the weeks that get court time. Zero means unbounded.
	SeasonWeeks int
}

type DivisionRounds struct {
	DivisionID int64
	Rounds     []Round
}

// ScheduledMatch is a generated match before it is persisted. Makeup matches
// carry no court or start time.
type ScheduledMatch struct {
	DivisionID int64
	Round      int
	WeekNumber int
	Players    []int64
	Court      int
	StartTime  time.Time
	EndTime    time.Time
	IsMakeup   bool
}

type Allocation struct {
	Scheduled []ScheduledMatch
	Makeup    []ScheduledMatch
}

type matchSlot struct {
	Start time.Time
	End   time.Time
	Court int
}

// AllocateSlots maps round k of every division onto week k and fills the
// week's court slots back to back. Matches that do not fit become makeup
// matches for the same week.
func AllocateSlots(cfg SlotConfig, divisions []DivisionRounds) (Allocation, error) {
	opens, perCourt, err := slotTemplate(cfg)
	if err != nil {
		return Allocation{}, err
	}

	weeks := 0
	for _, division := range divisions {
		if len(division.Rounds) > weeks {
			weeks = len(division.Rounds)
		}
	}

	var result Allocation
	for week := 1; week <= weeks; week++ {
		slots := buildWeekSlots(cfg, week, opens, perCourt)
		next := 0
		for _, division := range divisions {
			if week > len(division.Rounds) {
				continue
			}
			round := division.Rounds[week-1]
			for _, group := range round.Groups {
				match := ScheduledMatch{
					DivisionID: division.DivisionID,
					Round:      round.Number,
					WeekNumber: week,
					Players:    append([]int64(nil), group...),
				}
				if next < len(slots) {
					slot := slots[next]
					match.Court = slot.Court
					match.StartTime = slot.Start
					match.EndTime = slot.End
					result.Scheduled = append(result.Scheduled, match)
				} else {
					match.IsMakeup = true
					result.Makeup = append(result.Makeup, match)
				}
				next++
			}
		}
	}
	return result, nil
}

func slotTemplate(cfg SlotConfig) (time.Time, int, error) {
	if cfg.MatchDuration <= 0 {
		return time.Time{}, 0, invalidInputf("match duration must be positive")
	}
	if cfg.SeasonStart.IsZero() {
		return time.Time{}, 0, invalidInputf("season start date is required")
	}
	opens, err := parseTimeOfDay(cfg.PlayStart)
	if err != nil {
		return time.Time{}, 0, invalidInputf("invalid play start: %v", err)
	}
	perCourt := 1
	if strings.TrimSpace(cfg.PlayEnd) != "" {
		closes, err := parseTimeOfDay(cfg.PlayEnd)
		if err != nil {
			return time.Time{}, 0, invalidInputf("invalid play end: %v", err)
		}
		if !closes.After(opens) {
			return time.Time{}, 0, invalidInputf("play end must be after play start")
		}
		if fit := int(closes.Sub(opens) / cfg.MatchDuration); fit > perCourt {
			perCourt = fit
		}
	}
	return opens, perCourt, nil
}

func buildWeekSlots(cfg SlotConfig, week int, opens time.Time, perCourt int) []matchSlot {
	if cfg.SeasonWeeks > 0 && week > cfg.SeasonWeeks {
		return nil
	}
	date := truncateDate(cfg.SeasonStart).AddDate(0, 0, 7*(week-1))
	dayOpen := time.Date(date.Year(), date.Month(), date.Day(), opens.Hour(), opens.Minute(), 0, 0, date.Location())

	slots := make([]matchSlot, 0, perCourt*CourtCount)
	for i := 0; i < perCourt; i++ {
		start := dayOpen.Add(time.Duration(i) * cfg.MatchDuration)
		end := start.Add(cfg.MatchDuration)
		for court := 1; court <= CourtCount; court++ {
			slots = append(slots, matchSlot{Start: start, End: end, Court: court})
		}
	}
	return slots
}

// SeasonWeeks counts the calendar weeks from start through end, inclusive.
// It returns 0 when either date is missing.
func SeasonWeeks(start, end time.Time) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	start = truncateDate(start)
	end = truncateDate(end)
	if end.Before(start) {
		return 0
	}
	days := int(math.Round(end.Sub(start).Hours()/24)) + 1
	return (days + 6) / 7
}

func parseTimeOfDay(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("time is required")
	}
	parsed, err := time.Parse(timeOfDayLayout, raw)
	if err != nil {
		formats := []string{"3:04 PM", "03:04 PM", "3:04PM", "03:04PM"}
		for _, format := range formats {
			if parsed, err = time.Parse(format, strings.ToUpper(raw)); err == nil {
				return parsed, nil
			}
		}
		return time.Time{}, fmt.Errorf("time %q must be in HH:MM or H:MM AM/PM format", raw)
	}
	return parsed, nil
}

func truncateDate(value time.Time) time.Time {
	loc := value.Location()
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, loc)
}
