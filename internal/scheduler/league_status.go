package scheduler

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/pickleleague/internal/leagues"
)

const leagueStatusJobName = "league_status_report"

// LeagueLister reads leagues with their status derived at read time.
type LeagueLister interface {
	ListLeagues(ctx context.Context) ([]leagues.League, error)
}

// RegisterLeagueStatusJob schedules the league status report on the
// singleton scheduler. An empty cron expression leaves the job disabled.
func RegisterLeagueStatusJob(lister LeagueLister, cronExpr string) error {
	if lister == nil {
		return fmt.Errorf("league status job requires a league lister")
	}
	if strings.TrimSpace(cronExpr) == "" {
		log.Info().Str("job_name", leagueStatusJobName).Msg("League status job disabled")
		return nil
	}
	_, err := AddJob(leagueStatusJobName, cronExpr, LeagueStatusTask(lister))
	return err
}

// LeagueStatusTask returns the job body so it can be run outside the
// scheduler. It only reads; nothing about a league's status is written back.
func LeagueStatusTask(lister LeagueLister) Task {
	return func(ctx context.Context) error {
		all, err := lister.ListLeagues(ctx)
		if err != nil {
			return fmt.Errorf("list leagues: %w", err)
		}
		logger := log.Ctx(ctx).With().Str("component", "league_status_job").Logger()

		counts := make(map[leagues.Status]int)
		for _, league := range all {
			counts[league.Status]++
			logger.Debug().
				Int64("league_id", league.ID).
				Str("league", league.Name).
				Str("status", string(league.Status)).
				Msg("League status")
		}
		logger.Info().
			Int("leagues", len(all)).
			Int("registration_open", counts[leagues.StatusRegistrationOpen]).
			Int("in_progress", counts[leagues.StatusInProgress]).
			Int("completed", counts[leagues.StatusCompleted]).
			Msg("League status report")
		return nil
	}
}
