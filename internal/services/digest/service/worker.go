package service

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	perr "daybrief/internal/platform/errors"
	"daybrief/internal/platform/logger"
	orgsdom "daybrief/internal/services/api/orgs/domain"
	dom "daybrief/internal/services/digest/domain"
)

// Run starts the scheduled digest loop and blocks until ctx is done
func (s *Svc) Run(ctx context.Context) error {
	log := logger.Named("digest-worker")
	if !s.cfg.Enabled {
		log.Warn().Msg("digest worker disabled")
		<-ctx.Done()
		return ctx.Err()
	}

	cr := cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLog{log: log})))
	if _, err := cr.AddFunc(s.cfg.Schedule, func() { s.tick(ctx, s.now()) }); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "digest schedule %q", s.cfg.Schedule)
	}

	// catch-up pass so a restart inside a delivery hour still sends
	s.tick(ctx, s.now())

	cr.Start()
	<-ctx.Done()
	<-cr.Stop().Done()
	return ctx.Err()
}

// tick runs one delivery pass. Due users fan out under a bounded semaphore
// and the pass waits for its own work so a stop can drain cleanly
func (s *Svc) tick(ctx context.Context, ref time.Time) {
	log := logger.Named("digest-worker")

	orgs, err := s.repo.ActiveOrgs(ctx)
	if err != nil {
		log.Error().Err(err).Msg("list active orgs failed")
		return
	}

	sem := make(chan struct{}, max(1, s.cfg.Concurrency))
	var wg sync.WaitGroup
	for _, org := range orgs {
		runDate, due, err := orgDue(org, ref)
		if err != nil {
			// stored zones were validated on write; failing here means the
			// tz database moved under us
			log.Warn().Err(err).Str("org_id", org.ID).Str("zone", org.Zone).Msg("org zone unresolvable")
			continue
		}
		if !due {
			continue
		}
		users, err := s.dueUsers(ctx, org.ID, runDate)
		if err != nil {
			log.Error().Err(err).Str("org_id", org.ID).Msg("resolve digest users failed")
			continue
		}
		for i := range users {
			sem <- struct{}{}
			wg.Add(1)
			uid := users[i]
			go func() {
				defer wg.Done()
				defer func() { <-sem }()
				if err := s.handleRun(ctx, org, uid, runDate, ref); err != nil {
					log.Warn().Err(err).Str("org_id", org.ID).Str("user_id", uid).Msg("digest run failed")
				}
			}()
		}
	}
	wg.Wait()
}

// orgDue projects the tick instant into the org's zone and reports whether it
// falls inside the delivery hour, along with the org-local run date
func orgDue(org orgsdom.Org, ref time.Time) (string, bool, error) {
	loc, err := time.LoadLocation(org.Zone)
	if err != nil {
		return "", false, err
	}
	local := ref.In(loc)
	return local.Format(dom.RunDateLayout), local.Hour() == org.DigestHour, nil
}

// dueUsers is digest enabled users minus those already digested for runDate
func (s *Svc) dueUsers(ctx context.Context, orgID, runDate string) ([]string, error) {
	users, err := s.repo.DigestUsers(ctx, orgID)
	if err != nil || len(users) == 0 {
		return nil, err
	}
	done, err := s.repo.DigestedUsers(ctx, orgID, runDate)
	if err != nil {
		return nil, err
	}
	if len(done) == 0 {
		return users, nil
	}
	seen := make(map[string]struct{}, len(done))
	for _, u := range done {
		seen[u] = struct{}{}
	}
	out := users[:0]
	for _, u := range users {
		if _, ok := seen[u]; !ok {
			out = append(out, u)
		}
	}
	return out, nil
}

// cronLog adapts our logger to the scheduler's logging interface
type cronLog struct{ log *logger.Logger }

func (l cronLog) Info(msg string, kv ...any) { l.log.Debug().Fields(kv).Msg(msg) }

func (l cronLog) Error(err error, msg string, kv ...any) {
	l.log.Error().Err(err).Fields(kv).Msg(msg)
}
