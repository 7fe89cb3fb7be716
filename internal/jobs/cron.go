package jobs

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/FuturesLab/futureslab.github.io/internal/config"
	"github.com/FuturesLab/futureslab.github.io/internal/domain"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

type aggregator interface {
	Fetch(ctx context.Context) (*domain.Report, error)
}

// Cron periodically probes every configured bug source and logs per-source
// record counts, so a broken contributor file is noticed before a visitor
// hits the bugs page. A successful probe also warms the snapshot cache.
type Cron struct {
	cfg     config.Config
	log     zerolog.Logger
	agg     aggregator
	c       *cron.Cron
	running atomic.Bool
}

func NewCron(cfg config.Config, log zerolog.Logger, agg aggregator) *Cron {
	loc, _ := time.LoadLocation(cfg.TZ)
	c := cron.New(cron.WithLocation(loc))
	cr := &Cron{cfg: cfg, log: log, agg: agg, c: c}
	_, _ = c.AddFunc(cfg.ProbeCron, cr.probe)
	return cr
}

func (cr *Cron) Start() { cr.c.Start() }
func (cr *Cron) Stop()  { cr.c.Stop() }

func (cr *Cron) probe() {
	if !cr.running.CompareAndSwap(false, true) {
		cr.log.Info().Msg("cron: probe already running")
		return
	}
	defer cr.running.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), cr.cfg.FetchTimeout+5*time.Second)
	defer cancel()

	rep, err := cr.agg.Fetch(ctx)
	if err != nil {
		cr.log.Error().Err(err).Msg("cron: source probe failed")
		return
	}
	for _, sc := range rep.Sources {
		cr.log.Info().Str("source", sc.Name).Int("records", sc.Records).Int("skipped", sc.Skipped).Msg("cron: source ok")
	}
	cr.log.Info().Int("total", rep.Count()).Msg("cron: probe complete")
}
