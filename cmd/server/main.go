/* Copyright (c) 2025 FuturesLab <https://futureslab.github.io>
 * SPDX-License-Identifier: BSD-3-Clause */
package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/FuturesLab/futureslab.github.io/internal/aggregate"
	"github.com/FuturesLab/futureslab.github.io/internal/bugsource"
	"github.com/FuturesLab/futureslab.github.io/internal/config"
	"github.com/FuturesLab/futureslab.github.io/internal/jobs"
	"github.com/FuturesLab/futureslab.github.io/internal/logger"
	"github.com/FuturesLab/futureslab.github.io/internal/web"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg)

	if len(cfg.BugsSources) == 0 {
		log.Warn().Msg("no bug sources configured; /bugs will render the failure row")
	}

	src := bugsource.NewClient(cfg, log)
	agg := aggregate.New(cfg, log, src)

	router := web.NewRouter(cfg, log, agg)

	cr := jobs.NewCron(cfg, log, agg)
	cr.Start()
	defer cr.Stop()

	errCh := make(chan error, 1)
	go func() { errCh <- router.Run(cfg.HTTPAddr) }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		log.Info().Msg("shutting down...")
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("http server error")
		}
	}

	time.Sleep(500 * time.Millisecond)
}
