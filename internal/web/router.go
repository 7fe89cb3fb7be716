/* Copyright (c) 2025 FuturesLab <https://futureslab.github.io>
 * SPDX-License-Identifier: BSD-3-Clause */
package web

import (
	"github.com/FuturesLab/futureslab.github.io/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func NewRouter(cfg config.Config, log zerolog.Logger, agg aggregator) *gin.Engine {
	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		c.Next()
		log.Info().Str("m", c.Request.Method).Str("p", c.FullPath()).Int("s", c.Writer.Status()).Msg("http")
	})

	h := NewHandlers(cfg, log, agg)

	r.GET("/", h.Page("home"))
	r.GET("/research", h.Page("research"))
	r.GET("/people", h.Page("people"))
	r.GET("/contact", h.Page("contact"))
	r.GET("/bugs", h.Bugs)
	r.GET("/api/bugs", h.BugsAPI)
	r.GET("/healthz", h.Healthz)
	if cfg.StaticDir != "" {
		r.Static("/static", cfg.StaticDir)
	}

	return r
}
