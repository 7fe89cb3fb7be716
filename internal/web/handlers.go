/* Copyright (c) 2025 FuturesLab <https://futureslab.github.io>
 * SPDX-License-Identifier: BSD-3-Clause */
package web

import (
	"context"
	"encoding/json"
	"html"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/FuturesLab/futureslab.github.io/internal/config"
	"github.com/FuturesLab/futureslab.github.io/internal/counter"
	"github.com/FuturesLab/futureslab.github.io/internal/domain"
	"github.com/FuturesLab/futureslab.github.io/internal/tableview"
)

type aggregator interface {
	Fetch(ctx context.Context) (*domain.Report, error)
}

type Handlers struct {
	cfg    config.Config
	log    zerolog.Logger
	agg    aggregator
	policy *bluemonday.Policy
}

func NewHandlers(cfg config.Config, log zerolog.Logger, agg aggregator) *Handlers {
	return &Handlers{cfg: cfg, log: log, agg: agg, policy: bluemonday.StrictPolicy()}
}

// sanitize strips any markup from user-supplied query text. The sanitizer
// entity-escapes what it keeps; the entities are decoded again because the
// value is re-escaped by the template on output.
func (h *Handlers) sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(h.policy.Sanitize(s)))
}

func (h *Handlers) render(c *gin.Context, name string, data any) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := siteTpl.ExecuteTemplate(c.Writer, name, data); err != nil {
		h.log.Error().Err(err).Str("page", name).Msg("template render failed")
	}
}

// Page serves one of the static marketing pages.
func (h *Handlers) Page(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.render(c, name, nil)
	}
}

func (h *Handlers) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type bugRow struct {
	Date  string
	Type  string
	URL   string
	Label string
	Lead  string
}

type bugsPage struct {
	Failed   bool
	Rows     []bugRow
	St       tableview.State
	Total    int
	Filtered int
	Pages    int
	Steps    template.JS
	TickMS   int
}

func bugsURL(st tableview.State) string {
	q := st.Query().Encode()
	if q == "" {
		return "/bugs"
	}
	return "/bugs?" + q
}

// SortLink is the header link for a column: same column toggles direction,
// a new column starts ascending (date starts descending, its default).
// The description column is non-sortable and links to the current state.
func (p *bugsPage) SortLink(col int) string {
	st := p.St
	st.Page = 1
	if col == tableview.ColDesc {
		return bugsURL(st)
	}
	if st.SortCol == col {
		st.SortDesc = !st.SortDesc
	} else {
		st.SortCol = col
		st.SortDesc = col == tableview.ColDate
	}
	return bugsURL(st)
}

func (p *bugsPage) PageLink(n int) string {
	st := p.St
	st.Page = n
	return bugsURL(st)
}

func (p *bugsPage) SizeLink(n int) string {
	st := p.St
	st.PageSize = n
	st.Page = 1
	return bugsURL(st)
}

func (p *bugsPage) Sizes() []int { return tableview.PageSizes }

func (p *bugsPage) SortIsDefault() bool {
	def := tableview.DefaultState()
	return p.St.SortCol == def.SortCol && p.St.SortDesc == def.SortDesc
}

func (p *bugsPage) PageNums() []int {
	nums := make([]int, p.Pages)
	for i := range nums {
		nums[i] = i + 1
	}
	return nums
}

func (h *Handlers) viewState(c *gin.Context) tableview.State {
	q := c.Request.URL.Query()
	q.Set("search", h.sanitize(q.Get("search")))
	return tableview.StateFromQuery(q)
}

// Bugs serves the aggregated bug table. Any source failure renders a single
// full-width error row and no data; there is no partial table.
func (h *Handlers) Bugs(c *gin.Context) {
	st := h.viewState(c)
	p := &bugsPage{St: st, TickMS: counter.TickMS}

	rep, err := h.agg.Fetch(c.Request.Context())
	if err != nil {
		p.Failed = true
		h.render(c, "bugs", p)
		return
	}

	v := tableview.New(rep.Records, st)
	p.St = v.State()
	for _, r := range v.Rows() {
		p.Rows = append(p.Rows, bugRow{Date: r.Date, Type: r.Type, URL: r.URL, Label: r.Label(), Lead: r.Lead})
	}
	p.Total = rep.Count()
	p.Filtered = v.Filtered()
	p.Pages = v.Pages()
	steps, _ := json.Marshal(counter.Steps(rep.Count()))
	p.Steps = template.JS(steps)
	h.render(c, "bugs", p)
}

// BugsAPI is the JSON view over the same pipeline and view state.
func (h *Handlers) BugsAPI(c *gin.Context) {
	st := h.viewState(c)
	rep, err := h.agg.Fetch(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to load data"})
		return
	}
	v := tableview.New(rep.Records, st)
	rows := v.Rows()
	if rows == nil {
		rows = []domain.BugRecord{}
	}
	c.JSON(http.StatusOK, gin.H{
		"total":    rep.Count(),
		"filtered": v.Filtered(),
		"page":     v.State().Page,
		"pages":    v.Pages(),
		"records":  rows,
	})
}
