/* Copyright (c) 2025 FuturesLab <https://futureslab.github.io>
 * SPDX-License-Identifier: BSD-3-Clause */

// Package tableview is the in-memory equivalent of the sortable/paginated/
// searchable table on the bugs page: sort by column with per-column
// comparators, case-insensitive substring filtering, fixed page sizes.
package tableview

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/FuturesLab/futureslab.github.io/internal/domain"
)

const (
	ColDate = iota
	ColType
	ColDesc // non-sortable
	ColLead
)

var PageSizes = []int{10, 25, 50, 100}

// State is the user-visible view state, mirrored into the page URL.
type State struct {
	Search   string
	SortCol  int
	SortDesc bool
	Page     int // 1-based
	PageSize int
}

// DefaultState sorts by date descending, ten rows per page.
func DefaultState() State {
	return State{SortCol: ColDate, SortDesc: true, Page: 1, PageSize: 10}
}

func validPageSize(n int) bool {
	for _, s := range PageSizes {
		if n == s {
			return true
		}
	}
	return false
}

// StateFromQuery reads view state from URL query values. Unknown or invalid
// values fall back to defaults; sorting by the description column is not
// allowed and falls back to the default sort.
func StateFromQuery(q url.Values) State {
	st := DefaultState()
	st.Search = strings.TrimSpace(q.Get("search"))
	if v := q.Get("sort"); v != "" {
		if col, err := strconv.Atoi(v); err == nil && col >= ColDate && col <= ColLead && col != ColDesc {
			st.SortCol = col
			st.SortDesc = false
		}
	}
	switch q.Get("dir") {
	case "desc":
		st.SortDesc = true
	case "asc":
		st.SortDesc = false
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		st.Page = v
	}
	if v, err := strconv.Atoi(q.Get("size")); err == nil && validPageSize(v) {
		st.PageSize = v
	}
	return st
}

// Query encodes the state back to URL query values. Defaults are omitted so
// the canonical address stays minimal; an empty search emits no search key.
func (s State) Query() url.Values {
	q := url.Values{}
	if s.Search != "" {
		q.Set("search", s.Search)
	}
	def := DefaultState()
	if s.SortCol != def.SortCol || s.SortDesc != def.SortDesc {
		q.Set("sort", strconv.Itoa(s.SortCol))
		if s.SortDesc {
			q.Set("dir", "desc")
		} else {
			q.Set("dir", "asc")
		}
	}
	if s.Page > 1 {
		q.Set("page", strconv.Itoa(s.Page))
	}
	if s.PageSize != def.PageSize {
		q.Set("size", strconv.Itoa(s.PageSize))
	}
	return q
}

// View holds one filtered and sorted pass over a record collection.
type View struct {
	state    State
	total    int
	filtered []domain.BugRecord
}

// New filters and sorts records according to state. The input order is the
// merge order; ties under the sort comparator keep it (stable sort).
func New(records []domain.BugRecord, state State) *View {
	v := &View{state: state, total: len(records)}
	v.filtered = filter(records, state.Search)
	sortRecords(v.filtered, state.SortCol, state.SortDesc)
	v.state.Page = clampPage(v.state.Page, len(v.filtered), v.state.PageSize)
	return v
}

func cells(r domain.BugRecord) [4]string {
	return [4]string{r.Date, r.Type, r.Label(), r.Lead}
}

func filter(records []domain.BugRecord, term string) []domain.BugRecord {
	if term == "" {
		out := make([]domain.BugRecord, len(records))
		copy(out, records)
		return out
	}
	needle := strings.ToLower(term)
	var out []domain.BugRecord
	for _, r := range records {
		for _, c := range cells(r) {
			if strings.Contains(strings.ToLower(c), needle) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

func sortRecords(records []domain.BugRecord, col int, desc bool) {
	var less func(a, b domain.BugRecord) bool
	switch col {
	case ColDate:
		less = func(a, b domain.BugRecord) bool {
			da, ea := domain.ParseDate(a.Date)
			db, eb := domain.ParseDate(b.Date)
			if ea != nil || eb != nil {
				return a.Date < b.Date
			}
			return da.Before(db)
		}
	case ColType:
		less = func(a, b domain.BugRecord) bool {
			return strings.ToLower(a.Type) < strings.ToLower(b.Type)
		}
	case ColLead:
		less = func(a, b domain.BugRecord) bool {
			return strings.ToLower(a.Lead) < strings.ToLower(b.Lead)
		}
	default:
		return
	}
	sort.SliceStable(records, func(i, j int) bool {
		if desc {
			return less(records[j], records[i])
		}
		return less(records[i], records[j])
	})
}

func clampPage(page, filtered, size int) int {
	if page < 1 {
		return 1
	}
	last := pages(filtered, size)
	if page > last {
		return last
	}
	return page
}

func pages(filtered, size int) int {
	if filtered == 0 || size <= 0 {
		return 1
	}
	return (filtered + size - 1) / size
}

// Rows returns the records on the current page.
func (v *View) Rows() []domain.BugRecord {
	start := (v.state.Page - 1) * v.state.PageSize
	if start >= len(v.filtered) {
		return nil
	}
	end := start + v.state.PageSize
	if end > len(v.filtered) {
		end = len(v.filtered)
	}
	return v.filtered[start:end]
}

// Filtered is the row count after the search filter; Total is before.
func (v *View) Filtered() int { return len(v.filtered) }
func (v *View) Total() int    { return v.total }

func (v *View) Pages() int   { return pages(len(v.filtered), v.state.PageSize) }
func (v *View) State() State { return v.state }
