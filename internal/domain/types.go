/* Copyright (c) 2025 FuturesLab <https://futureslab.github.io>
 * SPDX-License-Identifier: BSD-3-Clause */
package domain

import (
	"fmt"
	"strings"
	"time"
)

// BugRecord is one reported bug as published in a contributor's JSON file.
// The field set is fixed by the bugs2json conversion pipeline.
type BugRecord struct {
	Date string `json:"date"`
	Type string `json:"type"`
	ID   string `json:"id"`
	URL  string `json:"url"`
	Desc string `json:"desc"`
	Lead string `json:"lead"`
}

// Label is the visible link text for the record, "id: desc".
func (r BugRecord) Label() string {
	return r.ID + ": " + r.Desc
}

// ParseDate parses the converter's ISO date output (YYYY-MM-DD).
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(s))
}

// Validate reports why a record is unusable, or nil. Records that fail
// validation are skipped by the aggregator rather than rendered with blank
// or "undefined" cells.
func (r BugRecord) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("empty id")
	}
	if strings.TrimSpace(r.URL) == "" {
		return fmt.Errorf("empty url")
	}
	if _, err := ParseDate(r.Date); err != nil {
		return fmt.Errorf("bad date %q", r.Date)
	}
	return nil
}

// SourceCount records how many usable records one source document
// contributed to a report.
type SourceCount struct {
	Name    string
	Records int
	Skipped int
}

// Report is the merged result of one aggregation run. Records preserve the
// declared source order: everything from the first listed source precedes
// everything from the second, regardless of fetch completion timing.
type Report struct {
	Records   []BugRecord
	Sources   []SourceCount
	FetchedAt time.Time
}

func (r *Report) Count() int { return len(r.Records) }
