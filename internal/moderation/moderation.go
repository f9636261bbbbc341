// Package moderation computes the admin's visible subset of testimonials:
// a status filter, a free-text search and a sort, applied without side effects.
package moderation

import (
	"sort"
	"strings"

	"testimonials/internal/models"
)

// StatusAll disables status filtering.
const StatusAll = "all"

// SortKey selects the ordering of the visible list.
type SortKey string

// Supported sort keys.
const (
	SortDateDesc SortKey = "date_desc"
	SortDateAsc  SortKey = "date_asc"
	SortNameAsc  SortKey = "name_asc"
)

// Filter is the admin's current view criteria.
type Filter struct {
	// Status is StatusAll or one of the models.Status values.
	Status string  `json:"status"`
	Query  string  `json:"q"`
	Sort   SortKey `json:"sort"`
}

// DefaultFilter opens on the pending queue, newest first.
func DefaultFilter() Filter {
	return Filter{Status: string(models.StatusPending), Sort: SortDateDesc}
}

// ParseFilter builds a Filter from raw request values. Unknown statuses fall
// back to pending and unknown sort keys to SortDateDesc.
func ParseFilter(status, query, sortKey string) Filter {
	f := DefaultFilter()

	status = strings.ToLower(strings.TrimSpace(status))
	if status == StatusAll {
		f.Status = StatusAll
	} else if s, ok := models.ParseStatus(status); ok {
		f.Status = string(s)
	}

	f.Query = strings.TrimSpace(query)

	switch k := SortKey(strings.ToLower(strings.TrimSpace(sortKey))); k {
	case SortDateDesc, SortDateAsc, SortNameAsc:
		f.Sort = k
	}

	return f
}

// Matches reports whether t passes the status and query criteria.
func (f Filter) Matches(t *models.Testimonial) bool {
	if f.Status != StatusAll && f.Status != "" && string(t.Status) != f.Status {
		return false
	}

	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Name), q) ||
		strings.Contains(strings.ToLower(t.Message), q) ||
		strings.Contains(strings.ToLower(t.Email), q)
}

// Apply returns the filtered, sorted subset of records. The input slice is not
// modified and the result is never nil.
func Apply(records []models.Testimonial, f Filter) []models.Testimonial {
	out := make([]models.Testimonial, 0, len(records))
	for i := range records {
		if f.Matches(&records[i]) {
			out = append(out, records[i])
		}
	}

	switch f.Sort {
	case SortDateAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	case SortNameAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}

	return out
}

// Counts returns the number of records per status tab, including "all".
func Counts(records []models.Testimonial) map[string]int {
	counts := map[string]int{StatusAll: len(records)}
	for _, s := range models.Statuses {
		counts[string(s)] = 0
	}
	for i := range records {
		counts[string(records[i].Status)]++
	}
	return counts
}

// Tab describes one status tab on the moderation dashboard.
type Tab struct {
	Value  string
	Label  string
	Count  int
	Active bool
}

// Tabs returns the dashboard tabs in display order for the given filter.
func Tabs(f Filter, counts map[string]int) []Tab {
	defs := []struct{ value, label string }{
		{StatusAll, "All"},
		{string(models.StatusPending), "To review"},
		{string(models.StatusApproved), "Published"},
		{string(models.StatusRejected), "Rejected"},
	}
	tabs := make([]Tab, 0, len(defs))
	for _, d := range defs {
		tabs = append(tabs, Tab{
			Value:  d.value,
			Label:  d.label,
			Count:  counts[d.value],
			Active: f.Status == d.value,
		})
	}
	return tabs
}
