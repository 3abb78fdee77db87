// Package views holds the pure read-side projection over issue
// collections: filter, search, sort, paginate, and per-status tallies.
// Nothing here touches the database; controllers fetch the visible set
// and hand it through.
package views

import (
	"sort"
	"strings"

	"campuscare-be/models"
)

// SortKey enum
type SortKey string

const (
	SortNewest   SortKey = "newest"
	SortOldest   SortKey = "oldest"
	SortPriority SortKey = "priority"
)

// DefaultPageSize matches the reference UI's five rows per page.
const DefaultPageSize = 5

// Params describes one projection of the issue set. Handlers build a
// fresh Params from the request on every call; there is no shared view
// state between requests.
type Params struct {
	Category models.IssueCategory // optional exact match; empty means all
	Search   string               // optional case-insensitive substring
	Sort     SortKey
	Page     int
	PageSize int
}

// Page is the ordered slice to display plus the figures the UI needs
// for pagination controls. Counts tallies statuses across the whole
// filtered set, not just the visible page, so the admin pending badge
// tracks whatever narrowing is in effect.
type Page struct {
	Issues      []models.Issue             `json:"issues"`
	TotalIssues int                        `json:"totalIssues"`
	TotalPages  int                        `json:"totalPages"`
	CurrentPage int                        `json:"currentPage"`
	Counts      map[models.IssueStatus]int `json:"counts"`
}

// Apply narrows, orders, and pages the given issues. It never modifies
// the input slice and an out-of-range page yields an empty page, not an
// error.
func Apply(issues []models.Issue, p Params) Page {
	filtered := filter(issues, p)
	sortIssues(filtered, p.Sort)

	pageSize := p.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	page := p.Page
	if page < 1 {
		page = 1
	}

	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Issues:      filtered[start:end],
		TotalIssues: total,
		TotalPages:  totalPages,
		CurrentPage: page,
		Counts:      StatusCounts(filtered),
	}
}

func filter(issues []models.Issue, p Params) []models.Issue {
	term := strings.ToLower(strings.TrimSpace(p.Search))

	out := make([]models.Issue, 0, len(issues))
	for _, issue := range issues {
		if p.Category != "" && issue.Category != p.Category {
			continue
		}
		if term != "" && !matches(issue, term) {
			continue
		}
		out = append(out, issue)
	}
	return out
}

// matches mirrors the dashboard search: id, category, building, room,
// and description are all candidate fields.
func matches(issue models.Issue, term string) bool {
	fields := []string{
		strings.ToLower(issue.ID.Hex()),
		strings.ToLower(string(issue.Category)),
		strings.ToLower(issue.Building),
		strings.ToLower(issue.Room),
		strings.ToLower(issue.Description),
	}
	for _, f := range fields {
		if strings.Contains(f, term) {
			return true
		}
	}
	return false
}

// sortIssues orders in place. Stable so ties keep their fetch order and
// repeated renders of the same set stay deterministic.
func sortIssues(issues []models.Issue, key SortKey) {
	switch key {
	case SortOldest:
		sort.SliceStable(issues, func(a, b int) bool {
			return issues[a].CreatedAt.Before(issues[b].CreatedAt)
		})
	case SortPriority:
		sort.SliceStable(issues, func(a, b int) bool {
			return models.PriorityRank(issues[a].Priority) < models.PriorityRank(issues[b].Priority)
		})
	case SortNewest:
		fallthrough
	default:
		sort.SliceStable(issues, func(a, b int) bool {
			return issues[a].CreatedAt.After(issues[b].CreatedAt)
		})
	}
}

// StatusCounts tallies issues per status in one pass, for the dashboard
// badges and the admin pending counter.
func StatusCounts(issues []models.Issue) map[models.IssueStatus]int {
	counts := map[models.IssueStatus]int{
		models.Pending:  0,
		models.Active:   0,
		models.Resolved: 0,
	}
	for _, issue := range issues {
		counts[issue.Status]++
	}
	return counts
}
