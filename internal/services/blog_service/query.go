package services

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"blogcaste/internal/domain/models"
)

// Scope selects the endpoint-specific listing policy. All the listing
// endpoints share one query path parameterized by scope instead of one
// handler copy per endpoint.
type Scope int

const (
	// ScopeAll lists every status unless the caller narrows it.
	ScopeAll Scope = iota
	// ScopePublished lists publicly visible posts only.
	ScopePublished
	// ScopeFeatured lists featured posts, published and visible by default.
	ScopeFeatured
	// ScopeScheduled lists published posts whose publish date is still in
	// the future. Admin only.
	ScopeScheduled
)

// maxUnpagedLimit bounds worst-case query cost when the caller omits a
// limit. The response then carries no pagination metadata.
const maxUnpagedLimit = 500

// fullTextMinLen is the search length above which the indexed full-text
// predicate is used. Full-text indexes ignore very short tokens, so one-
// and two-character searches fall back to substring matching.
const fullTextMinLen = 3

// ListQuery is the untrusted, query-string-shaped input of every listing
// endpoint, reduced to a deterministic filter + sort + window plan.
type ListQuery struct {
	Scope  Scope
	Status string // optional; empty means no status narrowing on ScopeAll
	Search string // optional free text
	Page   int    // 1-based; non-positive values mean page 1
	Limit  int    // 0 means "no limit supplied"
}

// Filter composes the filter predicate for the query at the given instant.
// Predicates always combine via AND; search never overwrites scope clauses.
// A nil return means "match everything".
func (q ListQuery) Filter(now time.Time) sq.Sqlizer {
	var conj sq.And

	switch q.Scope {
	case ScopePublished:
		conj = append(conj, sq.Eq{"status": models.StatusPublished}, visibleClause(now))
	case ScopeFeatured:
		conj = append(conj, sq.Eq{"is_featured": true})
		// an explicit status overrides the published default, but the
		// visibility clause still applies whenever status is published
		status := q.Status
		if status == "" {
			status = string(models.StatusPublished)
		}
		conj = append(conj, sq.Eq{"status": status})
		if status == string(models.StatusPublished) {
			conj = append(conj, visibleClause(now))
		}
	case ScopeScheduled:
		// inverse of the visibility clause: will become visible later
		conj = append(conj, sq.Eq{"status": models.StatusPublished}, sq.Gt{"publish_date": now})
	default:
		if q.Status != "" {
			conj = append(conj, sq.Eq{"status": q.Status})
		}
	}

	if search := strings.TrimSpace(q.Search); search != "" {
		conj = append(conj, searchClause(search))
	}

	if len(conj) == 0 {
		return nil
	}
	return conj
}

// OrderBy returns the single total-order sort key for the scope. Ties are
// broken by natural storage order.
func (q ListQuery) OrderBy() string {
	switch q.Scope {
	case ScopePublished, ScopeFeatured:
		return "publish_date DESC"
	case ScopeScheduled:
		// earliest-due first
		return "publish_date ASC"
	default:
		return "created_at DESC"
	}
}

// Window computes the pagination window. When no limit was supplied the
// window is the safety cap and paged is false, meaning the response omits
// pagination metadata entirely.
func (q ListQuery) Window() (limit, offset uint64, paged bool) {
	if q.Limit <= 0 {
		return maxUnpagedLimit, 0, false
	}
	return uint64(q.Limit), uint64((q.CurrentPage() - 1) * q.Limit), true
}

// CurrentPage is the effective 1-based page.
func (q ListQuery) CurrentPage() int {
	if q.Page < 1 {
		return 1
	}
	return q.Page
}

// TotalPages is ceil(totalCount/limit); zero when the query is unpaged.
func (q ListQuery) TotalPages(totalCount int) int {
	if q.Limit <= 0 {
		return 0
	}
	return (totalCount + q.Limit - 1) / q.Limit
}

// visibleClause is the public-visibility invariant expressed at the query
// layer: published posts with no publish date are legacy records and count
// as always visible.
func visibleClause(now time.Time) sq.Sqlizer {
	return sq.Or{
		sq.Eq{"publish_date": nil},
		sq.LtOrEq{"publish_date": now},
	}
}

func searchClause(search string) sq.Sqlizer {
	if len([]rune(search)) >= fullTextMinLen {
		return sq.Expr("search_vector @@ websearch_to_tsquery('english', ?)", search)
	}
	pattern := "%" + search + "%"
	return sq.Or{
		sq.ILike{"title": pattern},
		sq.ILike{"content": pattern},
	}
}
