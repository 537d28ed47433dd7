package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func mustSQL(t *testing.T, q ListQuery) (string, []interface{}) {
	t.Helper()
	filter := q.Filter(testNow)
	require.NotNil(t, filter)
	sql, args, err := filter.ToSql()
	require.NoError(t, err)
	return sql, args
}

func TestListQuery_Filter_AllScope(t *testing.T) {
	t.Run("no params means no filter", func(t *testing.T) {
		assert.Nil(t, ListQuery{Scope: ScopeAll}.Filter(testNow))
	})

	t.Run("status narrows", func(t *testing.T) {
		sql, args := mustSQL(t, ListQuery{Scope: ScopeAll, Status: "draft"})
		assert.Contains(t, sql, "status = ?")
		assert.Equal(t, []interface{}{"draft"}, args)
	})
}

func TestListQuery_Filter_PublishedScope(t *testing.T) {
	sql, args := mustSQL(t, ListQuery{Scope: ScopePublished})

	assert.Contains(t, sql, "status = ?")
	assert.Contains(t, sql, "publish_date IS NULL")
	assert.Contains(t, sql, "publish_date <= ?")
	// legacy records without a publish date stay visible
	assert.Contains(t, sql, "OR")
	require.Len(t, args, 2)
	assert.Equal(t, testNow, args[1])
}

func TestListQuery_Filter_FeaturedScope(t *testing.T) {
	t.Run("defaults to published with visibility", func(t *testing.T) {
		sql, _ := mustSQL(t, ListQuery{Scope: ScopeFeatured})
		assert.Contains(t, sql, "is_featured = ?")
		assert.Contains(t, sql, "status = ?")
		assert.Contains(t, sql, "publish_date <= ?")
	})

	t.Run("explicit status overrides default and drops visibility", func(t *testing.T) {
		sql, args := mustSQL(t, ListQuery{Scope: ScopeFeatured, Status: "draft"})
		assert.Contains(t, sql, "is_featured = ?")
		assert.Contains(t, sql, "status = ?")
		assert.NotContains(t, sql, "publish_date")
		assert.Contains(t, args, "draft")
	})

	t.Run("explicit published keeps visibility", func(t *testing.T) {
		sql, _ := mustSQL(t, ListQuery{Scope: ScopeFeatured, Status: "published"})
		assert.Contains(t, sql, "publish_date <= ?")
	})
}

func TestListQuery_Filter_ScheduledScope(t *testing.T) {
	sql, args := mustSQL(t, ListQuery{Scope: ScopeScheduled})

	assert.Contains(t, sql, "status = ?")
	assert.Contains(t, sql, "publish_date > ?")
	assert.NotContains(t, sql, "IS NULL")
	require.Len(t, args, 2)
	assert.Equal(t, testNow, args[1])
}

func TestListQuery_Filter_Search(t *testing.T) {
	t.Run("long search uses full text", func(t *testing.T) {
		sql, args := mustSQL(t, ListQuery{Scope: ScopeAll, Search: "kubernetes"})
		assert.Contains(t, sql, "websearch_to_tsquery")
		assert.Contains(t, args, "kubernetes")
	})

	t.Run("short search falls back to substring match", func(t *testing.T) {
		sql, args := mustSQL(t, ListQuery{Scope: ScopeAll, Search: "go"})
		assert.Contains(t, sql, "title ILIKE ?")
		assert.Contains(t, sql, "content ILIKE ?")
		assert.NotContains(t, sql, "websearch_to_tsquery")
		assert.Contains(t, args, "%go%")
	})

	t.Run("search composes with scope via AND", func(t *testing.T) {
		sql, _ := mustSQL(t, ListQuery{Scope: ScopePublished, Search: "kubernetes"})
		assert.Contains(t, sql, "status = ?")
		assert.Contains(t, sql, "websearch_to_tsquery")
		assert.Contains(t, sql, "AND")
	})

	t.Run("whitespace-only search is ignored", func(t *testing.T) {
		assert.Nil(t, ListQuery{Scope: ScopeAll, Search: "   "}.Filter(testNow))
	})
}

func TestListQuery_OrderBy(t *testing.T) {
	assert.Equal(t, "created_at DESC", ListQuery{Scope: ScopeAll}.OrderBy())
	assert.Equal(t, "publish_date DESC", ListQuery{Scope: ScopePublished}.OrderBy())
	assert.Equal(t, "publish_date DESC", ListQuery{Scope: ScopeFeatured}.OrderBy())
	assert.Equal(t, "publish_date ASC", ListQuery{Scope: ScopeScheduled}.OrderBy())
}

func TestListQuery_Window(t *testing.T) {
	t.Run("absent limit caps and is unpaged", func(t *testing.T) {
		limit, offset, paged := ListQuery{}.Window()
		assert.Equal(t, uint64(maxUnpagedLimit), limit)
		assert.Equal(t, uint64(0), offset)
		assert.False(t, paged)
	})

	t.Run("page math", func(t *testing.T) {
		limit, offset, paged := ListQuery{Page: 3, Limit: 10}.Window()
		assert.Equal(t, uint64(10), limit)
		assert.Equal(t, uint64(20), offset)
		assert.True(t, paged)
	})

	t.Run("non-positive page defaults to 1", func(t *testing.T) {
		_, offset, _ := ListQuery{Page: 0, Limit: 10}.Window()
		assert.Equal(t, uint64(0), offset)

		_, offset, _ = ListQuery{Page: -5, Limit: 10}.Window()
		assert.Equal(t, uint64(0), offset)
	})
}

func TestListQuery_TotalPages(t *testing.T) {
	tests := []struct {
		limit, total, want int
	}{
		{10, 25, 3},
		{10, 30, 3},
		{10, 31, 4},
		{10, 0, 0},
		{1, 7, 7},
	}

	for _, tt := range tests {
		q := ListQuery{Limit: tt.limit}
		assert.Equal(t, tt.want, q.TotalPages(tt.total), "limit=%d total=%d", tt.limit, tt.total)
	}
}
