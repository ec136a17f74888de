package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPaginationMeta(t *testing.T) {
	meta := NewPaginationMeta(PaginationParams{Page: 1, Limit: 10}, 35)
	require.Equal(t, 4, meta.TotalPages)
	require.True(t, meta.HasNext)
	require.False(t, meta.HasPrev)

	meta = NewPaginationMeta(PaginationParams{Page: 4, Limit: 10}, 35)
	require.False(t, meta.HasNext)
	require.True(t, meta.HasPrev)

	meta = NewPaginationMeta(PaginationParams{Page: 1, Limit: 10}, 0)
	require.Equal(t, 0, meta.TotalPages)
	require.False(t, meta.HasNext)
	require.False(t, meta.HasPrev)
}

// hasNext must hold exactly when page < totalPages, for any page.
func TestHasNextIffMorePages(t *testing.T) {
	const total, limit = 47, 10
	for page := 1; page <= 6; page++ {
		meta := NewPaginationMeta(PaginationParams{Page: page, Limit: limit}, total)
		require.Equal(t, page < meta.TotalPages, meta.HasNext, "page %d", page)
	}
}
