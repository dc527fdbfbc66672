package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/train-dispatch/internal/domain"
)

func ptr(n int) *int { return &n }

func TestNewPaginationParams(t *testing.T) {
	tests := []struct {
		name        string
		page, limit *int
		want        domain.PaginationParams
	}{
		{"defaults", nil, nil, domain.PaginationParams{Page: 1, Limit: domain.DefaultPageLimit}},
		{"explicit", ptr(3), ptr(5), domain.PaginationParams{Page: 3, Limit: 5}},
		{"non-positive falls back", ptr(0), ptr(-1), domain.PaginationParams{Page: 1, Limit: domain.DefaultPageLimit}},
		{"limit capped", nil, ptr(500), domain.PaginationParams{Page: 1, Limit: domain.MaxPageLimit}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.NewPaginationParams(tc.page, tc.limit))
		})
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, domain.Paginate(items, domain.PaginationParams{Page: 1, Limit: 2}))
	assert.Equal(t, []int{5}, domain.Paginate(items, domain.PaginationParams{Page: 3, Limit: 2}))
	assert.Equal(t, []int{}, domain.Paginate(items, domain.PaginationParams{Page: 4, Limit: 2}))
	assert.Equal(t, []int{}, domain.Paginate([]int(nil), domain.NewPaginationParams(nil, nil)))
	assert.Equal(t, []int{}, domain.Paginate(items, domain.PaginationParams{Page: math.MaxInt, Limit: domain.MaxPageLimit}))
}

func TestNewPaginationParams_HugePageDoesNotOverflow(t *testing.T) {
	p := domain.NewPaginationParams(ptr(math.MaxInt), ptr(domain.MaxPageLimit))

	assert.GreaterOrEqual(t, p.Offset(), 0)
	assert.Equal(t, []int{}, domain.Paginate([]int{1, 2, 3}, p))
}
