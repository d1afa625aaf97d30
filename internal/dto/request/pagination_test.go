package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginatedRequestLimitAndOffset(t *testing.T) {
	tests := []struct {
		name   string
		req    PaginatedRequest
		limit  int
		offset int
	}{
		{"first page", PaginatedRequest{Page: 1, PerPage: 20}, 20, 0},
		{"third page", PaginatedRequest{Page: 3, PerPage: 20}, 20, 40},
		{"per_page missing", PaginatedRequest{Page: 2}, DefaultPerPage, DefaultPerPage},
		{"per_page capped", PaginatedRequest{Page: 2, PerPage: 500}, MaxPerPage, MaxPerPage},
		{"page zero", PaginatedRequest{Page: 0, PerPage: 10}, 10, 0},
		{"huge page", PaginatedRequest{Page: 1 << 62, PerPage: 100}, 100, maxOffset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.limit, tt.req.Limit())
			assert.Equal(t, tt.offset, tt.req.Offset())
			assert.GreaterOrEqual(t, tt.req.Offset(), 0)
		})
	}
}

func TestPaginatedRequestNormalize(t *testing.T) {
	req := PaginatedRequest{Page: -4, PerPage: 500}
	req.Normalize()
	assert.Equal(t, PaginatedRequest{Page: 1, PerPage: MaxPerPage}, req)

	req = PaginatedRequest{Page: 3, PerPage: 0}
	req.Normalize()
	assert.Equal(t, PaginatedRequest{Page: 3, PerPage: DefaultPerPage}, req)
}
