package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shelfwise/internal/pkg/pagination"
)

func Test_New_ClampsParameters(t *testing.T) {
	testCases := []struct {
		name       string
		page       int
		limit      int
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"defaults applied", 0, 0, 1, pagination.DefaultLimit, 0},
		{"negative page", -3, 10, 1, 10, 0},
		{"limit capped", 2, 500, 2, pagination.MaxLimit, pagination.MaxLimit},
		{"normal values", 3, 25, 3, 25, 50},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			params := pagination.New(tc.page, tc.limit)
			assert.Equal(t, tc.wantPage, params.Page)
			assert.Equal(t, tc.wantLimit, params.Limit)
			assert.Equal(t, tc.wantOffset, params.Offset)
		})
	}
}

func Test_GetMeta_ComputesPages(t *testing.T) {
	params := pagination.New(2, 10)
	meta := pagination.GetMeta(params, 25)

	assert.Equal(t, int64(25), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	last := pagination.GetMeta(pagination.New(3, 10), 25)
	assert.False(t, last.HasNext)
}
