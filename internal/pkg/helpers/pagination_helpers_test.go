package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePagination(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		perPage     int
		wantPage    int
		wantPerPage int
	}{
		{"defaults", 0, 0, 1, 15},
		{"negative values", -3, -10, 1, 15},
		{"within bounds", 2, 50, 2, 50},
		{"per page capped", 1, 500, 1, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, perPage := NormalizePagination(tt.page, tt.perPage)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPerPage, perPage)
		})
	}
}

func TestLastPage(t *testing.T) {
	assert.Equal(t, 1, LastPage(0, 15))
	assert.Equal(t, 1, LastPage(15, 15))
	assert.Equal(t, 2, LastPage(16, 15))
	assert.Equal(t, 7, LastPage(100, 15))
	assert.Equal(t, 1, LastPage(10, 0))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 15))
	assert.Equal(t, 15, Offset(2, 15))
	assert.Equal(t, 90, Offset(7, 15))
}
