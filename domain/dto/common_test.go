package dto

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	page, limit := NormalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageLimit, limit)

	_, limit = NormalizePage(3, 1000)
	assert.Equal(t, MaxPageLimit, limit)
}

func TestPageBounds(t *testing.T) {
	tests := []struct {
		name               string
		total, page, lim   int
		wantStart, wantEnd int
	}{
		{"first page", 10, 1, 4, 0, 4},
		{"last partial page", 10, 3, 4, 8, 10},
		{"past the end", 10, 4, 4, 10, 10},
		{"empty list", 0, 1, 50, 0, 0},
		{"huge page", 10, math.MaxInt, 50, 10, 10},
		{"huge page on empty list", 0, math.MaxInt, 100, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := PageBounds(tt.total, tt.page, tt.lim)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}
