package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateRating(t *testing.T) {
	tests := []struct {
		name  string
		views int64
		likes int64
		want  int
	}{
		{"zero views", 0, 100, 0},
		{"15 percent engagement", 1000, 150, 5},
		{"exactly 10 percent", 1000, 100, 5},
		{"5.5 percent engagement", 1000, 55, 4},
		{"2.5 percent engagement", 1000, 25, 3},
		{"1.5 percent engagement", 1000, 15, 2},
		{"0.5 percent engagement", 1000, 5, 1},
		{"zero likes", 1000, 0, 1},
		{"negative views", -5, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateRating(tt.views, tt.likes))
		})
	}
}
