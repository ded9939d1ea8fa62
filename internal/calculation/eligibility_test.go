package calculation

import (
	"testing"

	"github.com/rpgo/pension-simulator/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCanFixRights(t *testing.T) {
	tests := []struct {
		gender   domain.Gender
		age      int
		expected bool
	}{
		{domain.Female, 63, false},
		{domain.Female, 64, true},
		{domain.Female, 70, true},
		{domain.Male, 66, false},
		{domain.Male, 67, true},
		{domain.Male, 64, false},
		{domain.Male, 0, false},
		{domain.Female, -64, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CanFixRights(tt.gender, tt.age), "%s at %d", tt.gender, tt.age)
	}
}
