package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHand_RemoveFirstOccurrence(t *testing.T) {
	t.Parallel()

	h := Hand{"a", "b", "a", "c"}
	assert.True(t, h.Remove("a"))
	assert.Equal(t, Hand{"b", "a", "c"}, h)

	assert.False(t, h.Remove("z"))
	assert.Equal(t, Hand{"b", "a", "c"}, h)
}

func TestHand_AddAndCount(t *testing.T) {
	t.Parallel()

	var h Hand
	h.Add("x")
	h.Add("y")
	h.Add("x")

	assert.Equal(t, 2, h.Count("x"))
	assert.Equal(t, 0, h.Count("z"))
	assert.True(t, h.Contains("y"))
	assert.Equal(t, map[string]int{"x": 2, "y": 1}, h.Counts())
}

func TestHand_WinningLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		hand  Hand
		label string
		win   bool
	}{
		{"empty", nil, "", false},
		{"three of a kind", Hand{"A", "A", "A", "B"}, "", false},
		{"four of a kind", Hand{"A", "A", "A", "A"}, "A", true},
		{"four mixed in", Hand{"B", "A", "C", "A", "A", "A"}, "A", true},
		{"first in hand order wins", Hand{"B", "A", "B", "A", "B", "A", "B", "A"}, "B", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			label, ok := tt.hand.WinningLabel()
			assert.Equal(t, tt.win, ok)
			assert.Equal(t, tt.label, label)
		})
	}
}

func TestHand_Clone(t *testing.T) {
	t.Parallel()

	h := Hand{"a", "b"}
	c := h.Clone()
	c[0] = "z"
	assert.Equal(t, "a", h[0])
}
