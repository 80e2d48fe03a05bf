package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampAvailable(t *testing.T) {
	tests := []struct {
		name      string
		available int
		quantity  int
		want      int
	}{
		{"within range", 3, 5, 3},
		{"negative clamps to zero", -2, 5, 0},
		{"above quantity clamps to quantity", 7, 5, 5},
		{"zero quantity", 3, 0, 0},
		{"exact bounds", 5, 5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampAvailable(tt.available, tt.quantity))
		})
	}
}

func TestBook_ApplyQuantityChange(t *testing.T) {
	t.Run("increase shifts available by same delta", func(t *testing.T) {
		b := &Book{Quantity: 5, Available: 2} // 3 đang cho mượn
		b.ApplyQuantityChange(8)
		assert.Equal(t, 8, b.Quantity)
		assert.Equal(t, 5, b.Available)
	})

	t.Run("decrease clamps available at zero", func(t *testing.T) {
		b := &Book{Quantity: 5, Available: 1} // 4 đang cho mượn
		b.ApplyQuantityChange(2)
		assert.Equal(t, 2, b.Quantity)
		assert.Equal(t, 0, b.Available)
	})

	t.Run("available never exceeds quantity", func(t *testing.T) {
		b := &Book{Quantity: 5, Available: 5}
		b.ApplyQuantityChange(3)
		assert.Equal(t, 3, b.Quantity)
		assert.Equal(t, 3, b.Available)
	})

	t.Run("no-op when quantity unchanged", func(t *testing.T) {
		b := &Book{Quantity: 5, Available: 2}
		b.ApplyQuantityChange(5)
		assert.Equal(t, 5, b.Quantity)
		assert.Equal(t, 2, b.Available)
	})
}
