package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		s := Generate()
		assert.Len(t, s, 10)
		assert.False(t, seen[s], "slug %q generated twice", s)
		seen[s] = true
	}
}

func TestBoardColor(t *testing.T) {
	for i := 0; i < 20; i++ {
		assert.Contains(t, boardColors, BoardColor())
	}
}
