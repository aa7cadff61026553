package safe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveNonce(t *testing.T) {
	tests := []struct {
		name         string
		onChainNonce uint64
		pending      []uint64
		want         uint64
	}{
		{"no pending proposals", 4, nil, 4},
		{"empty pending slice", 4, []uint64{}, 4},
		{"single pending at current nonce", 5, []uint64{5}, 6},
		{"append after highest pending", 5, []uint64{5, 6}, 7},
		{"pending out of order", 5, []uint64{6, 5}, 7},
		{"chain advanced past stale pending", 10, []uint64{3}, 10},
		{"chain equal to highest pending", 6, []uint64{5, 6}, 7},
		{"zero everywhere", 0, []uint64{0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveNonce(tt.onChainNonce, tt.pending))
		})
	}
}
