package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceIndex(t *testing.T) {
	tests := []struct {
		desc     string
		count    int
		id       []int
		expected int
		fails    bool
	}{
		{desc: "single device without id", count: 1, expected: 0},
		{desc: "explicit id selects that device", count: 3, id: []int{2}, expected: 2},
		{desc: "explicit id zero", count: 3, id: []int{0}, expected: 0},
		{desc: "several devices without id", count: 2, fails: true},
		{desc: "no devices", count: 0, fails: true},
		{desc: "id out of range", count: 2, id: []int{2}, fails: true},
		{desc: "negative id", count: 1, id: []int{-1}, fails: true},
	}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			idx, err := deviceIndex(test.count, test.id...)
			if test.fails {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expected, idx)
		})
	}
}
