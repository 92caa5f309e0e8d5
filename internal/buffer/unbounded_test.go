package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnboundedPreservesOrder(t *testing.T) {
	in, out := Unbounded[int](4, 0, nil)
	for i := 0; i < 100; i++ {
		in <- i
	}
	close(in)

	var got []int
	for v := range out {
		got = append(got, v)
	}
	assert.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestUnboundedDropsOldest(t *testing.T) {
	var dropped []int
	in, out := Unbounded[int](4, 3, func(v int) { dropped = append(dropped, v) })

	// Nothing reads out until close, so at most the output buffer plus
	// the hard limit are retained.
	for i := 0; i < 20; i++ {
		in <- i
	}
	close(in)

	var got []int
	for v := range out {
		got = append(got, v)
	}
	assert.Equal(t, 20, len(got)+len(dropped))
	assert.Equal(t, 19, got[len(got)-1])
	if assert.NotEmpty(t, dropped) {
		assert.Less(t, dropped[0], got[len(got)-1])
	}
}
