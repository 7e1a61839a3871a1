package dbg

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	assert.Equal(t, "Ø", Name(nil))
	var p *int
	assert.Equal(t, "Ø", Name(p))

	name := Name("0,1,2")
	assert.NotEmpty(t, name)
	assert.Equal(t, name, Name("0,1,2"))

	s := []int{1, 2}
	assert.Equal(t, Name(s), Name(s), "slices are named by address")
}

func TestName_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	names := make([]string, 8)
	for i := range names {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				Name(fmt.Sprint(i, j))
			}
			names[i] = Name("shared")
		}(i)
	}
	wg.Wait()
	for _, name := range names {
		assert.Equal(t, names[0], name)
	}
}
