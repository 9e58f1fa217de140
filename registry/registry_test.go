package registry

import (
	"sync"
	"testing"

	"github.com/jsphweid/airpiano/model"
	"github.com/stretchr/testify/assert"
)

func TestAddRemoveSemantics(t *testing.T) {
	assert := assert.New(t)
	r := New()

	assert.True(r.Add(60))
	assert.False(r.Add(60), "second add while audible must report false")
	assert.True(r.Has(60))

	assert.True(r.Remove(60))
	assert.False(r.Remove(60), "second remove must report false")
	assert.False(r.Has(60))
}

func TestNotesSorted(t *testing.T) {
	r := New()
	for _, n := range []uint8{67, 60, 64} {
		r.Add(n)
	}
	assert.Equal(t, model.Notes{60, 64, 67}, r.Notes())
}

func TestFlushEmptiesAndReturns(t *testing.T) {
	assert := assert.New(t)
	r := New()
	r.Add(62)
	r.Add(66)

	flushed := r.Flush()
	assert.Equal(model.Notes{62, 66}, flushed)
	assert.Equal(0, r.Len())
	assert.Empty(r.Flush())
}

func TestConcurrentAdds(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	added := make([]bool, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			added[i] = r.Add(60)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, ok := range added {
		if ok {
			wins++
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent add may win")
	assert.Equal(t, 1, r.Len())
}
