package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	var c Counter
	c.Inc()
	c.Add(4)
	assert.Equal(t, uint64(5), c.Load())
}

func TestCounter_Concurrent(t *testing.T) {
	var c Counter
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc()
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(50), c.Load())
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(2 * time.Millisecond)
	assert.GreaterOrEqual(t, timer.Duration(), 2*time.Millisecond)
}

func TestRegistry(t *testing.T) {
	var r Registry

	r.Counter("product.fetch").Inc()
	r.Counter("product.fetch").Inc()
	r.Counter("order.create.failed").Inc()

	assert.Same(t, r.Counter("product.fetch"), r.Counter("product.fetch"))
	assert.Equal(t, []Sample{
		{Name: "order.create.failed", Value: 1},
		{Name: "product.fetch", Value: 2},
	}, r.Snapshot())
}

func TestRegistry_EmptySnapshot(t *testing.T) {
	assert.Empty(t, NewRegistry().Snapshot())
}
