package progress

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTrackerTo(&buf, "ranking")

	tr.Tick()
	assert.Equal(t, int64(0), tr.Current())

	tr.Start(10)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Tick()
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(10), tr.Current())
	tr.Finish()
}

func TestTracker_FinishWithoutStart(t *testing.T) {
	tr := NewTracker("idle")
	assert.NotPanics(t, tr.Finish)
}
