package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReal_AfterFuncFires(t *testing.T) {
	fired := make(chan struct{})
	Real().AfterFunc(5*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
	}
}

func TestReal_StopPreventsCallback(t *testing.T) {
	fired := make(chan struct{}, 1)
	timer := Real().AfterFunc(time.Hour, func() { fired <- struct{}{} })

	assert.True(t, timer.Stop())
	assert.Empty(t, fired)
}
