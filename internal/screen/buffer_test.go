package screen

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_DefaultBound(t *testing.T) {
	assert.Equal(t, DefaultLines, New(0).Cap())
	assert.Equal(t, DefaultLines, New(-3).Cap())
	assert.Equal(t, 5, New(5).Cap())
}

func TestBuffer_EvictsOldestFirst(t *testing.T) {
	b := New(DefaultLines)
	for i := 0; i < 30; i++ {
		b.Append(fmt.Sprintf("line %d", i))
	}

	lines := b.Lines()
	assert.Len(t, lines, 24)
	assert.Equal(t, "line 6", lines[0])
	assert.Equal(t, "line 29", lines[23])
}

func TestBuffer_RenderJoinsInOrder(t *testing.T) {
	b := New(3)
	b.Append("a")
	b.Append("b")
	assert.Equal(t, "a\nb", b.Render())

	b.Append("c")
	b.Append("d")
	assert.Equal(t, "b\nc\nd", b.Render())
}

func TestBuffer_AppendText(t *testing.T) {
	b := New(10)
	b.AppendText("Contents of 'x':\nhello")
	assert.Equal(t, []string{"Contents of 'x':", "hello"}, b.Lines())
}

func TestBuffer_Clear(t *testing.T) {
	b := New(4)
	b.Append("a")
	b.Append("b")
	b.Clear()

	assert.Equal(t, 0, b.Len())
	assert.Equal(t, "", b.Render())

	b.Append("c")
	assert.Equal(t, "c", b.Render())
}

func TestBuffer_LinesIsCopy(t *testing.T) {
	b := New(4)
	b.Append("a")
	lines := b.Lines()
	lines[0] = "mutated"
	assert.Equal(t, "a", b.Render())
}

func TestBuffer_ConcurrentAppend(t *testing.T) {
	b := New(DefaultLines)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				b.Append(fmt.Sprintf("%d-%d", n, j))
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, DefaultLines, b.Len())
}
