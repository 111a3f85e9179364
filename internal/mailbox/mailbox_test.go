package mailbox

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutTake(t *testing.T) {
	m := New[int]()
	m.Put(7)

	got, ok := m.Take(context.Background())
	require.True(t, ok)
	assert.Equal(t, 7, got)
}

func TestLatestWins(t *testing.T) {
	m := New[string]()
	m.Put("first")
	m.Put("second")

	got, ok := m.Take(context.Background())
	require.True(t, ok)
	assert.Equal(t, "second", got)

	// The slot is empty again; a canceled wait returns false.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, ok = m.Take(ctx)
	assert.False(t, ok)
}

func TestTakeBlocksUntilPut(t *testing.T) {
	m := New[int]()

	done := make(chan int, 1)
	go func() {
		v, ok := m.Take(context.Background())
		if ok {
			done <- v
		}
	}()

	time.Sleep(20 * time.Millisecond)
	m.Put(42)

	select {
	case v := <-done:
		assert.Equal(t, 42, v)
	case <-time.After(2 * time.Second):
		t.Fatal("Take did not wake up after Put")
	}
}
