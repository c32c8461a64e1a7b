package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFanOutDelivers(t *testing.T) {
	in := make(chan int)
	f := NewDynamicFanOut(in)

	_, a, err := f.SpawnOutput()
	require.NoError(t, err)
	_, b, err := f.SpawnOutput()
	require.NoError(t, err)

	in <- 1
	assert.Equal(t, 1, <-a)
	assert.Equal(t, 1, <-b)

	close(in)
	<-f.Done()

	_, ok := <-a
	assert.False(t, ok)
	_, _, err = f.SpawnOutput()
	assert.Error(t, err)
}

func TestFanOutKeepsLatest(t *testing.T) {
	in := make(chan int)
	f := NewDynamicFanOut(in)

	_, out, err := f.SpawnOutput()
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		in <- i
	}
	close(in)
	<-f.Done()

	var got []int
	for v := range out {
		got = append(got, v)
	}
	assert.Equal(t, []int{4}, got)
}

func TestFanOutDespawn(t *testing.T) {
	in := make(chan string, 2)
	f := NewDynamicFanOut(in)
	defer close(in)

	id, out, err := f.SpawnOutput()
	require.NoError(t, err)

	assert.Equal(t, nil, f.DespawnOutput(id))
	assert.Error(t, f.DespawnOutput(id))

	select {
	case _, ok := <-out:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("output not closed")
	}
}
