package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/poiesic/finanswer/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsure(t *testing.T) {
	s := NewStore()

	t.Run("keeps provided id", func(t *testing.T) {
		assert.Equal(t, "abc", s.Ensure("abc"))
	})

	t.Run("mints unique ids for empty input", func(t *testing.T) {
		first := s.Ensure("")
		second := s.Ensure("")
		assert.NotEmpty(t, first)
		assert.NotEqual(t, first, second)
	})

	t.Run("minted session starts empty", func(t *testing.T) {
		id := s.Ensure("")
		assert.Empty(t, s.History(id))
	})
}

func TestHistory(t *testing.T) {
	s := NewStore()

	t.Run("unknown session is empty", func(t *testing.T) {
		assert.Empty(t, s.History("nope"))
	})

	t.Run("turns accumulate in order", func(t *testing.T) {
		s.Append("s1", core.Turn{Query: "q1", Answer: "a1"})
		s.Append("s1", core.Turn{Query: "q2", Answer: "a2"})

		history := s.History("s1")
		require.Len(t, history, 2)
		assert.Equal(t, "q1", history[0].Query)
		assert.Equal(t, "a2", history[1].Answer)
	})

	t.Run("returned history is a copy", func(t *testing.T) {
		s.Append("s2", core.Turn{Query: "q", Answer: "a"})

		history := s.History("s2")
		history[0].Answer = "mutated"
		assert.Equal(t, "a", s.History("s2")[0].Answer)
	})

	t.Run("sessions are independent", func(t *testing.T) {
		s.Append("left", core.Turn{Query: "lq", Answer: "la"})
		s.Append("right", core.Turn{Query: "rq", Answer: "ra"})

		assert.Len(t, s.History("left"), 1)
		assert.Equal(t, "rq", s.History("right")[0].Query)
	})
}

func TestConcurrentAppends(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("session-%d", i%4)
			for j := 0; j < 25; j++ {
				s.Append(id, core.Turn{Query: "q", Answer: "a"})
			}
		}(i)
	}
	wg.Wait()

	total := 0
	for i := 0; i < 4; i++ {
		total += len(s.History(fmt.Sprintf("session-%d", i)))
	}
	assert.Equal(t, 200, total)
	assert.Equal(t, 4, s.Len())
}
