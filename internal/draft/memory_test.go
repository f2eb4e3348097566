package draft

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *Memory
	ctx   context.Context
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewMemory()
	s.ctx = context.Background()
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

type testRecord struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func (s *MemoryStoreSuite) TestPutGet() {
	s.Run("round trips a value", func() {
		s.Require().NoError(s.store.Put(s.ctx, "sess", "key", testRecord{Name: "a", Count: 2}))

		var out testRecord
		s.Require().True(s.store.Get(s.ctx, "sess", "key", &out))
		s.Equal("a", out.Name)
		s.Equal(2, out.Count)
	})

	s.Run("missing key reports absent", func() {
		var out testRecord
		s.False(s.store.Get(s.ctx, "sess", "nope", &out))
	})

	s.Run("sessions are isolated", func() {
		s.Require().NoError(s.store.Put(s.ctx, "sess-a", "key", testRecord{Name: "a"}))

		var out testRecord
		s.False(s.store.Get(s.ctx, "sess-b", "key", &out))
	})

	s.Run("put overwrites", func() {
		s.Require().NoError(s.store.Put(s.ctx, "sess", "key", testRecord{Count: 1}))
		s.Require().NoError(s.store.Put(s.ctx, "sess", "key", testRecord{Count: 2}))

		var out testRecord
		s.Require().True(s.store.Get(s.ctx, "sess", "key", &out))
		s.Equal(2, out.Count)
	})
}

// TestCorruptEntry verifies a corrupt value reads as absent instead of
// erroring, which is what lets the workflow fall back to a fresh context.
func (s *MemoryStoreSuite) TestCorruptEntry() {
	s.store.Corrupt("sess", "key", []byte("{not json"))

	var out testRecord
	s.False(s.store.Get(s.ctx, "sess", "key", &out))
}

func (s *MemoryStoreSuite) TestRemove() {
	s.Require().NoError(s.store.Put(s.ctx, "sess", "key", testRecord{}))
	s.Require().NoError(s.store.Remove(s.ctx, "sess", "key"))

	var out testRecord
	s.False(s.store.Get(s.ctx, "sess", "key", &out))

	// removing again is fine
	s.Require().NoError(s.store.Remove(s.ctx, "sess", "key"))
}
