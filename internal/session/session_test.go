package session

import (
	"sync"
	"sync/atomic"
	"testing"

	"casha/finance-advisor/internal/currency"
	"casha/finance-advisor/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateGetDelete(t *testing.T) {
	st := NewStore()
	s := st.Create()
	_, err := uuid.Parse(s.ID)
	require.NoError(t, err)

	got, err := st.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 1, st.Len())

	st.Delete(s.ID)
	_, err = st.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotEqual(t, st.Create().ID, st.Create().ID)
}

func TestSession_CommitReplacesList(t *testing.T) {
	s := NewStore().Create()
	first := []models.Transaction{{Date: "2024-01-01", Description: "A", Amount: 1, Category: "X"}}

	require.NoError(t, s.BeginParse())
	assert.True(t, s.Snapshot().Parsing)
	require.NoError(t, s.Commit(first, currency.EUR))

	snap := s.Snapshot()
	assert.False(t, snap.Parsing)
	assert.Equal(t, first, snap.Transactions)
	assert.Equal(t, currency.EUR, snap.Currency)

	// The session keeps its own copy.
	first[0].Description = "mutated"
	assert.Equal(t, "A", s.Snapshot().Transactions[0].Description)
}

func TestSession_AbortKeepsPreviousList(t *testing.T) {
	s := NewStore().Create()
	require.NoError(t, s.BeginParse())
	require.NoError(t, s.Commit([]models.Transaction{{Description: "kept", Amount: 5}}, currency.USD))

	require.NoError(t, s.BeginParse())
	require.NoError(t, s.Abort())

	snap := s.Snapshot()
	require.Len(t, snap.Transactions, 1)
	assert.Equal(t, "kept", snap.Transactions[0].Description)
	assert.False(t, snap.Parsing)
}

func TestSession_GuardErrors(t *testing.T) {
	s := NewStore().Create()
	assert.ErrorIs(t, s.Commit(nil, currency.USD), ErrNoParse)
	assert.ErrorIs(t, s.Abort(), ErrNoParse)

	require.NoError(t, s.BeginParse())
	assert.ErrorIs(t, s.BeginParse(), ErrParseInFlight)
	require.NoError(t, s.Abort())
	assert.NoError(t, s.BeginParse())
}

func TestSession_SingleParseInFlight(t *testing.T) {
	s := NewStore().Create()
	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.BeginParse() == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins.Load())
}

func TestSession_EmptySnapshot(t *testing.T) {
	snap := NewStore().Create().Snapshot()
	assert.NotNil(t, snap.Transactions)
	assert.Empty(t, snap.Transactions)
}
