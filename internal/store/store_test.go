package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "doppel.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLeadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveLead(ctx, "a@b.com", "Sam", "asked about rates"))
	require.NoError(t, s.SaveLead(ctx, "x@y.com", "Name not provided", "not provided"))

	leads, err := s.ListLeads(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 2)

	// Newest first.
	assert.Equal(t, "x@y.com", leads[0].Email)
	assert.Equal(t, "Name not provided", leads[0].Name)
	assert.Equal(t, "a@b.com", leads[1].Email)
	assert.Equal(t, "asked about rates", leads[1].Notes)
	assert.False(t, leads[0].CreatedAt.IsZero())
}

func TestUnknownQuestionRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveUnknownQuestion(ctx, "what is x?"))

	questions, err := s.ListQuestions(ctx)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "what is x?", questions[0].Question)
	assert.False(t, questions[0].CreatedAt.IsZero())
}

func TestEmptyListings(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	leads, err := s.ListLeads(ctx)
	require.NoError(t, err)
	assert.Empty(t, leads)

	questions, err := s.ListQuestions(ctx)
	require.NoError(t, err)
	assert.Empty(t, questions)
}
