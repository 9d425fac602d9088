package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardOrdersByLikesThenNet(t *testing.T) {
	scores := []*PresenterScore{
		{Name: "A", Likes: 3, Dislikes: 1, NetScore: 2},
		{Name: "B", Likes: 5, Dislikes: 4, NetScore: 1},
		{Name: "C", Likes: 3, Dislikes: 0, NetScore: 3},
		{Name: "D", Likes: 3, Dislikes: 0, NetScore: 3},
	}

	entries := Leaderboard(scores)
	require.Len(t, entries, 4)

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Score.Name
		assert.Equal(t, i+1, e.Rank)
	}
	assert.Equal(t, []string{"B", "C", "D", "A"}, names)

	// input order untouched
	assert.Equal(t, "A", scores[0].Name)
}

func TestLeaderboardEmpty(t *testing.T) {
	assert.Empty(t, Leaderboard(nil))
}

func TestDeleteOnEnd(t *testing.T) {
	s := &Session{SessionType: SessionTypeQuick}
	assert.True(t, s.DeleteOnEnd())

	s.IsPermanentlySaved = true
	assert.False(t, s.DeleteOnEnd())

	s = &Session{SessionType: SessionTypePersisted}
	assert.False(t, s.DeleteOnEnd())
}
