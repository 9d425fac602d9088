package models

import (
	"sort"
)

// LeaderboardEntry is one ranked presenter result
type LeaderboardEntry struct {
	// Rank is the 1-based position on the leaderboard
	Rank int `json:"rank"`

	// Score is the recorded result being ranked
	Score *PresenterScore `json:"score"`
}

// Leaderboard ranks presenter scores by likes, then net score.
// Ties keep their recording order.
func Leaderboard(scores []*PresenterScore) []*LeaderboardEntry {
	ranked := make([]*PresenterScore, 0, len(scores))
	for _, score := range scores {
		if score != nil {
			ranked = append(ranked, score)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Likes != ranked[j].Likes {
			return ranked[i].Likes > ranked[j].Likes
		}
		return ranked[i].NetScore > ranked[j].NetScore
	})

	entries := make([]*LeaderboardEntry, len(ranked))
	for i, score := range ranked {
		entries[i] = &LeaderboardEntry{
			Rank:  i + 1,
			Score: score,
		}
	}
	return entries
}
