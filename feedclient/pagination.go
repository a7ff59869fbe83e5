package feedclient

import (
	"sort"

	"vibeshare/internal/models"
)

// PageSize is the number of posts shown per feed page.
const PageSize = 10

// FeedPage is one rendered page of the cached feed.
type FeedPage struct {
	Posts   []models.Post
	HasMore bool
}

// Page slices page n (0-based) out of the cached posts, newest first. The
// whole cache is re-sorted on every call so a post created locally between
// page loads lands in the right place.
func (s State) Page(n int) FeedPage {
	if n < 0 {
		n = 0
	}

	sorted := append([]models.Post(nil), s.Posts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	start := n * PageSize
	if start >= len(sorted) {
		return FeedPage{}
	}
	end := start + PageSize
	if end > len(sorted) {
		end = len(sorted)
	}

	return FeedPage{
		Posts:   sorted[start:end],
		HasMore: end < len(sorted),
	}
}
