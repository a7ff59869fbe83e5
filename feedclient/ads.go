package feedclient

import "vibeshare/internal/models"

// FeedEntry is one rendered feed slot: either a post or an ad, never both.
type FeedEntry struct {
	Post *models.Post
	Ad   *models.Ad
}

// adInterval is how many posts appear between ads.
const adInterval = 3

// Interleave merges ads into a post list: one ad after every third post.
// Only ads whose date window covers now (Unix milliseconds) are used, each
// at most once; when the active ads run out the remaining posts are
// emitted without ads.
func Interleave(posts []models.Post, ads []models.Ad, nowUnixMillis int64) []FeedEntry {
	active := make([]models.Ad, 0, len(ads))
	for _, ad := range ads {
		if ad.ActiveAt(nowUnixMillis) {
			active = append(active, ad)
		}
	}

	entries := make([]FeedEntry, 0, len(posts)+len(active))
	adIdx := 0
	for i := range posts {
		entries = append(entries, FeedEntry{Post: &posts[i]})
		if (i+1)%adInterval == 0 && adIdx < len(active) {
			entries = append(entries, FeedEntry{Ad: &active[adIdx]})
			adIdx++
		}
	}
	return entries
}
