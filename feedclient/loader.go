package feedclient

import (
	"context"
	"errors"
	"sync"
	"time"

	"vibeshare/internal/models"
	"vibeshare/internal/service"
)

// Source selects which feed the loader refreshes.
type Source int

const (
	// SourceAll is the global feed.
	SourceAll Source = iota
	// SourceFollowing is the followed-users feed.
	SourceFollowing
)

// Loader owns a State and drives it through the API: refreshes, incremental
// page loads, and optimistic engagement updates with rollback on failure.
// Safe for concurrent use.
type Loader struct {
	api API

	mu    sync.Mutex
	state State
	page  int
}

// NewLoader returns a Loader for the given viewer.
func NewLoader(api API, userID uint, username string) *Loader {
	return &Loader{
		api:   api,
		state: NewState(userID, username),
	}
}

// State returns a snapshot of the current state.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *Loader) dispatch(a Action) {
	l.mu.Lock()
	l.state = Reduce(l.state, a)
	l.mu.Unlock()
}

// Refresh refetches the feed from scratch and resets pagination to the
// first page.
func (l *Loader) Refresh(ctx context.Context, src Source) (FeedPage, error) {
	l.dispatch(SetLoading{Loading: true})

	posts, err := l.fetch(ctx, src)
	if err != nil {
		// A cancelled fetch is not a failure worth surfacing; the caller
		// tore down the request on purpose. Clear the loading flag and
		// leave the last good state untouched.
		if errors.Is(err, context.Canceled) {
			l.dispatch(SetLoading{Loading: false})
		} else {
			l.dispatch(SetError{Err: err.Error()})
		}
		return FeedPage{}, err
	}

	l.dispatch(SetPosts{Posts: posts})
	l.mu.Lock()
	l.page = 0
	page := l.state.Page(0)
	l.mu.Unlock()
	return page, nil
}

// LoadMore refetches the feed and advances to the next page. The refetch
// keeps the cache current; pages are sliced out of the full sorted list.
func (l *Loader) LoadMore(ctx context.Context, src Source) (FeedPage, error) {
	l.dispatch(SetLoading{Loading: true})

	posts, err := l.fetch(ctx, src)
	if err != nil {
		// A cancelled fetch is not a failure worth surfacing; the caller
		// tore down the request on purpose. Clear the loading flag and
		// leave the last good state untouched.
		if errors.Is(err, context.Canceled) {
			l.dispatch(SetLoading{Loading: false})
		} else {
			l.dispatch(SetError{Err: err.Error()})
		}
		return FeedPage{}, err
	}

	l.dispatch(AppendPosts{Posts: posts})
	l.mu.Lock()
	l.page++
	page := l.state.Page(l.page)
	l.mu.Unlock()
	return page, nil
}

func (l *Loader) fetch(ctx context.Context, src Source) ([]models.Post, error) {
	switch src {
	case SourceFollowing:
		return l.api.FetchFollowingPosts(ctx)
	default:
		return l.api.FetchPosts(ctx)
	}
}

// RefreshAds fetches the current ad list into the state.
func (l *Loader) RefreshAds(ctx context.Context) error {
	ads, err := l.api.FetchAds(ctx)
	if err != nil {
		return err
	}
	l.dispatch(AdsLoaded{Ads: ads})
	return nil
}

// Entries renders page n of the cached feed with ads interleaved.
func (l *Loader) Entries(n int) []FeedEntry {
	l.mu.Lock()
	state := l.state
	l.mu.Unlock()
	page := state.Page(n)
	return Interleave(page.Posts, state.Ads, time.Now().UnixMilli())
}

// ToggleLike applies the like flip locally first, then confirms it with the
// server. On failure the optimistic change is rolled back and the error
// returned.
func (l *Loader) ToggleLike(ctx context.Context, postID uint) (*service.LikeResult, error) {
	l.dispatch(LikeToggled{PostID: postID})

	result, err := l.api.ToggleLike(ctx, postID)
	if err != nil {
		l.dispatch(LikeRolledBack{PostID: postID})
		return nil, err
	}

	l.dispatch(LikeResolved{PostID: postID, LikeCount: result.LikeCount})
	return result, nil
}

// ToggleSave flips the saved flag locally first, then confirms with the
// server, rolling back on failure.
func (l *Loader) ToggleSave(ctx context.Context, postID uint) error {
	l.mu.Lock()
	wasSaved := l.state.Saved[postID]
	l.mu.Unlock()

	l.dispatch(SaveToggled{PostID: postID})

	var err error
	if wasSaved {
		err = l.api.UnsavePost(ctx, postID)
	} else {
		err = l.api.SavePost(ctx, postID)
	}
	if err != nil {
		l.dispatch(SaveRolledBack{PostID: postID})
		return err
	}
	return nil
}

// CreatePost publishes a post and prepends it to the cache.
func (l *Loader) CreatePost(ctx context.Context, in service.CreatePostInput) error {
	post, err := l.api.CreatePost(ctx, in)
	if err != nil {
		return err
	}
	l.dispatch(PostCreated{Post: *post})
	return nil
}

// AddComment publishes a comment and appends it to the cached post.
func (l *Loader) AddComment(ctx context.Context, postID uint, text string) error {
	comment, err := l.api.AddComment(ctx, postID, text)
	if err != nil {
		return err
	}
	l.dispatch(CommentAdded{PostID: postID, Comment: *comment})
	return nil
}
