// Package feedclient is the client-side feed model: a local cache of posts
// and ads updated through pure reducers, with pagination and optimistic
// engagement updates layered on top.
package feedclient

import (
	"vibeshare/internal/models"
)

// State is the complete client feed state. It is treated as immutable:
// Reduce returns a new State, never mutates its input.
type State struct {
	UserID   uint
	Username string

	Posts   []models.Post
	Saved   map[uint]bool
	Ads     []models.Ad
	Loading bool
	Err     string
}

// NewState returns an empty state for the given viewer.
func NewState(userID uint, username string) State {
	return State{
		UserID:   userID,
		Username: username,
		Saved:    map[uint]bool{},
	}
}

// Action is a state transition request handled by Reduce.
type Action interface{ isAction() }

// SetLoading toggles the loading flag.
type SetLoading struct{ Loading bool }

// SetError records a fetch failure; Reduce also clears the loading flag.
type SetError struct{ Err string }

// SetPosts replaces the cached post list (full refresh).
type SetPosts struct{ Posts []models.Post }

// AppendPosts adds a further page to the cached list, skipping posts that
// are already present.
type AppendPosts struct{ Posts []models.Post }

// PostCreated prepends a freshly created post.
type PostCreated struct{ Post models.Post }

// CommentAdded appends a comment to the matching post.
type CommentAdded struct {
	PostID  uint
	Comment models.Comment
}

// LikeToggled optimistically flips the viewer's like on the post.
type LikeToggled struct{ PostID uint }

// LikeResolved applies the server's authoritative like count after a toggle.
type LikeResolved struct {
	PostID    uint
	LikeCount int
}

// LikeRolledBack undoes an optimistic LikeToggled after a failed request.
type LikeRolledBack struct{ PostID uint }

// SaveToggled optimistically flips the saved flag of the post.
type SaveToggled struct{ PostID uint }

// SaveRolledBack undoes an optimistic SaveToggled.
type SaveRolledBack struct{ PostID uint }

// SetSaved replaces the set of saved post IDs (e.g. after fetching
// favorites).
type SetSaved struct{ PostIDs []uint }

// AdsLoaded replaces the cached ad list.
type AdsLoaded struct{ Ads []models.Ad }

func (SetLoading) isAction()     {}
func (SetError) isAction()       {}
func (SetPosts) isAction()       {}
func (AppendPosts) isAction()    {}
func (PostCreated) isAction()    {}
func (CommentAdded) isAction()   {}
func (LikeToggled) isAction()    {}
func (LikeResolved) isAction()   {}
func (LikeRolledBack) isAction() {}
func (SaveToggled) isAction()    {}
func (SaveRolledBack) isAction() {}
func (SetSaved) isAction()       {}
func (AdsLoaded) isAction()      {}

// Reduce applies the action to the state and returns the next state. It is
// a pure function: the input state is never modified.
func Reduce(s State, a Action) State {
	next := s
	next.Posts = append([]models.Post(nil), s.Posts...)
	next.Saved = make(map[uint]bool, len(s.Saved))
	for id, v := range s.Saved {
		next.Saved[id] = v
	}

	switch act := a.(type) {
	case SetLoading:
		next.Loading = act.Loading
		if act.Loading {
			next.Err = ""
		}

	case SetError:
		next.Err = act.Err
		next.Loading = false

	case SetPosts:
		next.Posts = append([]models.Post(nil), act.Posts...)
		next.Loading = false
		next.Err = ""

	case AppendPosts:
		seen := make(map[uint]bool, len(next.Posts))
		for _, p := range next.Posts {
			seen[p.ID] = true
		}
		for _, p := range act.Posts {
			if !seen[p.ID] {
				next.Posts = append(next.Posts, p)
			}
		}
		next.Loading = false
		next.Err = ""

	case PostCreated:
		next.Posts = append([]models.Post{act.Post}, next.Posts...)

	case CommentAdded:
		for i := range next.Posts {
			if next.Posts[i].ID == act.PostID {
				p := next.Posts[i]
				p.Comments = append(append([]models.Comment(nil), p.Comments...), act.Comment)
				p.CommentsCount = len(p.Comments)
				next.Posts[i] = p
				break
			}
		}

	case LikeToggled:
		next.flipLike(act.PostID)

	case LikeResolved:
		for i := range next.Posts {
			if next.Posts[i].ID == act.PostID {
				next.Posts[i].LikeCount = act.LikeCount
				break
			}
		}

	case LikeRolledBack:
		next.flipLike(act.PostID)

	case SaveToggled:
		next.flipSave(act.PostID)

	case SaveRolledBack:
		next.flipSave(act.PostID)

	case SetSaved:
		next.Saved = make(map[uint]bool, len(act.PostIDs))
		for _, id := range act.PostIDs {
			next.Saved[id] = true
		}

	case AdsLoaded:
		next.Ads = append([]models.Ad(nil), act.Ads...)
	}

	return next
}

// flipLike toggles the viewer's like row on the post and adjusts the count.
// Works on the already-copied slice inside Reduce.
func (s *State) flipLike(postID uint) {
	for i := range s.Posts {
		if s.Posts[i].ID != postID {
			continue
		}
		p := s.Posts[i]
		likes := append([]models.Like(nil), p.Likes...)
		found := -1
		for j, l := range likes {
			if l.UserID == s.UserID {
				found = j
				break
			}
		}
		if found >= 0 {
			likes = append(likes[:found], likes[found+1:]...)
			if p.LikeCount > 0 {
				p.LikeCount--
			}
		} else {
			likes = append(likes, models.Like{UserID: s.UserID, PostID: postID, Username: s.Username})
			p.LikeCount++
		}
		p.Likes = likes
		s.Posts[i] = p
		return
	}
}

// flipSave toggles the saved flag for the post.
func (s *State) flipSave(postID uint) {
	if s.Saved[postID] {
		delete(s.Saved, postID)
	} else {
		s.Saved[postID] = true
	}
}

// IsLiked reports whether the viewer has liked the post in the cached state.
func (s State) IsLiked(postID uint) bool {
	for _, p := range s.Posts {
		if p.ID == postID {
			for _, l := range p.Likes {
				if l.UserID == s.UserID {
					return true
				}
			}
			return false
		}
	}
	return false
}

// IsSaved reports whether the viewer has saved the post.
func (s State) IsSaved(postID uint) bool {
	return s.Saved[postID]
}
