package feedback

import "slices"

// Snapshot is an immutable view of all feedback. The With* methods return a
// new Snapshot and never modify the receiver's slices.
type Snapshot struct {
	Comments []Comment
	Ratings  []Rating
	Likes    []Like
}

// WithComment returns a snapshot with c placed first.
func (s Snapshot) WithComment(c Comment) Snapshot {
	comments := make([]Comment, 0, len(s.Comments)+1)
	comments = append(comments, c)
	comments = append(comments, s.Comments...)
	s.Comments = comments
	return s
}

// WithRating returns a snapshot where r replaces any earlier rating by the
// same user for the same game and is placed first.
func (s Snapshot) WithRating(r Rating) Snapshot {
	ratings := make([]Rating, 0, len(s.Ratings)+1)
	ratings = append(ratings, r)
	for _, existing := range s.Ratings {
		if existing.UserID == r.UserID && existing.GameID == r.GameID {
			continue
		}
		ratings = append(ratings, existing)
	}
	s.Ratings = ratings
	return s
}

// WithLike returns a snapshot containing l first. A like by the same user
// on the same game is replaced.
func (s Snapshot) WithLike(l Like) Snapshot {
	likes := make([]Like, 0, len(s.Likes)+1)
	likes = append(likes, l)
	for _, existing := range s.Likes {
		if existing.UserID == l.UserID && existing.GameID == l.GameID {
			continue
		}
		likes = append(likes, existing)
	}
	s.Likes = likes
	return s
}

// WithoutLike returns a snapshot without the like of userID on gameID.
func (s Snapshot) WithoutLike(gameID, userID string) Snapshot {
	s.Likes = slices.DeleteFunc(slices.Clone(s.Likes), func(l Like) bool {
		return l.GameID == gameID && l.UserID == userID
	})
	return s
}

// IsLiked reports whether userID likes gameID.
func (s Snapshot) IsLiked(gameID, userID string) bool {
	return slices.ContainsFunc(s.Likes, func(l Like) bool {
		return l.GameID == gameID && l.UserID == userID
	})
}
