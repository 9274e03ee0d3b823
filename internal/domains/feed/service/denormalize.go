package service

import (
	"tsismis-backend/internal/domains/feed/model"
	postmodel "tsismis-backend/internal/domains/post/model"
	"tsismis-backend/internal/shared/avatar"
)

// denormalize merges one post, its resolved author and the aggregation
// maps into the flat feed shape. Pure: no I/O, inputs are not mutated.
// The author must already be populated by the page fetch; a nil author
// is a bug in the caller, not a user-facing condition.
func (s *feedService) denormalize(post *postmodel.Post, likes, favorites aggregates) model.FeedItem {
	if post.Author == nil {
		panic("feed: post author is not populated")
	}

	return model.FeedItem{
		ID:        post.ID,
		Message:   post.Message,
		Tags:      post.Tags,
		CreatedAt: post.CreatedAt,
		Author: model.Author{
			ID:          post.Author.ID,
			DisplayName: post.Author.DisplayName,
			Username:    post.Author.Username,
			Avatar:      avatar.URL(s.avatarURL, post.Author.ID),
		},
		Likes:        likes.counts[post.ID],
		HasLiked:     likes.flags[post.ID],
		Favorites:    favorites.counts[post.ID],
		HasFavorited: favorites.flags[post.ID],
	}
}
