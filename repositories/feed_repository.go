package repositories

import (
	"context"
	"strings"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/livelist"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
)

// Feed scope keys. The global feed is the empty scope; tag-filtered views
// encode their tags into the key so one source serves every feed view.
func TagScope(tag string) string {
	return "tag:" + tag
}

func TagsScope(tags []string) string {
	return "tags:" + strings.Join(tags, ",")
}

type FeedRepository interface {
	CreatePost(ctx context.Context, post *models.Post) (string, error)
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	DeletePost(ctx context.Context, postID string) error

	// SetLike toggles the caller in the liker set and adjusts the like
	// counter in the same update.
	SetLike(ctx context.Context, postID, userID string, liked bool) error
	AddComment(ctx context.Context, postID string, comment *models.Comment) (string, error)
	ListComments(ctx context.Context, postID string, limit int) ([]models.Comment, error)
	IncrementShares(ctx context.Context, postID string) error

	// Posts serves the social feed; scope is "", TagScope or TagsScope.
	Posts() livelist.Source[models.Post]

	CreateCustomFeed(ctx context.Context, feed *models.CustomFeed) (string, error)
	ListCustomFeeds(ctx context.Context, ownerID string) ([]models.CustomFeed, error)
	GetCustomFeed(ctx context.Context, feedID string) (*models.CustomFeed, error)
	DeleteCustomFeed(ctx context.Context, feedID string) error
}
