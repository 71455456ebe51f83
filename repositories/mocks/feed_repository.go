package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/livelist"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
)

type FeedRepository struct {
	mock.Mock
}

func (m *FeedRepository) CreatePost(ctx context.Context, post *models.Post) (string, error) {
	args := m.Called(ctx, post)
	return args.String(0), args.Error(1)
}

func (m *FeedRepository) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	args := m.Called(ctx, postID)
	var post *models.Post
	if args.Get(0) != nil {
		post = args.Get(0).(*models.Post)
	}
	return post, args.Error(1)
}

func (m *FeedRepository) DeletePost(ctx context.Context, postID string) error {
	return m.Called(ctx, postID).Error(0)
}

func (m *FeedRepository) SetLike(ctx context.Context, postID, userID string, liked bool) error {
	return m.Called(ctx, postID, userID, liked).Error(0)
}

func (m *FeedRepository) AddComment(ctx context.Context, postID string, comment *models.Comment) (string, error) {
	args := m.Called(ctx, postID, comment)
	return args.String(0), args.Error(1)
}

func (m *FeedRepository) ListComments(ctx context.Context, postID string, limit int) ([]models.Comment, error) {
	args := m.Called(ctx, postID, limit)
	var comments []models.Comment
	if args.Get(0) != nil {
		comments = args.Get(0).([]models.Comment)
	}
	return comments, args.Error(1)
}

func (m *FeedRepository) IncrementShares(ctx context.Context, postID string) error {
	return m.Called(ctx, postID).Error(0)
}

func (m *FeedRepository) Posts() livelist.Source[models.Post] {
	args := m.Called()
	if src, ok := args.Get(0).(livelist.Source[models.Post]); ok {
		return src
	}
	return nil
}

func (m *FeedRepository) CreateCustomFeed(ctx context.Context, feed *models.CustomFeed) (string, error) {
	args := m.Called(ctx, feed)
	return args.String(0), args.Error(1)
}

func (m *FeedRepository) ListCustomFeeds(ctx context.Context, ownerID string) ([]models.CustomFeed, error) {
	args := m.Called(ctx, ownerID)
	var feeds []models.CustomFeed
	if args.Get(0) != nil {
		feeds = args.Get(0).([]models.CustomFeed)
	}
	return feeds, args.Error(1)
}

func (m *FeedRepository) GetCustomFeed(ctx context.Context, feedID string) (*models.CustomFeed, error) {
	args := m.Called(ctx, feedID)
	var feed *models.CustomFeed
	if args.Get(0) != nil {
		feed = args.Get(0).(*models.CustomFeed)
	}
	return feed, args.Error(1)
}

func (m *FeedRepository) DeleteCustomFeed(ctx context.Context, feedID string) error {
	return m.Called(ctx, feedID).Error(0)
}
