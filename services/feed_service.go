package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/detect"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/livelist"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/repositories"
)

var ErrEmptyPost = errors.New("post needs content or media")

// maxPostTags caps the tags stored per post; Firestore array-contains-any
// queries accept at most 10 values anyway.
const maxPostTags = 10

type FeedService struct {
	FeedRepo repositories.FeedRepository
	UserRepo repositories.UserRepository
}

func NewFeedService(feedRepo repositories.FeedRepository, userRepo repositories.UserRepository) *FeedService {
	return &FeedService{FeedRepo: feedRepo, UserRepo: userRepo}
}

// NormalizeTags lowercases, trims and dedupes tag names, dropping the
// leading # people type out of habit.
func NormalizeTags(tags []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(tag, "#")))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
		if len(out) == maxPostTags {
			break
		}
	}
	return out
}

// CreatePost publishes to the public feed, running link detection over
// the content like chat does.
func (s *FeedService) CreatePost(ctx context.Context, author Sender, content, mediaURL, mediaKind string, tags []string) (*models.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" && mediaURL == "" {
		return nil, ErrEmptyPost
	}
	post := &models.Post{
		AuthorID:   author.UID,
		AuthorName: author.Name,
		Content:    content,
		MediaURL:   mediaURL,
		MediaKind:  mediaKind,
		Embed:      detect.VideoEmbed(content),
		Tags:       NormalizeTags(tags),
	}
	id, err := s.FeedRepo.CreatePost(ctx, post)
	if err != nil {
		return nil, err
	}
	post.ID = id
	return post, nil
}

// DeletePost removes the author's own post.
func (s *FeedService) DeletePost(ctx context.Context, uid, postID string) error {
	post, err := s.FeedRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != uid {
		return ErrNotPermitted
	}
	return s.FeedRepo.DeletePost(ctx, postID)
}

// SetLike toggles the caller's like; the repository keeps the counter
// and the liker set in step.
func (s *FeedService) SetLike(ctx context.Context, uid, postID string, liked bool) error {
	return s.FeedRepo.SetLike(ctx, postID, uid, liked)
}

func (s *FeedService) AddComment(ctx context.Context, author Sender, postID, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyPost
	}
	comment := &models.Comment{
		AuthorID:   author.UID,
		AuthorName: author.Name,
		Text:       text,
	}
	id, err := s.FeedRepo.AddComment(ctx, postID, comment)
	if err != nil {
		return nil, err
	}
	comment.ID = id
	return comment, nil
}

func (s *FeedService) ListComments(ctx context.Context, postID string, limit int) ([]models.Comment, error) {
	return s.FeedRepo.ListComments(ctx, postID, limit)
}

func (s *FeedService) Share(ctx context.Context, postID string) error {
	return s.FeedRepo.IncrementShares(ctx, postID)
}

// CreateCustomFeed saves a named tag combination; its scope key drives
// a filtered live feed view.
func (s *FeedService) CreateCustomFeed(ctx context.Context, ownerID, name string, tags []string) (*models.CustomFeed, error) {
	name = strings.TrimSpace(name)
	tags = NormalizeTags(tags)
	if name == "" || len(tags) == 0 {
		return nil, errors.New("a custom feed needs a name and at least one tag")
	}
	feed := &models.CustomFeed{OwnerID: ownerID, Name: name, Tags: tags}
	id, err := s.FeedRepo.CreateCustomFeed(ctx, feed)
	if err != nil {
		return nil, err
	}
	feed.ID = id
	return feed, nil
}

func (s *FeedService) ListCustomFeeds(ctx context.Context, ownerID string) ([]models.CustomFeed, error) {
	return s.FeedRepo.ListCustomFeeds(ctx, ownerID)
}

func (s *FeedService) DeleteCustomFeed(ctx context.Context, uid, feedID string) error {
	feed, err := s.FeedRepo.GetCustomFeed(ctx, feedID)
	if err != nil {
		return err
	}
	if feed.OwnerID != uid {
		return ErrNotPermitted
	}
	return s.FeedRepo.DeleteCustomFeed(ctx, feedID)
}

// FeedScope resolves a custom feed into the scope key its live view
// subscribes with.
func (s *FeedService) FeedScope(ctx context.Context, uid, feedID string) (string, error) {
	feed, err := s.FeedRepo.GetCustomFeed(ctx, feedID)
	if err != nil {
		return "", err
	}
	if feed.OwnerID != uid {
		return "", ErrNotPermitted
	}
	if len(feed.Tags) == 1 {
		return repositories.TagScope(feed.Tags[0]), nil
	}
	return repositories.TagsScope(feed.Tags), nil
}

// SubscribeTag adds a tag to the user's followed set.
func (s *FeedService) SubscribeTag(ctx context.Context, uid, tag string) (string, error) {
	tags := NormalizeTags([]string{tag})
	if len(tags) == 0 {
		return "", errors.New("tag is required")
	}
	return tags[0], s.UserRepo.SubscribeTag(ctx, uid, tags[0])
}

func (s *FeedService) UnsubscribeTag(ctx context.Context, uid, tag string) error {
	tags := NormalizeTags([]string{tag})
	if len(tags) == 0 {
		return errors.New("tag is required")
	}
	return s.UserRepo.UnsubscribeTag(ctx, uid, tags[0])
}

func (s *FeedService) Posts() livelist.Source[models.Post] {
	return s.FeedRepo.Posts()
}
