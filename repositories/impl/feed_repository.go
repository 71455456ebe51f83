package impl

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/livelist"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
)

type FeedRepositoryImpl struct {
	client *firestore.Client
}

func NewFeedRepository(client *firestore.Client) *FeedRepositoryImpl {
	return &FeedRepositoryImpl{client: client}
}

func (r *FeedRepositoryImpl) CreatePost(ctx context.Context, post *models.Post) (string, error) {
	if post.LikerIDs == nil {
		post.LikerIDs = []string{}
	}
	ref := r.client.Collection(colPosts).NewDoc()
	if _, err := ref.Create(ctx, post); err != nil {
		return "", wrapErr("create post", err)
	}
	post.ID = ref.ID
	return ref.ID, nil
}

func (r *FeedRepositoryImpl) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	doc, err := r.client.Collection(colPosts).Doc(postID).Get(ctx)
	if err != nil {
		return nil, wrapErr("get post", err)
	}
	post, err := decodePost(doc)
	if err != nil {
		return nil, wrapErr("get post", err)
	}
	return &post, nil
}

func (r *FeedRepositoryImpl) DeletePost(ctx context.Context, postID string) error {
	_, err := r.client.Collection(colPosts).Doc(postID).Delete(ctx)
	return wrapErr("delete post", err)
}

// SetLike keeps the liker set and the counter in one update so they can
// not drift apart.
func (r *FeedRepositoryImpl) SetLike(ctx context.Context, postID, userID string, liked bool) error {
	var updates []firestore.Update
	if liked {
		updates = []firestore.Update{
			{Path: "likerIds", Value: firestore.ArrayUnion(userID)},
			{Path: "likeCount", Value: firestore.Increment(1)},
		}
	} else {
		updates = []firestore.Update{
			{Path: "likerIds", Value: firestore.ArrayRemove(userID)},
			{Path: "likeCount", Value: firestore.Increment(-1)},
		}
	}
	_, err := r.client.Collection(colPosts).Doc(postID).Update(ctx, updates)
	return wrapErr("set like", err)
}

func (r *FeedRepositoryImpl) AddComment(ctx context.Context, postID string, comment *models.Comment) (string, error) {
	postRef := r.client.Collection(colPosts).Doc(postID)
	commentRef := postRef.Collection(colComments).NewDoc()

	err := r.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		if err := tx.Create(commentRef, comment); err != nil {
			return err
		}
		return tx.Update(postRef, []firestore.Update{
			{Path: "commentCount", Value: firestore.Increment(1)},
		})
	})
	if err != nil {
		return "", wrapErr("add comment", err)
	}
	comment.ID = commentRef.ID
	return commentRef.ID, nil
}

func (r *FeedRepositoryImpl) ListComments(ctx context.Context, postID string, limit int) ([]models.Comment, error) {
	docs := r.client.Collection(colPosts).Doc(postID).Collection(colComments).
		OrderBy(orderField, firestore.Asc).
		Limit(limit).
		Documents(ctx)
	comments, err := decodeAll(docs, func(doc *firestore.DocumentSnapshot) (models.Comment, error) {
		var c models.Comment
		if err := doc.DataTo(&c); err != nil {
			return models.Comment{}, err
		}
		c.ID = doc.Ref.ID
		return c, nil
	})
	if err != nil {
		return nil, wrapErr("list comments", err)
	}
	return comments, nil
}

func (r *FeedRepositoryImpl) IncrementShares(ctx context.Context, postID string) error {
	_, err := r.client.Collection(colPosts).Doc(postID).Update(ctx, []firestore.Update{
		{Path: "shareCount", Value: firestore.Increment(1)},
	})
	return wrapErr("increment shares", err)
}

func (r *FeedRepositoryImpl) Posts() livelist.Source[models.Post] {
	return &postSource{client: r.client}
}

func (r *FeedRepositoryImpl) CreateCustomFeed(ctx context.Context, feed *models.CustomFeed) (string, error) {
	ref := r.client.Collection(colCustomFeeds).NewDoc()
	if _, err := ref.Create(ctx, feed); err != nil {
		return "", wrapErr("create custom feed", err)
	}
	feed.ID = ref.ID
	return ref.ID, nil
}

func (r *FeedRepositoryImpl) ListCustomFeeds(ctx context.Context, ownerID string) ([]models.CustomFeed, error) {
	docs := r.client.Collection(colCustomFeeds).
		Where("ownerId", "==", ownerID).
		OrderBy(orderField, firestore.Asc).
		Documents(ctx)
	feeds, err := decodeAll(docs, decodeCustomFeed)
	if err != nil {
		return nil, wrapErr("list custom feeds", err)
	}
	return feeds, nil
}

func (r *FeedRepositoryImpl) GetCustomFeed(ctx context.Context, feedID string) (*models.CustomFeed, error) {
	doc, err := r.client.Collection(colCustomFeeds).Doc(feedID).Get(ctx)
	if err != nil {
		return nil, wrapErr("get custom feed", err)
	}
	feed, err := decodeCustomFeed(doc)
	if err != nil {
		return nil, wrapErr("get custom feed", err)
	}
	return &feed, nil
}

func (r *FeedRepositoryImpl) DeleteCustomFeed(ctx context.Context, feedID string) error {
	_, err := r.client.Collection(colCustomFeeds).Doc(feedID).Delete(ctx)
	return wrapErr("delete custom feed", err)
}

type postSource struct {
	client *firestore.Client
}

// query maps feed scope keys onto Firestore filters: "" is the global
// feed, "tag:x" filters one tag, "tags:a,b" matches any of a tag set.
func (s *postSource) query(scope string) firestore.Query {
	q := s.client.Collection(colPosts).Query
	switch {
	case strings.HasPrefix(scope, "tag:"):
		q = q.Where("tags", "array-contains", strings.TrimPrefix(scope, "tag:"))
	case strings.HasPrefix(scope, "tags:"):
		tags := strings.Split(strings.TrimPrefix(scope, "tags:"), ",")
		q = q.Where("tags", "array-contains-any", tags)
	}
	return q.OrderBy(orderField, firestore.Desc)
}

func (s *postSource) Subscribe(ctx context.Context, scope string, limit int) (livelist.Subscription[models.Post], error) {
	return newSnapshotSub(ctx, s.query(scope).Limit(limit), decodePost), nil
}

func (s *postSource) FetchBefore(ctx context.Context, scope string, before time.Time, limit int) ([]models.Post, error) {
	docs := s.query(scope).StartAfter(before).Limit(limit).Documents(ctx)
	rows, err := decodeAll(docs, decodePost)
	if err != nil {
		return nil, wrapErr("fetch older posts", err)
	}
	return rows, nil
}

func decodePost(doc *firestore.DocumentSnapshot) (models.Post, error) {
	var post models.Post
	if err := doc.DataTo(&post); err != nil {
		return models.Post{}, err
	}
	post.ID = doc.Ref.ID
	return post, nil
}

func decodeCustomFeed(doc *firestore.DocumentSnapshot) (models.CustomFeed, error) {
	var feed models.CustomFeed
	if err := doc.DataTo(&feed); err != nil {
		return models.CustomFeed{}, err
	}
	feed.ID = doc.Ref.ID
	return feed, nil
}
