package impl

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/livelist"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
)

type FriendRepositoryImpl struct {
	client *firestore.Client
}

func NewFriendRepository(client *firestore.Client) *FriendRepositoryImpl {
	return &FriendRepositoryImpl{client: client}
}

func (r *FriendRepositoryImpl) CreateRequest(ctx context.Context, req *models.FriendRequest) (string, error) {
	ref := r.client.Collection(colFriendRequests).NewDoc()
	if _, err := ref.Create(ctx, req); err != nil {
		return "", wrapErr("create friend request", err)
	}
	req.ID = ref.ID
	return ref.ID, nil
}

func (r *FriendRepositoryImpl) GetRequest(ctx context.Context, requestID string) (*models.FriendRequest, error) {
	doc, err := r.client.Collection(colFriendRequests).Doc(requestID).Get(ctx)
	if err != nil {
		return nil, wrapErr("get friend request", err)
	}
	req, err := decodeFriendRequest(doc)
	if err != nil {
		return nil, wrapErr("get friend request", err)
	}
	return &req, nil
}

// AcceptRequest links both users and removes the request in one
// transaction; acceptance is modeled by the request's deletion.
func (r *FriendRepositoryImpl) AcceptRequest(ctx context.Context, req *models.FriendRequest) error {
	reqRef := r.client.Collection(colFriendRequests).Doc(req.ID)
	senderRef := r.client.Collection(colUsers).Doc(req.SenderID)
	recipientRef := r.client.Collection(colUsers).Doc(req.RecipientID)

	err := r.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		if err := tx.Update(senderRef, []firestore.Update{
			{Path: "friendIds", Value: firestore.ArrayUnion(req.RecipientID)},
		}); err != nil {
			return err
		}
		if err := tx.Update(recipientRef, []firestore.Update{
			{Path: "friendIds", Value: firestore.ArrayUnion(req.SenderID)},
		}); err != nil {
			return err
		}
		return tx.Delete(reqRef)
	})
	return wrapErr("accept friend request", err)
}

func (r *FriendRepositoryImpl) DeleteRequest(ctx context.Context, requestID string) error {
	_, err := r.client.Collection(colFriendRequests).Doc(requestID).Delete(ctx)
	return wrapErr("delete friend request", err)
}

func (r *FriendRepositoryImpl) Requests() livelist.Source[models.FriendRequest] {
	return &friendRequestSource{client: r.client}
}

func (r *FriendRepositoryImpl) CreateInvite(ctx context.Context, inv *models.ServerInvite) (string, error) {
	ref := r.client.Collection(colServerInvites).NewDoc()
	if _, err := ref.Create(ctx, inv); err != nil {
		return "", wrapErr("create server invite", err)
	}
	inv.ID = ref.ID
	return ref.ID, nil
}

func (r *FriendRepositoryImpl) GetInvite(ctx context.Context, inviteID string) (*models.ServerInvite, error) {
	doc, err := r.client.Collection(colServerInvites).Doc(inviteID).Get(ctx)
	if err != nil {
		return nil, wrapErr("get server invite", err)
	}
	var inv models.ServerInvite
	if err := doc.DataTo(&inv); err != nil {
		return nil, wrapErr("get server invite", err)
	}
	inv.ID = doc.Ref.ID
	return &inv, nil
}

// AcceptInvite writes the membership and deletes the invite atomically.
func (r *FriendRepositoryImpl) AcceptInvite(ctx context.Context, inv *models.ServerInvite, member *models.Membership) error {
	invRef := r.client.Collection(colServerInvites).Doc(inv.ID)
	memberRef := r.client.Collection(colServers).Doc(inv.ServerID).Collection(colMembers).Doc(member.UserID)

	err := r.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		if err := tx.Set(memberRef, member); err != nil {
			return err
		}
		return tx.Delete(invRef)
	})
	return wrapErr("accept server invite", err)
}

func (r *FriendRepositoryImpl) DeleteInvite(ctx context.Context, inviteID string) error {
	_, err := r.client.Collection(colServerInvites).Doc(inviteID).Delete(ctx)
	return wrapErr("delete server invite", err)
}

func (r *FriendRepositoryImpl) ListInvites(ctx context.Context, recipientID string) ([]models.ServerInvite, error) {
	docs := r.client.Collection(colServerInvites).
		Where("recipientId", "==", recipientID).
		OrderBy(orderField, firestore.Desc).
		Documents(ctx)
	invites, err := decodeAll(docs, func(doc *firestore.DocumentSnapshot) (models.ServerInvite, error) {
		var inv models.ServerInvite
		if err := doc.DataTo(&inv); err != nil {
			return models.ServerInvite{}, err
		}
		inv.ID = doc.Ref.ID
		return inv, nil
	})
	if err != nil {
		return nil, wrapErr("list server invites", err)
	}
	return invites, nil
}

type friendRequestSource struct {
	client *firestore.Client
}

func (s *friendRequestSource) query(recipientID string) firestore.Query {
	return s.client.Collection(colFriendRequests).
		Where("recipientId", "==", recipientID).
		OrderBy(orderField, firestore.Desc)
}

func (s *friendRequestSource) Subscribe(ctx context.Context, scope string, limit int) (livelist.Subscription[models.FriendRequest], error) {
	return newSnapshotSub(ctx, s.query(scope).Limit(limit), decodeFriendRequest), nil
}

func (s *friendRequestSource) FetchBefore(ctx context.Context, scope string, before time.Time, limit int) ([]models.FriendRequest, error) {
	docs := s.query(scope).StartAfter(before).Limit(limit).Documents(ctx)
	rows, err := decodeAll(docs, decodeFriendRequest)
	if err != nil {
		return nil, wrapErr("fetch older friend requests", err)
	}
	return rows, nil
}

func decodeFriendRequest(doc *firestore.DocumentSnapshot) (models.FriendRequest, error) {
	var req models.FriendRequest
	if err := doc.DataTo(&req); err != nil {
		return models.FriendRequest{}, err
	}
	req.ID = doc.Ref.ID
	return req, nil
}
