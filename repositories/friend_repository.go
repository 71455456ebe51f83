package repositories

import (
	"context"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/livelist"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
)

type FriendRepository interface {
	CreateRequest(ctx context.Context, req *models.FriendRequest) (string, error)
	GetRequest(ctx context.Context, requestID string) (*models.FriendRequest, error)
	// AcceptRequest adds each party to the other's friend list and
	// deletes the request document in a single transaction.
	AcceptRequest(ctx context.Context, req *models.FriendRequest) error
	// DeleteRequest declines (or withdraws) a request.
	DeleteRequest(ctx context.Context, requestID string) error
	// Requests serves the incoming-requests sidebar; the scope key is
	// the recipient's user id.
	Requests() livelist.Source[models.FriendRequest]

	CreateInvite(ctx context.Context, inv *models.ServerInvite) (string, error)
	GetInvite(ctx context.Context, inviteID string) (*models.ServerInvite, error)
	// AcceptInvite writes the membership and deletes the invite in a
	// single transaction.
	AcceptInvite(ctx context.Context, inv *models.ServerInvite, member *models.Membership) error
	DeleteInvite(ctx context.Context, inviteID string) error
	ListInvites(ctx context.Context, recipientID string) ([]models.ServerInvite, error)
}
