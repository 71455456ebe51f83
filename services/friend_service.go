package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/interfaces"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/livelist"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/repositories"
)

var (
	ErrSelfFriendRequest = errors.New("cannot send a friend request to yourself")
	ErrNotRecipient      = errors.New("only the recipient can act on this")
)

type FriendService struct {
	FriendRepo repositories.FriendRepository
	ServerRepo repositories.ServerRepository
	UserRepo   repositories.UserRepository
	Notifier   interfaces.Notifier
}

func NewFriendService(friendRepo repositories.FriendRepository, serverRepo repositories.ServerRepository, userRepo repositories.UserRepository, notifier interfaces.Notifier) *FriendService {
	return &FriendService{FriendRepo: friendRepo, ServerRepo: serverRepo, UserRepo: userRepo, Notifier: notifier}
}

// SendRequest creates a pending friend request and pings the recipient.
func (s *FriendService) SendRequest(ctx context.Context, sender Sender, recipientID string) (*models.FriendRequest, error) {
	if recipientID == sender.UID {
		return nil, ErrSelfFriendRequest
	}
	recipient, err := s.UserRepo.Get(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	req := &models.FriendRequest{
		SenderID:      sender.UID,
		SenderName:    sender.Name,
		SenderEmail:   sender.Email,
		RecipientID:   recipientID,
		RecipientName: recipient.DisplayName,
	}
	id, err := s.FriendRepo.CreateRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	req.ID = id

	s.notify(ctx, recipientID, "Friend request", sender.Name+" wants to be friends", map[string]string{"requestId": id})
	return req, nil
}

// AcceptRequest makes the two users friends and removes the request in
// one bundled write.
func (s *FriendService) AcceptRequest(ctx context.Context, uid, requestID string) error {
	req, err := s.FriendRepo.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if req.RecipientID != uid {
		return ErrNotRecipient
	}
	if err := s.FriendRepo.AcceptRequest(ctx, req); err != nil {
		return err
	}
	s.notify(ctx, req.SenderID, "Friend request accepted", req.RecipientName+" accepted your request", nil)
	return nil
}

// DeclineRequest deletes the request; decline leaves no trace.
func (s *FriendService) DeclineRequest(ctx context.Context, uid, requestID string) error {
	req, err := s.FriendRepo.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if req.RecipientID != uid && req.SenderID != uid {
		return ErrNotRecipient
	}
	return s.FriendRepo.DeleteRequest(ctx, requestID)
}

func (s *FriendService) Requests() livelist.Source[models.FriendRequest] {
	return s.FriendRepo.Requests()
}

// SendInvite invites a user into one of the sender's servers. The
// sender must be a member.
func (s *FriendService) SendInvite(ctx context.Context, sender Sender, serverID, recipientID string) (*models.ServerInvite, error) {
	if _, err := s.ServerRepo.Membership(ctx, serverID, sender.UID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotMember
		}
		return nil, err
	}
	srv, err := s.ServerRepo.Get(ctx, serverID)
	if err != nil {
		return nil, err
	}

	inv := &models.ServerInvite{
		ServerID:    serverID,
		ServerName:  srv.Name,
		SenderID:    sender.UID,
		SenderName:  sender.Name,
		RecipientID: recipientID,
	}
	id, err := s.FriendRepo.CreateInvite(ctx, inv)
	if err != nil {
		return nil, err
	}
	inv.ID = id

	s.notify(ctx, recipientID, "Server invite", sender.Name+" invited you to "+srv.Name, map[string]string{"inviteId": id})
	return inv, nil
}

// AcceptInvite joins the recipient as a member and removes the invite
// in one bundled write.
func (s *FriendService) AcceptInvite(ctx context.Context, uid, displayName, inviteID string) error {
	inv, err := s.FriendRepo.GetInvite(ctx, inviteID)
	if err != nil {
		return err
	}
	if inv.RecipientID != uid {
		return ErrNotRecipient
	}
	member := &models.Membership{
		UserID:      uid,
		DisplayName: displayName,
		Role:        models.RoleMember,
	}
	return s.FriendRepo.AcceptInvite(ctx, inv, member)
}

func (s *FriendService) DeclineInvite(ctx context.Context, uid, inviteID string) error {
	inv, err := s.FriendRepo.GetInvite(ctx, inviteID)
	if err != nil {
		return err
	}
	if inv.RecipientID != uid && inv.SenderID != uid {
		return ErrNotRecipient
	}
	return s.FriendRepo.DeleteInvite(ctx, inviteID)
}

func (s *FriendService) ListInvites(ctx context.Context, uid string) ([]models.ServerInvite, error) {
	return s.FriendRepo.ListInvites(ctx, uid)
}

func (s *FriendService) notify(ctx context.Context, uid, title, body string, data map[string]string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendToUser(ctx, uid, title, body, data); err != nil {
		log.Debug().Err(err).Str("uid", uid).Msg("push skipped")
	}
}
