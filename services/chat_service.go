package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/detect"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/livelist"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/repositories"
)

var (
	ErrNotMember    = errors.New("user is not a member of this server")
	ErrNotPermitted = errors.New("user is not permitted to perform this action")
	ErrEmptyMessage = errors.New("message needs text or an attachment")
)

// aiCaller is the slice of the AI sidecar chat rooms use.
type aiCaller interface {
	ChatCall(ctx context.Context, token string, req ChatCallRequest) (*ChatCallResponse, error)
}

type ChatService struct {
	MessageRepo repositories.MessageRepository
	ServerRepo  repositories.ServerRepository
	UserRepo    repositories.UserRepository
	AI          aiCaller
}

func NewChatService(messageRepo repositories.MessageRepository, serverRepo repositories.ServerRepository, userRepo repositories.UserRepository, ai aiCaller) *ChatService {
	return &ChatService{MessageRepo: messageRepo, ServerRepo: serverRepo, UserRepo: userRepo, AI: ai}
}

// Sender identifies the authenticated user composing a message.
type Sender struct {
	UID   string
	Name  string
	Email string
	Token string
}

// SendRoomMessage writes a message into a room, running link and emoji
// detection over the text first. In generative and agent rooms the AI
// reply is requested afterwards and posted as a second message.
func (s *ChatService) SendRoomMessage(ctx context.Context, sender Sender, serverID, roomID, text string, attachment *models.Attachment) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" && attachment == nil {
		return nil, ErrEmptyMessage
	}
	if _, err := s.ServerRepo.Membership(ctx, serverID, sender.UID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotMember
		}
		return nil, err
	}

	msg := &models.Message{
		Text:        text,
		SenderID:    sender.UID,
		SenderName:  sender.Name,
		SenderEmail: sender.Email,
		Attachment:  attachment,
		Embed:       detect.VideoEmbed(text),
		EmojiOnly:   detect.EmojiOnly(text),
	}
	id, err := s.MessageRepo.SendRoomMessage(ctx, serverID, roomID, msg)
	if err != nil {
		return nil, err
	}
	msg.ID = id

	room, err := s.ServerRepo.GetRoom(ctx, serverID, roomID)
	if err == nil && (room.Type == models.RoomTypeGenerative || room.Type == models.RoomTypeAgent) {
		if err := s.replyWithAI(ctx, sender, serverID, room, text); err != nil {
			log.Error().Err(err).Str("room", roomID).Msg("ai reply failed")
		}
	}
	return msg, nil
}

// replyWithAI checks the sender's chat credit balance, asks the AI
// service for a reply, posts it as the room's bot, and deducts one
// credit. An exhausted balance surfaces as ErrInsufficientCredits.
func (s *ChatService) replyWithAI(ctx context.Context, sender Sender, serverID string, room *models.Room, text string) error {
	user, err := s.UserRepo.Get(ctx, sender.UID)
	if err != nil {
		return err
	}
	if user.ChatCredits <= 0 {
		return repositories.ErrInsufficientCredits
	}

	req := ChatCallRequest{UserID: sender.UID, Message: text}
	if room.Type == models.RoomTypeAgent {
		req.AgentID = room.AgentID
	}
	res, err := s.AI.ChatCall(ctx, sender.Token, req)
	if err != nil {
		return err
	}

	reply := &models.Message{
		Text:       res.Response,
		SenderID:   "ai:" + room.ID,
		SenderName: room.Name,
		EmojiOnly:  detect.EmojiOnly(res.Response),
	}
	if _, err := s.MessageRepo.SendRoomMessage(ctx, serverID, room.ID, reply); err != nil {
		return err
	}
	_, err = s.UserRepo.DeductCredits(ctx, sender.UID, models.CreditTypeChat, 1)
	return err
}

// DeleteRoomMessage lets authors delete their own messages and owners
// or admins delete anyone's.
func (s *ChatService) DeleteRoomMessage(ctx context.Context, uid, serverID, roomID, messageID string) error {
	msg, err := s.MessageRepo.GetRoomMessage(ctx, serverID, roomID, messageID)
	if err != nil {
		return err
	}
	if msg.SenderID != uid {
		member, err := s.ServerRepo.Membership(ctx, serverID, uid)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrNotMember
			}
			return err
		}
		if !member.CanModerate() {
			return ErrNotPermitted
		}
	}
	return s.MessageRepo.DeleteRoomMessage(ctx, serverID, roomID, messageID)
}

// CanAccessRoom reports whether uid may read the given room's stream.
func (s *ChatService) CanAccessRoom(ctx context.Context, uid, serverID, roomID string) error {
	if _, err := s.ServerRepo.Membership(ctx, serverID, uid); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotMember
		}
		return err
	}
	return nil
}

func (s *ChatService) RoomMessages() livelist.Source[models.Message] {
	return s.MessageRepo.RoomMessages()
}
