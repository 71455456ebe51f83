package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/repositories"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/repositories/mocks"
)

type fakeAI struct {
	reply string
	err   error
	calls int
}

func (f *fakeAI) ChatCall(ctx context.Context, token string, req ChatCallRequest) (*ChatCallResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &ChatCallResponse{Response: f.reply}, nil
}

func TestSendRoomMessageRunsDetection(t *testing.T) {
	messageRepo := new(mocks.MessageRepository)
	serverRepo := new(mocks.ServerRepository)
	userRepo := new(mocks.UserRepository)
	svc := NewChatService(messageRepo, serverRepo, userRepo, &fakeAI{})

	serverRepo.On("Membership", mock.Anything, "srv1", "u1").
		Return(&models.Membership{UserID: "u1", Role: models.RoleMember}, nil)
	serverRepo.On("GetRoom", mock.Anything, "srv1", "room1").
		Return(&models.Room{ID: "room1", Type: models.RoomTypeChat}, nil)
	messageRepo.On("SendRoomMessage", mock.Anything, "srv1", "room1", mock.MatchedBy(func(msg *models.Message) bool {
		return msg.Embed != nil &&
			msg.Embed.Provider == models.EmbedYouTube &&
			msg.Embed.VideoID == "dQw4w9WgXcQ" &&
			!msg.EmojiOnly
	})).Return("m1", nil)

	sender := Sender{UID: "u1", Name: "Ann", Email: "ann@example.com"}
	msg, err := svc.SendRoomMessage(context.Background(), sender, "srv1", "room1",
		"watch this https://www.youtube.com/watch?v=dQw4w9WgXcQ", nil)

	assert.NoError(t, err)
	assert.Equal(t, "m1", msg.ID)
	messageRepo.AssertExpectations(t)
}

func TestSendRoomMessageRejectsNonMember(t *testing.T) {
	messageRepo := new(mocks.MessageRepository)
	serverRepo := new(mocks.ServerRepository)
	userRepo := new(mocks.UserRepository)
	svc := NewChatService(messageRepo, serverRepo, userRepo, &fakeAI{})

	serverRepo.On("Membership", mock.Anything, "srv1", "stranger").
		Return(nil, repositories.ErrNotFound)

	_, err := svc.SendRoomMessage(context.Background(), Sender{UID: "stranger"}, "srv1", "room1", "hi", nil)
	assert.ErrorIs(t, err, ErrNotMember)
	messageRepo.AssertNotCalled(t, "SendRoomMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSendRoomMessageRejectsEmpty(t *testing.T) {
	svc := NewChatService(new(mocks.MessageRepository), new(mocks.ServerRepository), new(mocks.UserRepository), &fakeAI{})

	_, err := svc.SendRoomMessage(context.Background(), Sender{UID: "u1"}, "srv1", "room1", "   ", nil)
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestSendRoomMessageGenerativeRoomPostsAIReply(t *testing.T) {
	messageRepo := new(mocks.MessageRepository)
	serverRepo := new(mocks.ServerRepository)
	userRepo := new(mocks.UserRepository)
	ai := &fakeAI{reply: "here is a story"}
	svc := NewChatService(messageRepo, serverRepo, userRepo, ai)

	serverRepo.On("Membership", mock.Anything, "srv1", "u1").
		Return(&models.Membership{UserID: "u1", Role: models.RoleMember}, nil)
	serverRepo.On("GetRoom", mock.Anything, "srv1", "gen1").
		Return(&models.Room{ID: "gen1", Name: "storybot", Type: models.RoomTypeGenerative}, nil)
	userRepo.On("Get", mock.Anything, "u1").
		Return(&models.User{UID: "u1", ChatCredits: 5}, nil)
	userRepo.On("DeductCredits", mock.Anything, "u1", models.CreditTypeChat, int64(1)).
		Return(int64(4), nil)

	messageRepo.On("SendRoomMessage", mock.Anything, "srv1", "gen1", mock.MatchedBy(func(msg *models.Message) bool {
		return msg.SenderID == "u1"
	})).Return("m1", nil).Once()
	messageRepo.On("SendRoomMessage", mock.Anything, "srv1", "gen1", mock.MatchedBy(func(msg *models.Message) bool {
		return msg.SenderID == "ai:gen1" && msg.Text == "here is a story"
	})).Return("m2", nil).Once()

	_, err := svc.SendRoomMessage(context.Background(), Sender{UID: "u1", Name: "Ann"}, "srv1", "gen1", "tell me a story", nil)

	assert.NoError(t, err)
	assert.Equal(t, 1, ai.calls)
	messageRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestSendRoomMessageGenerativeRoomOutOfCredits(t *testing.T) {
	messageRepo := new(mocks.MessageRepository)
	serverRepo := new(mocks.ServerRepository)
	userRepo := new(mocks.UserRepository)
	ai := &fakeAI{reply: "unused"}
	svc := NewChatService(messageRepo, serverRepo, userRepo, ai)

	serverRepo.On("Membership", mock.Anything, "srv1", "u1").
		Return(&models.Membership{UserID: "u1", Role: models.RoleMember}, nil)
	serverRepo.On("GetRoom", mock.Anything, "srv1", "gen1").
		Return(&models.Room{ID: "gen1", Type: models.RoomTypeGenerative}, nil)
	userRepo.On("Get", mock.Anything, "u1").
		Return(&models.User{UID: "u1", ChatCredits: 0}, nil)
	messageRepo.On("SendRoomMessage", mock.Anything, "srv1", "gen1", mock.Anything).
		Return("m1", nil).Once()

	// the user's own message still lands; only the AI reply is skipped
	msg, err := svc.SendRoomMessage(context.Background(), Sender{UID: "u1"}, "srv1", "gen1", "hello", nil)

	assert.NoError(t, err)
	assert.Equal(t, "m1", msg.ID)
	assert.Equal(t, 0, ai.calls)
	userRepo.AssertNotCalled(t, "DeductCredits", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteRoomMessageByAuthor(t *testing.T) {
	messageRepo := new(mocks.MessageRepository)
	serverRepo := new(mocks.ServerRepository)
	svc := NewChatService(messageRepo, serverRepo, new(mocks.UserRepository), &fakeAI{})

	messageRepo.On("GetRoomMessage", mock.Anything, "srv1", "room1", "m1").
		Return(&models.Message{ID: "m1", SenderID: "u1"}, nil)
	messageRepo.On("DeleteRoomMessage", mock.Anything, "srv1", "room1", "m1").Return(nil)

	err := svc.DeleteRoomMessage(context.Background(), "u1", "srv1", "room1", "m1")
	assert.NoError(t, err)
	serverRepo.AssertNotCalled(t, "Membership", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteRoomMessageNeedsModeratorForOthers(t *testing.T) {
	messageRepo := new(mocks.MessageRepository)
	serverRepo := new(mocks.ServerRepository)
	svc := NewChatService(messageRepo, serverRepo, new(mocks.UserRepository), &fakeAI{})

	messageRepo.On("GetRoomMessage", mock.Anything, "srv1", "room1", "m1").
		Return(&models.Message{ID: "m1", SenderID: "someone-else"}, nil)
	serverRepo.On("Membership", mock.Anything, "srv1", "u1").
		Return(&models.Membership{UserID: "u1", Role: models.RoleMember}, nil)

	err := svc.DeleteRoomMessage(context.Background(), "u1", "srv1", "room1", "m1")
	assert.ErrorIs(t, err, ErrNotPermitted)
	messageRepo.AssertNotCalled(t, "DeleteRoomMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteRoomMessageByAdmin(t *testing.T) {
	messageRepo := new(mocks.MessageRepository)
	serverRepo := new(mocks.ServerRepository)
	svc := NewChatService(messageRepo, serverRepo, new(mocks.UserRepository), &fakeAI{})

	messageRepo.On("GetRoomMessage", mock.Anything, "srv1", "room1", "m1").
		Return(&models.Message{ID: "m1", SenderID: "someone-else"}, nil)
	serverRepo.On("Membership", mock.Anything, "srv1", "admin1").
		Return(&models.Membership{UserID: "admin1", Role: models.RoleAdmin}, nil)
	messageRepo.On("DeleteRoomMessage", mock.Anything, "srv1", "room1", "m1").Return(nil)

	err := svc.DeleteRoomMessage(context.Background(), "admin1", "srv1", "room1", "m1")
	assert.NoError(t, err)
	messageRepo.AssertExpectations(t)
}

func TestSendRoomMessageAIFailureDoesNotFailSend(t *testing.T) {
	messageRepo := new(mocks.MessageRepository)
	serverRepo := new(mocks.ServerRepository)
	userRepo := new(mocks.UserRepository)
	svc := NewChatService(messageRepo, serverRepo, userRepo, &fakeAI{err: errors.New("sidecar down")})

	serverRepo.On("Membership", mock.Anything, "srv1", "u1").
		Return(&models.Membership{UserID: "u1", Role: models.RoleMember}, nil)
	serverRepo.On("GetRoom", mock.Anything, "srv1", "gen1").
		Return(&models.Room{ID: "gen1", Type: models.RoomTypeGenerative}, nil)
	userRepo.On("Get", mock.Anything, "u1").
		Return(&models.User{UID: "u1", ChatCredits: 5}, nil)
	messageRepo.On("SendRoomMessage", mock.Anything, "srv1", "gen1", mock.Anything).
		Return("m1", nil).Once()

	msg, err := svc.SendRoomMessage(context.Background(), Sender{UID: "u1"}, "srv1", "gen1", "hi", nil)

	assert.NoError(t, err)
	assert.Equal(t, "m1", msg.ID)
	userRepo.AssertNotCalled(t, "DeductCredits", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
