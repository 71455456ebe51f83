package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/repositories/mocks"
)

type fakeNotifier struct {
	sent []string
}

func (f *fakeNotifier) SendToUser(ctx context.Context, uid, title, body string, data map[string]string) error {
	f.sent = append(f.sent, uid)
	return nil
}

func TestStartThreadIncludesCreatorAndSorts(t *testing.T) {
	dmRepo := new(mocks.DMRepository)
	svc := NewDMService(dmRepo, nil)

	dmRepo.On("FindOrCreateThread", mock.Anything, []string{"alice", "bob", "carol"}).
		Return(&models.DMThread{ID: "t1", ParticipantIDs: []string{"alice", "bob", "carol"}}, nil)

	// creator appears twice in the input; the set still holds three
	thread, err := svc.StartThread(context.Background(), "bob", []string{"carol", "alice", "bob"})

	assert.NoError(t, err)
	assert.Equal(t, "t1", thread.ID)
	dmRepo.AssertExpectations(t)
}

func TestStartThreadRejectsSolo(t *testing.T) {
	svc := NewDMService(new(mocks.DMRepository), nil)

	_, err := svc.StartThread(context.Background(), "alone", nil)
	assert.ErrorIs(t, err, ErrParticipantCount)
}

func TestStartThreadRejectsOversizedGroup(t *testing.T) {
	svc := NewDMService(new(mocks.DMRepository), nil)

	ids := make([]string, models.DMMaxParticipants)
	for i := range ids {
		ids[i] = string(rune('a' + i))
	}
	_, err := svc.StartThread(context.Background(), "creator", ids)
	assert.ErrorIs(t, err, ErrParticipantCount)
}

func TestSendMessageNotifiesOtherParticipants(t *testing.T) {
	dmRepo := new(mocks.DMRepository)
	notifier := &fakeNotifier{}
	svc := NewDMService(dmRepo, notifier)

	dmRepo.On("GetThread", mock.Anything, "t1").
		Return(&models.DMThread{ID: "t1", ParticipantIDs: []string{"alice", "bob", "carol"}}, nil)
	dmRepo.On("SendMessage", mock.Anything, "t1", mock.MatchedBy(func(msg *models.Message) bool {
		return msg.EmojiOnly && msg.SenderID == "alice"
	})).Return("m1", nil)

	msg, err := svc.SendMessage(context.Background(), Sender{UID: "alice", Name: "Alice"}, "t1", "😀😀", nil)

	assert.NoError(t, err)
	assert.Equal(t, "m1", msg.ID)
	assert.ElementsMatch(t, []string{"bob", "carol"}, notifier.sent)
}

func TestSendMessageRejectsOutsider(t *testing.T) {
	dmRepo := new(mocks.DMRepository)
	svc := NewDMService(dmRepo, nil)

	dmRepo.On("GetThread", mock.Anything, "t1").
		Return(&models.DMThread{ID: "t1", ParticipantIDs: []string{"alice", "bob"}}, nil)

	_, err := svc.SendMessage(context.Background(), Sender{UID: "mallory"}, "t1", "hi", nil)
	assert.ErrorIs(t, err, ErrNotParticipant)
	dmRepo.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteMessageOnlyByAuthor(t *testing.T) {
	dmRepo := new(mocks.DMRepository)
	svc := NewDMService(dmRepo, nil)

	dmRepo.On("GetMessage", mock.Anything, "t1", "m1").
		Return(&models.Message{ID: "m1", SenderID: "alice"}, nil)

	err := svc.DeleteMessage(context.Background(), "bob", "t1", "m1")
	assert.ErrorIs(t, err, ErrNotPermitted)
	dmRepo.AssertNotCalled(t, "DeleteMessage", mock.Anything, mock.Anything, mock.Anything)
}

func TestCanAccessThread(t *testing.T) {
	dmRepo := new(mocks.DMRepository)
	svc := NewDMService(dmRepo, nil)

	dmRepo.On("GetThread", mock.Anything, "t1").
		Return(&models.DMThread{ID: "t1", ParticipantIDs: []string{"alice", "bob"}}, nil)

	assert.NoError(t, svc.CanAccessThread(context.Background(), "alice", "t1"))
	assert.ErrorIs(t, svc.CanAccessThread(context.Background(), "mallory", "t1"), ErrNotParticipant)
}
