package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/middlewares"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/services"
)

// MockChatService implements ChatServiceInterface for handler tests.
type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) SendRoomMessage(ctx context.Context, sender services.Sender, serverID, roomID, text string, attachment *models.Attachment) (*models.Message, error) {
	args := m.Called(ctx, sender, serverID, roomID, text, attachment)
	var msg *models.Message
	if args.Get(0) != nil {
		msg = args.Get(0).(*models.Message)
	}
	return msg, args.Error(1)
}

func (m *MockChatService) DeleteRoomMessage(ctx context.Context, uid, serverID, roomID, messageID string) error {
	return m.Called(ctx, uid, serverID, roomID, messageID).Error(0)
}

// testRouter wires the chat routes behind a stub auth layer that
// injects a fixed identity.
func testRouter(uid, name string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middlewares.CtxUID, uid)
		c.Set(middlewares.CtxName, name)
		c.Next()
	})
	r.POST("/servers/:server_id/rooms/:room_id/messages", SendRoomMessage)
	r.DELETE("/servers/:server_id/rooms/:room_id/messages/:message_id", DeleteRoomMessage)
	return r
}

func TestSendRoomMessageHandler(t *testing.T) {
	mockSvc := new(MockChatService)
	SetChatService(mockSvc)
	r := testRouter("u1", "Ann")

	mockSvc.On("SendRoomMessage", mock.Anything,
		mock.MatchedBy(func(s services.Sender) bool { return s.UID == "u1" && s.Name == "Ann" }),
		"srv1", "room1", "hello", (*models.Attachment)(nil)).
		Return(&models.Message{ID: "m1", Text: "hello", SenderID: "u1"}, nil)

	body, _ := json.Marshal(gin.H{"text": "hello"})
	req := httptest.NewRequest(http.MethodPost, "/servers/srv1/rooms/room1/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Data models.Message `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "m1", resp.Data.ID)
	mockSvc.AssertExpectations(t)
}

func TestSendRoomMessageHandlerForbidden(t *testing.T) {
	mockSvc := new(MockChatService)
	SetChatService(mockSvc)
	r := testRouter("stranger", "Sam")

	mockSvc.On("SendRoomMessage", mock.Anything, mock.Anything, "srv1", "room1", "hi", (*models.Attachment)(nil)).
		Return(nil, services.ErrNotMember)

	body, _ := json.Marshal(gin.H{"text": "hi"})
	req := httptest.NewRequest(http.MethodPost, "/servers/srv1/rooms/room1/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteRoomMessageHandler(t *testing.T) {
	mockSvc := new(MockChatService)
	SetChatService(mockSvc)
	r := testRouter("u1", "Ann")

	mockSvc.On("DeleteRoomMessage", mock.Anything, "u1", "srv1", "room1", "m1").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/servers/srv1/rooms/room1/messages/m1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}
