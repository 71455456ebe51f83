package impl

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/livelist"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
)

type MessageRepositoryImpl struct {
	client *firestore.Client
}

func NewMessageRepository(client *firestore.Client) *MessageRepositoryImpl {
	return &MessageRepositoryImpl{client: client}
}

func (r *MessageRepositoryImpl) SendRoomMessage(ctx context.Context, serverID, roomID string, msg *models.Message) (string, error) {
	ref := roomMessagesRef(r.client, serverID, roomID).NewDoc()
	if _, err := ref.Create(ctx, msg); err != nil {
		return "", wrapErr("send room message", err)
	}
	msg.ID = ref.ID
	return ref.ID, nil
}

func (r *MessageRepositoryImpl) GetRoomMessage(ctx context.Context, serverID, roomID, messageID string) (*models.Message, error) {
	doc, err := roomMessagesRef(r.client, serverID, roomID).Doc(messageID).Get(ctx)
	if err != nil {
		return nil, wrapErr("get room message", err)
	}
	msg, err := decodeMessage(doc)
	if err != nil {
		return nil, wrapErr("get room message", err)
	}
	return &msg, nil
}

func (r *MessageRepositoryImpl) DeleteRoomMessage(ctx context.Context, serverID, roomID, messageID string) error {
	_, err := roomMessagesRef(r.client, serverID, roomID).Doc(messageID).Delete(ctx)
	return wrapErr("delete room message", err)
}

func (r *MessageRepositoryImpl) RoomMessages() livelist.Source[models.Message] {
	return &roomMessageSource{client: r.client}
}

type roomMessageSource struct {
	client *firestore.Client
}

func (s *roomMessageSource) query(scope string) (firestore.Query, error) {
	serverID, roomID, err := splitRoomScope(scope)
	if err != nil {
		return firestore.Query{}, err
	}
	return roomMessagesRef(s.client, serverID, roomID).
		OrderBy(orderField, firestore.Desc), nil
}

func (s *roomMessageSource) Subscribe(ctx context.Context, scope string, limit int) (livelist.Subscription[models.Message], error) {
	q, err := s.query(scope)
	if err != nil {
		return nil, err
	}
	return newSnapshotSub(ctx, q.Limit(limit), decodeMessage), nil
}

func (s *roomMessageSource) FetchBefore(ctx context.Context, scope string, before time.Time, limit int) ([]models.Message, error) {
	q, err := s.query(scope)
	if err != nil {
		return nil, err
	}
	docs := q.StartAfter(before).Limit(limit).Documents(ctx)
	rows, err := decodeAll(docs, decodeMessage)
	if err != nil {
		return nil, wrapErr("fetch older room messages", err)
	}
	return rows, nil
}

func decodeMessage(doc *firestore.DocumentSnapshot) (models.Message, error) {
	var msg models.Message
	if err := doc.DataTo(&msg); err != nil {
		return models.Message{}, err
	}
	msg.ID = doc.Ref.ID
	return msg, nil
}
