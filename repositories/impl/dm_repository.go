package impl

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/livelist"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
)

// previewRunes bounds the last-message preview stored on the thread.
const previewRunes = 80

type DMRepositoryImpl struct {
	client *firestore.Client
}

func NewDMRepository(client *firestore.Client) *DMRepositoryImpl {
	return &DMRepositoryImpl{client: client}
}

func (r *DMRepositoryImpl) FindOrCreateThread(ctx context.Context, participantIDs []string) (*models.DMThread, error) {
	ids := append([]string(nil), participantIDs...)
	sort.Strings(ids)

	docs := r.client.Collection(colDMs).
		Where("participantIds", "==", ids).
		Limit(1).
		Documents(ctx)
	found, err := decodeAll(docs, decodeThread)
	if err != nil {
		return nil, wrapErr("find dm thread", err)
	}
	if len(found) > 0 {
		return &found[0], nil
	}

	thread := &models.DMThread{ParticipantIDs: ids}
	ref := r.client.Collection(colDMs).NewDoc()
	if _, err := ref.Create(ctx, thread); err != nil {
		return nil, wrapErr("create dm thread", err)
	}
	thread.ID = ref.ID
	return thread, nil
}

func (r *DMRepositoryImpl) GetThread(ctx context.Context, threadID string) (*models.DMThread, error) {
	doc, err := r.client.Collection(colDMs).Doc(threadID).Get(ctx)
	if err != nil {
		return nil, wrapErr("get dm thread", err)
	}
	thread, err := decodeThread(doc)
	if err != nil {
		return nil, wrapErr("get dm thread", err)
	}
	return &thread, nil
}

// SendMessage writes the message and the thread preview atomically so the
// sidebar can never show a preview for a message that was not stored.
func (r *DMRepositoryImpl) SendMessage(ctx context.Context, threadID string, msg *models.Message) (string, error) {
	threadRef := r.client.Collection(colDMs).Doc(threadID)
	msgRef := threadRef.Collection(colMessages).NewDoc()

	preview := msg.Text
	if preview == "" && msg.Attachment != nil {
		preview = msg.Attachment.Name
	}
	if runes := []rune(preview); len(runes) > previewRunes {
		preview = string(runes[:previewRunes])
	}

	err := r.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		if err := tx.Create(msgRef, msg); err != nil {
			return err
		}
		return tx.Update(threadRef, []firestore.Update{
			{Path: "lastMessage", Value: preview},
			{Path: "lastSenderId", Value: msg.SenderID},
			{Path: "lastMessageAt", Value: firestore.ServerTimestamp},
		})
	})
	if err != nil {
		return "", wrapErr("send dm message", err)
	}
	msg.ID = msgRef.ID
	return msgRef.ID, nil
}

func (r *DMRepositoryImpl) GetMessage(ctx context.Context, threadID, messageID string) (*models.Message, error) {
	doc, err := r.client.Collection(colDMs).Doc(threadID).Collection(colMessages).Doc(messageID).Get(ctx)
	if err != nil {
		return nil, wrapErr("get dm message", err)
	}
	msg, err := decodeMessage(doc)
	if err != nil {
		return nil, wrapErr("get dm message", err)
	}
	return &msg, nil
}

func (r *DMRepositoryImpl) DeleteMessage(ctx context.Context, threadID, messageID string) error {
	_, err := r.client.Collection(colDMs).Doc(threadID).Collection(colMessages).Doc(messageID).Delete(ctx)
	return wrapErr("delete dm message", err)
}

func (r *DMRepositoryImpl) ThreadMessages() livelist.Source[models.Message] {
	return &dmMessageSource{client: r.client}
}

func (r *DMRepositoryImpl) Threads() livelist.Source[models.DMThread] {
	return &threadSource{client: r.client}
}

type dmMessageSource struct {
	client *firestore.Client
}

func (s *dmMessageSource) query(threadID string) firestore.Query {
	return s.client.Collection(colDMs).Doc(threadID).Collection(colMessages).
		OrderBy(orderField, firestore.Desc)
}

func (s *dmMessageSource) Subscribe(ctx context.Context, scope string, limit int) (livelist.Subscription[models.Message], error) {
	return newSnapshotSub(ctx, s.query(scope).Limit(limit), decodeMessage), nil
}

func (s *dmMessageSource) FetchBefore(ctx context.Context, scope string, before time.Time, limit int) ([]models.Message, error) {
	docs := s.query(scope).StartAfter(before).Limit(limit).Documents(ctx)
	rows, err := decodeAll(docs, decodeMessage)
	if err != nil {
		return nil, wrapErr("fetch older dm messages", err)
	}
	return rows, nil
}

// threadSource feeds the DM sidebar, ordered by latest activity.
type threadSource struct {
	client *firestore.Client
}

func (s *threadSource) query(uid string) firestore.Query {
	return s.client.Collection(colDMs).
		Where("participantIds", "array-contains", uid).
		OrderBy("lastMessageAt", firestore.Desc)
}

func (s *threadSource) Subscribe(ctx context.Context, scope string, limit int) (livelist.Subscription[models.DMThread], error) {
	return newSnapshotSub(ctx, s.query(scope).Limit(limit), decodeThread), nil
}

func (s *threadSource) FetchBefore(ctx context.Context, scope string, before time.Time, limit int) ([]models.DMThread, error) {
	docs := s.query(scope).StartAfter(before).Limit(limit).Documents(ctx)
	rows, err := decodeAll(docs, decodeThread)
	if err != nil {
		return nil, wrapErr("fetch older dm threads", err)
	}
	return rows, nil
}

func decodeThread(doc *firestore.DocumentSnapshot) (models.DMThread, error) {
	var thread models.DMThread
	if err := doc.DataTo(&thread); err != nil {
		return models.DMThread{}, err
	}
	thread.ID = doc.Ref.ID
	return thread, nil
}
