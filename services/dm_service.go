package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/detect"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/interfaces"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/livelist"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/repositories"
)

var (
	ErrNotParticipant   = errors.New("user is not a participant of this thread")
	ErrParticipantCount = fmt.Errorf("a thread needs %d to %d participants", models.DMMinParticipants, models.DMMaxParticipants)
)

type DMService struct {
	DMRepo   repositories.DMRepository
	Notifier interfaces.Notifier
}

func NewDMService(dmRepo repositories.DMRepository, notifier interfaces.Notifier) *DMService {
	return &DMService{DMRepo: dmRepo, Notifier: notifier}
}

// StartThread opens (or finds) the thread holding exactly the given
// participants. The creator is always included.
func (s *DMService) StartThread(ctx context.Context, creatorID string, participantIDs []string) (*models.DMThread, error) {
	set := map[string]bool{creatorID: true}
	for _, id := range participantIDs {
		if id = strings.TrimSpace(id); id != "" {
			set[id] = true
		}
	}
	if len(set) < models.DMMinParticipants || len(set) > models.DMMaxParticipants {
		return nil, ErrParticipantCount
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return s.DMRepo.FindOrCreateThread(ctx, ids)
}

// SendMessage posts into a thread after checking the sender belongs to
// it; the repository bundles the preview update atomically. Offline
// participants get a push notification, best effort.
func (s *DMService) SendMessage(ctx context.Context, sender Sender, threadID, text string, attachment *models.Attachment) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" && attachment == nil {
		return nil, ErrEmptyMessage
	}
	thread, err := s.DMRepo.GetThread(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if !isParticipant(thread, sender.UID) {
		return nil, ErrNotParticipant
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
	id, err := s.DMRepo.SendMessage(ctx, threadID, msg)
	if err != nil {
		return nil, err
	}
	msg.ID = id

	if s.Notifier != nil {
		body := text
		if body == "" && attachment != nil {
			body = attachment.Name
		}
		for _, uid := range thread.ParticipantIDs {
			if uid == sender.UID {
				continue
			}
			if err := s.Notifier.SendToUser(ctx, uid, sender.Name, body, map[string]string{"threadId": threadID}); err != nil {
				log.Debug().Err(err).Str("uid", uid).Msg("dm push skipped")
			}
		}
	}
	return msg, nil
}

// DeleteMessage only allows authors to delete their own DM messages;
// threads have no moderators.
func (s *DMService) DeleteMessage(ctx context.Context, uid, threadID, messageID string) error {
	msg, err := s.DMRepo.GetMessage(ctx, threadID, messageID)
	if err != nil {
		return err
	}
	if msg.SenderID != uid {
		return ErrNotPermitted
	}
	return s.DMRepo.DeleteMessage(ctx, threadID, messageID)
}

// CanAccessThread reports whether uid may read the given thread's stream.
func (s *DMService) CanAccessThread(ctx context.Context, uid, threadID string) error {
	thread, err := s.DMRepo.GetThread(ctx, threadID)
	if err != nil {
		return err
	}
	if !isParticipant(thread, uid) {
		return ErrNotParticipant
	}
	return nil
}

func isParticipant(thread *models.DMThread, uid string) bool {
	for _, id := range thread.ParticipantIDs {
		if id == uid {
			return true
		}
	}
	return false
}

func (s *DMService) ThreadMessages() livelist.Source[models.Message] {
	return s.DMRepo.ThreadMessages()
}

func (s *DMService) Threads() livelist.Source[models.DMThread] {
	return s.DMRepo.Threads()
}
