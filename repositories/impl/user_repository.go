package impl

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/repositories"
)

// Initial credit grant for a new profile.
const (
	initialChatCredits  = 25
	initialGenAICredits = 25
)

// creditResetInterval is how long a tier allowance lasts.
const creditResetInterval = 30 * 24 * time.Hour

type UserRepositoryImpl struct {
	client *firestore.Client
}

func NewUserRepository(client *firestore.Client) *UserRepositoryImpl {
	return &UserRepositoryImpl{client: client}
}

func (r *UserRepositoryImpl) Get(ctx context.Context, uid string) (*models.User, error) {
	doc, err := r.client.Collection(colUsers).Doc(uid).Get(ctx)
	if err != nil {
		return nil, wrapErr("get user", err)
	}
	user, err := decodeUser(doc)
	if err != nil {
		return nil, wrapErr("get user", err)
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Ensure(ctx context.Context, uid, displayName, email string) (*models.User, error) {
	ref := r.client.Collection(colUsers).Doc(uid)

	user := &models.User{
		DisplayName:      displayName,
		Email:            email,
		SubscribedTags:   []string{},
		FriendIDs:        []string{},
		ChatCredits:      initialChatCredits,
		GenAICredits:     initialGenAICredits,
		SubscriptionTier: models.TierFree,
		LastCreditReset:  time.Now().UTC(),
	}

	_, err := ref.Create(ctx, user)
	if err == nil {
		user.UID = uid
		return user, nil
	}
	if status.Code(err) != codes.AlreadyExists {
		return nil, wrapErr("ensure user", err)
	}
	return r.Get(ctx, uid)
}

func (r *UserRepositoryImpl) UpdateDeviceToken(ctx context.Context, uid, token string) error {
	_, err := r.client.Collection(colUsers).Doc(uid).Update(ctx, []firestore.Update{
		{Path: "deviceToken", Value: token},
	})
	return wrapErr("update device token", err)
}

func (r *UserRepositoryImpl) SubscribeTag(ctx context.Context, uid, tag string) error {
	_, err := r.client.Collection(colUsers).Doc(uid).Update(ctx, []firestore.Update{
		{Path: "subscribedTags", Value: firestore.ArrayUnion(tag)},
	})
	return wrapErr("subscribe tag", err)
}

func (r *UserRepositoryImpl) UnsubscribeTag(ctx context.Context, uid, tag string) error {
	_, err := r.client.Collection(colUsers).Doc(uid).Update(ctx, []firestore.Update{
		{Path: "subscribedTags", Value: firestore.ArrayRemove(tag)},
	})
	return wrapErr("unsubscribe tag", err)
}

// DeductCredits reads, checks and decrements the balance inside one
// transaction so concurrent calls can not overspend.
func (r *UserRepositoryImpl) DeductCredits(ctx context.Context, uid, creditType string, amount int64) (int64, error) {
	ref := r.client.Collection(colUsers).Doc(uid)

	balanceField, usedField, lastField, err := creditFields(creditType)
	if err != nil {
		return 0, err
	}

	var remaining int64
	err = r.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}
		user, err := decodeUser(doc)
		if err != nil {
			return err
		}
		balance := user.ChatCredits
		if creditType == models.CreditTypeGenAI {
			balance = user.GenAICredits
		}
		if balance < amount {
			return repositories.ErrInsufficientCredits
		}
		remaining = balance - amount
		return tx.Update(ref, []firestore.Update{
			{Path: balanceField, Value: remaining},
			{Path: usedField, Value: firestore.Increment(amount)},
			{Path: lastField, Value: firestore.ServerTimestamp},
		})
	})
	if err != nil {
		return 0, wrapErr("deduct credits", err)
	}
	return remaining, nil
}

func (r *UserRepositoryImpl) AddCredits(ctx context.Context, uid, creditType string, amount int64) error {
	balanceField, _, _, err := creditFields(creditType)
	if err != nil {
		return err
	}
	_, err = r.client.Collection(colUsers).Doc(uid).Update(ctx, []firestore.Update{
		{Path: balanceField, Value: firestore.Increment(amount)},
	})
	return wrapErr("add credits", err)
}

func (r *UserRepositoryImpl) ResetMonthlyCredits(ctx context.Context, uid string) (bool, error) {
	ref := r.client.Collection(colUsers).Doc(uid)

	reset := false
	err := r.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}
		user, err := decodeUser(doc)
		if err != nil {
			return err
		}
		if time.Since(user.LastCreditReset) < creditResetInterval {
			return nil
		}
		chat, genAI := models.MonthlyAllowance(user.SubscriptionTier)
		reset = true
		return tx.Update(ref, []firestore.Update{
			{Path: "chatCredits", Value: chat},
			{Path: "genAICredits", Value: genAI},
			{Path: "lastCreditReset", Value: firestore.ServerTimestamp},
		})
	})
	if err != nil {
		return false, wrapErr("reset monthly credits", err)
	}
	return reset, nil
}

func creditFields(creditType string) (balance, used, last string, err error) {
	switch creditType {
	case models.CreditTypeChat:
		return "chatCredits", "totalChatCreditsUsed", "lastChatCreditUsed", nil
	case models.CreditTypeGenAI:
		return "genAICredits", "totalGenAICreditsUsed", "lastGenaiCreditUsed", nil
	default:
		return "", "", "", fmt.Errorf("unknown credit type %q", creditType)
	}
}

func decodeUser(doc *firestore.DocumentSnapshot) (models.User, error) {
	var user models.User
	if err := doc.DataTo(&user); err != nil {
		return models.User{}, err
	}
	user.UID = doc.Ref.ID
	return user, nil
}
