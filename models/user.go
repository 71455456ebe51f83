package models

import "time"

// Subscription tiers and their monthly credit allowances.
const (
	TierFree    = "free"
	TierPremium = "premium"
	TierPro     = "pro"
)

// Credit types accepted by the deduction path.
const (
	CreditTypeChat  = "chat"
	CreditTypeGenAI = "genai"
)

// User is the profile document keyed by the Firebase uid. Tag
// subscriptions and credit balances live directly on the record.
type User struct {
	UID              string    `json:"uid" firestore:"-"`
	DisplayName      string    `json:"display_name" firestore:"displayName"`
	Email            string    `json:"email" firestore:"email"`
	DeviceToken      string    `json:"device_token,omitempty" firestore:"deviceToken,omitempty"`
	SubscribedTags   []string  `json:"subscribed_tags" firestore:"subscribedTags"`
	FriendIDs        []string  `json:"friend_ids" firestore:"friendIds"`
	ChatCredits      int64     `json:"chat_credits" firestore:"chatCredits"`
	GenAICredits     int64     `json:"gen_ai_credits" firestore:"genAICredits"`
	SubscriptionTier string    `json:"subscription_tier" firestore:"subscriptionTier"`
	LastCreditReset  time.Time `json:"last_credit_reset" firestore:"lastCreditReset"`
	TotalChatUsed    int64     `json:"total_chat_used" firestore:"totalChatCreditsUsed"`
	TotalGenAIUsed   int64     `json:"total_gen_ai_used" firestore:"totalGenAICreditsUsed"`
	CreatedAt        time.Time `json:"created_at" firestore:"createdAt,serverTimestamp"`
}

// MonthlyAllowance returns the per-tier credit grant applied on reset.
func MonthlyAllowance(tier string) (chat, genAI int64) {
	switch tier {
	case TierPremium:
		return 100, 50
	case TierPro:
		return 500, 200
	default:
		return 25, 25
	}
}
