package domain

import "time"

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionPaused    SubscriptionStatus = "paused"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionExpired   SubscriptionStatus = "expired"
)

func (s SubscriptionStatus) Valid() bool {
	switch s {
	case SubscriptionActive, SubscriptionPaused, SubscriptionCancelled, SubscriptionExpired:
		return true
	}
	return false
}

// subscriptionTransitions is the allowed next-state set per current state.
// cancelled and expired are terminal.
var subscriptionTransitions = map[SubscriptionStatus][]SubscriptionStatus{
	SubscriptionActive: {SubscriptionPaused, SubscriptionCancelled, SubscriptionExpired},
	SubscriptionPaused: {SubscriptionActive, SubscriptionCancelled, SubscriptionExpired},
}

// CanTransitionTo reports whether next is a legal status change from s.
func (s SubscriptionStatus) CanTransitionTo(next SubscriptionStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range subscriptionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Subscription struct {
	ID                   int64              `json:"id"`
	UserID               int64              `json:"userId"`
	AgentID              int64              `json:"agentId"`
	BillingModel         BillingModel       `json:"billingModel"`
	Status               SubscriptionStatus `json:"status"`
	StripeCustomerID     *string            `json:"stripeCustomerId,omitempty"`
	StripeSubscriptionID *string            `json:"stripeSubscriptionId,omitempty"`
	PricePerUnit         int64              `json:"pricePerUnit"` // cents
	CurrentUsage         int                `json:"currentUsage"`
	RenewalDate          *time.Time         `json:"renewalDate,omitempty"`
	CreatedAt            time.Time          `json:"createdAt"`
	UpdatedAt            time.Time          `json:"updatedAt"`
}

type InvoiceStatus string

const (
	InvoiceDraft    InvoiceStatus = "draft"
	InvoiceSent     InvoiceStatus = "sent"
	InvoicePaid     InvoiceStatus = "paid"
	InvoiceFailed   InvoiceStatus = "failed"
	InvoiceRefunded InvoiceStatus = "refunded"
)

type Invoice struct {
	ID              int64         `json:"id"`
	SubscriptionID  int64         `json:"subscriptionId"`
	UserID          int64         `json:"userId"`
	Amount          int64         `json:"amount"` // cents
	Status          InvoiceStatus `json:"status"`
	StripeInvoiceID *string       `json:"stripeInvoiceId,omitempty"`
	PDFURL          *string       `json:"pdfUrl,omitempty"`
	IssuedAt        time.Time     `json:"issuedAt"`
	DueAt           *time.Time    `json:"dueAt,omitempty"`
	PaidAt          *time.Time    `json:"paidAt,omitempty"`
}
