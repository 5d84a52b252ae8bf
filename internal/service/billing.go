package service

import (
	"context"
	"errors"

	"github.com/agentmart/agentmart/internal/domain"
	"github.com/agentmart/agentmart/internal/store"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

type BillingService struct {
	subscriptions domain.SubscriptionStore
}

func NewBillingService(subscriptions domain.SubscriptionStore) *BillingService {
	return &BillingService{subscriptions: subscriptions}
}

type CreateSubscriptionInput struct {
	AgentID      int64               `json:"agentId"`
	BillingModel domain.BillingModel `json:"billingModel"`
	PricePerUnit int64               `json:"pricePerUnit"`
}

// CreateSubscription subscribes the caller to an agent. Subscriptions
// always start active.
func (s *BillingService) CreateSubscription(ctx context.Context, caller *domain.User, in CreateSubscriptionInput) (*domain.Subscription, error) {
	sub := &domain.Subscription{
		UserID:       caller.ID,
		AgentID:      in.AgentID,
		BillingModel: in.BillingModel,
		Status:       domain.SubscriptionActive,
		PricePerUnit: in.PricePerUnit,
	}
	if err := s.subscriptions.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// ListSubscriptions returns the caller's subscriptions.
func (s *BillingService) ListSubscriptions(ctx context.Context, caller *domain.User) ([]domain.Subscription, error) {
	subs, err := s.subscriptions.ListByUser(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if subs == nil {
		subs = []domain.Subscription{}
	}
	return subs, nil
}

// CancelSubscription cancels a subscription the caller owns. Cancelling a
// cancelled or expired subscription is rejected by the transition table.
func (s *BillingService) CancelSubscription(ctx context.Context, caller *domain.User, id int64) error {
	sub, err := s.subscriptions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrForbidden
		}
		return err
	}
	if sub.UserID != caller.ID {
		return ErrForbidden
	}
	if sub.Status == domain.SubscriptionCancelled {
		return ErrInvalidTransition
	}
	if !sub.Status.CanTransitionTo(domain.SubscriptionCancelled) {
		return ErrInvalidTransition
	}
	return s.subscriptions.UpdateStatus(ctx, id, domain.SubscriptionCancelled)
}

// ListInvoices returns the caller's invoices, newest first.
func (s *BillingService) ListInvoices(ctx context.Context, caller *domain.User) ([]domain.Invoice, error) {
	invoices, err := s.subscriptions.ListInvoicesByUser(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if invoices == nil {
		invoices = []domain.Invoice{}
	}
	return invoices, nil
}
