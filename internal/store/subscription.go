package store

import (
	"context"
	"errors"

	"github.com/agentmart/agentmart/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SubscriptionStore struct {
	db *pgxpool.Pool
}

func NewSubscriptionStore(db *pgxpool.Pool) *SubscriptionStore {
	return &SubscriptionStore{db: db}
}

const subscriptionColumns = `id, user_id, agent_id, billing_model, status, stripe_customer_id,
	stripe_subscription_id, price_per_unit, current_usage, renewal_date, created_at, updated_at`

func scanSubscription(row pgx.Row, sub *domain.Subscription) error {
	return row.Scan(&sub.ID, &sub.UserID, &sub.AgentID, &sub.BillingModel, &sub.Status,
		&sub.StripeCustomerID, &sub.StripeSubscriptionID, &sub.PricePerUnit,
		&sub.CurrentUsage, &sub.RenewalDate, &sub.CreatedAt, &sub.UpdatedAt)
}

func (s *SubscriptionStore) Create(ctx context.Context, sub *domain.Subscription) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO subscriptions (user_id, agent_id, billing_model, status, price_per_unit)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, current_usage, created_at, updated_at`,
		sub.UserID, sub.AgentID, sub.BillingModel, sub.Status, sub.PricePerUnit,
	).Scan(&sub.ID, &sub.CurrentUsage, &sub.CreatedAt, &sub.UpdatedAt)
}

func (s *SubscriptionStore) GetByID(ctx context.Context, id int64) (*domain.Subscription, error) {
	sub := &domain.Subscription{}
	err := scanSubscription(s.db.QueryRow(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = $1`, id), sub)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sub, nil
}

func (s *SubscriptionStore) ListByUser(ctx context.Context, userID int64) ([]domain.Subscription, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []domain.Subscription
	for rows.Next() {
		var sub domain.Subscription
		if err := scanSubscription(rows, &sub); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (s *SubscriptionStore) UpdateStatus(ctx context.Context, id int64, status domain.SubscriptionStatus) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE subscriptions SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SubscriptionStore) ListInvoicesByUser(ctx context.Context, userID int64) ([]domain.Invoice, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, subscription_id, user_id, amount, status, stripe_invoice_id, pdf_url, issued_at, due_at, paid_at
		 FROM invoices WHERE user_id = $1 ORDER BY issued_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		var inv domain.Invoice
		if err := rows.Scan(&inv.ID, &inv.SubscriptionID, &inv.UserID, &inv.Amount, &inv.Status,
			&inv.StripeInvoiceID, &inv.PDFURL, &inv.IssuedAt, &inv.DueAt, &inv.PaidAt); err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}
