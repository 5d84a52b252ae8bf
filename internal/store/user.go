package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agentmart/agentmart/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserStore struct {
	db          *pgxpool.Pool
	ownerOpenID string
}

// NewUserStore returns a user store. ownerOpenID, when non-empty, names the
// identity that is promoted to admin on sign-in.
func NewUserStore(db *pgxpool.Pool, ownerOpenID string) *UserStore {
	return &UserStore{db: db, ownerOpenID: ownerOpenID}
}

func (s *UserStore) Upsert(ctx context.Context, u *domain.UserUpsert) error {
	if u.OpenID == "" {
		return fmt.Errorf("%w: open_id is required", ErrInvalidInput)
	}
	query, args := userUpsertSQL(u, s.ownerOpenID, time.Now())
	_, err := s.db.Exec(ctx, query, args...)
	return err
}

// userUpsertSQL builds the sign-in merge statement. Only fields present in
// the input enter the insert values and the ON CONFLICT update set; when the
// update set would otherwise be empty, last_signed_in is bumped so every
// sign-in touches the row.
func userUpsertSQL(u *domain.UserUpsert, ownerOpenID string, now time.Time) (string, []any) {
	cols := []string{"open_id"}
	args := []any{u.OpenID}
	var updates []string

	add := func(col string, v any) {
		cols = append(cols, col)
		args = append(args, v)
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}

	if u.Name.Set {
		add("name", u.Name.Value)
	}
	if u.Email.Set {
		add("email", u.Email.Value)
	}
	if u.LoginMethod.Set {
		add("login_method", u.LoginMethod.Value)
	}
	if u.Role.Set {
		add("role", u.Role.Value)
	} else if ownerOpenID != "" && u.OpenID == ownerOpenID {
		add("role", domain.RoleAdmin)
	}
	if u.LastSignedIn.Set {
		add("last_signed_in", u.LastSignedIn.Value)
	} else {
		// Insert default only; an existing row keeps its value unless
		// nothing else changed.
		cols = append(cols, "last_signed_in")
		args = append(args, now)
	}
	if len(updates) == 0 {
		updates = append(updates, "last_signed_in = EXCLUDED.last_signed_in")
	}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		`INSERT INTO users (%s) VALUES (%s)
		 ON CONFLICT (open_id) DO UPDATE SET %s, updated_at = NOW()`,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)
	return query, args
}

func (s *UserStore) GetByOpenID(ctx context.Context, openID string) (*domain.User, error) {
	u := &domain.User{}
	err := s.db.QueryRow(ctx,
		`SELECT id, open_id, name, email, login_method, role, organization_id,
		        profile_picture, bio, created_at, updated_at, last_signed_in
		 FROM users WHERE open_id = $1`,
		openID,
	).Scan(&u.ID, &u.OpenID, &u.Name, &u.Email, &u.LoginMethod, &u.Role, &u.OrganizationID,
		&u.ProfilePicture, &u.Bio, &u.CreatedAt, &u.UpdatedAt, &u.LastSignedIn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}
