package service

import (
	"context"
	"errors"

	"github.com/agentmart/agentmart/internal/domain"
	"github.com/agentmart/agentmart/internal/store"
	"go.uber.org/zap"
)

// IdentityClaims is the verified tuple the external identity provider
// supplies on sign-in.
type IdentityClaims struct {
	OpenID      string  `json:"openId"`
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	LoginMethod *string `json:"loginMethod,omitempty"`
}

type IdentityService struct {
	users  domain.UserStore
	logger *zap.Logger
}

func NewIdentityService(users domain.UserStore, logger *zap.Logger) *IdentityService {
	return &IdentityService{users: users, logger: logger}
}

// SignIn merges the verified identity tuple into the user row. Upsert
// failures are logged and re-raised; the caller decides whether the session
// is still issued.
func (s *IdentityService) SignIn(ctx context.Context, claims IdentityClaims) error {
	up := &domain.UserUpsert{OpenID: claims.OpenID}
	if claims.Name != nil {
		up.Name = domain.Some(claims.Name)
	}
	if claims.Email != nil {
		up.Email = domain.Some(claims.Email)
	}
	if claims.LoginMethod != nil {
		up.LoginMethod = domain.Some(claims.LoginMethod)
	}

	if err := s.users.Upsert(ctx, up); err != nil {
		s.logger.Error("failed to upsert user", zap.String("open_id", claims.OpenID), zap.Error(err))
		return err
	}
	return nil
}

// Me resolves the session's open ID to a user record, or nil when the user
// is unknown.
func (s *IdentityService) Me(ctx context.Context, openID string) (*domain.User, error) {
	u, err := s.users.GetByOpenID(ctx, openID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}
