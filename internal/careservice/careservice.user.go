package careservice

import (
	"context"
	"strings"

	"github.com/ikigain/ForestOS/internal/auth"
	"github.com/ikigain/ForestOS/internal/errors"
	"github.com/ikigain/ForestOS/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// MsgBadLogin is the single login failure message.
const MsgBadLogin = "Incorrect email or password"

// Register creates an active, non-superuser account.
func (s *CareService) Register(ctx context.Context, in *models.UserCreate) (*models.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, errors.NewInternalError("failed to hash password", err)
	}

	now := s.now()
	user := &models.User{
		ID:             nuts.NID("usr", 12),
		Email:          in.Email,
		HashedPassword: hash,
		FullName:       in.FullName,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	nuts.L.Infof("[CareService] Registered user %s", user.ID)
	return user, nil
}

// Login checks the password grant form and issues an access token.
// Unknown email, wrong password and inactive account all fail the same way.
func (s *CareService) Login(ctx context.Context, form *models.LoginForm) (*models.Token, error) {
	email := strings.ToLower(strings.TrimSpace(form.Username))
	user, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.IsNotFound(err) {
			return nil, err
		}
		auth.BurnPasswordCheck(form.Password)
		return nil, errors.NewAuthError(MsgBadLogin, nil)
	}
	if !auth.CheckPassword(user.HashedPassword, form.Password) || !user.IsActive {
		return nil, errors.NewAuthError(MsgBadLogin, nil)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, errors.NewInternalError("failed to issue token", err)
	}
	return &models.Token{AccessToken: token, TokenType: "bearer"}, nil
}

// CurrentUser loads the account behind a user principal.
func (s *CareService) CurrentUser(ctx context.Context, p *auth.Principal) (*models.User, error) {
	userID, err := owner(p)
	if err != nil {
		return nil, err
	}
	return s.Users.GetByID(ctx, userID)
}
