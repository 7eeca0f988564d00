package services

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"fitness-journal/internal/domain"
	"fitness-journal/internal/errors"
	"fitness-journal/internal/metrics"
	"fitness-journal/internal/repository"
)

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	users      repository.UserRepository
	tokens     TokenService
	bcryptCost int
}

// NewAuthService creates a new AuthService instance
func NewAuthService(users repository.UserRepository, tokens TokenService, bcryptCost int) AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authServiceImpl{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// invalidCredentials is shared by every login failure so an unknown email and
// a wrong password are indistinguishable.
func invalidCredentials() *errors.AppError {
	return &errors.AppError{
		Type:    errors.ErrorTypeInvalidInput,
		Message: "Invalid credentials",
		Code:    "INVALID_CREDENTIALS",
	}
}

// Register creates an account and signs the new user in
func (a *authServiceImpl) Register(ctx context.Context, input domain.RegisterInput) (result *AuthResult, err error) {
	defer func() { metrics.RecordAuthAttempt("register", err) }()

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), a.bcryptCost)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeInvalidInput, "Password cannot be used")
	}

	user, err := a.users.Create(ctx, domain.NewUser(input.Email, input.Name, string(hash)))
	if err != nil {
		return nil, err
	}

	return a.signIn(user)
}

// Login verifies credentials and issues a token
func (a *authServiceImpl) Login(ctx context.Context, input domain.LoginInput) (result *AuthResult, err error) {
	defer func() { metrics.RecordAuthAttempt("login", err) }()

	user, err := a.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, invalidCredentials()
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, invalidCredentials()
	}

	return a.signIn(user)
}

// Me returns the profile of userID
func (a *authServiceImpl) Me(ctx context.Context, userID string) (*domain.User, error) {
	if !isUUID(userID) {
		return nil, errors.NewNotFoundError("user", userID)
	}
	return a.users.GetByID(ctx, userID)
}

// Authenticate maps a bearer token to the user id it was issued for
func (a *authServiceImpl) Authenticate(token string) (string, error) {
	userID, err := a.tokens.Verify(token)
	if err != nil {
		return "", errors.NewUnauthorizedError("Invalid token")
	}
	return userID, nil
}

func (a *authServiceImpl) signIn(user *domain.User) (*AuthResult, error) {
	token, err := a.tokens.Issue(user.ID)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeDatabase, "failed to issue token")
	}
	return &AuthResult{User: user, Token: token}, nil
}
