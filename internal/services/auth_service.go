package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/join-board-api/internal/cache"
	"github.com/yukikurage/join-board-api/internal/constants"
	"github.com/yukikurage/join-board-api/internal/models"
	"github.com/yukikurage/join-board-api/internal/repository"
	"github.com/yukikurage/join-board-api/internal/utils"
	"github.com/yukikurage/join-board-api/internal/validation"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidToken         = errors.New("invalid token")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
	ErrFailedToIssueToken   = errors.New("failed to issue token")
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo      repository.UserRepository
	tokenRepo     repository.TokenRepository
	contacts      *ContactService
	tokenCache    cache.TokenCache
	guestPassword string
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	contacts *ContactService,
	tokenCache cache.TokenCache,
	guestPassword string,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		tokenRepo:     tokenRepo,
		contacts:      contacts,
		tokenCache:    tokenCache,
		guestPassword: guestPassword,
	}
}

// RegisterInput represents the information required to create a new user.
type RegisterInput struct {
	Email               string
	Name                string
	Password            string
	ConfirmPassword     string
	AcceptPrivacyPolicy bool
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is the user together with its bearer token.
type AuthResult struct {
	User  *models.User
	Token string
}

// Register creates a new user, issues its token and mirrors it into the contacts.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := strings.TrimSpace(input.Email)

	verr := validation.New()
	if utf8.RuneCountInString(input.Password) < constants.MinPasswordLength {
		verr.Add("password", validation.MsgFieldMinLength, map[string]interface{}{"Min": constants.MinPasswordLength})
	}
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		verr.Add("email", validation.MsgUserEmailTaken, nil)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	if input.Password != input.ConfirmPassword {
		return nil, validation.FieldError("password", validation.MsgPasswordsMustMatch, nil)
	}
	if !input.AcceptPrivacyPolicy {
		return nil, validation.FieldError("accept_privacy_policy", validation.MsgPrivacyPolicyRequired, nil)
	}

	localPart, _, _ := strings.Cut(email, "@")
	username, err := s.uniqueUsername(ctx, localPart)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	key, err := utils.GenerateTokenKey()
	if err != nil {
		return nil, ErrFailedToIssueToken
	}

	user := &models.User{
		Email:        email,
		Username:     username,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: string(hashedPassword),
		IsActive:     true,
	}
	token := &models.AuthToken{Key: key}

	if err := s.userRepo.CreateWithToken(ctx, user, token); err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			// lost a race against a concurrent registration
			return nil, validation.FieldError("email", validation.MsgUserEmailTaken, nil)
		case errors.Is(err, repository.ErrCreateUser):
			return nil, ErrFailedToCreateUser
		case errors.Is(err, repository.ErrCreateToken):
			return nil, ErrFailedToIssueToken
		default:
			return nil, fmt.Errorf("failed to complete registration: %w", err)
		}
	}

	if err := s.afterLogin(ctx, user, token.Key); err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token.Key}, nil
}

// Login verifies credentials and returns the user with its existing or a new token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.IsActive || !user.HasUsablePassword() {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(ctx, user)
}

// GuestLogin makes sure the shared guest account exists with a usable password and logs it in.
func (s *AuthService) GuestLogin(ctx context.Context) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, constants.GuestEmail)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user, err = s.createGuest(ctx)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("failed to find guest user: %w", err)
	case !user.HasUsablePassword():
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(s.guestPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hashedPassword)); err != nil {
			return nil, fmt.Errorf("failed to reset guest password: %w", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	return s.issue(ctx, user)
}

func (s *AuthService) createGuest(ctx context.Context) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(s.guestPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:        constants.GuestEmail,
		Username:     constants.GuestUsername,
		FirstName:    constants.GuestFirstName,
		LastName:     constants.GuestLastName,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrFailedToCreateUser
		}
		// another request created the guest first
		existing, findErr := s.userRepo.FindByEmail(ctx, constants.GuestEmail)
		if findErr != nil {
			return nil, fmt.Errorf("failed to find guest user: %w", findErr)
		}
		return existing, nil
	}

	zap.L().Info("guest account created", zap.Uint64("user_id", user.ID))
	return user, nil
}

// Logout deletes the user's token.
func (s *AuthService) Logout(ctx context.Context, userID uint64) error {
	keys, err := s.tokenRepo.DeleteByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	for _, key := range keys {
		s.tokenCache.Forget(ctx, key)
	}
	return nil
}

// Authenticate resolves a token key to its active user.
func (s *AuthService) Authenticate(ctx context.Context, key string) (*models.User, error) {
	if key == "" {
		return nil, ErrInvalidToken
	}

	cachedID, cached := s.tokenCache.LookupUserID(ctx, key)

	token, err := s.tokenRepo.FindByKey(ctx, key)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to find token: %w", err)
		}
		if cached {
			// logged out while the cache was unreachable
			s.tokenCache.Forget(ctx, key)
		}
		return nil, ErrInvalidToken
	}
	if !token.User.IsActive {
		if cached {
			s.tokenCache.Forget(ctx, key)
		}
		return nil, ErrInvalidToken
	}

	if !cached || cachedID != token.UserID {
		s.tokenCache.StoreUserID(ctx, key, token.UserID)
	}
	return &token.User, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// issue returns the user's token, creating it on first use.
func (s *AuthService) issue(ctx context.Context, user *models.User) (*AuthResult, error) {
	token, err := s.tokenRepo.FindByUserID(ctx, user.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		token, err = s.createToken(ctx, user.ID)
	}
	if err != nil {
		return nil, err
	}

	if err := s.afterLogin(ctx, user, token.Key); err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token.Key}, nil
}

func (s *AuthService) createToken(ctx context.Context, userID uint64) (*models.AuthToken, error) {
	key, err := utils.GenerateTokenKey()
	if err != nil {
		return nil, ErrFailedToIssueToken
	}

	token := &models.AuthToken{Key: key, UserID: userID}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// a concurrent login created it
			return s.tokenRepo.FindByUserID(ctx, userID)
		}
		return nil, ErrFailedToIssueToken
	}
	return token, nil
}

func (s *AuthService) afterLogin(ctx context.Context, user *models.User, key string) error {
	if _, err := s.contacts.EnsureContactForUser(ctx, user); err != nil {
		return err
	}
	s.tokenCache.StoreUserID(ctx, key, user.ID)
	return nil
}

// uniqueUsername returns base, or base followed by the first free counter starting at 1.
func (s *AuthService) uniqueUsername(ctx context.Context, base string) (string, error) {
	base = truncate(base, constants.MaxPersonNameLength-10)
	username := base
	for counter := 1; ; counter++ {
		exists, err := s.userRepo.UsernameExists(ctx, username)
		if err != nil {
			return "", fmt.Errorf("failed to check username: %w", err)
		}
		// the guest account owns its username even before it is created
		if !exists && username != constants.GuestUsername {
			return username, nil
		}
		username = base + strconv.Itoa(counter)
	}
}
