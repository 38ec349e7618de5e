package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"rateme.app/configs/configslog"
	"rateme.app/models"
	"rateme.app/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthServiceError is a user-facing authentication error.
type AuthServiceError string

func (e AuthServiceError) Error() string { return string(e) }

const (
	ErrInvalidCredentials     AuthServiceError = "Identifiants de connexion invalides."
	ErrEmailNotConfirmed      AuthServiceError = "Email non confirmé. Vérifie ta boîte mail."
	ErrEmailTaken             AuthServiceError = "Un compte existe déjà avec cet email."
	ErrNameRequired           AuthServiceError = "Le nom est obligatoire."
	ErrEmailRequired          AuthServiceError = "L'email est obligatoire."
	ErrPasswordRequirements   AuthServiceError = "Le mot de passe ne respecte pas les exigences ou les deux champs ne correspondent pas."
	ErrConfirmationInvalid    AuthServiceError = "Lien de confirmation invalide ou expiré."
	ErrConfirmationMailFailed AuthServiceError = "L'email de confirmation n'a pas pu être envoyé."
	ErrUserNotFound           AuthServiceError = "Utilisateur introuvable."
	ErrPasswordHashingFailed  AuthServiceError = "Le mot de passe n'a pas pu être enregistré."
)

const (
	minPasswordLength = 8
	// ConfirmationRedirectPath is where a confirmed user lands.
	ConfirmationRedirectPath = "/login"
)

// SignUpInput is the sign-up form.
type SignUpInput struct {
	Name            string `form:"name"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	PasswordConfirm string `form:"password_confirm"`
}

// IAuthService is the identity provider consumed by the handlers.
type IAuthService interface {
	SignUp(ctx context.Context, input SignUpInput) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (*models.User, error)
	SignOut(ctx context.Context, userID uint)
	ConfirmEmail(ctx context.Context, token string) (*models.User, error)
	GetCurrentUser(ctx context.Context, userID uint) (*models.User, error)
	SubscribeSessionChanges(fn func(SessionEvent)) (unsubscribe func())
}

// AuthService implements IAuthService with bcrypt passwords and emailed
// confirmation links.
type AuthService struct {
	users   repositories.IUserRepository
	mailer  Mailer
	events  *SessionEvents
	baseURL string
	now     func() time.Time
}

// NewAuthService creates an AuthService. baseURL prefixes confirmation links.
func NewAuthService(users repositories.IUserRepository, mailer Mailer, events *SessionEvents, baseURL string) *AuthService {
	if events == nil {
		events = NewSessionEvents()
	}
	return &AuthService{
		users:   users,
		mailer:  mailer,
		events:  events,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// ValidatePassword requires at least 8 characters with a letter, a digit and
// a character that is neither.
func ValidatePassword(password string) bool {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return false
	}
	var hasLetter, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	return hasLetter && hasDigit && hasSpecial
}

// PasswordsMatch compares the confirmation literally; an empty password never matches.
func PasswordsMatch(password, confirm string) bool {
	return password != "" && password == confirm
}

// SignUp creates an unconfirmed account and mails its confirmation link.
func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" {
		return nil, ErrNameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	if !ValidatePassword(input.Password) || !PasswordsMatch(input.Password, input.PasswordConfirm) {
		return nil, ErrPasswordRequirements
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("Password could not be hashed", zap.Error(err))
		return nil, ErrPasswordHashingFailed
	}

	user := &models.User{
		Name:              name,
		Email:             email,
		PasswordHash:      string(hash),
		ConfirmationToken: uuid.NewString(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("%s: %w", persistenceMessage(err), err)
	}

	if err := s.sendConfirmation(ctx, user); err != nil {
		configslog.Log.Error("Confirmation mail failed", zap.Uint("userID", user.ID), zap.Error(err))
		return user, ErrConfirmationMailFailed
	}
	configslog.SLog.Infof("User signed up: ID %d", user.ID)
	return user, nil
}

func (s *AuthService) sendConfirmation(ctx context.Context, user *models.User) error {
	link := s.ConfirmationLink(user.ConfirmationToken)
	body, err := renderConfirmationMail(user.Name, link)
	if err != nil {
		return err
	}
	return s.mailer.Send(ctx, user.Email, "Confirme ton inscription sur RateMe", body)
}

// ConfirmationLink builds the absolute URL mailed to new users.
func (s *AuthService) ConfirmationLink(token string) string {
	q := url.Values{}
	q.Set("token", token)
	q.Set("redirect_to", ConfirmationRedirectPath)
	return s.baseURL + "/auth/confirm?" + q.Encode()
}

// SignIn checks the credentials of a confirmed account.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsConfirmed() {
		return nil, ErrEmailNotConfirmed
	}
	s.events.Publish(SessionEvent{Type: SessionSignedIn, UserID: user.ID, At: s.now()})
	return user, nil
}

// SignOut announces the end of a session; the caller destroys the cookie.
func (s *AuthService) SignOut(_ context.Context, userID uint) {
	s.events.Publish(SessionEvent{Type: SessionSignedOut, UserID: userID, At: s.now()})
}

// ConfirmEmail consumes a confirmation token.
func (s *AuthService) ConfirmEmail(ctx context.Context, token string) (*models.User, error) {
	user, err := s.users.FindByConfirmationToken(ctx, strings.TrimSpace(token))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrConfirmationInvalid
		}
		return nil, err
	}
	now := s.now()
	if err := s.users.MarkConfirmed(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.ConfirmedAt = &now
	user.ConfirmationToken = ""
	return user, nil
}

// GetCurrentUser loads the user behind a session.
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// SubscribeSessionChanges attaches fn to sign-in and sign-out events.
func (s *AuthService) SubscribeSessionChanges(fn func(SessionEvent)) func() {
	return s.events.Subscribe(fn)
}

var _ IAuthService = (*AuthService)(nil)
