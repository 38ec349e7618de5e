package utils

import (
	"errors"

	"rateme.app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	SessionStoreLocalsKey   = "session_store"
	SessionContextLocalsKey = "session_context"

	sessionUserIDKey   = "user_id"
	sessionUserNameKey = "user_name"
)

var (
	ErrSessionStoreMissing = errors.New("session store is not initialized")
	ErrNoUserInSession     = errors.New("no user in session")
)

// SessionContext is the per-request view of the visitor's session. It is
// resolved once by middleware and handed to handlers and views.
type SessionContext struct {
	UserID   uint
	UserName string
}

// HasSession reports whether a user is signed in.
func (s SessionContext) HasSession() bool {
	return s.UserID != 0
}

// CurrentSession returns the SessionContext stored in locals, or an empty one.
func CurrentSession(c *fiber.Ctx) SessionContext {
	if sc, ok := c.Locals(SessionContextLocalsKey).(SessionContext); ok {
		return sc
	}
	return SessionContext{}
}

// SessionStart loads the visitor's session from the store placed in locals.
func SessionStart(c *fiber.Ctx) (*session.Session, error) {
	store, ok := c.Locals(SessionStoreLocalsKey).(*session.Store)
	if !ok || store == nil {
		return nil, ErrSessionStoreMissing
	}
	return store.Get(c)
}

// GetUserIDFromSession extracts the signed-in user id.
func GetUserIDFromSession(sess *session.Session) (uint, error) {
	userID, ok := sess.Get(sessionUserIDKey).(uint)
	if !ok || userID == 0 {
		return 0, ErrNoUserInSession
	}
	return userID, nil
}

// SessionContextFrom builds a SessionContext out of a stored session.
func SessionContextFrom(sess *session.Session) SessionContext {
	userID, err := GetUserIDFromSession(sess)
	if err != nil {
		return SessionContext{}
	}
	name, _ := sess.Get(sessionUserNameKey).(string)
	return SessionContext{UserID: userID, UserName: name}
}

// LoginUser rotates the session id and stores the user in it.
func LoginUser(c *fiber.Ctx, user *models.User) error {
	sess, err := SessionStart(c)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(sessionUserIDKey, user.ID)
	sess.Set(sessionUserNameKey, user.Name)
	return sess.Save()
}

// LogoutUser destroys the session.
func LogoutUser(c *fiber.Ctx) error {
	sess, err := SessionStart(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// SetSessionFlag stores a boolean marker in the visitor's session.
func SetSessionFlag(c *fiber.Ctx, key string) error {
	sess, err := SessionStart(c)
	if err != nil {
		return err
	}
	sess.Set(key, true)
	return sess.Save()
}

// HasSessionFlag reports whether SetSessionFlag was called for key.
func HasSessionFlag(c *fiber.Ctx, key string) bool {
	sess, err := SessionStart(c)
	if err != nil {
		return false
	}
	flag, _ := sess.Get(key).(bool)
	return flag
}
