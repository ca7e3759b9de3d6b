// Package httpapi wires the dashboard service's HTTP surface into Fiber.
package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Session keys written at login, and the request-local keys the guard
// populates for downstream handlers.
const (
	sessionUserID   = "user_id"
	sessionUsername = "username"

	localUserID   = "userID"
	localUsername = "username"
)

// requireUser guards routes behind a login check. Requests carrying a session
// with a user continue down the chain with the user's ID and name in request
// locals; everything else is cut short with 401.
func requireUser(sessions *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := sessions.Get(c)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "session unavailable")
		}

		userID, _ := sess.Get(sessionUserID).(string)
		if userID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Please log in to continue.")
		}

		c.Locals(localUserID, userID)
		c.Locals(localUsername, sess.Get(sessionUsername))
		return c.Next()
	}
}
