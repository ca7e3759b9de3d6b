package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"github.com/i474232898/astro-dashboard/internal/dashboard"
	"github.com/i474232898/astro-dashboard/internal/nasa"
	"github.com/i474232898/astro-dashboard/internal/store"
	"github.com/i474232898/astro-dashboard/internal/user"
)

var validate = validator.New()

// Deps bundles the collaborators the handlers need.
type Deps struct {
	Users       *user.Service
	Preferences store.PreferenceRepository
	Assembler   *dashboard.Assembler
	Sessions    *session.Store
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service":     "astro-dashboard",
			"description": "Personalized NASA data dashboard",
		})
	})

	app.Get("/login", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Please log in to continue."})
	})

	app.Post("/signup", func(c *fiber.Ctx) error {
		var req credentialsRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		_, err := deps.Users.Signup(c.UserContext(), req.Username, req.Password)
		switch {
		case errors.Is(err, user.ErrUsernameTaken):
			return fiber.NewError(fiber.StatusConflict, err.Error())
		case errors.Is(err, user.ErrUsernameRequired), user.IsPolicyViolation(err):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, "failed to create account")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Account created successfully. Please log in.",
		})
	})

	app.Post("/login", func(c *fiber.Ctx) error {
		var req credentialsRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, user.ErrInvalidCredentials.Error())
		}

		u, err := deps.Users.Authenticate(c.UserContext(), req.Username, req.Password)
		if errors.Is(err, user.ErrInvalidCredentials) {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to log in")
		}

		sess, err := deps.Sessions.Get(c)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "session unavailable")
		}
		if err := sess.Regenerate(); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "session unavailable")
		}
		sess.Set(sessionUserID, u.ID)
		sess.Set(sessionUsername, u.Username)
		if err := sess.Save(); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "session unavailable")
		}

		log.WithFields(log.Fields{"username": u.Username}).Info("user logged in")
		return c.JSON(fiber.Map{
			"message":  "Logged in successfully.",
			"username": u.Username,
		})
	})

	guard := requireUser(deps.Sessions)

	app.Post("/logout", guard, func(c *fiber.Ctx) error {
		sess, err := deps.Sessions.Get(c)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "session unavailable")
		}
		if err := sess.Destroy(); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "session unavailable")
		}
		return c.JSON(fiber.Map{"message": "You have been logged out."})
	})

	app.Get("/dashboard", guard, func(c *fiber.Ctx) error {
		userID := c.Locals(localUserID).(string)

		enabled, err := deps.Preferences.EnabledCodesFor(c.UserContext(), userID)
		if err != nil {
			log.WithFields(log.Fields{
				"user_id": userID,
				"error":   err,
			}).Error("failed to load preferences")
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load preferences")
		}

		return c.JSON(fiber.Map{
			"sectors": deps.Assembler.Assemble(c.UserContext(), enabled),
		})
	})

	app.Get("/preferences", guard, func(c *fiber.Ctx) error {
		userID := c.Locals(localUserID).(string)

		enabled, err := deps.Preferences.EnabledCodesFor(c.UserContext(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load preferences")
		}

		options := lo.Map(nasa.Definitions(), func(d nasa.SectorDefinition, _ int) fiber.Map {
			return fiber.Map{
				"code":        d.Code,
				"title":       d.Title,
				"description": d.Description,
				"enabled":     enabled[d.Code],
			}
		})
		return c.JSON(fiber.Map{"options": options})
	})

	app.Put("/preferences", guard, func(c *fiber.Ctx) error {
		var req preferencesRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "apis list is required")
		}

		userID := c.Locals(localUserID).(string)
		if err := deps.Preferences.SetEnabled(c.UserContext(), userID, req.APIs); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to update preferences")
		}

		return c.JSON(fiber.Map{"message": "Preferences updated successfully."})
	})
}

// credentialsRequest is the body shared by signup and login.
type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// preferencesRequest carries the full set of sector codes to enable; codes
// absent from the list are disabled.
type preferencesRequest struct {
	APIs []string `json:"apis" validate:"required"`
}
