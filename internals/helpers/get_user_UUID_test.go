package helper

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"jaaliya_backend/internals/constants"
)

func TestGetUserUUID(t *testing.T) {
	echoApp := func(preset string) *fiber.App {
		app := fiber.New()
		app.Get("/whoami", func(c *fiber.Ctx) error {
			if preset != "" {
				c.Locals("user_id", preset)
			}
			return c.SendString(GetUserUUID(c).String())
		})
		return app
	}

	t.Run("Given the auth middleware set Locals When resolving Then that id is returned", func(t *testing.T) {
		want := uuid.New().String()
		app := echoApp(want)

		resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		body, _ := io.ReadAll(resp.Body)
		if got := strings.TrimSpace(string(body)); got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("Given only a client-supplied identity header When resolving Then the caller stays a guest", func(t *testing.T) {
		app := echoApp("")
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("X-User-Id", uuid.New().String())

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		body, _ := io.ReadAll(resp.Body)
		if got := strings.TrimSpace(string(body)); got != constants.GuestUserID.String() {
			t.Errorf("header must not grant identity: got %s", got)
		}
	})

	t.Run("Given garbage in Locals When resolving Then the caller stays a guest", func(t *testing.T) {
		app := echoApp("not-a-uuid")

		resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		body, _ := io.ReadAll(resp.Body)
		if got := strings.TrimSpace(string(body)); got != constants.GuestUserID.String() {
			t.Errorf("expected guest id, got %s", got)
		}
	})
}
