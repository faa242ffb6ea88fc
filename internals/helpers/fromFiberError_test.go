package helper

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func testApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: FromFiberError})
}

func TestFromFiberError(t *testing.T) {
	t.Run("Given a fiber error When a handler returns it Then the JSON envelope is served", func(t *testing.T) {
		app := testApp()
		app.Get("/boom", func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusNotFound, "No member record yet")
		})

		resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != fiber.StatusNotFound {
			t.Errorf("expected 404, got %d", resp.StatusCode)
		}

		body, _ := io.ReadAll(resp.Body)
		var envelope ErrorResponse
		if err := json.Unmarshal(body, &envelope); err != nil {
			t.Fatalf("response is not the JSON envelope: %s", body)
		}
		if envelope.Success {
			t.Error("expected success=false")
		}
		if envelope.Message != "No member record yet" {
			t.Errorf("unexpected message %q", envelope.Message)
		}
		if envelope.ErrorCode != "NOT_FOUND" {
			t.Errorf("expected NOT_FOUND, got %q", envelope.ErrorCode)
		}
	})

	t.Run("Given a plain error When a handler returns it Then 500 with the envelope", func(t *testing.T) {
		app := testApp()
		app.Get("/plain", func(c *fiber.Ctx) error {
			return io.ErrUnexpectedEOF
		})

		resp, err := app.Test(httptest.NewRequest("GET", "/plain", nil))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != fiber.StatusInternalServerError {
			t.Errorf("expected 500, got %d", resp.StatusCode)
		}

		body, _ := io.ReadAll(resp.Body)
		var envelope ErrorResponse
		if err := json.Unmarshal(body, &envelope); err != nil {
			t.Fatalf("response is not the JSON envelope: %s", body)
		}
		if envelope.ErrorCode != "INTERNAL_ERROR" {
			t.Errorf("expected INTERNAL_ERROR, got %q", envelope.ErrorCode)
		}
	})
}
