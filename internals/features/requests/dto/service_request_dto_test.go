package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"

	"jaaliya_backend/internals/features/requests/model"
)

func TestCreateServiceRequestFunctionValidate(t *testing.T) {
	v := validator.New()

	valid := func(table string) CreateServiceRequestFunction {
		return CreateServiceRequestFunction{
			Table: table,
			Data: ServiceRequestDataFields{
				RequestName:  "Amina Hassan",
				RequestEmail: "amina@example.org",
			},
		}
	}

	t.Run("Given a known table When validating Then the kind is resolved", func(t *testing.T) {
		req := valid("translation_requests")

		kind, err := req.Validate(v)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if kind != model.KindTranslation {
			t.Errorf("expected translation kind, got %q", kind)
		}
	})

	t.Run("Given an unknown table When validating Then rejected before any SQL", func(t *testing.T) {
		req := valid("users")

		if _, err := req.Validate(v); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("Given a missing email When validating Then rejected", func(t *testing.T) {
		req := valid("wakala_applications")
		req.Data.RequestEmail = ""

		if _, err := req.Validate(v); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("Given a malformed email When validating Then rejected", func(t *testing.T) {
		req := valid("other_legal_requests")
		req.Data.RequestEmail = "not-an-email"

		if _, err := req.Validate(v); err == nil {
			t.Error("expected an error")
		}
	})
}
