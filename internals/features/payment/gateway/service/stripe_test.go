package service

import (
	"context"
	"testing"
	"time"
)

func TestIntentContext(t *testing.T) {
	t.Run("Given a short request deadline When deriving Then the provider cap applies", func(t *testing.T) {
		parent, parentCancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer parentCancel()

		ctx, cancel := intentContext(parent)
		defer cancel()

		deadline, ok := ctx.Deadline()
		if !ok {
			t.Fatal("expected a deadline")
		}
		if remaining := time.Until(deadline); remaining < intentTimeout-time.Second {
			t.Errorf("deadline cut short by the parent: only %s remaining", remaining)
		}
	})

	t.Run("Given the parent is cancelled When checking the derived context Then it stays live", func(t *testing.T) {
		parent, parentCancel := context.WithCancel(context.Background())

		ctx, cancel := intentContext(parent)
		defer cancel()
		parentCancel()

		if ctx.Err() != nil {
			t.Errorf("parent cancellation leaked through: %v", ctx.Err())
		}
	})
}

func TestValidClientSecret(t *testing.T) {
	t.Run("Given a well-formed secret When validating Then accepted", func(t *testing.T) {
		if !ValidClientSecret("pi_3ABCdef456_secret_XYZ789abc") {
			t.Error("expected valid")
		}
	})

	t.Run("Given malformed values When validating Then rejected", func(t *testing.T) {
		cases := []struct {
			name   string
			secret string
		}{
			{"empty", ""},
			{"wrong prefix", "cs_3ABCdef456_secret_XYZ789abc"},
			{"missing secret marker", "pi_3ABCdef456XYZ789abc"},
			{"empty id", "pi__secret_XYZ789abc"},
			{"empty secret", "pi_3ABCdef456_secret_"},
			{"injection characters", "pi_3ABC<img>_secret_XYZ789"},
			{"whitespace", "pi_3ABC def_secret_XYZ789"},
		}
		for _, tc := range cases {
			if ValidClientSecret(tc.secret) {
				t.Errorf("%s: expected %q to be rejected", tc.name, tc.secret)
			}
		}
	})
}

func TestIntentIDFromClientSecret(t *testing.T) {
	t.Run("Given a valid secret When extracting Then the intent id is recovered", func(t *testing.T) {
		id, ok := IntentIDFromClientSecret("pi_3ABCdef456_secret_XYZ789abc")
		if !ok {
			t.Fatal("expected ok")
		}
		if id != "pi_3ABCdef456" {
			t.Errorf("expected pi_3ABCdef456, got %s", id)
		}
	})

	t.Run("Given a malformed secret When extracting Then not ok", func(t *testing.T) {
		if _, ok := IntentIDFromClientSecret("pi_broken"); ok {
			t.Error("expected not ok")
		}
	})
}
