package model

import "testing"

func TestKindFromTable(t *testing.T) {
	t.Run("Given the three known tables When mapping Then each yields its kind", func(t *testing.T) {
		cases := map[string]ServiceRequestKind{
			"translation_requests": KindTranslation,
			"other_legal_requests": KindLegalOther,
			"wakala_applications":  KindWakala,
		}
		for table, want := range cases {
			kind, ok := KindFromTable(table)
			if !ok || kind != want {
				t.Errorf("table %q: expected %q, got %q (ok=%v)", table, want, kind, ok)
			}
		}
	})

	t.Run("Given an arbitrary table name When mapping Then rejected", func(t *testing.T) {
		// This is the guard that keeps client-supplied table names out of SQL.
		for _, table := range []string{"", "users", "members; DROP TABLE members"} {
			if _, ok := KindFromTable(table); ok {
				t.Errorf("expected %q to be rejected", table)
			}
		}
	})
}

func TestKindRoundTrip(t *testing.T) {
	for _, kind := range AllKinds() {
		if !kind.Valid() {
			t.Errorf("kind %q should be valid", kind)
		}
		back, ok := KindFromTable(kind.TableName())
		if !ok || back != kind {
			t.Errorf("kind %q did not round-trip through its table name", kind)
		}
	}

	if ServiceRequestKind("donation").Valid() {
		t.Error("unknown kind must not be valid")
	}
}
