package database

import "testing"

func TestSeedIsIdempotent(t *testing.T) {
	db, err := Connect(testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// Seed twice; the second run must be a no-op.
	if err := Seed(db); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count == 0 {
		t.Error("expected at least one user after Seed")
	}

	// If the default admin exists, it must carry the admin role with 2FA
	// pending enrollment.
	var role string
	var totpEnabled bool
	err = db.QueryRow(
		"SELECT role, totp_enabled FROM users WHERE email = $1", "admin@vidriera.local",
	).Scan(&role, &totpEnabled)
	if err == nil {
		if role != "admin" {
			t.Errorf("seed admin role: got %q, want admin", role)
		}
		if totpEnabled {
			t.Error("seed admin should not have TOTP enabled yet")
		}
	}
}
