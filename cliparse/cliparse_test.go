// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFlags_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3000 {
		t.Errorf("expected default port 3000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.DatabaseURL != "./votes.db" {
		t.Errorf("expected ./votes.db, got %s", cfg.DatabaseURL)
	}
	if cfg.SeedTitle != "Vote Your Favourites" {
		t.Errorf("unexpected seed title %q", cfg.SeedTitle)
	}
	if cfg.SeedOptions != 19 {
		t.Errorf("expected 19 seed options, got %d", cfg.SeedOptions)
	}
	if cfg.AdminKeySalt != "" {
		t.Errorf("expected no admin salt, got %q", cfg.AdminKeySalt)
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("ADMIN_KEY_SALT", "test-salt")
	t.Setenv("SEED_OPTIONS", "3")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
	if cfg.AdminKeySalt != "test-salt" {
		t.Errorf("expected admin salt from env, got %q", cfg.AdminKeySalt)
	}
	if cfg.SeedOptions != 3 {
		t.Errorf("expected 3 seed options, got %d", cfg.SeedOptions)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("expected json log format, got %s", cfg.LogFormat)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-admin-salt", "s1", "-seed-options", "0"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.SeedOptions != 0 {
		t.Errorf("expected 0 seed options, got %d", cfg.SeedOptions)
	}
}

func TestParseFlags_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"bad port env", map[string]string{"PORT": "abc"}, nil},
		{"port out of range", nil, []string{"-p", "70000"}},
		{"unknown database", nil, []string{"-t", "mysql"}},
		{"postgres without url", map[string]string{"DATABASE_TYPE": "postgres"}, nil},
		{"bad seed options", map[string]string{"SEED_OPTIONS": "-2"}, nil},
		{"bad log level", nil, []string{"-log-level", "loud"}},
		{"bad log format", nil, []string{"-log-format", "xml"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			if _, err := ParseFlags(tc.args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParseFlags_IPHashSalt(t *testing.T) {
	t.Run("random when unset", func(t *testing.T) {
		os.Clearenv()

		a, err := ParseFlags([]string{})
		if err != nil {
			t.Fatal(err)
		}
		b, err := ParseFlags([]string{})
		if err != nil {
			t.Fatal(err)
		}

		if len(a.IPHashSalt) != 64 {
			t.Errorf("expected 32 random bytes hex encoded, got %q", a.IPHashSalt)
		}
		if a.IPHashSalt == b.IPHashSalt {
			t.Error("expected a fresh salt per process start")
		}
	})

	t.Run("from env", func(t *testing.T) {
		t.Setenv("IP_HASH_SALT", "env-ip-salt")

		cfg, err := ParseFlags([]string{})
		if err != nil {
			t.Fatal(err)
		}
		if cfg.IPHashSalt != "env-ip-salt" {
			t.Errorf("expected env ip salt, got %q", cfg.IPHashSalt)
		}
	})

	t.Run("flag overrides env", func(t *testing.T) {
		t.Setenv("IP_HASH_SALT", "env-ip-salt")

		cfg, err := ParseFlags([]string{"-ip-salt", "cli-ip-salt"})
		if err != nil {
			t.Fatal(err)
		}
		if cfg.IPHashSalt != "cli-ip-salt" {
			t.Errorf("expected cli ip salt, got %q", cfg.IPHashSalt)
		}
	})
}

func TestLoadEnvFile(t *testing.T) {
	os.Clearenv()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PORT=4100\nSEED_TITLE=From file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(os.Clearenv)

	LoadEnvFile(path)

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 4100 {
		t.Errorf("expected port from env file, got %d", cfg.Port)
	}
	if cfg.SeedTitle != "From file" {
		t.Errorf("expected seed title from env file, got %q", cfg.SeedTitle)
	}

	// Missing files are ignored
	LoadEnvFile(filepath.Join(t.TempDir(), "missing.env"))
}
