package main

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(migrations, "migrations")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}

	var up, down int
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			up++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			down++
		}
	}
	if up == 0 || up != down {
		t.Errorf("migrations: %d up, %d down", up, down)
	}

	data, err := fs.ReadFile(migrations, "migrations/000001_documents.up.sql")
	if err != nil {
		t.Fatalf("read documents migration: %v", err)
	}
	for _, col := range []string{"key", "content", "content_type", "updated_at"} {
		if !strings.Contains(string(data), col) {
			t.Errorf("documents table missing column %s", col)
		}
	}
}

func TestUsageWithoutAction(t *testing.T) {
	var out bytes.Buffer
	if err := run(nil, &out); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(out.String(), "usage: migrate") {
		t.Errorf("usage not printed: %s", out.String())
	}
}

func TestResolveURL(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("explicit dsn", func(t *testing.T) {
		got, err := resolveURL("", "postgres://x@db/y")
		if err != nil || got != "postgres://x@db/y" {
			t.Errorf("got %q, %v", got, err)
		}
	})

	t.Run("from config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := "[database]\nuser = \"app\"\npassword = \"pw\"\nhost = \"db\"\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		got, err := resolveURL(path, "")
		if err != nil {
			t.Fatalf("resolveURL() error = %v", err)
		}
		if got != "postgres://app:pw@db:5432/sysprompts?sslmode=disable" {
			t.Errorf("url: got %s", got)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		if _, err := resolveURL("", ""); err == nil {
			t.Error("expected error without a database user")
		}
	})
}
