package storage_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JaimeStill/sysprompts/pkg/storage"
)

func backends(t *testing.T) map[string]storage.System {
	t.Helper()
	return map[string]storage.System{
		storage.BackendFile:   storage.NewFile(t.TempDir(), slog.Default()),
		storage.BackendMemory: storage.NewMemory(),
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, sys := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := sys.Prepare(ctx); err != nil {
				t.Fatalf("Prepare() error = %v", err)
			}

			ok, err := sys.Exists(ctx, "doc.yaml")
			if err != nil || ok {
				t.Fatalf("Exists() before upload = %v, %v; want false, nil", ok, err)
			}

			if err := sys.Upload(ctx, "doc.yaml", strings.NewReader("first"), "application/yaml"); err != nil {
				t.Fatalf("Upload() error = %v", err)
			}
			if err := sys.Upload(ctx, "doc.yaml", strings.NewReader("second"), "application/yaml"); err != nil {
				t.Fatalf("Upload() overwrite error = %v", err)
			}

			data, err := storage.ReadAll(ctx, sys, "doc.yaml")
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if string(data) != "second" {
				t.Errorf("ReadAll() = %q, want %q", data, "second")
			}

			ok, err = sys.Exists(ctx, "doc.yaml")
			if err != nil || !ok {
				t.Fatalf("Exists() after upload = %v, %v; want true, nil", ok, err)
			}

			if err := sys.Delete(ctx, "doc.yaml"); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if _, err := sys.Download(ctx, "doc.yaml"); !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("Download() after delete error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestMissingDocument(t *testing.T) {
	ctx := context.Background()

	for name, sys := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := sys.Download(ctx, "missing.yaml"); !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("Download() error = %v, want ErrNotFound", err)
			}
			if err := sys.Delete(ctx, "missing.yaml"); !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("Delete() error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestKeyValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		key  string
		want error
	}{
		{"", storage.ErrEmptyKey},
		{"../escape.yaml", storage.ErrInvalidKey},
		{"nested/../../escape.yaml", storage.ErrInvalidKey},
	}

	for name, sys := range backends(t) {
		for _, tt := range tests {
			t.Run(name+"/"+tt.key, func(t *testing.T) {
				err := sys.Upload(ctx, tt.key, strings.NewReader("x"), "text/plain")
				if !errors.Is(err, tt.want) {
					t.Errorf("Upload(%q) error = %v, want %v", tt.key, err, tt.want)
				}
				if _, err := sys.Exists(ctx, tt.key); !errors.Is(err, tt.want) {
					t.Errorf("Exists(%q) error = %v, want %v", tt.key, err, tt.want)
				}
			})
		}
	}
}

func TestFilePrepareCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	sys := storage.NewFile(dir, slog.Default())

	if err := sys.Prepare(context.Background()); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.IsDir() {
		t.Errorf("%s is not a directory", dir)
	}
	if sys.Location() != dir {
		t.Errorf("Location() = %q, want %q", sys.Location(), dir)
	}
}

func TestFileUploadLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	sys := storage.NewFile(dir, slog.Default())
	ctx := context.Background()

	for range 3 {
		if err := sys.Upload(ctx, "doc.yaml", strings.NewReader("content"), "application/yaml"); err != nil {
			t.Fatalf("Upload() error = %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "doc.yaml" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory contents = %v, want [doc.yaml]", names)
	}
}

func TestMemoryDownloadIsolated(t *testing.T) {
	sys := storage.NewMemory()
	ctx := context.Background()

	if err := sys.Upload(ctx, "doc", strings.NewReader("original"), "text/plain"); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	data, err := storage.ReadAll(ctx, sys, "doc")
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	data[0] = 'X'

	again, err := storage.ReadAll(ctx, sys, "doc")
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(again) != "original" {
		t.Errorf("stored document mutated through downloaded bytes: %q", again)
	}
}

func TestNewSelectsBackend(t *testing.T) {
	tests := []struct {
		name    string
		cfg     storage.Config
		wantErr bool
	}{
		{"file", storage.Config{Backend: storage.BackendFile, Dir: t.TempDir()}, false},
		{"memory", storage.Config{Backend: storage.BackendMemory}, false},
		{"postgres without db", storage.Config{Backend: storage.BackendPostgres}, true},
		{"unknown", storage.Config{Backend: "s3"}, true},
		{
			"azure bad connection string",
			storage.Config{
				Backend: storage.BackendAzure,
				Azure:   storage.AzureConfig{ContainerName: "c", ConnectionString: "not-a-connection-string"},
			},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys, err := storage.New(&tt.cfg, nil, slog.Default())
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if sys == nil {
				t.Fatal("New() returned nil system")
			}
		})
	}
}
