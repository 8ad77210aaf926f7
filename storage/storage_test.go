package storage

import (
	"attendance/config"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCleanKey(t *testing.T) {
	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{"session/1/student/2/a.jpg", "session/1/student/2/a.jpg", false},
		{"a//b/./c.jpg", "a/b/c.jpg", false},
		{"", "", true},
		{"/etc/passwd", "", true},
		{"../escape.jpg", "", true},
		{"a/../../escape.jpg", "", true},
		{"..", "", true},
		{"a\\b", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := cleanKey(tt.key)
			if (err != nil) != tt.wantErr || got != tt.want {
				t.Errorf("cleanKey(%q) = %q, %v", tt.key, got, err)
			}
		})
	}
}

func TestNewKey(t *testing.T) {
	a, b := NewKey(3, 7), NewKey(3, 7)
	if a == b {
		t.Errorf("NewKey() returned the same key twice: %s", a)
	}
	if !strings.HasPrefix(a, "session/3/student/7/") || !strings.HasSuffix(a, ".jpg") {
		t.Errorf("NewKey() = %s", a)
	}
	if _, err := cleanKey(a); err != nil {
		t.Errorf("NewKey() produced an invalid key: %v", err)
	}
}

func TestDiskStorage(t *testing.T) {
	ctx := context.Background()
	s, err := NewDiskStorage(filepath.Join(t.TempDir(), "snapshots"))
	if err != nil {
		t.Fatal(err)
	}
	key := NewKey(1, 2)
	data := []byte("jpeg bytes")
	if err = s.Save(ctx, key, bytes.NewReader(data), int64(len(data)), "image/jpeg"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err = os.Stat(filepath.Join(s.BasePath, filepath.FromSlash(key))); err != nil {
		t.Errorf("snapshot not written: %v", err)
	}
	var buf bytes.Buffer
	n, err := s.Load(ctx, key, &buf)
	if err != nil || n != int64(len(data)) || !bytes.Equal(buf.Bytes(), data) {
		t.Errorf("Load() = %d, %q, %v", n, buf.String(), err)
	}
	if err = s.Delete(ctx, key); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if _, err = s.Load(ctx, key, &buf); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() after Delete error = %v", err)
	}
	if err = s.Save(ctx, "../outside.jpg", bytes.NewReader(data), 1, "image/jpeg"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Save() outside root error = %v, want ErrInvalidKey", err)
	}
	if s.GetTotalSpace() == 0 || s.GetFreeSpace() == 0 {
		t.Errorf("space = %d/%d, want non-zero", s.GetFreeSpace(), s.GetTotalSpace())
	}
}

func TestInit(t *testing.T) {
	saved, savedDir := config.SNAPSHOT_STORAGE, config.SNAPSHOT_DIR
	defer func() { config.SNAPSHOT_STORAGE, config.SNAPSHOT_DIR = saved, savedDir }()

	config.SNAPSHOT_STORAGE = "none"
	if s, err := Init(); s != nil || err != nil {
		t.Errorf("Init(none) = %v, %v", s, err)
	}
	config.SNAPSHOT_STORAGE = "disk"
	config.SNAPSHOT_DIR = t.TempDir()
	if s, err := Init(); err != nil || s == nil || s.String() != "disk:"+config.SNAPSHOT_DIR {
		t.Errorf("Init(disk) = %v, %v", s, err)
	}
	config.SNAPSHOT_STORAGE = "floppy"
	if _, err := Init(); err == nil {
		t.Error("Init(floppy) expected an error")
	}
}
