package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

type DiskStorage struct {
	// BasePath is a directory (usually mount point of a disk) that is writable by the current process
	BasePath  string
	dirs      map[string]bool
	dirsMutex sync.Mutex
}

func NewDiskStorage(basePath string) (*DiskStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("snapshot dir: %w", err)
	}
	return &DiskStorage{
		BasePath: basePath,
		dirs:     make(map[string]bool, 10),
	}, nil
}

func (s *DiskStorage) createDir(dir string) error {
	s.dirsMutex.Lock()
	defer s.dirsMutex.Unlock()

	if ok := s.dirs[dir]; ok {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	s.dirs[dir] = true
	return nil
}

func (s *DiskStorage) getFullPath(key string) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.BasePath, filepath.FromSlash(key)), nil
}

func (s *DiskStorage) Save(ctx context.Context, key string, reader io.Reader, size int64, mimeType string) error {
	fileName, err := s.getFullPath(key)
	if err != nil {
		return err
	}
	if size > 0 && uint64(size) > s.GetFreeSpace() {
		return ErrNoSpace
	}
	if err = s.createDir(filepath.Dir(fileName)); err != nil {
		return err
	}
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	_, err = io.Copy(file, reader)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(fileName)
	}
	return err
}

func (s *DiskStorage) Load(ctx context.Context, key string, writer io.Writer) (int64, error) {
	fileName, err := s.getFullPath(key)
	if err != nil {
		return 0, err
	}
	file, err := os.Open(fileName)
	if err != nil {
		return 0, err
	}
	defer file.Close()
	return io.Copy(writer, file)
}

func (s *DiskStorage) Delete(ctx context.Context, key string) error {
	fileName, err := s.getFullPath(key)
	if err != nil {
		return err
	}
	return os.Remove(fileName)
}

func (s *DiskStorage) statfs() (stat unix.Statfs_t, err error) {
	err = unix.Statfs(s.BasePath, &stat)
	return
}

// GetFreeSpace returns the bytes available to unprivileged users, 0 when unknown
func (s *DiskStorage) GetFreeSpace() uint64 {
	stat, err := s.statfs()
	if err != nil {
		return 0
	}
	return stat.Bavail * uint64(stat.Bsize)
}

func (s *DiskStorage) GetTotalSpace() uint64 {
	stat, err := s.statfs()
	if err != nil {
		return 0
	}
	return stat.Blocks * uint64(stat.Bsize)
}

func (s *DiskStorage) String() string {
	return "disk:" + s.BasePath
}
