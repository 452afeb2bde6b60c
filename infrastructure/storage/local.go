// Package storage 上传文件的本地磁盘存储
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"restaurant/config"
	"restaurant/domain/shared"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrTooLarge        = errors.New("file too large")
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// LocalStorage 文件写到 <dir>/<folder>/<uuid><ext>，对外地址为 <baseURL>/<folder>/<uuid><ext>
type LocalStorage struct {
	dir      string
	baseURL  string
	maxBytes int64
}

func NewLocalStorage(cfg config.StorageConfig) *LocalStorage {
	maxMB := cfg.MaxUploadMB
	if maxMB <= 0 {
		maxMB = 5
	}
	return &LocalStorage{
		dir:      cfg.UploadDir,
		baseURL:  strings.TrimRight(cfg.PublicBaseURL, "/"),
		maxBytes: maxMB << 20,
	}
}

// MaxBytes 单个文件上限
func (s *LocalStorage) MaxBytes() int64 { return s.maxBytes }

// Save 保存文件并返回公开地址；失败时不留下半截文件
func (s *LocalStorage) Save(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", shared.NewError(ErrUnsupportedType, shared.ErrInvalidInput, "upload", "file",
			fmt.Sprintf("Unsupported image type %q", ext))
	}

	folder = path.Clean("/" + folder)[1:]
	targetDir := filepath.Join(s.dir, filepath.FromSlash(folder))
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	name := id.String() + ext
	target := filepath.Join(targetDir, name)

	f, err := os.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}

	n, copyErr := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	closeErr := f.Close()
	switch {
	case copyErr != nil:
		_ = os.Remove(target)
		return "", fmt.Errorf("failed to write upload: %w", copyErr)
	case n > s.maxBytes:
		_ = os.Remove(target)
		return "", shared.NewError(ErrTooLarge, shared.ErrInvalidInput, "upload", "file",
			fmt.Sprintf("File too large, limit is %d bytes", s.maxBytes))
	case closeErr != nil:
		_ = os.Remove(target)
		return "", closeErr
	}

	return s.baseURL + "/" + path.Join(folder, name), nil
}

// Remove 删除之前上传的文件；不是本存储的地址直接忽略
func (s *LocalStorage) Remove(_ context.Context, url string) error {
	if url == "" || !strings.HasPrefix(url, s.baseURL+"/") {
		return nil
	}
	rel := path.Clean("/" + strings.TrimPrefix(url, s.baseURL+"/"))[1:]
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(rel)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
