// Package storage keeps uploaded chat media on local disk and maps stored
// files to public URLs served by the API.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxImageBytes is the client-facing cap on image uploads.
const MaxImageBytes = 5 << 20

var (
	// ErrNotImage is returned for uploads whose MIME type is not image/*.
	ErrNotImage = errors.New("file is not an image")
	// ErrImageTooLarge is returned for images over MaxImageBytes.
	ErrImageTooLarge = errors.New("image exceeds the 5MB limit")
	// ErrBadVoiceFormat is returned for voice notes in an unsupported container.
	ErrBadVoiceFormat = errors.New("unsupported voice note format")
)

// Voice containers accepted from clients. Recorders prefer webm/opus and fall
// back to mp4, wav or ogg depending on browser capability.
var voiceTypes = map[string]string{
	"audio/webm":  ".webm",
	"video/webm":  ".webm",
	"audio/ogg":   ".ogg",
	"audio/mp4":   ".m4a",
	"audio/mpeg":  ".mp3",
	"audio/wav":   ".wav",
	"audio/x-wav": ".wav",
}

// MediaStore writes uploads under a directory and returns their public URLs.
type MediaStore struct {
	dir     string
	baseURL string
}

// NewMediaStore creates a store rooted at dir. baseURL is the public path
// prefix the API serves the directory under (for example "/media").
func NewMediaStore(dir, baseURL string) *MediaStore {
	return &MediaStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

// SaveImage validates and stores an image upload. Validation happens before
// anything touches the disk.
func (s *MediaStore) SaveImage(fileName, contentType string, size int64, r io.Reader) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotImage
	}
	if size > MaxImageBytes {
		return "", ErrImageTooLarge
	}
	ext := filepath.Ext(fileName)
	if ext == "" {
		ext = ".img"
	}
	return s.write("images", ext, io.LimitReader(r, MaxImageBytes))
}

// SaveVoice validates and stores a voice note upload.
func (s *MediaStore) SaveVoice(fileName, contentType string, size int64, r io.Reader) (string, error) {
	base, _, _ := strings.Cut(contentType, ";")
	ext, ok := voiceTypes[strings.TrimSpace(base)]
	if !ok {
		return "", ErrBadVoiceFormat
	}
	return s.write("voice", ext, r)
}

func (s *MediaStore) write(kind, ext string, r io.Reader) (string, error) {
	name := uuid.New().String() + ext
	dir := filepath.Join(s.dir, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	path := filepath.Join(dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write media file: %w", err)
	}
	return s.baseURL + "/" + kind + "/" + name, nil
}

// Remove deletes a stored file given the public URL SaveImage/SaveVoice
// returned. Removing a missing file is not an error.
func (s *MediaStore) Remove(publicURL string) error {
	rel, ok := strings.CutPrefix(publicURL, s.baseURL+"/")
	if !ok {
		return nil
	}
	rel = filepath.Clean(rel)
	if rel == "." || strings.HasPrefix(rel, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, rel))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Dir returns the root directory, for static file serving.
func (s *MediaStore) Dir() string {
	return s.dir
}
