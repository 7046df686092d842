// Package photos holds uploaded contact photos in a transient in-memory
// table. References handed out here behave like object URLs: valid for the
// life of the process, gone after a restart. Contacts keep only the
// reference, never the bytes.
package photos

import (
	"strings"
	"sync"

	"github.com/contactdesk/contactdesk-backend/internal/notify"
	pkgerrors "github.com/contactdesk/contactdesk-backend/pkg/errors"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	notAnImageMessage = "The file must be an image."
	tooLargeMessage   = "Maximum size 1MB"
)

// DefaultMaxBytes caps accepted uploads at 1 MiB.
const DefaultMaxBytes int64 = 1 << 20

type blob struct {
	data     []byte
	mimeType string
}

// Service validates and stores photo uploads.
type Service struct {
	notifier *notify.Notifier
	maxBytes int64

	mu    sync.RWMutex
	blobs map[string]blob
}

// NewService wires the photo intake. Rejections are reported through the
// notifier as well as returned to the caller.
func NewService(notifier *notify.Notifier, maxBytes int64) (*Service, error) {
	if notifier == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "notifier required")
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Service{
		notifier: notifier,
		maxBytes: maxBytes,
		blobs:    map[string]blob{},
	}, nil
}

// Add validates the upload and returns the new photo reference. The content
// type check runs first, matching the form's intake order.
func (s *Service) Add(data []byte) (string, error) {
	detected := mimetype.Detect(data)
	if !strings.HasPrefix(detected.String(), "image/") {
		s.notifier.Show(notify.KindError, notAnImageMessage, 0, nil)
		return "", pkgerrors.New(pkgerrors.CodeUnsupported, notAnImageMessage).
			WithDetails(map[string]string{"detected": detected.String()})
	}
	if int64(len(data)) > s.maxBytes {
		s.notifier.Show(notify.KindError, tooLargeMessage, 0, nil)
		return "", pkgerrors.New(pkgerrors.CodeTooLarge, tooLargeMessage).
			WithDetails(map[string]any{"size": len(data), "max": s.maxBytes})
	}

	id := uuid.NewString()
	stored := make([]byte, len(data))
	copy(stored, data)

	s.mu.Lock()
	s.blobs[id] = blob{data: stored, mimeType: detected.String()}
	s.mu.Unlock()

	return id, nil
}

// Get returns the photo bytes and MIME type for a reference.
func (s *Service) Get(id string) ([]byte, string, error) {
	s.mu.RLock()
	b, ok := s.blobs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, "", pkgerrors.New(pkgerrors.CodeNotFound, "photo not found")
	}
	return b.data, b.mimeType, nil
}

// Has reports whether a reference is known.
func (s *Service) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.blobs[id]
	return ok
}

// MaxBytes returns the configured upload cap.
func (s *Service) MaxBytes() int64 {
	return s.maxBytes
}
