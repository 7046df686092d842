package contacts

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	pkgerrors "github.com/contactdesk/contactdesk-backend/pkg/errors"
	"github.com/contactdesk/contactdesk-backend/pkg/kv"
	"github.com/contactdesk/contactdesk-backend/pkg/logger"
	"github.com/google/uuid"
)

// Contact is a stored record. IDs are generated on creation and are the only
// way mutations address a record; list position is display order, nothing
// more, so a filtered view can never hit the wrong row.
type Contact struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Phone   string    `json:"phone"`
	Email   string    `json:"email"`
	Address string    `json:"address"`
	PhotoID string    `json:"photo_id"`
	Lat     *float64  `json:"lat"`
	Lng     *float64  `json:"lng"`
}

// Store owns the ordered contact list. The whole list is serialized to the
// KV store after every mutation; the persisted snapshot and the in-memory
// list are never allowed to diverge.
type Store struct {
	kvStore kv.Store
	logg    *logger.Logger

	mu   sync.Mutex
	list []Contact
}

// NewStore hydrates the list from the KV store. An absent or unparseable
// value yields an empty list.
func NewStore(ctx context.Context, kvStore kv.Store, logg *logger.Logger) (*Store, error) {
	if kvStore == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "kv store required")
	}

	s := &Store{kvStore: kvStore, logg: logg}

	raw, err := kvStore.Get(ctx, kv.KeyContacts)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read contacts")
		}
		return s, nil
	}

	var list []Contact
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		if logg != nil {
			logg.Warn(ctx, "stored contact list is malformed, starting empty")
		}
		return s, nil
	}
	s.list = list
	return s, nil
}

// Add appends the draft as a new contact and persists the full list.
func (s *Store) Add(ctx context.Context, draft Draft) (Contact, error) {
	contact := draft.toContact(uuid.New())

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Contact, len(s.list), len(s.list)+1)
	copy(next, s.list)
	next = append(next, contact)

	if err := s.persist(ctx, next); err != nil {
		return Contact{}, err
	}
	s.list = next
	return contact, nil
}

// Update replaces the contact with the given id in place, keeping its list
// position, and persists the full list.
func (s *Store) Update(ctx context.Context, id uuid.UUID, draft Draft) (Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Contact{}, pkgerrors.New(pkgerrors.CodeNotFound, "contact not found")
	}

	next := make([]Contact, len(s.list))
	copy(next, s.list)
	next[idx] = draft.toContact(id)

	if err := s.persist(ctx, next); err != nil {
		return Contact{}, err
	}
	s.list = next
	return next[idx], nil
}

// Delete removes the contact with the given id; later contacts shift down.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "contact not found")
	}

	next := make([]Contact, 0, len(s.list)-1)
	next = append(next, s.list[:idx]...)
	next = append(next, s.list[idx+1:]...)

	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.list = next
	return nil
}

// List returns the contacts in insertion order. A non-empty search term
// keeps only contacts whose name contains it, case-insensitively.
func (s *Store) List(ctx context.Context, search string) []Contact {
	s.mu.Lock()
	defer s.mu.Unlock()

	term := strings.ToLower(strings.TrimSpace(search))
	out := make([]Contact, 0, len(s.list))
	for _, contact := range s.list {
		if term != "" && !strings.Contains(strings.ToLower(contact.Name), term) {
			continue
		}
		out = append(out, contact)
	}
	return out
}

// Get returns the contact with the given id.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Contact{}, pkgerrors.New(pkgerrors.CodeNotFound, "contact not found")
	}
	return s.list[idx], nil
}

// caller must hold s.mu
func (s *Store) indexOf(id uuid.UUID) int {
	for i, contact := range s.list {
		if contact.ID == id {
			return i
		}
	}
	return -1
}

// caller must hold s.mu; the in-memory swap happens only after the write
// succeeds so the persisted snapshot always equals the served list
func (s *Store) persist(ctx context.Context, list []Contact) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode contacts")
	}
	if err := s.kvStore.Set(ctx, kv.KeyContacts, string(raw)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist contacts")
	}
	return nil
}

func (d Draft) toContact(id uuid.UUID) Contact {
	return Contact{
		ID:      id,
		Name:    d.Name,
		Phone:   d.Phone,
		Email:   d.Email,
		Address: d.Address,
		PhotoID: d.PhotoID,
		Lat:     d.Lat,
		Lng:     d.Lng,
	}
}
