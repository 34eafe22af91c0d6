package bookmarks

import (
	"errors"

	"github.com/katisd/bookmarkd/pkg/bookmarkd/models"
)

var (
	// ErrNotFound is returned when no bookmark matches a lookup for the
	// caller. A bookmark owned by another user yields the same error as a
	// bookmark that does not exist, so reads never leak existence.
	ErrNotFound = errors.New("bookmark not found")

	// ErrAccessDenied is returned by Edit and Delete when the bookmark is
	// absent or owned by another user.
	ErrAccessDenied = errors.New("access denied")
)

// Store is the persistence gateway for bookmarks.
type Store interface {
	Create(bookmark *models.Bookmark) error
	ListByOwner(userID uint) ([]models.Bookmark, error)
	// GetOwned looks up a bookmark with ownership as part of the query
	// predicate. Returns ErrNotFound when no row matches both id and owner.
	GetOwned(userID, id uint) (*models.Bookmark, error)
	// Get looks up a bookmark by id alone. Returns ErrNotFound when absent.
	Get(id uint) (*models.Bookmark, error)
	Update(bookmark *models.Bookmark) error
	Delete(id uint) error
}

// Service applies per-owner access control over a Store.
type Service struct {
	store Store
}

// NewService creates a bookmark service over the given store
func NewService(store Store) *Service {
	return &Service{store: store}
}

// authorize reports whether the caller owns the bookmark. Edit and Delete
// use it identically.
func authorize(bookmark *models.Bookmark, userID uint) bool {
	return bookmark != nil && bookmark.UserID == userID
}

// Create inserts a new bookmark owned by the caller. The owner always comes
// from the authenticated user id, never from the request body.
func (s *Service) Create(userID uint, req CreateBookmarkRequest) (*models.Bookmark, error) {
	bookmark := &models.Bookmark{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
	}
	if err := s.store.Create(bookmark); err != nil {
		return nil, err
	}
	return bookmark, nil
}

// List returns all bookmarks owned by the caller, in storage order.
func (s *Service) List(userID uint) ([]models.Bookmark, error) {
	return s.store.ListByOwner(userID)
}

// Get returns the caller's bookmark, or ErrNotFound.
func (s *Service) Get(userID, id uint) (*models.Bookmark, error) {
	return s.store.GetOwned(userID, id)
}

// Edit applies a partial update to the caller's bookmark. Only fields
// present in the request change; a request with no fields set performs no
// write at all.
func (s *Service) Edit(userID, id uint, req EditBookmarkRequest) (*models.Bookmark, error) {
	bookmark, err := s.store.Get(id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if !authorize(bookmark, userID) {
		return nil, ErrAccessDenied
	}

	changed := false
	if req.Title != nil {
		bookmark.Title = *req.Title
		changed = true
	}
	if req.Description != nil {
		bookmark.Description = *req.Description
		changed = true
	}
	if req.Link != nil {
		bookmark.Link = *req.Link
		changed = true
	}

	if !changed {
		return bookmark, nil
	}
	if err := s.store.Update(bookmark); err != nil {
		return nil, err
	}
	return bookmark, nil
}

// Delete permanently removes the caller's bookmark.
func (s *Service) Delete(userID, id uint) error {
	bookmark, err := s.store.Get(id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if !authorize(bookmark, userID) {
		return ErrAccessDenied
	}
	return s.store.Delete(bookmark.ID)
}
