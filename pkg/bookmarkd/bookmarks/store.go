package bookmarks

import (
	"errors"

	"gorm.io/gorm"

	"github.com/katisd/bookmarkd/pkg/bookmarkd/models"
)

// gormStore implements Store over a GORM connection
type gormStore struct {
	db *gorm.DB
}

// NewStore creates a bookmark store backed by the given database
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Create(bookmark *models.Bookmark) error {
	return s.db.Create(bookmark).Error
}

func (s *gormStore) ListByOwner(userID uint) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	if err := s.db.Where("user_id = ?", userID).Find(&bookmarks).Error; err != nil {
		return nil, err
	}
	return bookmarks, nil
}

func (s *gormStore) GetOwned(userID, id uint) (*models.Bookmark, error) {
	var bookmark models.Bookmark
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&bookmark).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

func (s *gormStore) Get(id uint) (*models.Bookmark, error) {
	var bookmark models.Bookmark
	err := s.db.First(&bookmark, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

func (s *gormStore) Update(bookmark *models.Bookmark) error {
	return s.db.Save(bookmark).Error
}

func (s *gormStore) Delete(id uint) error {
	return s.db.Delete(&models.Bookmark{}, id).Error
}
