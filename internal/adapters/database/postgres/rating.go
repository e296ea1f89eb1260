package postgres

import (
	"context"

	"github.com/feriapp/backend/internal/domain/entity"
	"gorm.io/gorm"
)

type RatingStorage struct {
	db *gorm.DB
}

func NewRatingStorage(db *gorm.DB) *RatingStorage {
	return &RatingStorage{
		db: db,
	}
}

func (s *RatingStorage) Create(ctx context.Context, rating *entity.Rating) (*entity.Rating, error) {
	err := s.db.WithContext(ctx).Create(&rating).Error
	return rating, err
}

func (s *RatingStorage) GetByEventID(ctx context.Context, eventID string) ([]entity.Rating, error) {
	var ratings []entity.Rating
	err := s.db.WithContext(ctx).Where("event_id = ?", eventID).Find(&ratings).Error
	return ratings, err
}

func (s *RatingStorage) CountByEventID(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Rating{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}
