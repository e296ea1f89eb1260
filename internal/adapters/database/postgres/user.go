package postgres

import (
	"context"

	"github.com/feriapp/backend/internal/domain/entity"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type UserStorage struct {
	db *gorm.DB
}

func NewUserStorage(db *gorm.DB) *UserStorage {
	return &UserStorage{
		db: db,
	}
}

// Create is a function that creates a new user in the database.
func (s *UserStorage) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	err := s.db.WithContext(ctx).Create(&user).Error
	return user, err
}

// Get is a function that gets a user from the database by id.
func (s *UserStorage) Get(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	return &user, err
}

// GetAll is a function that gets all users from the database.
func (s *UserStorage) GetAll(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	err := s.db.WithContext(ctx).Find(&users).Error
	return users, err
}

// GetByRole returns all non-banned users holding the given role.
func (s *UserStorage) GetByRole(ctx context.Context, role entity.Role) ([]entity.User, error) {
	var users []entity.User
	err := s.db.WithContext(ctx).
		Where("role = ? AND banned = false", role).
		Find(&users).Error
	return users, err
}

// GetByFavorites returns users whose favorites overlap the given event IDs,
// projecting only the fields the reminder generator reads.
func (s *UserStorage) GetByFavorites(ctx context.Context, eventIDs []string) ([]entity.User, error) {
	var users []entity.User
	err := s.db.WithContext(ctx).
		Select("id", "favorites").
		Where("favorites && ?", pq.Array(eventIDs)).
		Find(&users).Error
	return users, err
}

// Update is a function that updates a user in the database.
func (s *UserStorage) Update(ctx context.Context, user *entity.User) (*entity.User, error) {
	err := s.db.WithContext(ctx).Save(&user).Error
	return user, err
}

// Count is a function that gets the count of users from the database.
func (s *UserStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.User{}).Count(&count).Error
	return count, err
}
