package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-reminder-scan/internal/domain"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error) {
	if len(ids) == 0 {
		return map[string]*domain.User{}, nil
	}

	var records []userRecord
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&records).Error
	if err != nil {
		return nil, mapSchemaErr(err)
	}

	users := make(map[string]*domain.User, len(records))
	for i := range records {
		user := userToDomain(&records[i])
		users[user.ID] = user
	}

	return users, nil
}
