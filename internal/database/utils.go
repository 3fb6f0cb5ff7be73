package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// createEntity inserts entity; generated keys are written back into it.
func createEntity[T any](ctx context.Context, db *gorm.DB, entity *T) error {
	return db.WithContext(ctx).Create(entity).Error
}

// getEntityByID returns a single record of type T by its primary key id.
func getEntityByID[T any, ID comparable](ctx context.Context, db *gorm.DB, id ID) (*T, error) {
	var out T
	if err := db.WithContext(ctx).First(&out, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

// countEntities counts records of type T matching query and args.
func countEntities[T any](ctx context.Context, db *gorm.DB, query string, args ...any) (int64, error) {
	var (
		zero  T
		count int64
	)
	err := db.WithContext(ctx).Model(&zero).Where(query, args...).Count(&count).Error
	return count, err
}
