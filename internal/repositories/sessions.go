package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/openhire/jobboard/internal/domain/models"
	"gorm.io/gorm"
)

type Sessions struct {
	db *gorm.DB
}

func NewSessionsRepository(db *gorm.DB) *Sessions {
	return &Sessions{db: db}
}

func (repo *Sessions) Add(ctx context.Context, session models.Session) error {
	return repo.db.WithContext(ctx).Create(&session).Error
}

func (repo *Sessions) GetByToken(ctx context.Context, token string) (*models.Session, error) {

	var session models.Session
	err := repo.db.WithContext(ctx).First(&session, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (repo *Sessions) Remove(ctx context.Context, token string) error {
	return repo.db.WithContext(ctx).Delete(&models.Session{}, "token = ?", token).Error
}

func (repo *Sessions) RemoveExpired(ctx context.Context, expirationTime time.Time) (int64, error) {
	res := repo.db.WithContext(ctx).Delete(&models.Session{}, "expires_at < ?", expirationTime)
	return res.RowsAffected, res.Error
}
