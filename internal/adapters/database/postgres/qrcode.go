package postgres

import (
	"context"
	"errors"

	"github.com/enqur/qrstudio/internal/domain/common/errorz"
	"github.com/enqur/qrstudio/internal/domain/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QRCodeStorage struct {
	db *gorm.DB
}

func NewQRCodeStorage(db *gorm.DB) *QRCodeStorage {
	return &QRCodeStorage{
		db: db,
	}
}

// Create is a function that saves a generated qr code in the database.
func (s *QRCodeStorage) Create(ctx context.Context, code *entity.QRCode) (*entity.QRCode, error) {
	err := s.db.WithContext(ctx).Create(code).Error
	return code, err
}

// Get is a function that gets a qr code from the database by id.
// Ids that are not uuids cannot exist and are reported as errorz.ErrNotFound.
func (s *QRCodeStorage) Get(ctx context.Context, id string) (*entity.QRCode, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errorz.ErrNotFound
	}
	var code entity.QRCode
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrNotFound
	}
	return &code, err
}

// GetByOwner returns a page of the owner's qr codes, newest first.
func (s *QRCodeStorage) GetByOwner(ctx context.Context, owner string, limit, offset int) ([]entity.QRCode, error) {
	var codes []entity.QRCode
	err := s.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&codes).Error
	return codes, err
}

func (s *QRCodeStorage) CountByOwner(ctx context.Context, owner string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.QRCode{}).Where("owner = ?", owner).Count(&count).Error
	return count, err
}

func (s *QRCodeStorage) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errorz.ErrNotFound
	}
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.QRCode{}).Error
}

// DeleteByOwner removes all of the owner's qr codes and returns how many were removed.
func (s *QRCodeStorage) DeleteByOwner(ctx context.Context, owner string) (int64, error) {
	res := s.db.WithContext(ctx).Where("owner = ?", owner).Delete(&entity.QRCode{})
	return res.RowsAffected, res.Error
}
