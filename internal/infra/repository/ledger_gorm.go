package repository

import (
	"context"

	"github.com/appdotbuilder/souvia-ecommerce/internal/domain/model"

	"gorm.io/gorm"
)

type LedgerGormRepository struct {
	db *gorm.DB
}

func NewLedgerGormRepository(db *gorm.DB) *LedgerGormRepository {
	return &LedgerGormRepository{db: db}
}

func (r *LedgerGormRepository) Create(ctx context.Context, t model.Transaction) (model.Transaction, error) {
	if err := r.db.WithContext(ctx).Create(&t).Error; err != nil {
		return model.Transaction{}, wrapUnique(err)
	}
	return t, nil
}

// 参照先（注文など）に紐づく台帳
func (r *LedgerGormRepository) ListByReference(ctx context.Context, ref model.LedgerReference) ([]model.Transaction, error) {
	var txs []model.Transaction
	err := r.db.WithContext(ctx).
		Where("reference_type = ? AND reference_id = ?", ref.Kind, ref.ID).
		Order("id asc").
		Find(&txs).Error
	if err != nil {
		return []model.Transaction{}, err
	}
	return txs, nil
}
