package repository

import (
	"context"
	"errors"

	"github.com/appdotbuilder/souvia-ecommerce/internal/domain/model"
	repo "github.com/appdotbuilder/souvia-ecommerce/internal/repository"

	"gorm.io/gorm"
)

type CustomerGormRepository struct {
	db *gorm.DB
}

func NewCustomerGormRepository(db *gorm.DB) *CustomerGormRepository {
	return &CustomerGormRepository{db: db}
}

// emailで探し、無ければ作る。既存顧客の項目は更新しない。
func (r *CustomerGormRepository) FirstOrCreateByEmail(ctx context.Context, c model.Customer) (model.Customer, bool, error) {
	if c.Status == "" {
		c.Status = model.CustomerStatusActive
	}

	var out model.Customer
	res := r.db.WithContext(ctx).
		Where(model.Customer{Email: c.Email}).
		Attrs(model.Customer{
			Name:       c.Name,
			Phone:      c.Phone,
			Address:    c.Address,
			City:       c.City,
			PostalCode: c.PostalCode,
			Province:   c.Province,
			BirthDate:  c.BirthDate,
			Gender:     c.Gender,
			Status:     c.Status,
		}).
		FirstOrCreate(&out)
	if res.Error != nil {
		return model.Customer{}, false, res.Error
	}

	// 作成したときだけ RowsAffected > 0
	return out, res.RowsAffected > 0, nil
}

func (r *CustomerGormRepository) FindByEmail(ctx context.Context, email string) (model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Customer{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Customer{}, err
	}
	return c, nil
}
