package repository

import (
	"context"

	"github.com/appdotbuilder/souvia-ecommerce/internal/domain/model"
)

type CustomerRepository interface {
	// emailで探して、無ければcの内容で作る。既存は上書きしない。
	FirstOrCreateByEmail(ctx context.Context, c model.Customer) (model.Customer, bool, error)
	FindByEmail(ctx context.Context, email string) (model.Customer, error)
}
