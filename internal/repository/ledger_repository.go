package repository

import (
	"context"

	"github.com/appdotbuilder/souvia-ecommerce/internal/domain/model"
)

// 入出金台帳（transactionsテーブル）。追記のみ。
type LedgerRepository interface {
	Create(ctx context.Context, t model.Transaction) (model.Transaction, error)
	ListByReference(ctx context.Context, ref model.LedgerReference) ([]model.Transaction, error)
}
