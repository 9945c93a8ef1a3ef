package db

import (
	"fmt"

	"github.com/appdotbuilder/souvia-ecommerce/internal/domain/model"
	"gorm.io/gorm"
)

// テーブル作成順（FKの親が先）
func Models() []interface{} {
	return []interface{}{
		&model.Category{},
		&model.Product{},
		&model.Customer{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Supplier{},
		&model.Purchase{},
		&model.PurchaseItem{},
		&model.Transaction{},
		&model.Testimonial{},
		&model.AuditLog{},
		&model.InventoryAdjustment{},
	}
}

func AutoMigrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
