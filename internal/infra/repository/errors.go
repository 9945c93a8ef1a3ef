package repository

import (
	"fmt"

	"github.com/appdotbuilder/souvia-ecommerce/internal/infra/db"
	repo "github.com/appdotbuilder/souvia-ecommerce/internal/repository"
)

// 一意制約違反はrepo.ErrConflictで包む
func wrapUnique(err error) error {
	if db.IsUniqueViolation(err, "") {
		return fmt.Errorf("%w: %v", repo.ErrConflict, err)
	}
	return err
}
