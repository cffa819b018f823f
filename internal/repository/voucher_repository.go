package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type VoucherListQuery struct {
	Page   int
	Limit  int
	Q      string //codeの部分一致
	Active *bool
}

type VoucherRepository interface {
	//code重複はErrDuplicate
	Create(ctx context.Context, v model.Voucher) (model.Voucher, error)
	FindByID(ctx context.Context, id int64) (model.Voucher, error)
	FindByCode(ctx context.Context, code string) (model.Voucher, error)
	List(ctx context.Context, q VoucherListQuery) ([]model.Voucher, int64, error)
	SetActive(ctx context.Context, id int64, active bool) error

	// used_countを+1する。usage_limitに達していたらfalse（上限は絶対に超えない）
	IncrementUsed(ctx context.Context, id int64) (bool, error)
}
