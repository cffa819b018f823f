package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type VoucherUsecase struct {
	vouchers repo.VoucherRepository
}

func NewVoucherUsecase(vouchers repo.VoucherRepository) *VoucherUsecase {
	return &VoucherUsecase{vouchers: vouchers}
}

type CreateVoucherInput struct {
	Code          string
	DiscountType  string
	DiscountValue *decimal.Decimal
	MinOrderValue *decimal.Decimal
	Active        *bool
	StartAt       *time.Time
	EndAt         *time.Time
	UsageLimit    *int64
}

func (u *VoucherUsecase) Create(ctx context.Context, in CreateVoucherInput) (model.Voucher, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" || in.DiscountType == "" || in.DiscountValue == nil {
		return model.Voucher{}, errValidation("code, discount_type and discount_value are required")
	}

	dt := model.DiscountType(in.DiscountType)
	if dt != model.DiscountTypePercentage && dt != model.DiscountTypeAmount {
		return model.Voucher{}, errValidation("discount_type must be PERCENTAGE or AMOUNT")
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}

	v, err := u.vouchers.Create(ctx, model.Voucher{
		Code:          code,
		DiscountType:  dt,
		DiscountValue: round2(*in.DiscountValue),
		MinOrderValue: in.MinOrderValue,
		StartAt:       in.StartAt,
		EndAt:         in.EndAt,
		UsageLimit:    in.UsageLimit,
		Active:        active,
	})
	if errors.Is(err, repo.ErrDuplicate) {
		return model.Voucher{}, errConflict("voucher code already exists")
	}
	if err != nil {
		return model.Voucher{}, errInternal()
	}
	return v, nil
}

type ListVouchersInput struct {
	Page   int
	Limit  int
	Q      string
	Active *bool
}

type VoucherListOutput struct {
	Data []model.Voucher `json:"data"`
	Meta PageMeta        `json:"meta"`
}

func (u *VoucherUsecase) List(ctx context.Context, in ListVouchersInput) (VoucherListOutput, error) {
	page := normalizePage(in.Page)
	limit := normalizeLimit(in.Limit)

	items, total, err := u.vouchers.List(ctx, repo.VoucherListQuery{
		Page:   page,
		Limit:  limit,
		Q:      in.Q,
		Active: in.Active,
	})
	if err != nil {
		return VoucherListOutput{}, errInternal()
	}
	return VoucherListOutput{
		Data: items,
		Meta: newPageMeta(total, page, limit),
	}, nil
}

// Toggleはactiveフラグを反転する
func (u *VoucherUsecase) Toggle(ctx context.Context, id int64) (model.Voucher, error) {
	v, err := u.vouchers.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Voucher{}, errNotFound("voucher not found")
	}
	if err != nil {
		return model.Voucher{}, errInternal()
	}

	if err := u.vouchers.SetActive(ctx, id, !v.Active); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Voucher{}, errNotFound("voucher not found")
		}
		return model.Voucher{}, errInternal()
	}

	v.Active = !v.Active
	return v, nil
}
