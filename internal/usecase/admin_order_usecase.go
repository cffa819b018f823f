package usecase

import (
	"context"
	"errors"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type AdminOrderUsecase struct {
	tx    repo.TransactionManager
	users repo.UserRepository
}

func NewAdminOrderUsecase(tx repo.TransactionManager, users repo.UserRepository) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, users: users}
}

type AdminListOrdersInput struct {
	Page   int
	Limit  int
	Status string
	Q      string //username/emailの部分一致
}

func (u *AdminOrderUsecase) List(ctx context.Context, in AdminListOrdersInput) (OrderListOutput, error) {
	page := normalizePage(in.Page)
	limit := normalizeLimit(in.Limit)

	status := ""
	if in.Status != "" {
		if s, ok := model.ParseOrderStatus(in.Status); ok {
			status = string(s)
		}
	}

	//qに当たったユーザーのIDへ絞る（ヒット0件なら結果も0件）
	var userIDs []int64
	if in.Q != "" {
		ids, err := u.users.SearchIDs(ctx, in.Q)
		if err != nil {
			return OrderListOutput{}, errInternal()
		}
		if ids == nil {
			ids = []int64{}
		}
		userIDs = ids
	}

	var out OrderListOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListAdmin(ctx, repo.OrderListQuery{
			Page:    page,
			Limit:   limit,
			Status:  status,
			UserIDs: userIDs,
		})
		if err != nil {
			return errInternal()
		}

		orderIDs := make([]int64, 0, len(orders))
		for _, o := range orders {
			orderIDs = append(orderIDs, o.ID)
		}
		items, err := r.OrderItems().ListByOrderIDs(ctx, orderIDs)
		if err != nil {
			return errInternal()
		}
		itemsByOrder := make(map[int64][]model.OrderItem, len(orders))
		for _, it := range items {
			itemsByOrder[it.OrderID] = append(itemsByOrder[it.OrderID], it)
		}

		data := make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			oo := toOrderOutput(o, itemsByOrder[o.ID])
			oo.VoucherApplied = o.VoucherID != nil
			data = append(data, oo)
		}
		out = OrderListOutput{Data: data, Meta: newPageMeta(total, page, limit)}
		return nil
	})
	if err != nil {
		return OrderListOutput{}, err
	}
	return out, nil
}

type AdminUpdateOrderStatusInput struct {
	Status string
}

// UpdateStatusは注文ステータスを遷移させる。
// 旧statusを条件にしたcompare-and-swapで書くので、同じ注文への同時更新が
// 両方「まだPAIDじゃない」と見てvoucherを二重消費することはない。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, orderID int64, in AdminUpdateOrderStatusInput) (OrderOutput, error) {
	newStatus, ok := model.ParseOrderStatus(in.Status)
	if !ok {
		return OrderOutput{}, errValidation("invalid status")
	}

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return errNotFound("order not found")
		}
		if err != nil {
			return errInternal()
		}

		if before.Status != newStatus {
			swapped, err := r.Orders().UpdateStatusIf(ctx, orderID, before.Status, newStatus)
			if err != nil {
				return errInternal()
			}
			if !swapped {
				//他のリクエストに先を越された。副作用なしで撤退
				return errConflict("order status changed concurrently")
			}

			//最初のPAID遷移でだけvoucherを消費する
			if newStatus == model.OrderStatusPaid && before.Status != model.OrderStatusPaid && before.VoucherID != nil {
				if _, err := r.Vouchers().IncrementUsed(ctx, *before.VoucherID); err != nil {
					return errInternal()
				}
			}
		}

		after, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return errInternal()
		}
		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return errInternal()
		}
		out = toOrderOutput(after, items)
		out.VoucherApplied = after.VoucherID != nil
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}
