package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
	"marketplace/pkg/metrics"
)

// 金額は常に2桁丸め（round half up）。floatは使わない。
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

type OrderUsecase struct {
	tx repo.TransactionManager
	m  *metrics.ServerMetrics
}

func NewOrderUsecase(tx repo.TransactionManager, m *metrics.ServerMetrics) *OrderUsecase {
	return &OrderUsecase{tx: tx, m: m}
}

type OrderItemInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type CreateOrderInput struct {
	Items       []OrderItemInput
	VoucherCode string
}

type OrderItemOutput struct {
	ProductID int64           `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type OrderOutput struct {
	ID             int64             `json:"id"`
	UserID         int64             `json:"user_id"`
	Status         string            `json:"status"`
	Subtotal       decimal.Decimal   `json:"subtotal"`
	Discount       decimal.Decimal   `json:"discount"`
	Total          decimal.Decimal   `json:"total"`
	VoucherID      *int64            `json:"voucher_id"`
	VoucherApplied bool              `json:"voucher_applied"`
	CreatedAt      time.Time         `json:"created_at"`
	Items          []OrderItemOutput `json:"items"`
}

type OrderListOutput struct {
	Data []OrderOutput `json:"data"`
	Meta PageMeta      `json:"meta"`
}

// validateVoucherは適用可否と割引額を決める純粋関数。
// 失敗してもエラーにしない（割引なしに静かに落とす）
func validateVoucher(v *model.Voucher, subtotal decimal.Decimal, now time.Time) (*model.Voucher, decimal.Decimal) {
	zero := decimal.Zero
	if v == nil {
		return nil, zero
	}
	if !v.Active {
		return nil, zero
	}
	if v.StartAt != nil && now.Before(*v.StartAt) {
		return nil, zero
	}
	if v.EndAt != nil && now.After(*v.EndAt) {
		return nil, zero
	}
	if v.UsageLimit != nil && v.UsedCount >= *v.UsageLimit {
		return nil, zero
	}
	if v.MinOrderValue != nil && subtotal.LessThan(*v.MinOrderValue) {
		return nil, zero
	}

	var discount decimal.Decimal
	switch v.DiscountType {
	case model.DiscountTypePercentage:
		discount = round2(subtotal.Mul(v.DiscountValue).Div(decimal.NewFromInt(100)))
	default:
		// AMOUNT：小計を超えない（totalは絶対にマイナスにならない）
		discount = round2(decimal.Min(v.DiscountValue, subtotal))
	}
	return v, discount
}

// CreateOrderは現在価格でスナップショットを取り、voucher割引を適用して
// ヘッダ＋明細を1トランザクションで保存する。
func (u *OrderUsecase) CreateOrder(ctx context.Context, userID int64, in CreateOrderInput) (OrderOutput, error) {
	if len(in.Items) == 0 {
		return OrderOutput{}, errValidation("items are required")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//商品をまとめて解決
		ids := make([]int64, 0, len(in.Items))
		for _, it := range in.Items {
			ids = append(ids, it.ProductID)
		}
		products, err := r.Products().FindByIDs(ctx, ids)
		if err != nil {
			return errInternal()
		}
		productMap := make(map[int64]model.Product, len(products))
		for _, p := range products {
			productMap[p.ID] = p
		}

		//明細をスナップショット価格で組み立てる
		orderItems := make([]model.OrderItem, 0, len(in.Items))
		subtotal := decimal.Zero
		for _, it := range in.Items {
			p, ok := productMap[it.ProductID]
			if !ok {
				//1件でも見つからなければ注文ごと中止
				return errValidation(fmt.Sprintf("product %d not found", it.ProductID))
			}

			//0以下は1に切り上げる（エラーにしない方針）
			qty := it.Quantity
			if qty < 1 {
				qty = 1
			}

			lineSubtotal := round2(p.Price.Mul(decimal.NewFromInt(qty)))
			orderItems = append(orderItems, model.OrderItem{
				ProductID: p.ID,
				Quantity:  qty,
				UnitPrice: p.Price,
				Subtotal:  lineSubtotal,
			})
			subtotal = subtotal.Add(lineSubtotal)
		}
		subtotal = round2(subtotal)

		//voucher（任意）。無効コードは割引0で続行
		var voucher *model.Voucher
		if in.VoucherCode != "" {
			v, err := r.Vouchers().FindByCode(ctx, in.VoucherCode)
			if err != nil && !errors.Is(err, repo.ErrNotFound) {
				return errInternal()
			}
			if err == nil {
				voucher = &v
			}
		}
		applied, discount := validateVoucher(voucher, subtotal, time.Now())

		total := round2(subtotal.Sub(discount))

		order := model.Order{
			UserID:   userID,
			Status:   model.OrderStatusPending,
			Subtotal: subtotal,
			Discount: discount,
			Total:    total,
		}
		if applied != nil {
			order.VoucherID = &applied.ID
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return errInternal()
		}
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return errInternal()
		}

		//保存済みの形で返す
		created, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return errInternal()
		}
		savedItems, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return errInternal()
		}
		out = toOrderOutput(created, savedItems)
		out.VoucherApplied = applied != nil
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	if u.m != nil {
		u.m.OrdersCreated.Inc()
		if out.VoucherApplied {
			u.m.VouchersApplied.Inc()
		}
	}
	return out, nil
}

type ListMyOrdersInput struct {
	Page   int
	Limit  int
	Status string
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64, in ListMyOrdersInput) (OrderListOutput, error) {
	page := normalizePage(in.Page)
	limit := normalizeLimit(in.Limit)

	//status filterは宣言済みのものだけ効かせる
	status := ""
	if in.Status != "" {
		if s, ok := model.ParseOrderStatus(in.Status); ok {
			status = string(s)
		}
	}

	var out OrderListOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListByUserID(ctx, userID, repo.OrderListQuery{
			Page:   page,
			Limit:  limit,
			Status: status,
		})
		if err != nil {
			return errInternal()
		}

		data, err := u.assembleOrders(ctx, r, orders)
		if err != nil {
			return err
		}
		out = OrderListOutput{Data: data, Meta: newPageMeta(total, page, limit)}
		return nil
	})
	if err != nil {
		return OrderListOutput{}, err
	}
	return out, nil
}

// GetOrderDetailは所有者か管理者だけ見られる
func (u *OrderUsecase) GetOrderDetail(ctx context.Context, userID int64, role model.Role, orderID int64) (OrderOutput, error) {
	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return errNotFound("order not found")
		}
		if err != nil {
			return errInternal()
		}

		if o.UserID != userID && !role.IsAdmin() {
			return errForbidden("forbidden")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return errInternal()
		}
		out = toOrderOutput(o, items)
		out.VoucherApplied = o.VoucherID != nil
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// ordersの明細を1クエリでまとめて解決して詰める
func (u *OrderUsecase) assembleOrders(ctx context.Context, r repo.TxRepos, orders []model.Order) ([]OrderOutput, error) {
	orderIDs := make([]int64, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}
	items, err := r.OrderItems().ListByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, errInternal()
	}
	itemsByOrder := make(map[int64][]model.OrderItem, len(orders))
	for _, it := range items {
		itemsByOrder[it.OrderID] = append(itemsByOrder[it.OrderID], it)
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		out := toOrderOutput(o, itemsByOrder[o.ID])
		out.VoucherApplied = o.VoucherID != nil
		outs = append(outs, out)
	}
	return outs, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}

	return OrderOutput{
		ID:        o.ID,
		UserID:    o.UserID,
		Status:    string(o.Status),
		Subtotal:  o.Subtotal,
		Discount:  o.Discount,
		Total:     o.Total,
		VoucherID: o.VoucherID,
		CreatedAt: o.CreatedAt,
		Items:     outItems,
	}
}
