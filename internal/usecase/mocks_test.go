package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// txManagerMockはWithinTxの中で渡すreposを固定してunitテストを回す
type txManagerMock struct {
	repos repo.TxRepos
}

func (m *txManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.repos)
}

type txReposMock struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	products   repo.ProductRepository
	vouchers   repo.VoucherRepository
}

func (r *txReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *txReposMock) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *txReposMock) Products() repo.ProductRepository     { return r.products }
func (r *txReposMock) Vouchers() repo.VoucherRepository     { return r.vouchers }

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64, q repo.OrderListQuery) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, q)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, q repo.OrderListQuery) ([]model.Order, int64, error) {
	args := m.Called(ctx, q)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) UpdateStatusIf(ctx context.Context, orderID int64, from model.OrderStatus, to model.OrderStatus) (bool, error) {
	args := m.Called(ctx, orderID, from, to)
	return args.Bool(0), args.Error(1)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

func (m *OrderItemRepoMock) ListByOrderIDs(ctx context.Context, orderIDs []int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderIDs)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	args := m.Called(ctx, ids)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type VoucherRepoMock struct{ mock.Mock }

func (m *VoucherRepoMock) Create(ctx context.Context, v model.Voucher) (model.Voucher, error) {
	args := m.Called(ctx, v)
	created, _ := args.Get(0).(model.Voucher)
	return created, args.Error(1)
}

func (m *VoucherRepoMock) FindByID(ctx context.Context, id int64) (model.Voucher, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(model.Voucher)
	return v, args.Error(1)
}

func (m *VoucherRepoMock) FindByCode(ctx context.Context, code string) (model.Voucher, error) {
	args := m.Called(ctx, code)
	v, _ := args.Get(0).(model.Voucher)
	return v, args.Error(1)
}

func (m *VoucherRepoMock) List(ctx context.Context, q repo.VoucherListQuery) ([]model.Voucher, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Voucher)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *VoucherRepoMock) SetActive(ctx context.Context, id int64, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *VoucherRepoMock) IncrementUsed(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByIDs(ctx context.Context, ids []int64) ([]model.User, error) {
	args := m.Called(ctx, ids)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *UserRepoMock) UpdateRole(ctx context.Context, userID int64, role model.Role) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

func (m *UserRepoMock) SearchIDs(ctx context.Context, q string) ([]int64, error) {
	args := m.Called(ctx, q)
	ids, _ := args.Get(0).([]int64)
	return ids, args.Error(1)
}

type RatingRepoMock struct{ mock.Mock }

func (m *RatingRepoMock) Upsert(ctx context.Context, r model.Rating) (model.Rating, error) {
	args := m.Called(ctx, r)
	saved, _ := args.Get(0).(model.Rating)
	return saved, args.Error(1)
}

func (m *RatingRepoMock) FindByUserAndProduct(ctx context.Context, userID int64, productID int64) (model.Rating, error) {
	args := m.Called(ctx, userID, productID)
	r, _ := args.Get(0).(model.Rating)
	return r, args.Error(1)
}

func (m *RatingRepoMock) ListByProductID(ctx context.Context, productID int64, page int, limit int) ([]model.Rating, int64, error) {
	args := m.Called(ctx, productID, page, limit)
	items, _ := args.Get(0).([]model.Rating)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *RatingRepoMock) AggregateByProductIDs(ctx context.Context, productIDs []int64) ([]repo.RatingAggregate, error) {
	args := m.Called(ctx, productIDs)
	aggs, _ := args.Get(0).([]repo.RatingAggregate)
	return aggs, args.Error(1)
}

type BuyerRepoMock struct{ mock.Mock }

func (m *BuyerRepoMock) FindByID(ctx context.Context, userID int64) (model.Buyer, error) {
	args := m.Called(ctx, userID)
	b, _ := args.Get(0).(model.Buyer)
	return b, args.Error(1)
}

func (m *BuyerRepoMock) Upsert(ctx context.Context, b model.Buyer) (model.Buyer, error) {
	args := m.Called(ctx, b)
	saved, _ := args.Get(0).(model.Buyer)
	return saved, args.Error(1)
}

func (m *BuyerRepoMock) Create(ctx context.Context, b model.Buyer) (model.Buyer, error) {
	args := m.Called(ctx, b)
	created, _ := args.Get(0).(model.Buyer)
	return created, args.Error(1)
}
