package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

func TestListProducts_NormalizesPagination(t *testing.T) {
	products := new(ProductRepoMock)
	ratings := new(RatingRepoMock)
	users := new(UserRepoMock)

	//page/limitの不正値は400にせずデフォルトに寄せる
	products.On("List", mock.Anything, repo.ProductListQuery{Page: 1, Limit: 10}).
		Return([]model.Product{}, int64(0), nil)
	ratings.On("AggregateByProductIDs", mock.Anything, []int64{}).Return([]repo.RatingAggregate{}, nil)
	users.On("FindByIDs", mock.Anything, []int64{}).Return([]model.User{}, nil)

	uc := NewProductUsecase(products, ratings, users)

	out, err := uc.List(context.Background(), ListProductsInput{Page: -3, Limit: 0})
	assert.NoError(t, err)
	assert.Equal(t, 1, out.Meta.Page)
	assert.Equal(t, 10, out.Meta.Limit)
}

func TestListProducts_ClampsLimitTo100(t *testing.T) {
	products := new(ProductRepoMock)
	ratings := new(RatingRepoMock)
	users := new(UserRepoMock)

	products.On("List", mock.Anything, repo.ProductListQuery{Page: 1, Limit: 100}).
		Return([]model.Product{}, int64(0), nil)
	ratings.On("AggregateByProductIDs", mock.Anything, []int64{}).Return([]repo.RatingAggregate{}, nil)
	users.On("FindByIDs", mock.Anything, []int64{}).Return([]model.User{}, nil)

	uc := NewProductUsecase(products, ratings, users)

	out, err := uc.List(context.Background(), ListProductsInput{Page: 1, Limit: 9999})
	assert.NoError(t, err)
	assert.Equal(t, 100, out.Meta.Limit)
}

func TestListProducts_AttachesRatingsAndOwners(t *testing.T) {
	products := new(ProductRepoMock)
	ratings := new(RatingRepoMock)
	users := new(UserRepoMock)

	products.On("List", mock.Anything, mock.Anything).Return([]model.Product{
		{ID: 1, Name: "mug", Price: d("12.00"), UserID: 10},
		{ID: 2, Name: "plate", Price: d("8.50"), UserID: 11},
	}, int64(2), nil)
	ratings.On("AggregateByProductIDs", mock.Anything, []int64{1, 2}).Return([]repo.RatingAggregate{
		{ProductID: 1, Average: 4.3333, Count: 3},
	}, nil)
	users.On("FindByIDs", mock.Anything, []int64{10, 11}).Return([]model.User{
		{ID: 10, Username: "alice"},
		{ID: 11, Username: "bob"},
	}, nil)

	uc := NewProductUsecase(products, ratings, users)

	out, err := uc.List(context.Background(), ListProductsInput{})
	assert.NoError(t, err)
	assert.Len(t, out.Data, 2)

	//rating持ちの商品は平均が2桁丸めで付く
	assert.NotNil(t, out.Data[0].AvgRating)
	assert.Equal(t, 4.33, *out.Data[0].AvgRating)
	assert.Equal(t, int64(3), out.Data[0].RatingCount)
	assert.Equal(t, "alice", out.Data[0].User.Username)

	//rating無しの商品はnull + 0件
	assert.Nil(t, out.Data[1].AvgRating)
	assert.Equal(t, int64(0), out.Data[1].RatingCount)
	assert.Equal(t, "bob", out.Data[1].User.Username)

	assert.Equal(t, int64(2), out.Meta.Total)
	assert.Equal(t, 1, out.Meta.TotalPages)
}

func TestGetProductDetail_NotFound(t *testing.T) {
	products := new(ProductRepoMock)
	products.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	uc := NewProductUsecase(products, new(RatingRepoMock), new(UserRepoMock))

	_, err := uc.GetDetail(context.Background(), 99)
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestCreateProduct_RequiresNameAndPrice(t *testing.T) {
	products := new(ProductRepoMock)
	uc := NewProductUsecase(products, new(RatingRepoMock), new(UserRepoMock))

	price := d("10.00")
	tests := []struct {
		name string
		in   CreateProductInput
	}{
		{"name空", CreateProductInput{Price: &price}},
		{"price無し", CreateProductInput{Name: "mug"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), 1, tt.in)
			he, ok := AsHTTPError(err)
			assert.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, he.Status)
		})
	}
	products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateProduct_RoundsPriceAndRecordsOwner(t *testing.T) {
	products := new(ProductRepoMock)
	products.On("Create", mock.Anything, mock.Anything).Return(model.Product{
		ID: 5, Name: "mug", Price: d("12.35"), UserID: 7,
	}, nil)

	uc := NewProductUsecase(products, new(RatingRepoMock), new(UserRepoMock))

	price := d("12.345")
	out, err := uc.Create(context.Background(), 7, CreateProductInput{Name: "mug", Price: &price})
	assert.NoError(t, err)
	assert.Equal(t, int64(5), out.ID)

	created := products.Calls[0].Arguments.Get(1).(model.Product)
	assert.True(t, created.Price.Equal(d("12.35")), "price rounded, got %s", created.Price)
	assert.Equal(t, int64(7), created.UserID)
}

func TestUpdateProduct_PartialFieldOverwrite(t *testing.T) {
	products := new(ProductRepoMock)
	products.On("FindByID", mock.Anything, int64(5)).Return(model.Product{
		ID: 5, Name: "mug", Description: "old", Price: d("12.00"), UserID: 7,
	}, nil)
	products.On("Update", mock.Anything, mock.Anything).Return(nil)

	uc := NewProductUsecase(products, new(RatingRepoMock), new(UserRepoMock))

	newName := "big mug"
	out, err := uc.Update(context.Background(), 5, UpdateProductInput{Name: &newName})
	assert.NoError(t, err)
	assert.Equal(t, "big mug", out.Name)
	//指定しなかったフィールドはそのまま
	assert.Equal(t, "old", out.Description)
	assert.True(t, out.Price.Equal(d("12.00")))
}

func TestDeleteProduct_NotFound(t *testing.T) {
	products := new(ProductRepoMock)
	products.On("Delete", mock.Anything, int64(99)).Return(repo.ErrNotFound)

	uc := NewProductUsecase(products, new(RatingRepoMock), new(UserRepoMock))

	err := uc.Delete(context.Background(), 99)
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}
