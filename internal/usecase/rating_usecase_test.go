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

func TestUpsertRating_ValueOutOfRange(t *testing.T) {
	ratings := new(RatingRepoMock)
	uc := NewRatingUsecase(ratings, new(ProductRepoMock), new(UserRepoMock))

	for _, v := range []int{0, -1, 6, 100} {
		_, err := uc.Upsert(context.Background(), 1, 1, UpsertRatingInput{Value: v})
		he, ok := AsHTTPError(err)
		assert.True(t, ok, "value=%d", v)
		assert.Equal(t, http.StatusBadRequest, he.Status)
	}
	ratings.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestUpsertRating_UnknownProduct(t *testing.T) {
	products := new(ProductRepoMock)
	products.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	uc := NewRatingUsecase(new(RatingRepoMock), products, new(UserRepoMock))

	_, err := uc.Upsert(context.Background(), 1, 99, UpsertRatingInput{Value: 4})
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestUpsertRating_SecondRatingOverwrites(t *testing.T) {
	products := new(ProductRepoMock)
	products.On("FindByID", mock.Anything, int64(5)).Return(model.Product{ID: 5}, nil)

	ratings := new(RatingRepoMock)
	comment := "good"
	//2回目は同じ行のvalueだけ変わって返る
	ratings.On("Upsert", mock.Anything, mock.Anything).Return(model.Rating{
		ID: 3, UserID: 1, ProductID: 5, Value: 2, Comment: &comment,
	}, nil)

	uc := NewRatingUsecase(ratings, products, new(UserRepoMock))

	out, err := uc.Upsert(context.Background(), 1, 5, UpsertRatingInput{Value: 2, Comment: &comment})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), out.ID)
	assert.Equal(t, 2, out.Value)

	sent := ratings.Calls[0].Arguments.Get(1).(model.Rating)
	assert.Equal(t, int64(1), sent.UserID)
	assert.Equal(t, int64(5), sent.ProductID)
	assert.Equal(t, 2, sent.Value)
}

func TestListRatingsByProduct_IncludesAverageAndUsernames(t *testing.T) {
	products := new(ProductRepoMock)
	products.On("FindByID", mock.Anything, int64(5)).Return(model.Product{ID: 5}, nil)

	ratings := new(RatingRepoMock)
	ratings.On("ListByProductID", mock.Anything, int64(5), 1, 10).Return([]model.Rating{
		{ID: 1, UserID: 10, ProductID: 5, Value: 5},
		{ID: 2, UserID: 11, ProductID: 5, Value: 4},
	}, int64(2), nil)
	ratings.On("AggregateByProductIDs", mock.Anything, []int64{5}).Return([]repo.RatingAggregate{
		{ProductID: 5, Average: 4.5, Count: 2},
	}, nil)

	users := new(UserRepoMock)
	users.On("FindByIDs", mock.Anything, []int64{10, 11}).Return([]model.User{
		{ID: 10, Username: "alice"},
		{ID: 11, Username: "bob"},
	}, nil)

	uc := NewRatingUsecase(ratings, products, users)

	out, err := uc.ListByProduct(context.Background(), 5, 0, 0)
	assert.NoError(t, err)
	assert.Len(t, out.Data, 2)
	assert.Equal(t, "alice", out.Data[0].Username)
	assert.Equal(t, "bob", out.Data[1].Username)
	assert.NotNil(t, out.Meta.Average)
	assert.Equal(t, 4.5, *out.Meta.Average)
	assert.Equal(t, int64(2), out.Meta.Count)
}

func TestListRatingsByProduct_UnknownProduct(t *testing.T) {
	products := new(ProductRepoMock)
	products.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	uc := NewRatingUsecase(new(RatingRepoMock), products, new(UserRepoMock))

	_, err := uc.ListByProduct(context.Background(), 99, 1, 10)
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestGetMyRating_NotRatedYet(t *testing.T) {
	ratings := new(RatingRepoMock)
	ratings.On("FindByUserAndProduct", mock.Anything, int64(1), int64(5)).Return(model.Rating{}, repo.ErrNotFound)

	uc := NewRatingUsecase(ratings, new(ProductRepoMock), new(UserRepoMock))

	_, err := uc.GetMine(context.Background(), 1, 5)
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}
