package usecase

import (
	"context"
	"errors"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type AdminUserUsecase struct {
	users repo.UserRepository
}

func NewAdminUserUsecase(users repo.UserRepository) *AdminUserUsecase {
	return &AdminUserUsecase{users: users}
}

// PromoteToAdminは対象ユーザーのroleをADMINにする
func (u *AdminUserUsecase) PromoteToAdmin(ctx context.Context, targetUserID int64) (UserOutput, error) {
	user, err := u.users.FindByID(ctx, targetUserID)
	if errors.Is(err, repo.ErrNotFound) {
		return UserOutput{}, errNotFound("user not found")
	}
	if err != nil {
		return UserOutput{}, errInternal()
	}

	if err := u.users.UpdateRole(ctx, targetUserID, model.RoleAdmin); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return UserOutput{}, errNotFound("user not found")
		}
		return UserOutput{}, errInternal()
	}

	user.Role = model.RoleAdmin
	return toUserOutput(user), nil
}
