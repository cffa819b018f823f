package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成（email/username重複はErrDuplicate）
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID int64) (model.User, error)
	//メールからユーザーを一件取得する。
	FindByEmail(ctx context.Context, email string) (model.User, error)
	//複数IDをまとめて取得（注文一覧のuser表示用）
	FindByIDs(ctx context.Context, ids []int64) ([]model.User, error)
	//ロール変更（promote用）
	UpdateRole(ctx context.Context, userID int64, role model.Role) error
	//username/emailの部分一致でID候補を引く（admin注文一覧のq検索）
	SearchIDs(ctx context.Context, q string) ([]int64, error)
}
