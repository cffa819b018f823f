package repository

import "errors"

var (
	//見つかりませんを統一
	ErrNotFound = errors.New("not found")
	//unique制約違反（email/username/voucher codeなど）
	ErrDuplicate = errors.New("duplicate")
)
