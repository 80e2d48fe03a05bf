package reader

import (
	"context"
)

type Repository interface {
	// GetOrCreate resolve reader theo email; tạo mới với name/phone defaults
	// nếu chưa có. Defaults chỉ áp dụng lúc tạo - reader tồn tại giữ nguyên thông tin.
	GetOrCreate(ctx context.Context, email, name, phone string) (*Reader, error)

	FindByEmail(ctx context.Context, email string) (*Reader, error)
	Count(ctx context.Context) (int, error)
}
