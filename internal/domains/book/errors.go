package book

import "errors"

var (
	ErrBookNotFound = errors.New("book not found")

	// ErrBookOnLoan chặn việc xóa sách đang có người mượn
	ErrBookOnLoan = errors.New("book has outstanding loans and cannot be deleted")

	ErrInvalidImage = errors.New("invalid image file")
)
