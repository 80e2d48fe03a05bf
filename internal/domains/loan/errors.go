package loan

import "errors"

var (
	ErrLoanNotFound = errors.New("borrow record not found")

	// ErrOutOfStock - sách đã hết bản available
	ErrOutOfStock = errors.New("book is out of stock")

	// ErrProfileIncomplete - account không có email, không resolve được Reader
	ErrProfileIncomplete = errors.New("account has no email, please update your profile")

	// ErrNotLoanOwner - trả sách của loan thuộc reader khác → forbidden, không phải not-found
	ErrNotLoanOwner = errors.New("you do not have permission to return this book")
)
