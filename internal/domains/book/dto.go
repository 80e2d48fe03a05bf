package book

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// CreateBookRequest - multipart form từ trang add book
// Image (nếu có) được parse riêng ở handler
type CreateBookRequest struct {
	Title      string     `form:"title"`
	Author     string     `form:"author"`
	CategoryID *uuid.UUID `form:"category_id"`
	Quantity   int        `form:"quantity"`

	Image     []byte `form:"-"`
	ImageName string `form:"-"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 200),
		),
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Quantity,
			validation.Min(0).Error("quantity must be >= 0"),
		),
	)
}

// UpdateBookRequest - multipart form từ trang edit book
type UpdateBookRequest struct {
	Title      string     `form:"title"`
	Author     string     `form:"author"`
	CategoryID *uuid.UUID `form:"category_id"`
	Quantity   int        `form:"quantity"`

	Image     []byte `form:"-"`
	ImageName string `form:"-"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 200),
		),
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Quantity,
			validation.Min(0).Error("quantity must be >= 0"),
		),
	)
}

// SearchFilter - query params của catalog listing
// Query: substring match không phân biệt hoa thường trên title/author/category (OR)
// Category: exact match không phân biệt hoa thường trên category name
// Cả hai cùng có → AND
type SearchFilter struct {
	Query    string
	Category string
}
