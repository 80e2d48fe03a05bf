package category

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 100),
		),
	)
}
