package book

import (
	"time"

	"github.com/google/uuid"
)

// Book là một đầu sách trong catalog
// Invariant: 0 ≤ Available ≤ Quantity sau mọi mutation
type Book struct {
	ID     uuid.UUID `db:"id" json:"id"`
	Title  string    `db:"title" json:"title"`
	Author string    `db:"author" json:"author"`

	// Category là weak reference - xóa category thì field này thành null
	CategoryID   *uuid.UUID `db:"category_id" json:"category_id,omitempty"`
	CategoryName *string    `db:"category_name" json:"category_name,omitempty"`

	Quantity  int `db:"quantity" json:"quantity"`   // tổng số bản sở hữu
	Available int `db:"available" json:"available"` // số bản chưa cho mượn

	ImageKey *string `db:"image_key" json:"-"`
	ImageURL *string `db:"image_url" json:"image_url,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ApplyQuantityChange đổi quantity và điều chỉnh available theo cùng delta,
// clamp vào [0, quantity]. Đây là availability rule khi staff edit sách:
// nhập thêm 2 bản → available +2; giảm quantity → available giảm theo nhưng không âm.
func (b *Book) ApplyQuantityChange(newQuantity int) {
	delta := newQuantity - b.Quantity
	b.Quantity = newQuantity
	b.Available = ClampAvailable(b.Available+delta, newQuantity)
}

// ClampAvailable clamp available vào [0, quantity]
func ClampAvailable(available, quantity int) int {
	if available < 0 {
		return 0
	}
	if available > quantity {
		return quantity
	}
	return available
}
