package category

import (
	"time"

	"github.com/google/uuid"
)

// Category là thể loại sách, name unique
// Xóa category → books tham chiếu bị null (không cascade)
type Category struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
