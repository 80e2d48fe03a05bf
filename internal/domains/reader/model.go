package reader

import (
	"time"

	"github.com/google/uuid"
)

// Reader là hồ sơ thành viên thư viện, key theo email (natural key)
// Được tạo lazy khi một account mượn sách lần đầu - hai accounts dùng chung
// email sẽ merge vào một Reader (upsert-by-natural-key, giữ nguyên behavior gốc)
type Reader struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
