package account

import (
	"time"

	"github.com/google/uuid"
)

// Account là authentication identity - tách biệt với Reader (hồ sơ mượn sách)
// Reader được tạo lazy khi account mượn sách lần đầu, key theo email
type Account struct {
	ID       uuid.UUID `db:"id" json:"id"`
	Username string    `db:"username" json:"username"`
	Email    string    `db:"email" json:"email"`

	PasswordHash string `db:"password_hash" json:"-"` // Never expose in JSON

	FullName string  `db:"full_name" json:"full_name"`
	Phone    *string `db:"phone" json:"phone,omitempty"`

	Role Role `db:"role" json:"role"`

	LastLoginAt *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// Role enum - một enumerated role với total ordering thay vì
// hai boolean flags (is_staff, is_superuser) để tránh combinations không xác định
type Role string

const (
	RoleReader    Role = "reader"    // Thành viên thường: mượn/trả sách
	RoleStaff     Role = "staff"     // Quản lý catalog + reports
	RoleSuperuser Role = "superuser" // Full access, admin console
)

// AllRoles returns all valid roles
func AllRoles() []Role {
	return []Role{RoleReader, RoleStaff, RoleSuperuser}
}

// IsValid kiểm tra role hợp lệ
func (r Role) IsValid() bool {
	switch r {
	case RoleReader, RoleStaff, RoleSuperuser:
		return true
	}
	return false
}

// String implements Stringer interface
func (r Role) String() string {
	return string(r)
}

// HasPermission kiểm tra quyền theo hierarchy
// Hierarchy: superuser > staff > reader
func (r Role) HasPermission(required Role) bool {
	hierarchy := map[Role]int{
		RoleReader:    1,
		RoleStaff:     2,
		RoleSuperuser: 3,
	}
	return hierarchy[r] >= hierarchy[required]
}

// RedirectTarget trả về trang đích sau khi login theo role:
// superuser → admin console, staff → staff dashboard, còn lại → catalog home
func (r Role) RedirectTarget() string {
	switch r {
	case RoleSuperuser:
		return "/admin"
	case RoleStaff:
		return "/accounts/staff"
	default:
		return "/"
	}
}

// DisplayName là tên hiển thị: full name nếu có, không thì username
// Dùng làm tên mặc định khi tạo Reader record
func (a *Account) DisplayName() string {
	if a.FullName != "" {
		return a.FullName
	}
	return a.Username
}

// ToDTO convert entity sang DTO, không expose sensitive data
func (a *Account) ToDTO() AccountDTO {
	return AccountDTO{
		ID:          a.ID,
		Username:    a.Username,
		Email:       a.Email,
		FullName:    a.FullName,
		Phone:       a.Phone,
		Role:        a.Role,
		LastLoginAt: a.LastLoginAt,
		CreatedAt:   a.CreatedAt,
	}
}
