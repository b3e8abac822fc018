package model

type Role string

const (
	RoleOrganizer Role = "organizer"
	RoleUser      Role = "user"
)

func (r Role) IsValid() bool {
	return r == RoleOrganizer || r == RoleUser
}

// Toggled 回傳相反的角色
func (r Role) Toggled() Role {
	if r == RoleOrganizer {
		return RoleUser
	}
	return RoleOrganizer
}

// User 目前登入的身分，JSON 欄位即持久化格式
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

