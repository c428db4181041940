package db

import "gitee.com/taoJie_1/mall-shop/model/enum"

type User struct {
	BaseField
	Name     string        `db:"name" json:"name" info:"昵称"`
	Email    string        `db:"email" json:"email" info:"邮箱"`
	Password string        `db:"password" json:"-" info:"bcrypt哈希"`
	Role     enum.UserRole `db:"role" json:"role" info:"角色"`
}

func (User) TableName() string {
	return `users`
}
