package dao

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gitee.com/taoJie_1/mall-shop/model/db"
	"gitee.com/taoJie_1/mall-shop/model/enum"
)

type UserDb struct {
	dbUtils
}

// ErrNoRows 查询无结果
var ErrNoRows = sql.ErrNoRows

// 按邮箱查用户, 邮箱不区分大小写
func (d *UserDb) GetByEmail(user *db.User, email string) error {
	sql := fmt.Sprintf("SELECT * FROM `%s` WHERE `email` = ? LIMIT 1", db.User{}.TableName())
	return DB.Get(user, sql, strings.ToLower(strings.TrimSpace(email)))
}

func (d *UserDb) GetById(user *db.User, id uint) error {
	sql := fmt.Sprintf("SELECT * FROM `%s` WHERE `id` = ? LIMIT 1", db.User{}.TableName())
	return DB.Get(user, sql, id)
}

// 邮箱是否已注册
func (d *UserDb) EmailExists(email string) (bool, error) {
	var n int64
	sql := fmt.Sprintf("SELECT COUNT(*) FROM `%s` WHERE `email` = ?", db.User{}.TableName())
	if err := DB.Get(&n, sql, strings.ToLower(strings.TrimSpace(email))); err != nil {
		return false, err
	}
	return n > 0, nil
}

// 创建用户, 返回新id
func (d *UserDb) Create(user *db.User) (uint, error) {
	if user.Role == "" {
		user.Role = enum.RoleUser
	}

	sqlStr, args, err := d.getInsertSql(db.User{}, map[string]interface{}{
		"name":     user.Name,
		"email":    strings.ToLower(strings.TrimSpace(user.Email)),
		"password": user.Password,
		"role":     user.Role,
	})
	if err != nil {
		return 0, err
	}

	res, err := DB.Exec(sqlStr, args...)
	if err != nil {
		return 0, fmt.Errorf("创建用户失败[k3m1s]: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// 购物车总件数, 用于向AI描述用户状态
func (d *UserDb) CartItemCount(userId uint) (int64, error) {
	if userId == 0 {
		return 0, errors.New("用户id为空[v8wqe]")
	}
	var n sql.NullInt64
	sqlStr := fmt.Sprintf("SELECT SUM(`quantity`) FROM `%s` WHERE `user_id` = ?", db.Cart{}.TableName())
	if err := DB.Get(&n, sqlStr, userId); err != nil {
		return 0, err
	}
	return n.Int64, nil
}
