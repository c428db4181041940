package dao

import (
	"fmt"
	"strings"

	"gitee.com/taoJie_1/mall-shop/model/db"
)

type CategoryDb struct {
	dbUtils
}

// 全部分类, 按名称排序
func (d *CategoryDb) GetAll(list *[]db.Category) error {
	sql := fmt.Sprintf("SELECT * FROM `%s` ORDER BY `name` ASC", db.Category{}.TableName())
	return DB.Select(list, sql)
}

func (d *CategoryDb) GetById(category *db.Category, id uint) error {
	sql := fmt.Sprintf("SELECT * FROM `%s` WHERE `id` = ? LIMIT 1", db.Category{}.TableName())
	return DB.Get(category, sql, id)
}

// 同名分类是否存在, 名称不区分大小写
func (d *CategoryDb) NameExists(name string) (bool, error) {
	var n int64
	sql := fmt.Sprintf("SELECT COUNT(*) FROM `%s` WHERE LOWER(`name`) = LOWER(?)", db.Category{}.TableName())
	if err := DB.Get(&n, sql, strings.TrimSpace(name)); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (d *CategoryDb) Create(name string) (uint, error) {
	sqlStr, args, err := d.getInsertSql(db.Category{}, map[string]interface{}{
		"name": strings.TrimSpace(name),
	})
	if err != nil {
		return 0, err
	}

	res, err := DB.Exec(sqlStr, args...)
	if err != nil {
		return 0, fmt.Errorf("创建分类失败[h7t2c]: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
