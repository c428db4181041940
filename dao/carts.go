package dao

import (
	"database/sql"
	"errors"
	"fmt"

	"gitee.com/taoJie_1/mall-shop/model/db"
	"gitee.com/taoJie_1/mall-shop/model/dto"
	"github.com/jmoiron/sqlx"
)

type CartDb struct {
	dbUtils
}

// Add 加购。已有条目时累加数量, 单价始终取商品当前价格快照。
// 查改插放在同一事务里, 防止并发加购同一商品时插出重复条目
func (d *CartDb) Add(userId, productId uint, quantity int, price float64) error {
	return Tx(func(tx *sqlx.Tx) error {
		var existing db.Cart
		sqlStr := fmt.Sprintf("SELECT * FROM `%s` WHERE `user_id` = ? AND `product_id` = ? LIMIT 1", db.Cart{}.TableName())
		err := tx.Get(&existing, sqlStr, userId, productId)
		if err == nil {
			upSql, args := d.getUpdateSql(db.Cart{}, existing.Id, map[string]interface{}{
				"quantity": existing.Quantity + quantity,
			})
			if _, err := tx.Exec(upSql, args...); err != nil {
				return fmt.Errorf("更新购物车失败[f6w1d]: %w", err)
			}
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		insSql, args, err := d.getInsertSql(db.Cart{}, map[string]interface{}{
			"user_id":    userId,
			"product_id": productId,
			"quantity":   quantity,
			"price":      price,
		})
		if err != nil {
			return err
		}
		if _, err = tx.Exec(insSql, args...); err != nil {
			return fmt.Errorf("加入购物车失败[w6y3e]: %w", err)
		}
		return nil
	})
}

func (d *CartDb) UpdateQuantity(id uint, quantity int) error {
	sqlStr, args := d.getUpdateSql(db.Cart{}, id, map[string]interface{}{
		"quantity": quantity,
	})
	if _, err := DB.Exec(sqlStr, args...); err != nil {
		return fmt.Errorf("更新购物车失败[a9k4j]: %w", err)
	}
	return nil
}

// 条目列表, 带商品名和款式(算封面图用), 按加入时间倒序
func (d *CartDb) GetList(list *[]dto.CartItem, userId uint) error {
	sqlStr := fmt.Sprintf(
		"SELECT c.*, p.`name` AS `product_name`, p.`variants` FROM `%s` c JOIN `%s` p ON p.`id` = c.`product_id` WHERE c.`user_id` = ? ORDER BY c.`created_at` DESC, c.`id` DESC",
		db.Cart{}.TableName(), db.Product{}.TableName())
	return DB.Select(list, sqlStr, userId)
}

// 条目归属校验用
func (d *CartDb) GetByIdAndUser(item *db.Cart, id, userId uint) error {
	sqlStr := fmt.Sprintf("SELECT * FROM `%s` WHERE `id` = ? AND `user_id` = ? LIMIT 1", db.Cart{}.TableName())
	return DB.Get(item, sqlStr, id, userId)
}

func (d *CartDb) Delete(id, userId uint) error {
	sqlStr := fmt.Sprintf("DELETE FROM `%s` WHERE `id` = ? AND `user_id` = ?", db.Cart{}.TableName())
	res, err := DB.Exec(sqlStr, id, userId)
	if err != nil {
		return fmt.Errorf("移除购物车条目失败[t8u1p]: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNoRows
	}
	return nil
}

func (d *CartDb) Clear(userId uint) error {
	sqlStr := fmt.Sprintf("DELETE FROM `%s` WHERE `user_id` = ?", db.Cart{}.TableName())
	if _, err := DB.Exec(sqlStr, userId); err != nil {
		return fmt.Errorf("清空购物车失败[c2v5n]: %w", err)
	}
	return nil
}
