package dao

import (
	"fmt"
	"strings"

	"gitee.com/taoJie_1/mall-shop/model/db"
	"gitee.com/taoJie_1/mall-shop/model/dto"
)

type ProductDb struct {
	dbUtils
}

// 列表查询不选取向量列, 该列可能很大
const productListColumns = "`id`, `created_at`, `updated_at`, `name`, `brand`, `category_id`, `sub_category`, `price`, `description`, `size_type`, `fabric`, `fit_type`, `sleeve_type`, `collections`, `variants`, `embedding_text`"

// 排序字段白名单, 防注入
var productSortColumns = map[string]string{
	"price":      "price",
	"name":       "name",
	"created_at": "created_at",
}

// buildFilter 根据筛选参数构建WHERE子句
// 颜色/尺码/专题存在JSON列中, 用LIKE在JSON文本上匹配
func (d *ProductDb) buildFilter(f *dto.ProductFilter) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)

	if f.CategoryId > 0 {
		conds = append(conds, "`category_id` = ?")
		args = append(args, f.CategoryId)
	}
	if f.SubCategory != "" {
		conds = append(conds, "`sub_category` = ?")
		args = append(args, f.SubCategory)
	}
	if f.Brand != "" {
		conds = append(conds, "`brand` LIKE ?")
		args = append(args, "%"+f.Brand+"%")
	}
	if f.MinPrice > 0 {
		conds = append(conds, "`price` >= ?")
		args = append(args, f.MinPrice)
	}
	if f.MaxPrice > 0 {
		conds = append(conds, "`price` <= ?")
		args = append(args, f.MaxPrice)
	}
	if f.SizeType != "" {
		conds = append(conds, "`size_type` = ?")
		args = append(args, f.SizeType)
	}
	if f.Fabric != "" {
		conds = append(conds, "`fabric` LIKE ?")
		args = append(args, "%"+f.Fabric+"%")
	}
	if f.FitType != "" {
		conds = append(conds, "`fit_type` = ?")
		args = append(args, f.FitType)
	}
	if f.SleeveType != "" {
		conds = append(conds, "`sleeve_type` = ?")
		args = append(args, f.SleeveType)
	}
	if f.Color != "" {
		conds = append(conds, "`variants` LIKE ?")
		args = append(args, `%"color":%`+f.Color+`%`)
	}
	if f.Size != "" {
		conds = append(conds, "`variants` LIKE ?")
		args = append(args, `%"size":"`+f.Size+`"%`)
	}
	if f.Collection != "" {
		conds = append(conds, "`collections` LIKE ?")
		args = append(args, "%"+f.Collection+"%")
	}
	if f.Search != "" {
		conds = append(conds, "(`name` LIKE ? OR `description` LIKE ? OR `brand` LIKE ?)")
		kw := "%" + f.Search + "%"
		args = append(args, kw, kw, kw)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// 条件统计总数, 供分页用
func (d *ProductDb) Count(f *dto.ProductFilter) (int64, error) {
	where, args := d.buildFilter(f)
	var n int64
	sql := fmt.Sprintf("SELECT COUNT(*) FROM `%s`%s", db.Product{}.TableName(), where)
	err := DB.Get(&n, sql, args...)
	return n, err
}

// 条件分页查询
func (d *ProductDb) GetList(list *[]db.Product, f *dto.ProductFilter) error {
	where, args := d.buildFilter(f)

	sortCol, ok := productSortColumns[f.SortBy]
	if !ok {
		sortCol = "created_at"
	}
	order := "DESC"
	if strings.EqualFold(f.SortOrder, "asc") {
		order = "ASC"
	}

	offset := (f.Page - 1) * f.Limit
	sql := fmt.Sprintf("SELECT %s FROM `%s`%s ORDER BY `%s` %s, `id` %s LIMIT ? OFFSET ?",
		productListColumns, db.Product{}.TableName(), where, sortCol, order, order)
	args = append(args, f.Limit, offset)

	return DB.Select(list, sql, args...)
}

func (d *ProductDb) GetById(product *db.Product, id uint) error {
	sql := fmt.Sprintf("SELECT %s FROM `%s` WHERE `id` = ? LIMIT 1", productListColumns, db.Product{}.TableName())
	return DB.Get(product, sql, id)
}

// 按id集合查询, 用于购物车与聊天商品卡片
func (d *ProductDb) GetByIds(list *[]db.Product, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := "?" + strings.Repeat(", ?", len(ids)-1)
	sql := fmt.Sprintf("SELECT %s FROM `%s` WHERE `id` IN (%s)", productListColumns, db.Product{}.TableName(), placeholders)

	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return DB.Select(list, sql, args...)
}

// 加载所有已有向量的商品, 用于构建内存索引
func (d *ProductDb) GetAllWithEmbedding(list *[]db.Product) error {
	sql := fmt.Sprintf("SELECT * FROM `%s` WHERE `embedding` IS NOT NULL AND `embedding` != '' AND `embedding` != '[]' ORDER BY `id` ASC", db.Product{}.TableName())
	return DB.Select(list, sql)
}

// 加载全部商品(不含向量列), 供向量化任务遍历
func (d *ProductDb) GetAllForEmbedding(list *[]db.Product) error {
	sql := fmt.Sprintf("SELECT %s FROM `%s` ORDER BY `id` ASC", productListColumns, db.Product{}.TableName())
	return DB.Select(list, sql)
}

// 全部商品id, 供向量库清理过期条目
func (d *ProductDb) GetAllIds(ids *[]uint) error {
	sql := fmt.Sprintf("SELECT `id` FROM `%s` ORDER BY `id` ASC", db.Product{}.TableName())
	return DB.Select(ids, sql)
}

func (d *ProductDb) Create(p *db.Product) (uint, error) {
	sqlStr, args, err := d.getInsertSql(db.Product{}, map[string]interface{}{
		"name":           p.Name,
		"brand":          p.Brand,
		"category_id":    p.CategoryId,
		"sub_category":   p.SubCategory,
		"price":          p.Price,
		"description":    p.Description,
		"size_type":      p.SizeType,
		"fabric":         p.Fabric,
		"fit_type":       p.FitType,
		"sleeve_type":    p.SleeveType,
		"collections":    p.Collections,
		"variants":       p.Variants,
		"embedding":      "",
		"embedding_text": "",
	})
	if err != nil {
		return 0, err
	}

	res, err := DB.Exec(sqlStr, args...)
	if err != nil {
		return 0, fmt.Errorf("创建商品失败[q5n7d]: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// 更新指定字段
func (d *ProductDb) Update(id uint, data map[string]interface{}) error {
	sqlStr, args := d.getUpdateSql(db.Product{}, id, data)
	if sqlStr == "" {
		return nil
	}
	if _, err := DB.Exec(sqlStr, args...); err != nil {
		return fmt.Errorf("更新商品失败[z1x9b]: %w", err)
	}
	return nil
}

// 保存向量化结果
func (d *ProductDb) SaveEmbedding(id uint, embedding db.JSONVector, text string) error {
	return d.Update(id, map[string]interface{}{
		"embedding":      embedding,
		"embedding_text": text,
	})
}

func (d *ProductDb) Delete(id uint) error {
	sql := fmt.Sprintf("DELETE FROM `%s` WHERE `id` = ?", db.Product{}.TableName())
	res, err := DB.Exec(sql, id)
	if err != nil {
		return fmt.Errorf("删除商品失败[m4r2w]: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNoRows
	}
	return nil
}
