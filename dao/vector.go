package dao

import (
	"context"
	"fmt"
	"strings"

	"gitee.com/taoJie_1/mall-shop/global"
	"gitee.com/taoJie_1/mall-shop/internal/vector"
	"gitee.com/taoJie_1/mall-shop/model/db"
)

// ProductVectorIDPrefix 是向量数据库中商品文档ID的前缀
// 用于区分不同来源的文档，便于管理和识别
const ProductVectorIDPrefix = "shop_product_"

// 向量数据库中元数据的键名
const (
	VectorMetadataKeyName     = "name"
	VectorMetadataKeyBrand    = "brand"
	VectorMetadataKeySourceID = "source_id"
)

type VectorDb struct {
	CollectionName string
}

// BatchUpsert 将商品向量批量插入或更新到向量数据库
func (d *VectorDb) BatchUpsert(ctx context.Context, products []db.Product) (int, error) {
	if global.VectorDb == nil {
		return 0, fmt.Errorf("向量数据库客户端未初始化")
	}
	if len(products) == 0 {
		return 0, nil
	}

	documents := make([]vector.Document, 0, len(products))
	for _, p := range products {
		if len(p.Embedding) == 0 {
			continue
		}
		documents = append(documents, vector.Document{
			ID: fmt.Sprintf("%s%d", ProductVectorIDPrefix, p.Id),
			Metadata: map[string]interface{}{
				VectorMetadataKeyName:     p.Name,
				VectorMetadataKeyBrand:    p.Brand,
				VectorMetadataKeySourceID: int64(p.Id),
			},
			Embedding: p.Embedding,
		})
	}

	if err := global.VectorDb.Upsert(ctx, d.CollectionName, documents); err != nil {
		return 0, fmt.Errorf("批量更新/插入文档到向量数据库失败: %w", err)
	}

	return len(documents), nil
}

// PruneStale 清理已被删除商品的向量条目
func (d *VectorDb) PruneStale(ctx context.Context, activeIDs []string) (int, error) {
	if global.VectorDb == nil {
		return 0, fmt.Errorf("向量数据库客户端未初始化")
	}

	existingIDs, err := global.VectorDb.ListIDs(ctx, d.CollectionName)
	if err != nil {
		return 0, fmt.Errorf("从向量数据库获取所有文档ID失败: %w", err)
	}
	if len(existingIDs) == 0 {
		return 0, nil
	}

	activeIDSet := make(map[string]struct{}, len(activeIDs))
	for _, id := range activeIDs {
		activeIDSet[id] = struct{}{}
	}

	var staleIDs []string
	for _, id := range existingIDs {
		if !strings.HasPrefix(id, ProductVectorIDPrefix) {
			continue
		}
		if _, ok := activeIDSet[id]; !ok {
			staleIDs = append(staleIDs, id)
		}
	}

	if len(staleIDs) == 0 {
		return 0, nil
	}

	n, err := global.VectorDb.DeleteByIDs(ctx, d.CollectionName, staleIDs)
	if err != nil {
		return 0, fmt.Errorf("从向量数据库删除过期条目失败: %w", err)
	}
	return n, nil
}

// DeleteByIDs 按向量文档id删除, 商品删除时调用
func (d *VectorDb) DeleteByIDs(ctx context.Context, ids []string) (int, error) {
	if global.VectorDb == nil {
		return 0, fmt.Errorf("向量数据库客户端未初始化")
	}
	return global.VectorDb.DeleteByIDs(ctx, d.CollectionName, ids)
}
