package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"gitee.com/taoJie_1/mall-shop/dao"
	"gitee.com/taoJie_1/mall-shop/global"
	"gitee.com/taoJie_1/mall-shop/model/db"
	"gitee.com/taoJie_1/mall-shop/model/dto"
	"gitee.com/taoJie_1/mall-shop/task"
)

// 商品变更后延迟触发向量化任务, 合并连续的后台编辑操作
const embedDebounceDelay = 30 * time.Second

// ErrProductNotFound 商品不存在
var ErrProductNotFound = errors.New("商品不存在")

// ProductService 后台商品管理
type ProductService interface {
	Create(req *dto.UpsertProductRequest, form *multipart.Form) (*db.Product, error)
	Update(id uint, req *dto.UpsertProductRequest, form *multipart.Form) (*db.Product, error)
	Delete(ctx context.Context, id uint) error
}

type productService struct {
	upload      UploadService
	taskManager *task.Manager
}

func NewProductService(upload UploadService, taskManager *task.Manager) ProductService {
	return &productService{
		upload:      upload,
		taskManager: taskManager,
	}
}

// parseVariants 解析表单中的variants字段并上传每个款式的新图片。
// 图片文件的字段名约定为 variant_{i}_image_{j}。
func (s *productService) parseVariants(raw string, form *multipart.Form) (db.JSONVariants, error) {
	if strings.TrimSpace(raw) == "" {
		return db.JSONVariants{}, nil
	}

	var metas []dto.VariantMeta
	if err := json.Unmarshal([]byte(raw), &metas); err != nil {
		return nil, fmt.Errorf("款式数据格式错误: %w", err)
	}

	variants := make(db.JSONVariants, 0, len(metas))
	for i, meta := range metas {
		images := append([]string{}, meta.ExistingImages...)

		if form != nil {
			prefix := fmt.Sprintf("variant_%d_image_", i)
			for field, files := range form.File {
				if !strings.HasPrefix(field, prefix) {
					continue
				}
				for _, file := range files {
					url, err := s.upload.UploadImage(file)
					if err != nil {
						return nil, fmt.Errorf("款式 %d 的图片上传失败: %w", i+1, err)
					}
					images = append(images, url)
				}
			}
		}

		variants = append(variants, db.Variant{
			Color:     meta.Color,
			ColorCode: meta.ColorCode,
			Images:    images,
			Sizes:     meta.Sizes,
		})
	}
	return variants, nil
}

func parseCollections(raw string) (db.JSONStrings, error) {
	if strings.TrimSpace(raw) == "" {
		return db.JSONStrings{}, nil
	}
	var collections db.JSONStrings
	if err := json.Unmarshal([]byte(raw), &collections); err != nil {
		return nil, fmt.Errorf("专题数据格式错误: %w", err)
	}
	return collections, nil
}

func (s *productService) Create(req *dto.UpsertProductRequest, form *multipart.Form) (*db.Product, error) {
	if strings.TrimSpace(req.Name) == "" || req.Price <= 0 {
		return nil, errors.New("商品名称和价格不能为空")
	}

	variants, err := s.parseVariants(req.Variants, form)
	if err != nil {
		return nil, err
	}
	collections, err := parseCollections(req.Collections)
	if err != nil {
		return nil, err
	}

	product := &db.Product{
		Name:        strings.TrimSpace(req.Name),
		Brand:       req.Brand,
		CategoryId:  req.CategoryId,
		SubCategory: req.SubCategory,
		Price:       req.Price,
		Description: req.Description,
		SizeType:    req.SizeType,
		Fabric:      req.Fabric,
		FitType:     req.FitType,
		SleeveType:  req.SleeveType,
		Collections: collections,
		Variants:    variants,
	}

	id, err := dao.App.ProductDb.Create(product)
	if err != nil {
		return nil, err
	}
	product.Id = id

	// 新商品还没有向量, 延迟触发向量化任务
	s.taskManager.DebounceEmbed(embedDebounceDelay)
	return product, nil
}

func (s *productService) Update(id uint, req *dto.UpsertProductRequest, form *multipart.Form) (*db.Product, error) {
	var existing db.Product
	if err := dao.App.ProductDb.GetById(&existing, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("查询商品失败[x2z6a]: %w", err)
	}

	variants, err := s.parseVariants(req.Variants, form)
	if err != nil {
		return nil, err
	}
	collections, err := parseCollections(req.Collections)
	if err != nil {
		return nil, err
	}

	data := map[string]interface{}{
		"name":         strings.TrimSpace(req.Name),
		"brand":        req.Brand,
		"category_id":  req.CategoryId,
		"sub_category": req.SubCategory,
		"price":        req.Price,
		"description":  req.Description,
		"size_type":    req.SizeType,
		"fabric":       req.Fabric,
		"fit_type":     req.FitType,
		"sleeve_type":  req.SleeveType,
		"collections":  collections,
		"variants":     variants,
		// 内容变了, 旧向量作废, 等向量化任务重建
		"embedding":      "",
		"embedding_text": "",
	}

	if err := dao.App.ProductDb.Update(id, data); err != nil {
		return nil, err
	}

	var updated db.Product
	if err := dao.App.ProductDb.GetById(&updated, id); err != nil {
		return nil, err
	}

	s.taskManager.DebounceEmbed(embedDebounceDelay)
	return &updated, nil
}

func (s *productService) Delete(ctx context.Context, id uint) error {
	if err := dao.App.ProductDb.Delete(id); err != nil {
		if errors.Is(err, dao.ErrNoRows) {
			return ErrProductNotFound
		}
		return err
	}

	// 同步清理向量库中的条目, 失败只记录日志
	if global.VectorDb != nil {
		vectorID := fmt.Sprintf("%s%d", dao.ProductVectorIDPrefix, id)
		if _, err := dao.App.VectorDb.DeleteByIDs(ctx, []string{vectorID}); err != nil {
			global.Log.Warnf("删除商品 %d 的向量条目失败: %v", id, err)
		}
	}

	// 内存索引里还留着该商品, 重载去掉它
	if err := s.taskManager.ReloadIndex(); err != nil {
		global.Log.Warnf("删除商品后重载索引失败: %v", err)
	}
	return nil
}
