package user

import (
	"fmt"

	"gitee.com/taoJie_1/mall-shop/dao"
	"gitee.com/taoJie_1/mall-shop/model/db"
	"gitee.com/taoJie_1/mall-shop/model/dto"
)

const (
	defaultPageLimit = 12
	maxPageLimit     = 100
)

// ProductService 商品与分类的查询逻辑
type ProductService interface {
	List(filter *dto.ProductFilter) (*dto.ProductListResponse, error)
	Get(id uint) (*db.Product, error)
	Categories() ([]db.Category, error)
}

type productService struct{}

func NewProductService() ProductService {
	return &productService{}
}

func (s *productService) List(filter *dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	total, err := dao.App.ProductDb.Count(filter)
	if err != nil {
		return nil, fmt.Errorf("统计商品数量失败[y6u1o]: %w", err)
	}

	products := make([]db.Product, 0, filter.Limit)
	if total > 0 {
		if err := dao.App.ProductDb.GetList(&products, filter); err != nil {
			return nil, fmt.Errorf("查询商品列表失败[i8w3z]: %w", err)
		}
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &dto.ProductListResponse{
		Products: products,
		Pagination: dto.Pagination{
			CurrentPage:   filter.Page,
			TotalPages:    totalPages,
			TotalProducts: total,
			Limit:         filter.Limit,
			HasNextPage:   filter.Page < totalPages,
			HasPrevPage:   filter.Page > 1,
		},
	}, nil
}

func (s *productService) Get(id uint) (*db.Product, error) {
	var product db.Product
	if err := dao.App.ProductDb.GetById(&product, id); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *productService) Categories() ([]db.Category, error) {
	list := make([]db.Category, 0)
	if err := dao.App.CategoryDb.GetAll(&list); err != nil {
		return nil, fmt.Errorf("查询分类失败[l2k9x]: %w", err)
	}
	return list, nil
}
