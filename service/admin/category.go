package admin

import (
	"errors"
	"fmt"
	"strings"

	"gitee.com/taoJie_1/mall-shop/dao"
	"gitee.com/taoJie_1/mall-shop/model/db"
)

// ErrCategoryExists 同名分类已存在
var ErrCategoryExists = errors.New("该分类已存在")

// CategoryService 后台分类管理
type CategoryService interface {
	Create(name string) (*db.Category, error)
}

type categoryService struct{}

func NewCategoryService() CategoryService {
	return &categoryService{}
}

func (s *categoryService) Create(name string) (*db.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("分类名称不能为空")
	}

	exists, err := dao.App.CategoryDb.NameExists(name)
	if err != nil {
		return nil, fmt.Errorf("查询分类失败[u4i7e]: %w", err)
	}
	if exists {
		return nil, ErrCategoryExists
	}

	id, err := dao.App.CategoryDb.Create(name)
	if err != nil {
		return nil, err
	}
	return &db.Category{BaseField: db.BaseField{Id: id}, Name: name}, nil
}
