package user

import (
	"database/sql"
	"errors"
	"fmt"

	"gitee.com/taoJie_1/mall-shop/dao"
	"gitee.com/taoJie_1/mall-shop/model/db"
	"gitee.com/taoJie_1/mall-shop/model/dto"
)

// ErrProductNotFound 商品不存在
var ErrProductNotFound = errors.New("商品不存在")

// ErrCartItemNotFound 购物车条目不存在或不属于当前用户
var ErrCartItemNotFound = errors.New("购物车条目不存在")

// CartService 购物车逻辑, 全部以当前登录用户为作用域
type CartService interface {
	Add(userId uint, req *dto.AddToCartRequest) error
	List(userId uint) (*dto.CartResponse, error)
	UpdateQuantity(userId, itemId uint, quantity int) error
	Remove(userId, itemId uint) error
	Clear(userId uint) error
}

type cartService struct{}

func NewCartService() CartService {
	return &cartService{}
}

func (s *cartService) Add(userId uint, req *dto.AddToCartRequest) error {
	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	var product db.Product
	if err := dao.App.ProductDb.GetById(&product, req.ProductId); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProductNotFound
		}
		return fmt.Errorf("查询商品失败[f5h8n]: %w", err)
	}

	return dao.App.CartDb.Add(userId, product.Id, quantity, product.Price)
}

func (s *cartService) List(userId uint) (*dto.CartResponse, error) {
	items := make([]dto.CartItem, 0)
	if err := dao.App.CartDb.GetList(&items, userId); err != nil {
		return nil, fmt.Errorf("查询购物车失败[r7t4q]: %w", err)
	}

	var summary dto.CartSummary
	for i := range items {
		// 封面图取首个款式的首张图
		if len(items[i].ProductVariants) > 0 && len(items[i].ProductVariants[0].Images) > 0 {
			items[i].ProductImage = items[i].ProductVariants[0].Images[0]
		}
		summary.TotalPrice += items[i].Price * float64(items[i].Quantity)
		summary.TotalItems += items[i].Quantity
	}
	summary.ItemCount = len(items)

	return &dto.CartResponse{Items: items, Summary: summary}, nil
}

func (s *cartService) UpdateQuantity(userId, itemId uint, quantity int) error {
	if quantity < 1 {
		return errors.New("数量至少为1")
	}

	var item db.Cart
	if err := dao.App.CartDb.GetByIdAndUser(&item, itemId, userId); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCartItemNotFound
		}
		return fmt.Errorf("查询购物车条目失败[b3c6v]: %w", err)
	}

	return dao.App.CartDb.UpdateQuantity(item.Id, quantity)
}

func (s *cartService) Remove(userId, itemId uint) error {
	err := dao.App.CartDb.Delete(itemId, userId)
	if errors.Is(err, dao.ErrNoRows) {
		return ErrCartItemNotFound
	}
	return err
}

func (s *cartService) Clear(userId uint) error {
	return dao.App.CartDb.Clear(userId)
}
