package dto

import "gitee.com/taoJie_1/mall-shop/model/db"

// AddToCartRequest 加购请求体
type AddToCartRequest struct {
	ProductId uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// UpdateCartRequest 修改购物车条目数量
type UpdateCartRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// CartSummary 购物车汇总
type CartSummary struct {
	TotalPrice float64 `json:"total_price"`
	TotalItems int     `json:"total_items"`
	ItemCount  int     `json:"item_count"`
}

// CartItem 购物车条目(带商品快照)
type CartItem struct {
	db.Cart
	ProductName     string          `db:"product_name" json:"product_name"`
	ProductVariants db.JSONVariants `db:"variants" json:"-"`
	ProductImage    string          `db:"-" json:"product_image,omitempty"`
}

// CartResponse 购物车列表响应体
type CartResponse struct {
	Items   []CartItem  `json:"items"`
	Summary CartSummary `json:"summary"`
}
