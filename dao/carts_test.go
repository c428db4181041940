package dao

import (
	"sync"
	"testing"

	"gitee.com/taoJie_1/mall-shop/model/db"
)

func TestCartAddAccumulatesQuantity(t *testing.T) {
	setupTestDB(t)

	if err := App.CartDb.Add(1, 7, 2, 99.9); err != nil {
		t.Fatalf("首次加购失败: %v", err)
	}
	if err := App.CartDb.Add(1, 7, 3, 99.9); err != nil {
		t.Fatalf("再次加购失败: %v", err)
	}

	var list []db.Cart
	if err := fetchCartRows(&list, 1); err != nil {
		t.Fatalf("读取购物车失败: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("同一商品应只有一条记录, 实际 %d 条", len(list))
	}
	if list[0].Quantity != 5 {
		t.Errorf("期望数量5, 实际 %d", list[0].Quantity)
	}
}

// 并发加购同一商品不应插出重复条目
func TestCartAddConcurrentSameProduct(t *testing.T) {
	setupTestDB(t)

	const workers = 4
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			errs[n] = App.CartDb.Add(2, 9, 1, 59)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("第%d次并发加购失败: %v", i, err)
		}
	}

	var list []db.Cart
	if err := fetchCartRows(&list, 2); err != nil {
		t.Fatalf("读取购物车失败: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("并发加购后应只有一条记录, 实际 %d 条", len(list))
	}
	if list[0].Quantity != workers {
		t.Errorf("期望数量 %d, 实际 %d", workers, list[0].Quantity)
	}
}

// GetList带商品表join, 测试库没有products表, 直接查carts
func fetchCartRows(list *[]db.Cart, userId uint) error {
	return DB.Select(list, "SELECT * FROM `carts` WHERE `user_id` = ?", userId)
}
