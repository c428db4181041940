package initialize

import (
	"fmt"
	"time"

	"gitee.com/taoJie_1/mall-shop/dao"
	"gitee.com/taoJie_1/mall-shop/global"
	"gitee.com/taoJie_1/mall-shop/model/enum"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

type mysql struct{}
type sqlite struct{}

// dbStart 根据配置初始化数据库连接并确保表结构存在
func (i *Initializer) dbStart() error {
	var dbRes interface {
		connect() error
		version() string
		schema() []string
	}

	switch global.Config.Database.Type {
	case string(enum.MYSQL):
		dbRes = &mysql{}
	case string(enum.SQLITE):
		dbRes = &sqlite{}
	default:
		dbRes = &sqlite{}
	}

	if err := dbRes.connect(); err != nil {
		return err
	}

	for _, ddl := range dbRes.schema() {
		if _, err := dao.DB.Exec(ddl); err != nil {
			return fmt.Errorf("初始化表结构失败[w2e9s]: %w", err)
		}
	}
	return nil
}

// dbClose 关闭数据库连接
func (i *Initializer) dbClose() error {
	if dao.DB != nil {
		return dao.DB.Close()
	}
	return nil
}

func (s *sqlite) connect() error {
	var err error

	// _txlock=immediate让事务一开始就拿写锁, 并发写事务排队等待而不是升级锁时死锁
	dsn := global.Config.Database.SqlitePath + "?_txlock=immediate"
	if dao.DB, err = sqlx.Open(string(enum.SQLITE), dsn); err != nil {
		return fmt.Errorf("数据库连接失败: %w", err)
	}
	if err = dao.DB.Ping(); err != nil {
		return fmt.Errorf("数据库连接失败: %w", err)
	}

	dao.DB.SetMaxOpenConns(16)
	dao.DB.SetMaxIdleConns(8)
	dao.DB.SetConnMaxLifetime(time.Minute * 5)

	if _, err = dao.DB.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return fmt.Errorf("数据库设置失败: %w", err)
	}
	if _, err = dao.DB.Exec("PRAGMA busy_timeout = 10000;"); err != nil {
		return fmt.Errorf("数据库设置失败: %w", err)
	}
	if _, err = dao.DB.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		return fmt.Errorf("数据库设置失败: %w", err)
	}

	global.Log.Infof("%s版本: %s; 地址: %s", global.Config.Database.Type, s.version(), global.Config.Database.SqlitePath)
	return nil
}

func (m *mysql) connect() error {
	var err error
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local", global.Config.Database.MysqlUsername, global.Config.Database.MysqlPassword, global.Config.Database.MysqlHost, global.Config.Database.MysqlPort, global.Config.Database.MysqlDbname)

	if dao.DB, err = sqlx.Connect(string(enum.MYSQL), dsn); err != nil {
		return fmt.Errorf("数据库连接失败[rwbhe3]: %s\n%w", dsn, err)
	}

	dao.DB.SetMaxOpenConns(16)
	dao.DB.SetMaxIdleConns(8)
	dao.DB.SetConnMaxLifetime(time.Minute * 5)

	if err = dao.DB.Ping(); err != nil {
		return fmt.Errorf("数据库连接失败: %s\n%w", dsn, err)
	}

	global.Log.Infof("%s版本: %s; 地址: @tcp(%s:%s)/%s", global.Config.Database.Type, m.version(), global.Config.Database.MysqlHost, global.Config.Database.MysqlPort, global.Config.Database.MysqlDbname)
	return nil
}

func (*sqlite) version() (t string) {
	if err := dao.DB.Get(&t, `SELECT sqlite_version()`); err != nil {
		global.Log.Warnf("查询sqlite版本失败: %v", err)
	}
	return
}

func (*mysql) version() (t string) {
	if err := dao.DB.Get(&t, `SELECT version()`); err != nil {
		global.Log.Warnf("查询mysql版本失败: %v", err)
	}
	return
}

func (*sqlite) schema() []string {
	return []string{
		"CREATE TABLE IF NOT EXISTS `users` (`id` INTEGER PRIMARY KEY AUTOINCREMENT, `created_at` INTEGER NOT NULL DEFAULT 0, `updated_at` INTEGER NOT NULL DEFAULT 0, `name` TEXT NOT NULL DEFAULT '', `email` TEXT NOT NULL UNIQUE, `password` TEXT NOT NULL, `role` TEXT NOT NULL DEFAULT 'user')",
		"CREATE TABLE IF NOT EXISTS `categories` (`id` INTEGER PRIMARY KEY AUTOINCREMENT, `created_at` INTEGER NOT NULL DEFAULT 0, `updated_at` INTEGER NOT NULL DEFAULT 0, `name` TEXT NOT NULL UNIQUE)",
		"CREATE TABLE IF NOT EXISTS `products` (`id` INTEGER PRIMARY KEY AUTOINCREMENT, `created_at` INTEGER NOT NULL DEFAULT 0, `updated_at` INTEGER NOT NULL DEFAULT 0, `name` TEXT NOT NULL, `brand` TEXT NOT NULL DEFAULT '', `category_id` INTEGER NOT NULL DEFAULT 0, `sub_category` TEXT NOT NULL DEFAULT '', `price` REAL NOT NULL DEFAULT 0, `description` TEXT NOT NULL DEFAULT '', `size_type` TEXT NOT NULL DEFAULT '', `fabric` TEXT NOT NULL DEFAULT '', `fit_type` TEXT NOT NULL DEFAULT '', `sleeve_type` TEXT NOT NULL DEFAULT '', `collections` TEXT NOT NULL DEFAULT '[]', `variants` TEXT NOT NULL DEFAULT '[]', `embedding` TEXT NOT NULL DEFAULT '', `embedding_text` TEXT NOT NULL DEFAULT '')",
		"CREATE TABLE IF NOT EXISTS `carts` (`id` INTEGER PRIMARY KEY AUTOINCREMENT, `created_at` INTEGER NOT NULL DEFAULT 0, `updated_at` INTEGER NOT NULL DEFAULT 0, `user_id` INTEGER NOT NULL, `product_id` INTEGER NOT NULL, `quantity` INTEGER NOT NULL DEFAULT 1, `price` REAL NOT NULL DEFAULT 0)",
		"CREATE INDEX IF NOT EXISTS `idx_carts_user` ON `carts` (`user_id`)",
		"CREATE TABLE IF NOT EXISTS `chat_messages` (`id` INTEGER PRIMARY KEY AUTOINCREMENT, `created_at` INTEGER NOT NULL DEFAULT 0, `updated_at` INTEGER NOT NULL DEFAULT 0, `session_id` TEXT NOT NULL, `user_id` INTEGER, `message` TEXT NOT NULL, `sender` TEXT NOT NULL, `product_refs` TEXT NOT NULL DEFAULT '[]')",
		"CREATE INDEX IF NOT EXISTS `idx_chat_messages_session` ON `chat_messages` (`session_id`)",
	}
}

func (*mysql) schema() []string {
	return []string{
		"CREATE TABLE IF NOT EXISTS `users` (`id` INT UNSIGNED PRIMARY KEY AUTO_INCREMENT, `created_at` BIGINT NOT NULL DEFAULT 0, `updated_at` BIGINT NOT NULL DEFAULT 0, `name` VARCHAR(64) NOT NULL DEFAULT '', `email` VARCHAR(255) NOT NULL, `password` VARCHAR(255) NOT NULL, `role` VARCHAR(16) NOT NULL DEFAULT 'user', UNIQUE KEY `uk_users_email` (`email`)) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
		"CREATE TABLE IF NOT EXISTS `categories` (`id` INT UNSIGNED PRIMARY KEY AUTO_INCREMENT, `created_at` BIGINT NOT NULL DEFAULT 0, `updated_at` BIGINT NOT NULL DEFAULT 0, `name` VARCHAR(64) NOT NULL, UNIQUE KEY `uk_categories_name` (`name`)) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
		"CREATE TABLE IF NOT EXISTS `products` (`id` INT UNSIGNED PRIMARY KEY AUTO_INCREMENT, `created_at` BIGINT NOT NULL DEFAULT 0, `updated_at` BIGINT NOT NULL DEFAULT 0, `name` VARCHAR(255) NOT NULL, `brand` VARCHAR(128) NOT NULL DEFAULT '', `category_id` INT UNSIGNED NOT NULL DEFAULT 0, `sub_category` VARCHAR(128) NOT NULL DEFAULT '', `price` DOUBLE NOT NULL DEFAULT 0, `description` TEXT, `size_type` VARCHAR(32) NOT NULL DEFAULT '', `fabric` VARCHAR(128) NOT NULL DEFAULT '', `fit_type` VARCHAR(64) NOT NULL DEFAULT '', `sleeve_type` VARCHAR(64) NOT NULL DEFAULT '', `collections` TEXT, `variants` MEDIUMTEXT, `embedding` MEDIUMTEXT, `embedding_text` TEXT, KEY `idx_products_category` (`category_id`)) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
		"CREATE TABLE IF NOT EXISTS `carts` (`id` INT UNSIGNED PRIMARY KEY AUTO_INCREMENT, `created_at` BIGINT NOT NULL DEFAULT 0, `updated_at` BIGINT NOT NULL DEFAULT 0, `user_id` INT UNSIGNED NOT NULL, `product_id` INT UNSIGNED NOT NULL, `quantity` INT NOT NULL DEFAULT 1, `price` DOUBLE NOT NULL DEFAULT 0, KEY `idx_carts_user` (`user_id`)) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
		"CREATE TABLE IF NOT EXISTS `chat_messages` (`id` INT UNSIGNED PRIMARY KEY AUTO_INCREMENT, `created_at` BIGINT NOT NULL DEFAULT 0, `updated_at` BIGINT NOT NULL DEFAULT 0, `session_id` VARCHAR(64) NOT NULL, `user_id` INT UNSIGNED NULL, `message` TEXT NOT NULL, `sender` VARCHAR(16) NOT NULL, `product_refs` TEXT, KEY `idx_chat_messages_session` (`session_id`)) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
	}
}
