// internal/service/order/infrastructure/mysql.go
package infrastructure

import (
	"net"
	"strconv"
	"time"

	driver "github.com/go-sql-driver/mysql"
	perrors "github.com/pkg/errors"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MySQLConfig 是建库连接所需的参数。
type MySQLConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// OpenMySQL 建立 GORM 连接并迁移订单核心用到的全部表。
func OpenMySQL(cfg MySQLConfig) (*gorm.DB, error) {
	dsnCfg := driver.NewConfig()
	dsnCfg.Net = "tcp"
	dsnCfg.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	dsnCfg.User = cfg.User
	dsnCfg.Passwd = cfg.Password
	dsnCfg.DBName = cfg.Database
	dsnCfg.ParseTime = true
	dsnCfg.Loc = time.Local

	db, err := gorm.Open(gormmysql.Open(dsnCfg.FormatDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, perrors.Wrap(err, "failed to open mysql connection")
	}

	if err := db.AutoMigrate(
		&OrderModel{},
		&OrderItemModel{},
		&ProductModel{},
		&ModifierOptionModel{},
		&TableModel{},
		&VoucherModel{},
		&LoyaltyAccountModel{},
		&LoyaltyTransactionModel{},
		&InventoryModel{},
		&InventoryTransactionModel{},
	); err != nil {
		return nil, perrors.Wrap(err, "failed to migrate schema")
	}
	return db, nil
}
