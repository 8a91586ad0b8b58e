package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"rental-admin/models"
	"rental-admin/utils"

	"github.com/glebarez/sqlite"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	port := u.Port()
	if port == "" {
		port = "3306"
	}

	cfg := mysqldriver.NewConfig()
	cfg.User = u.User.Username()
	cfg.Passwd, _ = u.User.Password()
	cfg.Net = "tcp"
	cfg.Addr = u.Hostname() + ":" + port
	cfg.DBName = dbName
	cfg.ParseTime = true
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	for key, values := range u.Query() {
		if len(values) > 0 && key != "parseTime" {
			cfg.Params[key] = values[0]
		}
	}
	return cfg.FormatDSN(), nil
}

// ResolveMySQLDSN prefers STORAGE_DSN, then MYSQL_URL, then the DB_* parts.
func ResolveMySQLDSN(opts StorageOptions) (string, error) {
	raw := strings.TrimSpace(opts.URL)
	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}
	if dsn := strings.TrimSpace(opts.DSN); strings.Contains(dsn, "@") {
		return dsn, nil
	}

	cfg := mysqldriver.NewConfig()
	cfg.User = opts.User
	cfg.Passwd = opts.Password
	cfg.Net = "tcp"
	cfg.Addr = opts.Host + ":" + opts.Port
	cfg.DBName = opts.Name
	cfg.ParseTime = true
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN(), nil
}

// ConnectStorage opens the database behind the browsers' persistent storage.
func ConnectStorage(opts StorageOptions) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch opts.Driver {
	case "mysql":
		dsn, err := ResolveMySQLDSN(opts)
		if err != nil {
			return nil, errors.Wrap(err, "resolve mysql dsn")
		}
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(opts.DSN)
	default:
		return nil, errors.Errorf("unsupported storage driver: %s", opts.Driver)
	}

	gormLogger := logger.New(
		utils.Logger,
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, errors.Wrap(err, "open storage database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get underlying sql.DB")
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
		// An in-memory SQLite database lives as long as its connection.
		sqlDB.SetMaxIdleConns(max(1, opts.MaxOpenConns/2))
	}

	utils.Logger.WithField("driver", opts.Driver).Info("storage database connected")
	return db, nil
}

// Migrate creates the storage tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.StorageEntry{})
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
