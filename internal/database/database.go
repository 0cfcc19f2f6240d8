package database

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	// registers the pure-Go "sqlite" driver used for local development and tests
	_ "modernc.org/sqlite"

	"hostelfinder/internal/domain"
	"hostelfinder/internal/logging"
)

// Connect picks a dialect from the DSN: postgres://, mysql://, anything else is a SQLite path.
func Connect(dsn string, logLevel string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: newGormLogger(parseLogLevel(logLevel))}

	switch {
	case strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://"):
		logging.Info().Str("dialect", "postgres").Msg("connecting to database")
		return gorm.Open(postgres.Open(dsn), cfg)

	case strings.HasPrefix(dsn, "mysql://"):
		mysqlDSN, err := mysqlDSNFromURL(dsn)
		if err != nil {
			return nil, err
		}
		logging.Info().Str("dialect", "mysql").Msg("connecting to database")
		return gorm.Open(mysql.Open(mysqlDSN), cfg)
	}

	logging.Info().Str("dialect", "sqlite").Str("dsn", dsn).Msg("using SQLite for local development")

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer; a single connection also keeps :memory: databases shared.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// Migrate creates or updates the schema in parent -> child order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Amenity{},
		&domain.Hostel{},
		&domain.HostelImage{},
		&domain.Booking{},
		&domain.Review{},
	)
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	cfg := mysqldriver.NewConfig()
	cfg.User = u.User.Username()
	cfg.Passwd, _ = u.User.Password()
	cfg.Net = "tcp"
	cfg.Addr = u.Host
	if u.Port() == "" {
		cfg.Addr = u.Hostname() + ":3306"
	}
	cfg.DBName = dbName
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	for k, v := range u.Query() {
		if len(v) > 0 {
			cfg.Params[k] = v[0]
		}
	}
	return cfg.FormatDSN(), nil
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
