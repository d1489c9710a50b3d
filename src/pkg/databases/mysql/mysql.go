package mysql

import (
	"errors"
	"fmt"
	"time"

	"coinvest-service/src/pkg/log"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/viper"
)

// DBInterface hands out the shared sqlx handle. The connection is opened
// once at startup and shared by reference.
type DBInterface interface {
	GetDB() (*sqlx.DB, error)
	Close() error
}

type DB struct {
	db *sqlx.DB
}

// InitConnection opens the pool from viper config (mysql.host, mysql.port,
// mysql.user, mysql.password, mysql.database).
func InitConnection(v *viper.Viper, logger log.Log) (DBInterface, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		v.GetString("mysql.user"),
		v.GetString("mysql.password"),
		v.GetString("mysql.host"),
		v.GetInt("mysql.port"),
		v.GetString("mysql.database"),
	)

	db, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		logger.Error("mysql-init", err.Error(), "connect", "")
		return &DB{}, err
	}

	db.SetMaxOpenConns(v.GetInt("mysql.max_open_conns"))
	db.SetMaxIdleConns(v.GetInt("mysql.max_idle_conns"))
	db.SetConnMaxLifetime(time.Duration(v.GetInt("mysql.conn_max_lifetime_minutes")) * time.Minute)

	logger.Info("mysql-init", "connected to mysql", "connect", v.GetString("mysql.database"))
	return &DB{db: db}, nil
}

func (d *DB) GetDB() (*sqlx.DB, error) {
	if d.db == nil {
		return nil, errors.New("mysql connection is not initialized")
	}
	return d.db, nil
}

func (d *DB) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}
