package db

import (
	"fmt"
	"os"
	"time"

	"avialog/backend/internal/common"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

var DB *sqlx.DB

func PostgresDSN() string {
	host := common.EnvOrDefault("PG_HOST", "localhost")
	port := common.EnvOrDefault("PG_PORT", "5432")
	user := common.EnvOrDefault("PG_USER", "postgres")
	dbname := common.EnvOrDefault("PG_DB", "avialog")
	password := os.Getenv("PG_PASSWORD")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbname)
}

func InitPostgres() error {
	dsn := PostgresDSN()

	var err error
	for i := 0; i < 10; i++ {
		DB, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return err
}
