package database

import (
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestMySQLDSN(t *testing.T) {
	dsn := MySQLDSN("app", "p@ss", "db.local", "3307", "booking")
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		t.Fatalf("parse %q: %v", dsn, err)
	}
	if cfg.User != "app" || cfg.Passwd != "p@ss" {
		t.Fatalf("credentials not preserved: %+v", cfg)
	}
	if cfg.Addr != "db.local:3307" || cfg.DBName != "booking" {
		t.Fatalf("address not preserved: %+v", cfg)
	}
	if !cfg.ParseTime {
		t.Fatalf("parseTime should be enabled")
	}
}

func TestMySQLDSNWithoutPassword(t *testing.T) {
	cfg, err := mysql.ParseDSN(MySQLDSN("root", "", "localhost", "3306", "booking"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Passwd != "" || cfg.User != "root" {
		t.Fatalf("unexpected credentials: %+v", cfg)
	}
}
