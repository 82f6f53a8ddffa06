package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/hospitality-suite/internal/config"
)

func TestDSN(t *testing.T) {
	cfg := config.Config{
		DBUser: "app", DBPass: "secret",
		DBHost: "db", DBPort: "3306", DBName: "hospitality",
	}
	assert.Equal(t,
		"app:secret@tcp(db:3306)/hospitality?charset=utf8mb4&parseTime=true&loc=UTC",
		dsn(cfg))
}

func TestDSNWithoutPassword(t *testing.T) {
	cfg := config.Config{
		DBUser: "app",
		DBHost: "localhost", DBPort: "3307", DBName: "hospitality",
	}
	assert.Equal(t,
		"app@tcp(localhost:3307)/hospitality?charset=utf8mb4&parseTime=true&loc=UTC",
		dsn(cfg))
}
