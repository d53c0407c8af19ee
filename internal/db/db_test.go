package db

import (
	"database/sql"
	"database/sql/driver"
	"os"
	"os/exec"
	"testing"

	"ecommerce-be/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestBuildDSN(t *testing.T) {
	cfg := &config.Config{
		DBHost:     "localhost",
		DBUser:     "cart_user",
		DBPassword: "cart_password",
		DBName:     "cart_db",
		DBPort:     "5432",
	}

	expected := "host=localhost user=cart_user password=cart_password dbname=cart_db port=5432 sslmode=disable"
	assert.Equal(t, expected, BuildDSN(cfg))
}

func TestNewDatabase_ConnectionFailure(t *testing.T) {
	cfg := &config.Config{
		DBHost: "invalid_host",
		DBPort: "5432",
	}

	db, err := NewDatabase(cfg)

	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "failed to ping DB")
}

func TestNewDatabase_InvalidDriver(t *testing.T) {
	db, err := newDatabaseWithDriver(&config.Config{}, "invalid_driver_name")

	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "failed to connect to DB")
}

func TestInitDB_Failure(t *testing.T) {
	// InitDB exits the process, so it runs in a subprocess.
	if os.Getenv("DB_CRASHER") == "1" {
		InitDB(&config.Config{DBHost: "invalid_host", DBPort: "5432"})
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestInitDB_Failure")
	cmd.Env = append(os.Environ(), "DB_CRASHER=1")
	err := cmd.Run()

	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		return
	}
	t.Fatalf("process ran with err %v, want exit status 1", err)
}

type pingDriver struct{}

func (pingDriver) Open(name string) (driver.Conn, error) { return pingConn{}, nil }

type pingConn struct{}

func (pingConn) Prepare(query string) (driver.Stmt, error) { return nil, driver.ErrSkip }
func (pingConn) Close() error                              { return nil }
func (pingConn) Begin() (driver.Tx, error)                 { return nil, driver.ErrSkip }

func init() {
	sql.Register("ping_driver", pingDriver{})
}

func TestNewDatabase_Success(t *testing.T) {
	db, err := newDatabaseWithDriver(&config.Config{DBHost: "localhost"}, "ping_driver")
	assert.NoError(t, err)
	assert.NotNil(t, db)
	db.Close()
}
