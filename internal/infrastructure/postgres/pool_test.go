package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gametech-stock/pkg/config"
)

func TestPoolConfig_DesdeCampos(t *testing.T) {
	pc, err := poolConfig(config.DBConfig{
		Host: "db.local", Port: 5433, User: "stock", Password: "p@ss word", DBName: "gametech", SSLMode: "disable",
		MaxConns: 4, MinConns: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, "db.local", pc.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, "p@ss word", pc.ConnConfig.Password)
	assert.Equal(t, int32(4), pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
	assert.Equal(t, time.Hour, pc.MaxConnLifetime)
	assert.Equal(t, "gametech-stock", pc.ConnConfig.RuntimeParams["application_name"])
}

func TestPoolConfig_DatabaseURLTienePrioridad(t *testing.T) {
	pc, err := poolConfig(config.DBConfig{
		DatabaseURL: "postgres://u:p@remote:5432/stock?sslmode=disable",
		Host:        "ignorado",
	})
	require.NoError(t, err)
	assert.Equal(t, "remote", pc.ConnConfig.Host)
	assert.Equal(t, "stock", pc.ConnConfig.Database)
}

func TestPoolConfig_MinimoMayorQueMaximoSeIgnora(t *testing.T) {
	pc, err := poolConfig(config.DBConfig{Host: "h", Port: 5432, DBName: "d", SSLMode: "disable", MaxConns: 2, MinConns: 5})
	require.NoError(t, err)
	assert.Equal(t, int32(0), pc.MinConns)
}

func TestPoolConfig_DSNInvalido(t *testing.T) {
	_, err := poolConfig(config.DBConfig{DatabaseURL: "postgres://%zz"})
	assert.Error(t, err)
}
