package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectRejectsEmptyDSN(t *testing.T) {
	_, err := Connect(context.Background(), "", "  ")
	require.Error(t, err)
}

func TestConnectRejectsUnknownDriver(t *testing.T) {
	_, err := Connect(context.Background(), "mysql", "host=localhost")
	require.ErrorContains(t, err, "unsupported postgres driver")
}

func TestConnectFromEnvWithoutDSNFallsBack(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")
	db, cleanup := ConnectFromEnv(context.Background(), nil)
	assert.Nil(t, db)
	require.NotNil(t, cleanup)
	cleanup()
}

func TestDriverName(t *testing.T) {
	assert.Equal(t, DriverPGX, driverName(""))
	assert.Equal(t, DriverPQ, driverName(DriverPQ))
}
