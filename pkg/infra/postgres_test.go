package infra

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func TestNewPostgresConnection(t *testing.T) {
	dbName := "establishments"
	dbUser := "search"
	dbPassword := "search-secret"

	postgresContainer, err := postgres.Run(context.Background(),
		"postgis/postgis:17-3.5",
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.WithDatabase(dbName),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if e := testcontainers.TerminateContainer(postgresContainer); e != nil {
			t.Logf("failed to terminate postgres container: %s", e)
		}
	})

	host, err := postgresContainer.Host(context.Background())
	require.NoError(t, err)
	port, err := postgresContainer.MappedPort(context.Background(), "5432")
	require.NoError(t, err)

	testCases := []struct {
		name        string
		input       PostgresConfig
		expectedErr bool
	}{
		{
			name: "valid config with pool limits",
			input: PostgresConfig{
				Host:         host,
				Port:         port.Int(),
				User:         dbUser,
				Password:     dbPassword,
				DBName:       dbName,
				MaxOpenConns: 4,
				MaxIdleConns: 2,
			},
		},
		{
			name: "wrong password",
			input: PostgresConfig{
				Host:     host,
				Port:     port.Int(),
				User:     dbUser,
				Password: "wrong password",
				DBName:   dbName,
			},
			expectedErr: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, e := NewPostgresConnection(tc.input)
			if tc.expectedErr {
				assert.Error(t, e)
				return
			}
			require.NoError(t, e)
			sqlDB, e := db.DB()
			require.NoError(t, e)
			defer sqlDB.Close()
			assert.Equal(t, tc.input.MaxOpenConns, sqlDB.Stats().MaxOpenConnections)
		})
	}
}
