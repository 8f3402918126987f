package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/syncify/internal/models"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
)

func setupPostgresContainer(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "5432")

	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err)
	require.NoError(t, Migrate(context.Background(), db))

	teardown := func() {
		db.Close()
		container.Terminate(context.Background())
	}

	return db, teardown
}

func newTestUserRepository(db *sqlx.DB) *UserRepository {
	r := NewUserRepository(db, nil)
	r.hashCost = bcrypt.MinCost
	return r
}

func strPtr(s string) *string { return &s }

func userCreate(name string) models.UserCreate {
	return models.UserCreate{
		DisplayName: name,
		Email:       name + "@x.com",
		Password:    "Passw0rd",
	}
}

func mustCreateUser(t *testing.T, repo *UserRepository, name string) *models.UserDB {
	t.Helper()
	user, err := repo.Create(context.Background(), userCreate(name))
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}

// uuidSigner hands out a fresh random token string on every call.
type uuidSigner struct{}

func (uuidSigner) Generate(_ context.Context, userID uuid.UUID) (string, error) {
	return userID.String() + "." + uuid.NewString(), nil
}
