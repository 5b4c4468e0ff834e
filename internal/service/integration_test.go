//go:build integration

package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/sesn-compliance/internal/keymaterial"
	"github.com/dtroode/sesn-compliance/internal/model"
	"github.com/dtroode/sesn-compliance/internal/repository/postgres"
	"github.com/dtroode/sesn-compliance/internal/service"
	vault "github.com/dtroode/sesn-compliance/internal/storage/minio"
	"github.com/dtroode/sesn-compliance/internal/testutil"
)

func startContainer(t *testing.T, req tc.ContainerRequest, port string) string {
	t.Helper()
	ctx := context.Background()

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	mapped, err := container.MappedPort(ctx, port)
	require.NoError(t, err)

	return fmt.Sprintf("%s:%s", host, mapped.Port())
}

func TestCompliance_EndToEnd_Postgres_MinIO(t *testing.T) {
	ctx := context.Background()

	pgAddr := startContainer(t, tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "password",
			"POSTGRES_DB":       "sesn_test",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
	}, "5432")

	minioAddr := startContainer(t, tc.ContainerRequest{
		Image:        "minio/minio:latest",
		ExposedPorts: []string{"9000/tcp"},
		Env: map[string]string{
			"MINIO_ROOT_USER":     "sesn-access-key",
			"MINIO_ROOT_PASSWORD": "sesn-secret-key",
		},
		Cmd:        []string{"server", "/data"},
		WaitingFor: wait.ForHTTP("/minio/health/live").WithPort("9000/tcp").WithStartupTimeout(2 * time.Minute),
	}, "9000")

	db, err := postgres.NewConnection(ctx, fmt.Sprintf("postgres://postgres:password@%s/sesn_test?sslmode=disable", pgAddr))
	require.NoError(t, err)
	defer db.Close()

	client, err := minio.New(minioAddr, &minio.Options{
		Creds: credentials.NewStaticV4("sesn-access-key", "sesn-secret-key", ""),
	})
	require.NoError(t, err)
	keyVault, err := vault.NewVault(ctx, client, "sesn-keys")
	require.NoError(t, err)

	signer, err := keymaterial.NewSigner("")
	require.NoError(t, err)

	svc := service.NewCompliance(keyVault, postgres.NewUserRepository(db), postgres.NewLedgerRepository(db, signer),
		keymaterial.NewTrustedKeys(signer.PublicKey()), testutil.MakeNoopLogger())

	u1 := uuid.New()
	_, _, err = svc.RegisterUser(ctx, model.RegisterParams{
		UserID:  u1,
		Name:    "User0001",
		Contact: "user00001@sesn.org",
		Consent: model.Consent{model.ConsentDataProcessing: true, model.ConsentProfiling: false},
		Payload: []byte("order history"),
	})
	require.NoError(t, err)

	_, err = svc.UpdateConsent(ctx, u1, model.Consent{model.ConsentDataProcessing: true, model.ConsentProfiling: true})
	require.NoError(t, err)

	_, record, err := svc.AccessUser(ctx, u1)
	require.NoError(t, err)
	assert.True(t, record.Consent[model.ConsentProfiling])

	_, err = client.StatObject(ctx, "sesn-keys", vault.PrivateKeyObject(u1), minio.StatObjectOptions{})
	require.NoError(t, err)

	_, err = svc.EraseUser(ctx, u1)
	require.NoError(t, err)
	_, err = svc.EraseUser(ctx, u1)
	require.NoError(t, err)

	_, _, err = svc.AccessUser(ctx, u1)
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = client.StatObject(ctx, "sesn-keys", vault.PrivateKeyObject(u1), minio.StatObjectOptions{})
	assert.Equal(t, "NoSuchKey", minio.ToErrorResponse(err).Code)

	events, verified, err := svc.VerifyHistory(ctx, u1)
	require.NoError(t, err)
	assert.Equal(t, 2, verified)
	assert.Len(t, events, 2)
}
