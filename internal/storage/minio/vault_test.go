package minio

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/google/uuid"
	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/sesn-compliance/internal/model"
)

// fakeMinio is an in-memory minioAPI with injectable failures.
type fakeMinio struct {
	mu sync.Mutex

	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error

	objects map[string][]byte

	putErrOn  string
	putErr    error
	removeErr error
	statErr   error
}

func newFakeMinio() *fakeMinio {
	return &fakeMinio{bucketExists: true, objects: map[string][]byte{}}
}

func (f *fakeMinio) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}
func (f *fakeMinio) MakeBucket(_ context.Context, _ string, _ minioLib.MakeBucketOptions) error {
	return f.makeBucketErr
}
func (f *fakeMinio) PutObject(_ context.Context, _ string, name string, r io.Reader, _ int64, _ minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil && (f.putErrOn == "" || f.putErrOn == name) {
		return minioLib.UploadInfo{}, f.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return minioLib.UploadInfo{}, err
	}
	f.objects[name] = data
	return minioLib.UploadInfo{Key: name, Size: int64(len(data))}, nil
}
func (f *fakeMinio) RemoveObject(_ context.Context, _ string, name string, _ minioLib.RemoveObjectOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.removeErr != nil {
		return f.removeErr
	}
	delete(f.objects, name)
	return nil
}
func (f *fakeMinio) StatObject(_ context.Context, _ string, name string, _ minioLib.StatObjectOptions) (minioLib.ObjectInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statErr != nil {
		return minioLib.ObjectInfo{}, f.statErr
	}
	if _, ok := f.objects[name]; !ok {
		return minioLib.ObjectInfo{}, minioLib.ErrorResponse{Code: "NoSuchKey"}
	}
	return minioLib.ObjectInfo{Key: name}, nil
}

func stubKeygen() ([]byte, []byte, error) {
	return []byte("PRIV"), []byte("PUB"), nil
}

func newTestVault(t *testing.T, api *fakeMinio) *Vault {
	t.Helper()
	v, err := NewVaultWithAPI(context.Background(), api, "keys")
	require.NoError(t, err)
	v.keygen = stubKeygen
	return v
}

func TestNewVaultWithAPI(t *testing.T) {
	ctx := context.Background()

	t.Run("bucket exists", func(t *testing.T) {
		v, err := NewVaultWithAPI(ctx, newFakeMinio(), "b")
		require.NoError(t, err)
		assert.Equal(t, "b", v.bucket)
	})

	t.Run("bucket created", func(t *testing.T) {
		api := newFakeMinio()
		api.bucketExists = false
		_, err := NewVaultWithAPI(ctx, api, "b")
		require.NoError(t, err)
	})

	t.Run("bucket check fails", func(t *testing.T) {
		api := newFakeMinio()
		api.bucketExistsErr = errors.New("boom")
		v, err := NewVaultWithAPI(ctx, api, "b")
		assert.Nil(t, v)
		assert.ErrorContains(t, err, "failed to ensure bucket exists")
	})

	t.Run("make bucket fails", func(t *testing.T) {
		api := newFakeMinio()
		api.bucketExists = false
		api.makeBucketErr = errors.New("fail")
		v, err := NewVaultWithAPI(ctx, api, "b")
		assert.Nil(t, v)
		assert.ErrorContains(t, err, "failed to create bucket")
	})
}

func TestVault_Issue(t *testing.T) {
	ctx := context.Background()

	t.Run("stores both halves", func(t *testing.T) {
		api := newFakeMinio()
		v := newTestVault(t, api)
		userID := uuid.New()

		kp, err := v.Issue(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, userID, kp.UserID)
		assert.Equal(t, []byte("PUB"), kp.PublicKeyPEM)
		assert.Equal(t, "keys/"+PrivateKeyObject(userID), kp.PrivateKeyRef)
		assert.Equal(t, []byte("PRIV"), api.objects[PrivateKeyObject(userID)])
		assert.Equal(t, []byte("PUB"), api.objects[PublicKeyObject(userID)])
	})

	t.Run("live pair collides", func(t *testing.T) {
		v := newTestVault(t, newFakeMinio())
		userID := uuid.New()

		_, err := v.Issue(ctx, userID)
		require.NoError(t, err)
		_, err = v.Issue(ctx, userID)
		assert.ErrorIs(t, err, model.ErrAlreadyExists)
	})

	t.Run("reissue after destroy", func(t *testing.T) {
		v := newTestVault(t, newFakeMinio())
		userID := uuid.New()

		_, err := v.Issue(ctx, userID)
		require.NoError(t, err)
		require.NoError(t, v.Destroy(ctx, userID))
		_, err = v.Issue(ctx, userID)
		assert.NoError(t, err)
	})

	t.Run("stat failure", func(t *testing.T) {
		api := newFakeMinio()
		api.statErr = errors.New("network")
		v := newTestVault(t, api)

		_, err := v.Issue(ctx, uuid.New())
		assert.ErrorIs(t, err, model.ErrVaultUnavailable)
	})

	t.Run("public upload fails removes private", func(t *testing.T) {
		api := newFakeMinio()
		v := newTestVault(t, api)
		userID := uuid.New()
		api.putErrOn = PublicKeyObject(userID)
		api.putErr = errors.New("put-fail")

		_, err := v.Issue(ctx, userID)
		assert.ErrorIs(t, err, model.ErrVaultUnavailable)
		assert.Empty(t, api.objects)
	})

	t.Run("failed rollback is reported", func(t *testing.T) {
		api := newFakeMinio()
		v := newTestVault(t, api)
		userID := uuid.New()
		api.putErrOn = PublicKeyObject(userID)
		api.putErr = errors.New("put-fail")
		api.removeErr = errors.New("remove-fail")

		_, err := v.Issue(ctx, userID)
		assert.ErrorIs(t, err, model.ErrVaultUnavailable)
		assert.ErrorIs(t, err, api.removeErr)
		assert.ErrorContains(t, err, "failed to remove orphaned object "+PrivateKeyObject(userID))
		assert.Contains(t, api.objects, PrivateKeyObject(userID))
	})

	t.Run("keygen failure", func(t *testing.T) {
		v := newTestVault(t, newFakeMinio())
		v.keygen = func() ([]byte, []byte, error) { return nil, nil, errors.New("entropy") }

		_, err := v.Issue(ctx, uuid.New())
		assert.ErrorContains(t, err, "failed to generate key pair")
	})
}

func TestVault_Destroy(t *testing.T) {
	ctx := context.Background()

	t.Run("idempotent", func(t *testing.T) {
		api := newFakeMinio()
		v := newTestVault(t, api)
		userID := uuid.New()

		_, err := v.Issue(ctx, userID)
		require.NoError(t, err)

		require.NoError(t, v.Destroy(ctx, userID))
		require.NoError(t, v.Destroy(ctx, userID))
		assert.Empty(t, api.objects)
	})

	t.Run("never issued", func(t *testing.T) {
		v := newTestVault(t, newFakeMinio())
		assert.NoError(t, v.Destroy(ctx, uuid.New()))
	})

	t.Run("no such key from server", func(t *testing.T) {
		api := newFakeMinio()
		api.removeErr = minioLib.ErrorResponse{Code: "NoSuchKey"}
		v := newTestVault(t, api)
		assert.NoError(t, v.Destroy(ctx, uuid.New()))
	})

	t.Run("transport failure", func(t *testing.T) {
		api := newFakeMinio()
		api.removeErr = errors.New("remove-fail")
		v := newTestVault(t, api)

		err := v.Destroy(ctx, uuid.New())
		assert.ErrorIs(t, err, model.ErrVaultUnavailable)
		assert.ErrorContains(t, err, "remove-fail")
	})
}
