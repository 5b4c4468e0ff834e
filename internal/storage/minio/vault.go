package minio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"github.com/dtroode/sesn-compliance/internal/keymaterial"
	"github.com/dtroode/sesn-compliance/internal/model"
)

const pemContentType = "application/x-pem-file"

// Internal adapter interface to enable mocking without a real MinIO server.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

type minioClientWrapper struct{ c *minio.Client }

func (w minioClientWrapper) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return w.c.BucketExists(ctx, bucketName)
}
func (w minioClientWrapper) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return w.c.MakeBucket(ctx, bucketName, opts)
}
func (w minioClientWrapper) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return w.c.PutObject(ctx, bucketName, objectName, reader, objectSize, opts)
}
func (w minioClientWrapper) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	return w.c.RemoveObject(ctx, bucketName, objectName, opts)
}
func (w minioClientWrapper) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	return w.c.StatObject(ctx, bucketName, objectName, opts)
}

var _ model.KeyVault = (*Vault)(nil)

// Vault keeps each user's key pair as two objects under users/<id>/.
type Vault struct {
	api    minioAPI
	bucket string
	keygen func() (privatePEM []byte, publicPEM []byte, err error)
}

// NewVault creates a key vault on top of a real *minio.Client.
func NewVault(ctx context.Context, client *minio.Client, bucket string) (*Vault, error) {
	return NewVaultWithAPI(ctx, minioClientWrapper{c: client}, bucket)
}

// NewVaultWithAPI allows injecting a mockable API (used in tests).
func NewVaultWithAPI(ctx context.Context, api minioAPI, bucket string) (*Vault, error) {
	v := &Vault{
		api:    api,
		bucket: bucket,
		keygen: keymaterial.GenerateRSA,
	}

	if err := v.ensureBucketExists(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return v, nil
}

func (v *Vault) ensureBucketExists(ctx context.Context) error {
	exists, err := v.api.BucketExists(ctx, v.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := v.api.MakeBucket(ctx, v.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// PrivateKeyObject is the object name of the user's private key.
func PrivateKeyObject(userID uuid.UUID) string {
	return fmt.Sprintf("users/%s/private.pem", userID)
}

// PublicKeyObject is the object name of the user's public key.
func PublicKeyObject(userID uuid.UUID) string {
	return fmt.Sprintf("users/%s/public.pem", userID)
}

// Issue generates a fresh RSA pair and stores it. A pair issued after a
// Destroy shares nothing with the destroyed one.
func (v *Vault) Issue(ctx context.Context, userID uuid.UUID) (model.KeyPair, error) {
	privName := PrivateKeyObject(userID)

	live, err := v.exists(ctx, privName)
	if err != nil {
		return model.KeyPair{}, err
	}
	if live {
		return model.KeyPair{}, fmt.Errorf("%w: key pair for user %s", model.ErrAlreadyExists, userID)
	}

	privPEM, pubPEM, err := v.keygen()
	if err != nil {
		return model.KeyPair{}, fmt.Errorf("failed to generate key pair: %w", err)
	}

	if err := v.put(ctx, privName, privPEM); err != nil {
		return model.KeyPair{}, err
	}
	if err := v.put(ctx, PublicKeyObject(userID), pubPEM); err != nil {
		if rmErr := v.api.RemoveObject(ctx, v.bucket, privName, minio.RemoveObjectOptions{}); rmErr != nil {
			return model.KeyPair{}, errors.Join(err,
				fmt.Errorf("failed to remove orphaned object %s: %w", privName, rmErr))
		}
		return model.KeyPair{}, err
	}

	return model.KeyPair{
		UserID:        userID,
		PublicKeyPEM:  pubPEM,
		PrivateKeyPEM: privPEM,
		PrivateKeyRef: v.bucket + "/" + privName,
	}, nil
}

// Destroy removes both key objects. Missing objects are not an error.
func (v *Vault) Destroy(ctx context.Context, userID uuid.UUID) error {
	for _, name := range []string{PrivateKeyObject(userID), PublicKeyObject(userID)} {
		err := v.api.RemoveObject(ctx, v.bucket, name, minio.RemoveObjectOptions{})
		if err != nil && !isNoSuchKey(err) {
			return fmt.Errorf("%w: failed to delete object %s: %w", model.ErrVaultUnavailable, name, err)
		}
	}
	return nil
}

func (v *Vault) put(ctx context.Context, name string, data []byte) error {
	_, err := v.api.PutObject(ctx, v.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: pemContentType,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to upload object %s: %w", model.ErrVaultUnavailable, name, err)
	}
	return nil
}

func (v *Vault) exists(ctx context.Context, name string) (bool, error) {
	_, err := v.api.StatObject(ctx, v.bucket, name, minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: failed to stat object %s: %w", model.ErrVaultUnavailable, name, err)
	}
	return true, nil
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
