package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophauth/internal/client/config"
	"github.com/dmitrijs2005/gophauth/internal/client/repositories/kvstore"
	"github.com/dmitrijs2005/gophauth/internal/common"
)

func testConfig(driver string) *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.StorageDriver = driver
	return c
}

func TestOpen_Memory(t *testing.T) {
	s, err := Open(context.Background(), testConfig(config.DriverMemory))
	require.NoError(t, err)
	assert.IsType(t, &kvstore.MemoryStore{}, s)
}

func TestOpen_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(config.DriverSQLite)
	cfg.SQLitePath = filepath.Join(t.TempDir(), "gophauth.db")

	s, err := Open(ctx, cfg)
	require.NoError(t, err)
	require.IsType(t, &kvstore.SQLStore{}, s)

	require.NoError(t, s.Set(ctx, "@auth_user", []byte(`{"id":"1"}`)))
	require.NoError(t, s.Close())

	// A second process sees the same data.
	s, err = Open(ctx, cfg)
	require.NoError(t, err)
	defer s.Close()

	v, err := s.Get(ctx, "@auth_user")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":"1"}`), v)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), testConfig("etcd"))
	require.ErrorIs(t, err, common.ErrorUnknownDriver)
}

func TestOpen_RedisUnreachable(t *testing.T) {
	orig := newRedisClient
	defer func() { newRedisClient = orig }()

	newRedisClient = func(opt *redis.Options) *redis.Client {
		opt.DialTimeout = 50 * time.Millisecond
		opt.MaxRetries = -1
		return orig(opt)
	}

	cfg := testConfig(config.DriverRedis)
	cfg.RedisAddr = "127.0.0.1:1"

	_, err := Open(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping 127.0.0.1:1")
}

func TestOpen_S3AppliesConfig(t *testing.T) {
	origLoad, origNew := loadDefaultAWSConfig, newS3ClientFromConfig
	defer func() { loadDefaultAWSConfig, newS3ClientFromConfig = origLoad, origNew }()

	var lo awsconfig.LoadOptions
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		return aws.Config{Region: lo.Region}, nil
	}

	var so s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&so)
		}
		return origNew(cfg, optFns...)
	}

	cfg := testConfig(config.DriverS3)
	cfg.S3Bucket = "accounts"
	cfg.S3Region = "eu-central-1"
	cfg.S3BaseEndpoint = "http://127.0.0.1:9000"
	cfg.S3AccessKey = "minio"
	cfg.S3SecretKey = "minio123"

	s, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &kvstore.S3Store{}, s)

	assert.Equal(t, "eu-central-1", lo.Region)
	require.NotNil(t, lo.Credentials)
	creds, err := lo.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "minio", creds.AccessKeyID)

	assert.Equal(t, "http://127.0.0.1:9000", aws.ToString(so.BaseEndpoint))
	assert.True(t, so.UsePathStyle)
}

func TestOpen_S3ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	defer func() { loadDefaultAWSConfig = orig }()

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no profile")
	}

	cfg := testConfig(config.DriverS3)
	cfg.S3Bucket = "accounts"

	_, err := Open(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load aws config: no profile")
}
