// Package storage turns a Config into a ready kvstore.Store.
package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"

	"github.com/dmitrijs2005/gophauth/internal/client/config"
	"github.com/dmitrijs2005/gophauth/internal/client/repositories/kvstore"
	"github.com/dmitrijs2005/gophauth/internal/common"
)

var (
	loadDefaultAWSConfig  = awsconfig.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
	newRedisClient = redis.NewClient
)

// Open returns the store selected by cfg.StorageDriver. SQL stores are
// migrated and Redis is pinged before Open returns.
func Open(ctx context.Context, cfg *config.Config) (kvstore.Store, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		return kvstore.NewMemoryStore(), nil

	case config.DriverSQLite:
		db, err := InitDatabase(ctx, config.DriverSQLite, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return kvstore.NewSQLiteStore(db), nil

	case config.DriverPostgres:
		db, err := InitDatabase(ctx, config.DriverPostgres, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return kvstore.NewPostgresStore(db), nil

	case config.DriverRedis:
		client := newRedisClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
		}
		return kvstore.NewRedisStore(client, cfg.RedisPrefix), nil

	case config.DriverS3:
		client, err := newS3Client(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return kvstore.NewS3Store(client, cfg.S3Bucket, cfg.S3Prefix), nil
	}

	return nil, fmt.Errorf("%w: %s", common.ErrorUnknownDriver, cfg.StorageDriver)
}

func newS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}
