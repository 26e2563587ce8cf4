// Package blob 封装订单照片的对象存储访问（MinIO）。
package blob

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/config"
	"github.com/itsuki-ishida/pj-konpo-poc-app/internal/logger"
)

// Client 对象存储客户端
type Client struct {
	mc      *minio.Client
	bucket  string
	baseURL string
}

// NewClient 初始化客户端并确保存储桶存在
func NewClient(ctx context.Context, cfg config.StorageConfig) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("初始化对象存储客户端失败: %w", err)
	}

	exists, err := mc.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("检查存储桶失败: %w", err)
	}
	if !exists {
		logger.Infof("存储桶 '%s' 不存在，正在创建...", cfg.BucketName)
		if err := mc.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("创建存储桶失败: %w", err)
		}
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}

	return &Client{
		mc:      mc,
		bucket:  cfg.BucketName,
		baseURL: fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.BucketName),
	}, nil
}

// Upload 上传对象并返回公开访问 URL
func (c *Client) Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := c.mc.PutObject(ctx, c.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("上传对象失败: %w", err)
	}
	return c.baseURL + "/" + objectName, nil
}

// Remove 删除对象
func (c *Client) Remove(ctx context.Context, objectName string) error {
	if err := c.mc.RemoveObject(ctx, c.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("删除对象失败: %w", err)
	}
	return nil
}

// ObjectFromURL 从公开 URL 还原对象名（<订单号>/<文件名> 两段）
func ObjectFromURL(url string) string {
	parts := strings.Split(url, "/")
	if len(parts) < 2 {
		return url
	}
	return strings.Join(parts[len(parts)-2:], "/")
}
