package oss

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"gitee.com/taoJie_1/mall-shop/model/config"
	"gitee.com/taoJie_1/mall-shop/utils"
	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// Service 定义对象存储服务的接口
type Service interface {
	// UploadFile 上传 multipart 表单中的文件，并返回对象键。
	UploadFile(file *multipart.FileHeader) (string, error)
	// UploadBytes 上传内存中的文件内容, ext为扩展名(含点), 返回对象键。
	UploadBytes(data []byte, ext string) (string, error)
	// GetURL 为给定的对象键生成可公开访问的 URL。
	GetURL(objectKey string) string
	// Close 关闭底层客户端连接。
	Close() error
}

type aliyunOssService struct {
	client   *oss.Client
	config   config.Oss
	location *time.Location // 注入时区信息
}

// NewClient 创建一个新的 OSS 服务客户端。
func NewClient(cfg config.Oss, location *time.Location) (Service, error) {
	// OSS SDK 的 Endpoint 不包含协议头，如果配置中包含了协议头，需要去除
	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "https://"), "http://")

	client, err := oss.New(endpoint, cfg.AccessKeyId, cfg.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("创建阿里云OSS客户端失败: %w", err)
	}

	return &aliyunOssService{
		client:   client,
		config:   cfg,
		location: location,
	}, nil
}

func (s *aliyunOssService) UploadFile(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("打开上传文件失败: %w", err)
	}
	defer src.Close()

	fileBytes, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("读取文件内容失败: %w", err)
	}

	return s.UploadBytes(fileBytes, filepath.Ext(file.Filename))
}

func (s *aliyunOssService) UploadBytes(data []byte, ext string) (string, error) {
	bucket, err := s.client.Bucket(s.config.Bucket)
	if err != nil {
		return "", fmt.Errorf("获取OSS Bucket失败: %w", err)
	}

	// 以内容哈希作为文件名, 相同图片天然去重
	fileName := utils.HashBytes(data) + ext
	objectKey := fmt.Sprintf("%s%s/%s", s.config.StoragePath, time.Now().In(s.location).Format("products/20060102"), fileName)

	if err := bucket.PutObject(objectKey, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("上传文件到OSS失败: %w", err)
	}

	return objectKey, nil
}

func (s *aliyunOssService) GetURL(objectKey string) string {
	if s.config.CdnDomain != "" {
		cdnURL, err := url.Parse(s.config.CdnDomain)
		if err == nil {
			// 确保路径拼接正确，避免双斜杠或丢失斜杠
			cdnURL.Path = strings.TrimSuffix(cdnURL.Path, "/") + "/" + strings.TrimPrefix(objectKey, "/")
			return cdnURL.String()
		}
		// 如果解析失败，回退到简单拼接
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(s.config.CdnDomain, "/"), strings.TrimPrefix(objectKey, "/"))
	}
	// 回退到原始OSS URL
	return fmt.Sprintf("https://%s.%s/%s", s.config.Bucket, s.config.Endpoint, objectKey)
}

func (s *aliyunOssService) Close() error {
	// aliyun-oss-go-sdk 客户端不需要显式关闭连接。
	return nil
}
