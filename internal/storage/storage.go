package storage

import (
	"agency/config"
	"agency/internal/logger"
	"bytes"
	"context"
	"fmt"
	"path"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const (
	UploadPrefix    = "uploads/"
	GeneratedPrefix = "generated/"
	QuotaBytes   = int64(10 * 1024 * 1024 * 1024)

	DEFAULT_URL_EXPIRY = 60 * time.Second
)

var uploadKeyPattern = regexp.MustCompile(`^uploads/[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}-`)

// ObjectClient is the subset of the S3 API the service calls directly.
type ObjectClient interface {
	s3.ListObjectsV2APIClient
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type Service struct {
	client    ObjectClient
	presigner Presigner
	bucket    string
	region    string
	endpoint  string
	expiry    time.Duration
	log       logger.Logger
}

type UploadURL struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
}

type File struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Key          string    `json:"key"`
	Type         FileType  `json:"type"`
	Size         int64     `json:"size"`
	URL          string    `json:"url"`
	Category     string    `json:"category"`
	UploadedAt   time.Time `json:"uploadedAt"`
	LastModified time.Time `json:"lastModified"`
	SyncStatus   string    `json:"syncStatus"`
	Tags         []string  `json:"tags"`
}

type Stats struct {
	TotalFiles       int   `json:"totalFiles"`
	TotalSize        int64 `json:"totalSize"`
	UsedStorage      int64 `json:"usedStorage"`
	AvailableStorage int64 `json:"availableStorage"`
	SyncedFiles      int   `json:"syncedFiles"`
	PendingSync      int   `json:"pendingSync"`
	FailedSync       int   `json:"failedSync"`
}

// New builds an S3 backed service from config. Static credentials are used when both key
// parts are configured, otherwise the default AWS credential chain applies.
func New(ctx context.Context, cfg config.Config) (*Service, error) {
	log := logger.New("storage").Function("New")

	if !cfg.StorageEnabled() {
		return nil, log.ErrMsg("storage bucket or region is not configured")
	}

	options := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.StorageRegion)}
	if cfg.StorageAccessKeyID != "" && cfg.StorageSecretAccessKey != "" {
		options = append(options, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.StorageAccessKeyID, cfg.StorageSecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return nil, log.Err("failed to load aws config", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.StorageEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.StorageEndpoint)
			o.UsePathStyle = true
		}
	})

	expiry := time.Duration(cfg.StorageURLExpirySeconds) * time.Second
	service := NewWithClients(client, s3.NewPresignClient(client), cfg.StorageBucket, cfg.StorageRegion, expiry)
	service.endpoint = strings.TrimRight(cfg.StorageEndpoint, "/")

	log.Info("Object storage initialized", "bucket", cfg.StorageBucket, "region", cfg.StorageRegion)
	return service, nil
}

func NewWithClients(
	client ObjectClient,
	presigner Presigner,
	bucket, region string,
	expiry time.Duration,
) *Service {
	if expiry <= 0 {
		expiry = DEFAULT_URL_EXPIRY
	}
	return &Service{
		client:    client,
		presigner: presigner,
		bucket:    bucket,
		region:    region,
		expiry:    expiry,
		log:       logger.New("storage"),
	}
}

// UploadKey places filename under the upload prefix behind a random id so uploads never
// overwrite each other.
func UploadKey(filename string) string {
	return UploadPrefix + uuid.NewString() + "-" + path.Base(filename)
}

// DisplayName strips the upload prefix and random id from an object key.
func DisplayName(key string) string {
	if name := uploadKeyPattern.ReplaceAllString(key, ""); name != key {
		return name
	}
	return strings.TrimPrefix(key, UploadPrefix)
}

func (s *Service) PresignUpload(ctx context.Context, filename, contentType string) (UploadURL, error) {
	log := s.log.Function("PresignUpload")

	if strings.TrimSpace(filename) == "" || strings.TrimSpace(contentType) == "" {
		return UploadURL{}, log.ErrMsg("filename and contentType are required")
	}

	key := UploadKey(filename)
	request, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return UploadURL{}, log.Err("failed to presign upload", err, "key", key)
	}

	return UploadURL{UploadURL: request.URL, Key: key}, nil
}

func (s *Service) PresignDownload(ctx context.Context, key string) (string, error) {
	log := s.log.Function("PresignDownload")

	if strings.TrimSpace(key) == "" {
		return "", log.ErrMsg("file key is required")
	}

	request, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", log.Err("failed to presign download", err, "key", key)
	}

	return request.URL, nil
}

// StoreGenerated uploads a rendered document under the generated prefix and returns its key.
func (s *Service) StoreGenerated(ctx context.Context, filename, contentType string, content []byte) (string, error) {
	log := s.log.Function("StoreGenerated")

	key := GeneratedPrefix + uuid.NewString() + "-" + path.Base(filename)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(content))),
		Body:          bytes.NewReader(content),
	})
	if err != nil {
		return "", log.Err("failed to store generated document", err, "key", key)
	}

	return key, nil
}

// ListFiles returns uploaded objects newest first. Zero byte objects are folder markers
// and are skipped.
func (s *Service) ListFiles(ctx context.Context) ([]File, error) {
	log := s.log.Function("ListFiles")

	files := []File{}
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(UploadPrefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, log.Err("failed to list objects", err, "bucket", s.bucket)
		}

		for _, object := range page.Contents {
			size := aws.ToInt64(object.Size)
			if size <= 0 {
				continue
			}

			key := aws.ToString(object.Key)
			name := DisplayName(key)
			modified := aws.ToTime(object.LastModified)

			id := strings.Trim(aws.ToString(object.ETag), `"`)
			if id == "" {
				id = key
			}

			files = append(files, File{
				ID:           id,
				Name:         name,
				Key:          key,
				Type:         ClassifyFile(name),
				Size:         size,
				URL:          s.objectURL(key),
				Category:     "other",
				UploadedAt:   modified,
				LastModified: modified,
				SyncStatus:   "synced",
				Tags:         []string{},
			})
		}
	}

	slices.SortStableFunc(files, func(a, b File) int {
		return b.UploadedAt.Compare(a.UploadedAt)
	})

	return files, nil
}

func (s *Service) objectURL(key string) string {
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// CalculateStats summarises listed files against the storage quota.
func CalculateStats(files []File) Stats {
	stats := Stats{TotalFiles: len(files)}

	for _, file := range files {
		stats.TotalSize += file.Size
		switch file.SyncStatus {
		case "synced":
			stats.SyncedFiles++
		case "pending", "syncing":
			stats.PendingSync++
		case "failed":
			stats.FailedSync++
		}
	}

	stats.UsedStorage = stats.TotalSize
	stats.AvailableStorage = max(QuotaBytes-stats.UsedStorage, 0)
	return stats
}
