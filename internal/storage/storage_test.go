package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	objects []types.Object
	err     error
	input   *s3.ListObjectsV2Input
	put     *s3.PutObjectInput
	body    []byte
}

func (f *fakeLister) PutObject(
	ctx context.Context,
	params *s3.PutObjectInput,
	optFns ...func(*s3.Options),
) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.put = params
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeLister) ListObjectsV2(
	ctx context.Context,
	params *s3.ListObjectsV2Input,
	optFns ...func(*s3.Options),
) (*s3.ListObjectsV2Output, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &s3.ListObjectsV2Output{Contents: f.objects}, nil
}

type fakePresigner struct {
	put     *s3.PutObjectInput
	get     *s3.GetObjectInput
	expires time.Duration
	err     error
}

func (f *fakePresigner) PresignPutObject(
	ctx context.Context,
	params *s3.PutObjectInput,
	optFns ...func(*s3.PresignOptions),
) (*v4.PresignedHTTPRequest, error) {
	f.put = params
	f.expires = resolveExpiry(optFns)
	if f.err != nil {
		return nil, f.err
	}
	return &v4.PresignedHTTPRequest{URL: "https://signed.test/put/" + aws.ToString(params.Key)}, nil
}

func (f *fakePresigner) PresignGetObject(
	ctx context.Context,
	params *s3.GetObjectInput,
	optFns ...func(*s3.PresignOptions),
) (*v4.PresignedHTTPRequest, error) {
	f.get = params
	f.expires = resolveExpiry(optFns)
	if f.err != nil {
		return nil, f.err
	}
	return &v4.PresignedHTTPRequest{URL: "https://signed.test/get/" + aws.ToString(params.Key)}, nil
}

func resolveExpiry(optFns []func(*s3.PresignOptions)) time.Duration {
	var options s3.PresignOptions
	for _, fn := range optFns {
		fn(&options)
	}
	return options.Expires
}

func TestPresignUpload(t *testing.T) {
	presigner := &fakePresigner{}
	service := NewWithClients(&fakeLister{}, presigner, "agency-files", "us-east-1", 0)

	upload, err := service.PresignUpload(context.Background(), "policy.pdf", "application/pdf")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(upload.Key, UploadPrefix))
	assert.True(t, strings.HasSuffix(upload.Key, "-policy.pdf"))
	assert.Equal(t, "policy.pdf", DisplayName(upload.Key))
	assert.Equal(t, "https://signed.test/put/"+upload.Key, upload.UploadURL)
	assert.Equal(t, "agency-files", aws.ToString(presigner.put.Bucket))
	assert.Equal(t, "application/pdf", aws.ToString(presigner.put.ContentType))
	assert.Equal(t, 60*time.Second, presigner.expires)
}

func TestPresignUpload_Errors(t *testing.T) {
	service := NewWithClients(&fakeLister{}, &fakePresigner{}, "b", "r", time.Minute)

	_, err := service.PresignUpload(context.Background(), "", "application/pdf")
	assert.ErrorContains(t, err, "filename and contentType are required")

	failing := NewWithClients(&fakeLister{}, &fakePresigner{err: errors.New("boom")}, "b", "r", time.Minute)
	_, err = failing.PresignUpload(context.Background(), "a.pdf", "application/pdf")
	assert.ErrorContains(t, err, "failed to presign upload")
}

func TestPresignDownload(t *testing.T) {
	presigner := &fakePresigner{}
	service := NewWithClients(&fakeLister{}, presigner, "agency-files", "us-east-1", 2*time.Minute)

	url, err := service.PresignDownload(context.Background(), "uploads/x.pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://signed.test/get/uploads/x.pdf", url)
	assert.Equal(t, 2*time.Minute, presigner.expires)

	_, err = service.PresignDownload(context.Background(), " ")
	assert.ErrorContains(t, err, "file key is required")
}

func TestUploadKey_SanitisesPath(t *testing.T) {
	key := UploadKey("../../etc/passwd")
	assert.True(t, strings.HasSuffix(key, "-passwd"))
	assert.NotContains(t, key, "..")
}

func TestListFiles(t *testing.T) {
	older := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	lister := &fakeLister{objects: []types.Object{
		{Key: aws.String("uploads/"), Size: aws.Int64(0)},
		{
			Key:          aws.String("uploads/0f8c3a4e-1b2c-4d5e-8f90-a1b2c3d4e5f6-auto-policy.pdf"),
			Size:         aws.Int64(2048),
			ETag:         aws.String(`"etag-1"`),
			LastModified: aws.Time(older),
		},
		{
			Key:          aws.String("uploads/id-card.JPG"),
			Size:         aws.Int64(1024),
			LastModified: aws.Time(newer),
		},
	}}
	service := NewWithClients(lister, &fakePresigner{}, "agency-files", "us-east-1", 0)

	files, err := service.ListFiles(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, UploadPrefix, aws.ToString(lister.input.Prefix))

	assert.Equal(t, "id-card.JPG", files[0].Name)
	assert.Equal(t, FileTypeImage, files[0].Type)
	assert.Equal(t, "uploads/id-card.JPG", files[0].ID)

	assert.Equal(t, "auto-policy.pdf", files[1].Name)
	assert.Equal(t, "etag-1", files[1].ID)
	assert.Equal(t, FileTypePDF, files[1].Type)
	assert.Equal(t, int64(2048), files[1].Size)
	assert.Equal(t,
		"https://agency-files.s3.us-east-1.amazonaws.com/uploads/0f8c3a4e-1b2c-4d5e-8f90-a1b2c3d4e5f6-auto-policy.pdf",
		files[1].URL)
	assert.Equal(t, "synced", files[1].SyncStatus)
	assert.Empty(t, files[1].Tags)
}

func TestListFiles_Error(t *testing.T) {
	service := NewWithClients(&fakeLister{err: errors.New("access denied")}, &fakePresigner{}, "b", "r", 0)

	_, err := service.ListFiles(context.Background())
	assert.ErrorContains(t, err, "access denied")
}

func TestClassifyFile(t *testing.T) {
	tests := map[string]FileType{
		"policy.PDF":   FileTypePDF,
		"photo.jpeg":   FileTypeImage,
		"scan.png":     FileTypeImage,
		"letter.docx":  FileTypeDocument,
		"rates.xls":    FileTypeSpreadsheet,
		"archive.zip":  FileTypeOther,
		"no-extension": FileTypeOther,
	}

	for name, expected := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, expected, ClassifyFile(name))
		})
	}
}

func TestCalculateStats(t *testing.T) {
	files := []File{
		{Size: 100, SyncStatus: "synced"},
		{Size: 50, SyncStatus: "pending"},
		{Size: 25, SyncStatus: "syncing"},
		{Size: 5, SyncStatus: "failed"},
	}

	stats := CalculateStats(files)

	assert.Equal(t, Stats{
		TotalFiles:       4,
		TotalSize:        180,
		UsedStorage:      180,
		AvailableStorage: QuotaBytes - 180,
		SyncedFiles:      1,
		PendingSync:      2,
		FailedSync:       1,
	}, stats)
	assert.Equal(t, QuotaBytes, CalculateStats(nil).AvailableStorage)
}

func TestStoreGenerated(t *testing.T) {
	client := &fakeLister{}
	service := NewWithClients(client, &fakePresigner{}, "agency-files", "us-east-1", 0)

	key, err := service.StoreGenerated(context.Background(), "auto_insurance_policy.pdf", "application/pdf", []byte("%PDF"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, GeneratedPrefix))
	assert.True(t, strings.HasSuffix(key, "-auto_insurance_policy.pdf"))
	assert.Equal(t, key, aws.ToString(client.put.Key))
	assert.Equal(t, int64(4), aws.ToInt64(client.put.ContentLength))
	assert.Equal(t, []byte("%PDF"), client.body)

	failing := NewWithClients(&fakeLister{err: errors.New("denied")}, &fakePresigner{}, "b", "r", 0)
	_, err = failing.StoreGenerated(context.Background(), "x.pdf", "application/pdf", nil)
	assert.ErrorContains(t, err, "failed to store generated document")
}
