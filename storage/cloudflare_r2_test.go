package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = params
	b, _ := io.ReadAll(params.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{ETag: aws.String(`"abc123"`)}, nil
}

func TestCloudflareR2UploaderUpload(t *testing.T) {
	putter := &fakePutter{}
	u, err := newCloudflareR2Uploader(putter, "lineups", "https://cdn.example.com/pelada")
	require.NoError(t, err)

	res, err := u.Upload(context.Background(), "lineups/times.xlsx", "application/octet-stream", strings.NewReader("data"))
	require.NoError(t, err)

	assert.Equal(t, "lineups", aws.ToString(putter.input.Bucket))
	assert.Equal(t, "lineups/times.xlsx", aws.ToString(putter.input.Key))
	assert.Equal(t, "data", putter.body)
	assert.Equal(t, "abc123", res.ETag)
	assert.Equal(t, "https://cdn.example.com/pelada/lineups/times.xlsx", res.Location)
}

func TestCloudflareR2UploaderUploadError(t *testing.T) {
	u, err := newCloudflareR2Uploader(&fakePutter{err: errors.New("boom")}, "lineups", "https://cdn.example.com")
	require.NoError(t, err)

	_, err = u.Upload(context.Background(), "k", "text/plain", strings.NewReader(""))
	require.ErrorContains(t, err, "boom")
}

func TestGetPublicURL(t *testing.T) {
	u, err := newCloudflareR2Uploader(&fakePutter{}, "b", "https://cdn.example.com/")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/a/b.xlsx", u.GetPublicURL("/a/b.xlsx"))
	assert.Equal(t, "", u.GetPublicURL(""))
}

func TestNewCloudflareR2UploaderRequiresConfig(t *testing.T) {
	_, err := NewCloudflareR2Uploader(context.Background(), CloudflareR2UploaderConfig{AccountID: "x"})
	require.Error(t, err)
}
