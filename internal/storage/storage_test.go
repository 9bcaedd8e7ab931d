package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLocalArchive_SaveOpen(t *testing.T) {
	dir := t.TempDir()
	archive, err := NewLocalArchive(dir)
	require.NoError(t, err)
	ctx := context.Background()

	loc, err := archive.Save(ctx, "receipts/RCP-2026-0001.pdf", "application/pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "receipts", "RCP-2026-0001.pdf"), loc)

	exists, size, err := archive.Exists(ctx, "receipts/RCP-2026-0001.pdf")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, int64(4), size)

	rc, err := archive.Open(ctx, "receipts/RCP-2026-0001.pdf")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))
}

func TestLocalArchive_Missing(t *testing.T) {
	archive, err := NewLocalArchive(t.TempDir())
	require.NoError(t, err)

	_, err = archive.Open(context.Background(), "receipts/none.pdf")
	assert.ErrorIs(t, err, ErrNotFound)

	exists, _, err := archive.Exists(context.Background(), "receipts/none.pdf")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalArchive_RejectsEscapingKeys(t *testing.T) {
	archive, err := NewLocalArchive(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "/etc/passwd", "../secret", "a/../../b", `..\x`} {
		_, err := archive.Save(context.Background(), key, "text/plain", strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}

type MockS3 struct {
	mock.Mock
}

func (m *MockS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*s3.PutObjectOutput)
	return out, args.Error(1)
}

func (m *MockS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*s3.GetObjectOutput)
	return out, args.Error(1)
}

func (m *MockS3) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*s3.HeadObjectOutput)
	return out, args.Error(1)
}

func TestS3Archive(t *testing.T) {
	ctx := context.Background()
	client := new(MockS3)
	archive := NewS3ArchiveWithClient(client, "bucket", "centswise")

	client.On("PutObject", ctx, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.ToString(in.Bucket) == "bucket" &&
			aws.ToString(in.Key) == "centswise/receipts/RCP-2026-0001.pdf" &&
			aws.ToString(in.ContentType) == "application/pdf"
	})).Return(&s3.PutObjectOutput{}, nil).Once()

	loc, err := archive.Save(ctx, "receipts/RCP-2026-0001.pdf", "application/pdf", bytes.NewReader([]byte("%PDF")))
	require.NoError(t, err)
	assert.Equal(t, "s3://bucket/centswise/receipts/RCP-2026-0001.pdf", loc)

	client.On("GetObject", ctx, mock.Anything).Return(&s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader("%PDF"))}, nil).Once()
	rc, err := archive.Open(ctx, "receipts/RCP-2026-0001.pdf")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	assert.Equal(t, "%PDF", string(data))

	client.On("GetObject", ctx, mock.Anything).Return(nil, &types.NoSuchKey{}).Once()
	_, err = archive.Open(ctx, "receipts/missing.pdf")
	assert.ErrorIs(t, err, ErrNotFound)

	client.On("HeadObject", ctx, mock.Anything).Return(&s3.HeadObjectOutput{ContentLength: aws.Int64(4)}, nil).Once()
	exists, size, err := archive.Exists(ctx, "receipts/RCP-2026-0001.pdf")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, int64(4), size)

	client.On("HeadObject", ctx, mock.Anything).Return(nil, &types.NotFound{}).Once()
	exists, _, err = archive.Exists(ctx, "receipts/missing.pdf")
	require.NoError(t, err)
	assert.False(t, exists)

	client.On("PutObject", ctx, mock.Anything).Return(nil, errors.New("denied")).Once()
	_, err = archive.Save(ctx, "receipts/x.pdf", "application/pdf", bytes.NewReader(nil))
	assert.ErrorContains(t, err, "denied")

	client.AssertExpectations(t)
}

func TestNew(t *testing.T) {
	a, err := New(context.Background(), Config{Type: "local", Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalArchive{}, a)

	_, err = New(context.Background(), Config{Type: "ftp"})
	assert.Error(t, err)
}
