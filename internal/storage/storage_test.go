package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	appErrors "lost-and-found/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/afero"
)

var (
	pngHeader  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
)

func TestDetectImage(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		max     int64
		wantErr error
		wantExt string
	}{
		{"png", pngHeader, MaxImageBytes, nil, ".png"},
		{"jpeg", jpegHeader, MaxImageBytes, nil, ".jpg"},
		{"text", []byte("hello world"), MaxImageBytes, appErrors.ErrImageType, ""},
		{"empty", nil, MaxImageBytes, appErrors.ErrImageMissing, ""},
		{"too large", pngHeader, 4, appErrors.ErrImageTooLarge, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := DetectImage(tt.data, tt.max)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if img.Extension != tt.wantExt {
				t.Errorf("expected extension %s, got %s", tt.wantExt, img.Extension)
			}
		})
	}
}

func TestLocalStore_Save(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewLocalStore(fs, "uploads", "/uploads")

	url, err := store.Save(context.Background(), "lost/1/a.png", "image/png", pngHeader)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if url != "/uploads/lost/1/a.png" {
		t.Errorf("unexpected url %s", url)
	}

	data, err := afero.ReadFile(fs, "uploads/lost/1/a.png")
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(data) != len(pngHeader) {
		t.Errorf("expected %d bytes, got %d", len(pngHeader), len(data))
	}
}

type mockS3 struct {
	putObjectFn func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

func (m *mockS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	return m.putObjectFn(ctx, params, optFns...)
}

func TestS3Store_Save(t *testing.T) {
	var gotKey, gotType string
	client := &mockS3{
		putObjectFn: func(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			gotKey = *params.Key
			gotType = *params.ContentType
			return &s3.PutObjectOutput{}, nil
		},
	}

	store := NewS3Store(client, "bucket", "/reports/", PublicBaseURL("bucket", "us-east-1", ""))
	url, err := store.Save(context.Background(), "found/7/b.jpg", "image/jpeg", jpegHeader)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if gotKey != "reports/found/7/b.jpg" {
		t.Errorf("unexpected key %s", gotKey)
	}
	if gotType != "image/jpeg" {
		t.Errorf("unexpected content type %s", gotType)
	}
	if url != "https://bucket.s3.us-east-1.amazonaws.com/reports/found/7/b.jpg" {
		t.Errorf("unexpected url %s", url)
	}
}

func TestS3Store_SaveError(t *testing.T) {
	client := &mockS3{
		putObjectFn: func(context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			return nil, errors.New("denied")
		},
	}

	_, err := NewS3Store(client, "bucket", "", "http://localhost:4566/bucket").
		Save(context.Background(), "k.png", "image/png", pngHeader)
	if err == nil || !strings.Contains(err.Error(), "denied") {
		t.Fatalf("expected upload error, got %v", err)
	}
}

func TestObjectKey(t *testing.T) {
	key := ObjectKey("lost", 42, ".png")
	if !strings.HasPrefix(key, "lost/42/") || !strings.HasSuffix(key, ".png") {
		t.Errorf("unexpected key %s", key)
	}
}
