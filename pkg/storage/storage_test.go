package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_SaveAndOpen(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root)
	ctx := context.Background()

	locator, err := store.Save(ctx, "../reviews.csv", strings.NewReader("brand,review\nA,great\n"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(locator, LocalPrefix))
	assert.Equal(t, LocalPrefix+filepath.Join(root, "reviews.csv"), locator, "the key is confined to the root")

	rc, err := store.Open(ctx, locator)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "brand,review\nA,great\n", string(data))
}

func TestRouter_RejectsUnknownScheme(t *testing.T) {
	r := NewRouter(NewLocalStore(t.TempDir()), nil)

	_, err := r.Open(context.Background(), "s3://bucket/key")
	assert.ErrorIs(t, err, ErrUnknownLocator)

	_, err = r.Open(context.Background(), "/etc/passwd")
	assert.ErrorIs(t, err, ErrUnknownLocator)
}

func TestParseS3Locator(t *testing.T) {
	tests := []struct {
		locator string
		bucket  string
		key     string
		wantErr bool
	}{
		{locator: "s3://docs/uploads/a.pdf", bucket: "docs", key: "uploads/a.pdf"},
		{locator: "s3://docs", wantErr: true},
		{locator: "s3:///key", wantErr: true},
		{locator: "loc:/tmp/a.pdf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.locator, func(t *testing.T) {
			bucket, key, err := ParseS3Locator(tt.locator)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownLocator)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.key, key)
		})
	}
}
