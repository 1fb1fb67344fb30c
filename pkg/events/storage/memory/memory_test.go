package memory

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventboard/events-api/pkg/events"
)

func TestUploadDownload(t *testing.T) {
	b := New()
	ctx := context.Background()
	data := []byte("image bytes")

	err := b.Upload(ctx, bytes.NewReader(data), events.UploadParams{
		ObjectKey:   "uploads/abc.png",
		ContentType: "image/png",
		Size:        int64(len(data)),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, b.Len())

	ct, ok := b.ContentType("uploads/abc.png")
	require.True(t, ok)
	assert.Equal(t, "image/png", ct)

	rc, err := b.Download(ctx, "uploads/abc.png")
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestDownloadMissing(t *testing.T) {
	b := New()

	_, err := b.Download(context.Background(), "uploads/missing.png")
	assert.ErrorIs(t, err, events.ErrObjectNotFound)
}

func TestDelete(t *testing.T) {
	b := New()
	ctx := context.Background()

	err := b.Upload(ctx, bytes.NewReader([]byte("x")), events.UploadParams{ObjectKey: "uploads/abc.png"})
	require.NoError(t, err)

	require.NoError(t, b.Delete(ctx, "uploads/abc.png"))
	assert.Zero(t, b.Len())

	_, err = b.Download(ctx, "uploads/abc.png")
	assert.ErrorIs(t, err, events.ErrObjectNotFound)

	// Deleting a missing key is not an error.
	assert.NoError(t, b.Delete(ctx, "uploads/abc.png"))
}

func TestPresignGet(t *testing.T) {
	b := New()

	url, err := b.PresignGet(context.Background(), "uploads/abc.png", 0)
	require.NoError(t, err)
	assert.Equal(t, "memory://uploads/abc.png", url)
}
