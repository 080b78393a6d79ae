package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocal(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(Config{BasePath: t.TempDir(), BaseURL: "/api/v1/files"})
	require.NoError(t, err)
	return s
}

func TestLocalSaveGetRoundTrip(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "chat/room-1/file.pdf", strings.NewReader("pdf-bytes"), "application/pdf"))

	reader, err := s.Get(ctx, "chat/room-1/file.pdf")
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(data))
}

func TestLocalGetMissingFile(t *testing.T) {
	s := newLocal(t)

	_, err := s.Get(context.Background(), "documents/nope.pdf")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalRejectsEscapingPaths(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()

	for _, path := range []string{"../outside.txt", "chat/../../outside.txt", "/etc/passwd", "."} {
		err := s.Save(ctx, path, strings.NewReader("x"), "text/plain")
		assert.Error(t, err, "path %q must be rejected", path)

		_, err = s.Get(ctx, path)
		assert.ErrorIs(t, err, ErrNotFound, "path %q must not resolve", path)
	}
}

func TestLocalDeleteIsIdempotent(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "documents/doc.pdf", strings.NewReader("x"), "application/pdf"))
	require.NoError(t, s.Delete(ctx, "documents/doc.pdf"))
	require.NoError(t, s.Delete(ctx, "documents/doc.pdf"))

	_, err := s.Get(ctx, "documents/doc.pdf")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalGetURL(t *testing.T) {
	s := newLocal(t)

	url, err := s.GetURL(context.Background(), "chat/room-1/file.png")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/files/chat/room-1/file.png", url)
}
