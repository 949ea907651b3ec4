package avatar_test

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"socialite/backend/internal/avatar"
	"socialite/backend/internal/models"

	"github.com/stretchr/testify/require"
)

func uploadHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("avatar", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	_, fh, err := req.FormFile("avatar")
	require.NoError(t, err)
	return fh
}

func TestSaveKeepsExtensionAndContent(t *testing.T) {
	dir := t.TempDir()
	store := avatar.NewStore(dir)

	name, err := store.Save("alice", uploadHeader(t, "me.png", "png-bytes"))
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(name, ".png"))

	data, err := os.ReadFile(filepath.Join(dir, "alice", "profile", name))
	require.NoError(t, err)
	require.Equal(t, "png-bytes", string(data))
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	store := avatar.NewStore(t.TempDir())

	first, err := store.Save("alice", uploadHeader(t, "me.jpg", "a"))
	require.NoError(t, err)
	second, err := store.Save("alice", uploadHeader(t, "me.jpg", "b"))
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	store := avatar.NewStore(dir)

	name, err := store.Save("alice", uploadHeader(t, "me.jpg", "a"))
	require.NoError(t, err)

	require.NoError(t, store.Remove("alice", name))
	_, err = os.Stat(filepath.Join(dir, "alice", "profile", name))
	require.True(t, os.IsNotExist(err))

	// The placeholder and already-missing files are left alone.
	require.NoError(t, store.Remove("alice", models.DefaultProfilePic))
	require.NoError(t, store.Remove("alice", "gone.jpg"))
	require.NoError(t, store.Remove("alice", ""))
}
