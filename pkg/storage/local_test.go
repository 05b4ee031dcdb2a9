package storage

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSaveBase64WritesDecodedPayload(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, zap.NewNop())
	require.NoError(t, err)

	ownerID := uuid.New()
	payload := base64.StdEncoding.EncodeToString([]byte("passport scan"))

	ref, err := store.SaveBase64(ownerID, "passport.pdf", payload)
	require.NoError(t, err)
	assert.NotEmpty(t, ref)

	data, err := os.ReadFile(ref)
	require.NoError(t, err)
	assert.Equal(t, "passport scan", string(data))
}

func TestSaveBase64RejectsInvalidPayload(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	_, err = store.SaveBase64(uuid.New(), "doc.png", "not-base64!!!")
	assert.Error(t, err)
}

func TestSaveBase64SanitizesFilename(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, zap.NewNop())
	require.NoError(t, err)

	payload := base64.StdEncoding.EncodeToString([]byte("x"))
	ref, err := store.SaveBase64(uuid.New(), "../../etc/passwd", payload)
	require.NoError(t, err)

	abs, err := filepath.Abs(ref)
	require.NoError(t, err)
	absDir, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, absDir, filepath.Dir(abs))
}
