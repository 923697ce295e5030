package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempPEM(t *testing.T, name string, block *pem.Block) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadPrivateKey_Plain(t *testing.T) {
	t.Parallel()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	path := writeTempPEM(t, "private.pem", &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	got, err := LoadPrivateKey(path, "")
	require.NoError(t, err)
	assert.True(t, key.Equal(got))
}

func TestLoadPrivateKey_Encrypted(t *testing.T) {
	t.Parallel()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	//nolint:staticcheck // produce the legacy format LoadPrivateKey accepts
	block, err := x509.EncryptPEMBlock(rand.Reader, "RSA PRIVATE KEY",
		x509.MarshalPKCS1PrivateKey(key), []byte("s3cret"), x509.PEMCipherAES256)
	require.NoError(t, err)

	path := writeTempPEM(t, "private.pem", block)

	got, err := LoadPrivateKey(path, "s3cret")
	require.NoError(t, err)
	assert.True(t, key.Equal(got))

	_, err = LoadPrivateKey(path, "wrong")
	assert.Error(t, err)
}

func TestLoadPrivateKey_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadPrivateKey(filepath.Join(t.TempDir(), "nope.pem"), "")
	assert.Error(t, err)
}

func TestLoadPublicKey(t *testing.T) {
	t.Parallel()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	path := writeTempPEM(t, "public.pem", &pem.Block{Type: "PUBLIC KEY", Bytes: der})

	got, err := LoadPublicKey(path)
	require.NoError(t, err)
	assert.True(t, key.PublicKey.Equal(got))
}

func TestLoadPublicKey_Garbage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "public.pem")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	_, err := LoadPublicKey(path)
	assert.Error(t, err)
}
