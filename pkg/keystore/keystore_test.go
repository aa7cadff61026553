package keystore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret   = "4f3edf983ac636a65a842ce7c78d9aa706d3b113bce9c46f30d7d21715b23b1d"
	testPassword = "correct horse battery staple"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("scrypt is slow")
	}

	keyJSON, err := EncryptSecret(testSecret, testPassword)
	require.NoError(t, err)
	assert.Equal(t, 3, keyJSON.Version)
	assert.Equal(t, "aes-256-gcm", keyJSON.Crypto.Cipher)
	assert.Equal(t, "scrypt", keyJSON.Crypto.KDF)
	assert.NotEmpty(t, keyJSON.Id)
	assert.NotContains(t, keyJSON.Crypto.CipherText, testSecret)

	secret, err := DecryptSecret(keyJSON, testPassword)
	require.NoError(t, err)
	assert.Equal(t, testSecret, secret)
}

func TestDecryptWrongPassword(t *testing.T) {
	if testing.Short() {
		t.Skip("scrypt is slow")
	}

	keyJSON, err := EncryptSecret(testSecret, testPassword)
	require.NoError(t, err)

	_, err = DecryptSecret(keyJSON, "not the password")
	assert.ErrorIs(t, err, ErrMACMismatch)
}

func TestSaveAndLoadFile(t *testing.T) {
	if testing.Short() {
		t.Skip("scrypt is slow")
	}

	keyJSON, err := EncryptSecret(testSecret, testPassword)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "delegate.json")
	require.NoError(t, keyJSON.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)

	secret, err := DecryptSecret(loaded, testPassword)
	require.NoError(t, err)
	assert.Equal(t, testSecret, secret)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
