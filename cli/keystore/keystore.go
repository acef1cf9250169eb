// Package keystore provides encrypted storage for provider API keys.
package keystore

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

// PassphraseEnvVar supplies the keystore passphrase non-interactively.
const PassphraseEnvVar = "PERLE_KEYSTORE_PASSPHRASE"

// Keystore defines the interface for secure key storage.
type Keystore interface {
	// Set stores a key-value pair.
	Set(name, value string) error
	// Get retrieves a value by name. Returns error if not found.
	Get(name string) (string, error)
	// Delete removes a key by name.
	Delete(name string) error
	// List returns all stored key names.
	List() ([]string, error)
}

// ErrKeyNotFound is returned when a requested key does not exist.
type ErrKeyNotFound struct {
	Name string
}

func (e *ErrKeyNotFound) Error() string {
	return "key not found: " + e.Name
}

// ErrWrongPassphrase is returned when the file cannot be decrypted.
var ErrWrongPassphrase = errors.New("keystore: wrong passphrase or corrupted file")

// ErrNoPassphrase is returned by a source that has nothing to offer.
var ErrNoPassphrase = errors.New("keystore: no passphrase available")

// MasterKeySource yields the secret the file key is derived from.
type MasterKeySource interface {
	MasterKey() ([]byte, error)
}

// Passphrase is a fixed master key.
type Passphrase string

// MasterKey returns the passphrase bytes.
func (p Passphrase) MasterKey() ([]byte, error) {
	if p == "" {
		return nil, ErrNoPassphrase
	}
	return []byte(p), nil
}

// EnvPassphrase reads the master key from an environment variable.
type EnvPassphrase string

// MasterKey returns the variable's value.
func (e EnvPassphrase) MasterKey() ([]byte, error) {
	return Passphrase(os.Getenv(string(e))).MasterKey()
}

// PromptFunc asks the user for a passphrase.
type PromptFunc func() ([]byte, error)

// MasterKey calls the prompt.
func (f PromptFunc) MasterKey() ([]byte, error) {
	key, err := f()
	if err != nil {
		return nil, err
	}
	if len(key) == 0 {
		return nil, ErrNoPassphrase
	}
	return key, nil
}

// FirstOf tries each source in order and returns the first master key found.
func FirstOf(sources ...MasterKeySource) MasterKeySource {
	return PromptFunc(func() ([]byte, error) {
		for _, s := range sources {
			key, err := s.MasterKey()
			if errors.Is(err, ErrNoPassphrase) {
				continue
			}
			return key, err
		}
		return nil, ErrNoPassphrase
	})
}

// DefaultKeystorePath returns the default keystore file path.
// - macOS/Linux: ~/.perle/keys.enc
// - Windows: %USERPROFILE%\.perle\keys.enc
func DefaultKeystorePath() string {
	var homeDir string

	if runtime.GOOS == "windows" {
		homeDir = os.Getenv("USERPROFILE")
	} else {
		homeDir = os.Getenv("HOME")
	}

	if homeDir == "" {
		return "keys.enc"
	}

	return filepath.Join(homeDir, ".perle", "keys.enc")
}

// Exists reports whether a keystore file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
