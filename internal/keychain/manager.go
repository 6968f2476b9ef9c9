// Copyright (c) 2025 The xgtsh Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain stores the server password in the OS credential
// store so an operator can connect without retyping --pw. Only native
// platform backends are used; there is no file fallback.
package keychain

import (
	"runtime"
	"sync"

	"github.com/99designs/keyring"
	"github.com/pkg/errors"
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "xgtsh"

// keyServerPassword prefixes the per-user password entries.
const keyServerPassword = "server_password"

var (
	mu            sync.Mutex
	globalManager *Manager
)

// Manager provides access to the OS keychain.
type Manager struct {
	ring keyring.Keyring
}

// GetManager returns the process-wide keychain manager, creating it on
// first use. Initialization failures are retried on later calls.
func GetManager() (*Manager, error) {
	mu.Lock()
	defer mu.Unlock()
	if globalManager != nil {
		return globalManager, nil
	}
	ring, err := openRing()
	if err != nil {
		return nil, err
	}
	globalManager = &Manager{ring: ring}
	return globalManager, nil
}

// openRing opens the OS keyring using native platform backends only.
func openRing() (keyring.Keyring, error) {
	var allowed []keyring.BackendType
	switch runtime.GOOS {
	case "darwin":
		allowed = []keyring.BackendType{keyring.KeychainBackend}
	case "windows":
		allowed = []keyring.BackendType{keyring.WinCredBackend}
	case "linux":
		allowed = []keyring.BackendType{keyring.SecretServiceBackend}
	default:
		return nil, errors.New("secure storage not supported on this OS")
	}
	return keyring.Open(keyring.Config{
		ServiceName:     ServiceName,
		AllowedBackends: allowed,
	})
}

// LoadServerPassword returns the stored password for user, or an error
// when none is stored.
func (m *Manager) LoadServerPassword(user string) (string, error) {
	item, err := m.ring.Get(keyServerPassword + ":" + user)
	if err != nil {
		return "", errors.Wrap(err, "load server password")
	}
	return string(item.Data), nil
}

// SaveServerPassword stores the password for user.
func (m *Manager) SaveServerPassword(user, password string) error {
	err := m.ring.Set(keyring.Item{
		Key:  keyServerPassword + ":" + user,
		Data: []byte(password),
	})
	return errors.Wrap(err, "save server password")
}
