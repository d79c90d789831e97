// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"sync"
)

// keys held by a provider
const (
	KeyNode           = "node"
	KeyRPCUser        = "rpcuser"
	KeyRPCPassword    = "rpcpassword"
	KeyDefaultAccount = "default_account"
)

// Provider - persistent key/value configuration
type Provider interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// Memory - provider that lives only as long as the process
type Memory struct {
	sync.RWMutex
	values map[string]string
}

// NewMemory - create a memory provider with optional initial values
func NewMemory(initial map[string]string) *Memory {
	m := &Memory{
		values: make(map[string]string),
	}
	for k, v := range initial {
		m.values[k] = v
	}
	return m
}

// Get - read a value
func (m *Memory) Get(key string) (string, bool) {
	m.RLock()
	defer m.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Set - write a value
func (m *Memory) Set(key string, value string) error {
	m.Lock()
	m.values[key] = value
	m.Unlock()
	return nil
}
