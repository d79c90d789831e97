// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"encoding/hex"

	"golang.org/x/crypto/ed25519"
)

// PrivateKey - an ed25519 signing key derived from a seed
type PrivateKey struct {
	test bool
	key  ed25519.PrivateKey
}

// IsTesting - seed was made for a test network
func (privateKey *PrivateKey) IsTesting() bool {
	return privateKey.test
}

// PublicKey - the matching verification key
func (privateKey *PrivateKey) PublicKey() PublicKey {
	return PublicKey(privateKey.key.Public().(ed25519.PublicKey))
}

// Bytes - raw private key bytes
func (privateKey *PrivateKey) Bytes() []byte {
	return privateKey.key
}

// Sign - sign a message
func (privateKey *PrivateKey) Sign(message []byte) Signature {
	return Signature(ed25519.Sign(privateKey.key, message))
}

// String - hex of the private key bytes
func (privateKey *PrivateKey) String() string {
	return hex.EncodeToString(privateKey.key)
}

// GoString - never print the key itself with %#v
func (privateKey *PrivateKey) GoString() string {
	return "<private-key>"
}
