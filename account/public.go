// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"encoding/hex"
	"strings"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/txcoord/fault"
)

const publicKeyChecksumLength = 4

// PublicKey - ed25519 public key bytes
type PublicKey []byte

// String - text form of a public key on a chain with the given prefix
//
// prefix ‖ base58(key ‖ sha3(key)[:4])
func (publicKey PublicKey) String(prefix string) string {
	checksum := sha3.Sum256(publicKey)
	buffer := make([]byte, 0, len(publicKey)+publicKeyChecksumLength)
	buffer = append(buffer, publicKey...)
	buffer = append(buffer, checksum[:publicKeyChecksumLength]...)
	return prefix + base58.Encode(buffer)
}

// GoString - for the %#v format
func (publicKey PublicKey) GoString() string {
	return "<ed25519:" + hex.EncodeToString(publicKey) + ">"
}

// Verify - check a signature made by the matching private key
func (publicKey PublicKey) Verify(message []byte, signature Signature) bool {
	if ed25519.PublicKeySize != len(publicKey) {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(publicKey), message, signature)
}

// PublicKeyFromString - parse the text form produced by String
func PublicKeyFromString(prefix string, s string) (PublicKey, error) {
	if !strings.HasPrefix(s, prefix) {
		return nil, fault.ErrInvalidPublicKey
	}

	buffer, err := base58.Decode(s[len(prefix):])
	if nil != err {
		return nil, fault.ErrInvalidPublicKey
	}
	if ed25519.PublicKeySize+publicKeyChecksumLength != len(buffer) {
		return nil, fault.ErrInvalidKeyLength
	}

	key := buffer[:ed25519.PublicKeySize]
	checksum := sha3.Sum256(key)
	if !bytes.Equal(checksum[:publicKeyChecksumLength], buffer[ed25519.PublicKeySize:]) {
		return nil, fault.ErrChecksumMismatch
	}
	return PublicKey(key), nil
}
