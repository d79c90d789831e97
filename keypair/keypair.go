// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keypair

import (
	"encoding/hex"

	"github.com/bitmark-inc/txcoord/account"
)

// KeyPair - structure to hold public and private keys and the seed
// that was used to generate them
type KeyPair struct {
	Seed       string
	PublicKey  account.PublicKey
	PrivateKey *account.PrivateKey
}

// RawKeyPair - text version of seed and keys
type RawKeyPair struct {
	Seed       string `json:"seed"`
	Account    string `json:"account"`
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
}

// NewSeed - create a new seed from secure random data
func NewSeed(test bool) (string, error) {
	return account.NewSeed(test)
}

// MakeRawKeyPair - create new seed and generate public/private keys from it
func MakeRawKeyPair(prefix string, test bool) (*RawKeyPair, *KeyPair, error) {
	seed, err := NewSeed(test)
	if nil != err {
		return nil, nil, err
	}
	return MakeRawKeyPairFromSeed(prefix, seed)
}

// MakeRawKeyPairFromSeed - generate public/private keys from existing seed
func MakeRawKeyPairFromSeed(prefix string, seed string) (*RawKeyPair, *KeyPair, error) {

	keyPair, err := FromSeed(seed)
	if nil != err {
		return nil, nil, err
	}

	rawKeyPair := RawKeyPair{
		Seed:       seed,
		Account:    keyPair.PublicKey.String(prefix),
		PublicKey:  hex.EncodeToString(keyPair.PublicKey),
		PrivateKey: keyPair.PrivateKey.String(),
	}

	return &rawKeyPair, keyPair, nil
}

// FromSeed - decode a seed into its key pair
func FromSeed(seed string) (*KeyPair, error) {
	privateKey, err := account.PrivateKeyFromSeed(seed)
	if nil != err {
		return nil, err
	}

	keyPair := KeyPair{
		Seed:       seed,
		PublicKey:  privateKey.PublicKey(),
		PrivateKey: privateKey,
	}
	return &keyPair, nil
}
