// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"crypto/rand"
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/txcoord/fault"
)

// seed parameters
var (
	seedHeaderV1 = []byte{0x5a, 0xfe, 0x01}
	seedHeaderV2 = []byte{0x5a, 0xfe, 0x02}
)

// for seed v1 only
var (
	seedNonce     = [24]byte{}
	authSeedIndex = [16]byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x03, 0xe7,
	}
)

const (
	seedHeaderLength = 3
	seedPrefixLength = 1

	secretKeyV1Length        = 32
	secretKeyV2Length        = 17
	secretKeyV2EntropyLength = 16
	seedChecksumLength       = 4

	seedV1Length = 40
	seedV2Length = 24
)

// PrivateKeyFromSeed - convert a base58 encoded seed into a private key
//
// both the 40 byte (v1) and the 24 byte (v2) seed forms are accepted
func PrivateKeyFromSeed(seedBase58Encoded string) (*PrivateKey, error) {

	seed, err := base58.Decode(seedBase58Encoded)
	if nil != err {
		return nil, fault.ErrCannotDecodeSeed
	}

	// verify length
	seedLength := len(seed)
	if seedV1Length != seedLength && seedV2Length != seedLength {
		return nil, fault.ErrInvalidSeedLength
	}

	// verify checksum
	checksumStart := seedLength - seedChecksumLength
	digest := sha3.Sum256(seed[:checksumStart])
	if !bytes.Equal(digest[:seedChecksumLength], seed[checksumStart:]) {
		return nil, fault.ErrChecksumMismatch
	}

	header := seed[:seedHeaderLength]
	var ed25519Seed []byte
	var testnet bool

	switch {
	case bytes.Equal(seedHeaderV1, header) && seedV1Length == seedLength:
		var sk [secretKeyV1Length]byte
		secretStart := seedHeaderLength + seedPrefixLength
		copy(sk[:], seed[secretStart:checksumStart])

		// first byte of prefix is test/live indication
		testnet = 0x01 == seed[seedHeaderLength]

		ed25519Seed = secretbox.Seal([]byte{}, authSeedIndex[:], &seedNonce, &sk)

	case bytes.Equal(seedHeaderV2, header) && seedV2Length == seedLength:
		sk := seed[seedHeaderLength:checksumStart]
		if 0 != sk[16]&0x0f {
			return nil, fault.ErrInvalidSeedLength
		}

		mode := sk[0]&0x80 | sk[1]&0x40 | sk[2]&0x20 | sk[3]&0x10
		testnet = mode == sk[15]&0xf0^0xf0

		// the seed is hashed four times over
		hash := sha3.NewShake256()
		for i := 0; i < 4; i += 1 {
			_, _ = hash.Write(sk)
		}
		ed25519Seed = make([]byte, ed25519.SeedSize)
		if _, err := hash.Read(ed25519Seed); nil != err {
			return nil, fault.ErrCannotDecodeSeed
		}

	case bytes.Equal(seedHeaderV1, header), bytes.Equal(seedHeaderV2, header):
		return nil, fault.ErrInvalidSeedLength

	default:
		return nil, fault.ErrInvalidSeedHeader
	}

	_, priv, err := ed25519.GenerateKey(bytes.NewBuffer(ed25519Seed))
	if nil != err {
		return nil, err
	}

	privateKey := &PrivateKey{
		test: testnet,
		key:  priv,
	}
	return privateKey, nil
}

// NewSeed - generate a base58 v1 seed from secure random data
func NewSeed(testnet bool) (string, error) {

	sk := make([]byte, secretKeyV1Length)
	n, err := rand.Read(sk)
	if nil != err {
		return "", err
	}
	if secretKeyV1Length != n {
		return "", fmt.Errorf("got: %d bytes, expected: %d bytes", n, secretKeyV1Length)
	}

	net := byte(0x00)
	if testnet {
		net = 0x01
	}

	seed := make([]byte, 0, seedV1Length)
	seed = append(seed, seedHeaderV1...)
	seed = append(seed, net)
	seed = append(seed, sk...)
	checksum := sha3.Sum256(seed)
	seed = append(seed, checksum[:seedChecksumLength]...)

	return base58.Encode(seed), nil
}
