// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txcoord/fault"
	"github.com/bitmark-inc/txcoord/operation"
	"github.com/bitmark-inc/txcoord/packing"
)

// defaults applied to zero fields of Settings
const (
	DefaultExpiration = 30 * time.Second
	DefaultFeeAsset   = "CORE"
)

// Settings - fixed parameters of a buffer
type Settings struct {
	ChainID    string
	Serializer packing.Serializer
	Expiration time.Duration
	FeeAsset   string
	Clock      func() time.Time
}

// Buffer - ordered operations and the signers they need
type Buffer struct {
	mutex sync.Mutex
	log   *logger.L

	settings    Settings
	operations  []operation.Operation
	signers     signerSet
	feeAsset    string
	expiration  time.Duration
	signingInfo bool
	signed      *Signed
}

// NewBuffer - create an empty buffer
func NewBuffer(settings Settings) *Buffer {
	if nil == settings.Serializer {
		settings.Serializer = packing.Canonical{}
	}
	if settings.Expiration <= 0 {
		settings.Expiration = DefaultExpiration
	}
	if "" == settings.FeeAsset {
		settings.FeeAsset = DefaultFeeAsset
	}
	if nil == settings.Clock {
		settings.Clock = time.Now
	}

	b := &Buffer{
		log:      logger.New("buffer"),
		settings: settings,
	}
	b.reset()
	return b
}

// must hold the mutex
func (b *Buffer) reset() {
	b.operations = nil
	b.signers = make(signerSet)
	b.feeAsset = b.settings.FeeAsset
	b.expiration = b.settings.Expiration
	b.signingInfo = false
	b.signed = nil
}

// AppendOps - add operations in order
func (b *Buffer) AppendOps(ops ...operation.Operation) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if nil != b.signed {
		return fault.ErrBufferSigned
	}
	for _, op := range ops {
		if nil == op {
			return fault.ErrNoOperations
		}
	}
	b.operations = append(b.operations, ops...)
	b.log.Debugf("append: %v", operation.Names(ops))
	return nil
}

// AppendSigner - require a signature from account at permission
func (b *Buffer) AppendSigner(account string, permission operation.Permission) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	return b.appendSigner(Signer{Account: account, Permission: permission})
}

// AddSigningInformation - record a signer for later offline signing
//
// the exported snapshot of the buffer will list the required signers
func (b *Buffer) AddSigningInformation(account string, permission operation.Permission) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	err := b.appendSigner(Signer{Account: account, Permission: permission})
	if nil != err {
		return err
	}
	b.signingInfo = true
	return nil
}

// must hold the mutex
func (b *Buffer) appendSigner(s Signer) error {
	if nil != b.signed {
		return fault.ErrBufferSigned
	}
	err := s.validate()
	if nil != err {
		return err
	}
	b.signers[s] = struct{}{}
	return nil
}

// SetFeeAsset - asset used to pay fees for the whole transaction
func (b *Buffer) SetFeeAsset(asset string) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if nil != b.signed {
		return fault.ErrBufferSigned
	}
	if "" == asset {
		asset = b.settings.FeeAsset
	}
	b.feeAsset = asset
	return nil
}

// FeeAsset - current fee asset
func (b *Buffer) FeeAsset() string {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.feeAsset
}

// SetExpiration - validity period counted from signing
func (b *Buffer) SetExpiration(expiration time.Duration) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if nil != b.signed {
		return fault.ErrBufferSigned
	}
	if expiration <= 0 {
		return fault.ErrInvalidExpiration
	}
	b.expiration = expiration
	return nil
}

// Expiration - current validity period
func (b *Buffer) Expiration() time.Duration {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.expiration
}

// Operations - copy of the operations in append order
func (b *Buffer) Operations() []operation.Operation {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	ops := make([]operation.Operation, len(b.operations))
	copy(ops, b.operations)
	return ops
}

// Signers - required signers sorted by account then permission
func (b *Buffer) Signers() []Signer {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.signers.list()
}

// IsSigned - true once Sign has succeeded
func (b *Buffer) IsSigned() bool {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return nil != b.signed
}

// IsEmpty - true if there are no operations
func (b *Buffer) IsEmpty() bool {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return 0 == len(b.operations)
}

// Signed - the signed transaction
func (b *Buffer) Signed() (*Signed, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if nil == b.signed {
		return nil, fault.ErrNotSigned
	}
	return b.signed, nil
}

// Clear - discard everything including any signature
func (b *Buffer) Clear() {
	b.mutex.Lock()
	b.reset()
	b.mutex.Unlock()
}

// Contains - true if the proposal is one of the buffer's operations
func (b *Buffer) Contains(p *Proposal) bool {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	for _, op := range b.operations {
		if held, ok := op.(*Proposal); ok && held == p {
			return true
		}
	}
	return false
}

// Export - serializable snapshot
//
// the buffer is not modified and remains open for appends
func (b *Buffer) Export() (*Snapshot, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	ops, err := envelopes(b.operations)
	if nil != err {
		return nil, err
	}
	return &Snapshot{
		Expiration: int(b.expiration / time.Second),
		FeeAsset:   b.feeAsset,
		Operations: ops,
		Signers:    b.signers.list(),
		Signed:     b.signed,
	}, nil
}

// SigningInformation - true if AddSigningInformation was called
func (b *Buffer) SigningInformation() bool {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.signingInfo
}
