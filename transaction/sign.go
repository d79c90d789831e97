// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"context"
	"encoding/hex"
	"sort"
	"time"

	"github.com/bitmark-inc/txcoord/account"
	"github.com/bitmark-inc/txcoord/digest"
	"github.com/bitmark-inc/txcoord/fault"
	"github.com/bitmark-inc/txcoord/operation"
	"github.com/bitmark-inc/txcoord/packing"
	"github.com/bitmark-inc/txcoord/wallet"
)

// operations that must not change after their parent is signed
type freezer interface {
	freeze()
}

// fix the time relative fields of operations, the zero time releases them
func seal(ops []operation.Operation, at time.Time) {
	for _, op := range ops {
		if sealer, ok := op.(operation.Sealer); ok {
			sealer.Seal(at)
		}
	}
}

// SigningMessage - the bytes that signatures are made over
func SigningMessage(chainID string, packed []byte) []byte {
	message := make([]byte, 0, len(chainID)+len(packed))
	message = append(message, chainID...)
	message = append(message, packed...)
	d := digest.New(message)
	return d[:]
}

// Sign - resolve keys for every signer, then sign the packed transaction
//
// if any key cannot be resolved the buffer is left unchanged
func (b *Buffer) Sign(ctx context.Context, keys wallet.KeyProvider) (*Signed, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if nil != b.signed {
		return nil, fault.ErrBufferSigned
	}
	if 0 == len(b.operations) {
		return nil, fault.ErrNoOperations
	}
	if 0 == len(b.signers) {
		return nil, fault.ErrNoSigners
	}

	signers := b.signers.list()

	// one signature per distinct key
	privateKeys := make(map[string]*account.PrivateKey)
	for _, s := range signers {
		if err := ctx.Err(); nil != err {
			return nil, err
		}
		key, err := keys.ResolveKey(s.Account, s.Permission)
		if nil != err {
			b.log.Warnf("signer: %s/%s  error: %s", s.Account, s.Permission, err)
			return nil, err
		}
		privateKeys[hex.EncodeToString(key.PublicKey())] = key
	}

	now := b.settings.Clock()
	seal(b.operations, now)

	unsigned := &packing.Unsigned{
		Expiration: now.Add(b.expiration).UTC(),
		FeeAsset:   b.feeAsset,
		Operations: b.operations,
	}
	packed, err := b.settings.Serializer.Pack(unsigned)
	if nil != err {
		seal(b.operations, time.Time{})
		return nil, err
	}
	ops, err := envelopes(b.operations)
	if nil != err {
		seal(b.operations, time.Time{})
		return nil, err
	}

	publicKeys := make([]string, 0, len(privateKeys))
	for k := range privateKeys {
		publicKeys = append(publicKeys, k)
	}
	sort.Strings(publicKeys)

	message := SigningMessage(b.settings.ChainID, packed)
	signatures := make([]Signature, len(publicKeys))
	for i, k := range publicKeys {
		signatures[i] = Signature{
			PublicKey: k,
			Signature: privateKeys[k].Sign(message),
		}
	}

	signed := &Signed{
		TxId:       digest.New(packed),
		Expiration: unsigned.Expiration,
		FeeAsset:   unsigned.FeeAsset,
		Operations: ops,
		Signers:    signers,
		Signatures: signatures,
	}

	for _, op := range b.operations {
		if f, ok := op.(freezer); ok {
			f.freeze()
		}
	}
	b.signed = signed

	b.log.Infof("signed: %s  operations: %d  signatures: %d", signed.TxId, len(ops), len(signatures))
	return signed, nil
}

// Broadcast - submit the signed transaction
//
// the buffer is cleared after the attempt, even if the node rejects
// it; if noBroadcast is set the transaction is not submitted but the
// buffer is still cleared
func (b *Buffer) Broadcast(ctx context.Context, broadcaster Broadcaster, noBroadcast bool) (*BroadcastReply, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if nil == b.signed {
		return nil, fault.ErrNotSigned
	}

	if noBroadcast {
		b.log.Infof("not broadcasting: %s", b.signed.TxId)
		reply := &BroadcastReply{
			TxId:   b.signed.TxId,
			Status: StatusNotBroadcast,
		}
		b.reset()
		return reply, nil
	}

	// the transaction is consumed whatever the outcome
	defer b.reset()

	reply, err := broadcaster.Broadcast(ctx, b.signed)
	if nil != err {
		b.log.Errorf("broadcast: %s  error: %s", b.signed.TxId, err)
		return nil, err
	}

	b.log.Infof("broadcast: %s  status: %s", reply.TxId, reply.Status)
	return reply, nil
}
