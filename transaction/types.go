// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/txcoord/account"
	"github.com/bitmark-inc/txcoord/digest"
	"github.com/bitmark-inc/txcoord/operation"
)

// broadcast and inclusion status values
const (
	StatusAccepted     = "accepted"
	StatusPending      = "pending"
	StatusHead         = "head"
	StatusIrreversible = "irreversible"
	StatusExpired      = "expired"
	StatusNotBroadcast = "not_broadcast"
)

// Envelope - an operation with its name, body frozen as JSON
type Envelope struct {
	Name string          `json:"name"`
	Body json.RawMessage `json:"op"`
}

// Signature - a signature and the key that made it
type Signature struct {
	PublicKey string            `json:"public_key"`
	Signature account.Signature `json:"signature"`
}

// Signed - a signed transaction ready for broadcast
type Signed struct {
	TxId       digest.Digest `json:"txid"`
	Expiration time.Time     `json:"expiration"`
	FeeAsset   string        `json:"fee_asset"`
	Operations []Envelope    `json:"operations"`
	Signers    []Signer      `json:"signers"`
	Signatures []Signature   `json:"signatures"`
}

// Snapshot - serializable copy of a buffer
type Snapshot struct {
	Expiration int        `json:"expiration_seconds"`
	FeeAsset   string     `json:"fee_asset"`
	Operations []Envelope `json:"operations"`
	Signers    []Signer   `json:"required_signers"`
	Signed     *Signed    `json:"signed,omitempty"`
}

// BroadcastReply - result of submitting a transaction
type BroadcastReply struct {
	TxId        digest.Digest `json:"txid"`
	BlockNumber uint64        `json:"block_number,omitempty"`
	Status      string        `json:"status"`
}

// Broadcaster - submits signed transactions to a node
type Broadcaster interface {
	Broadcast(context.Context, *Signed) (*BroadcastReply, error)
}

// freeze a list of operations as envelopes
func envelopes(ops []operation.Operation) ([]Envelope, error) {
	result := make([]Envelope, len(ops))
	for i, op := range ops {
		body, err := json.Marshal(op)
		if nil != err {
			return nil, errors.Wrapf(err, "operation %d: %s", i, op.OperationName())
		}
		result[i] = Envelope{
			Name: op.OperationName(),
			Body: body,
		}
	}
	return result, nil
}
