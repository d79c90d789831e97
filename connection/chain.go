// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package connection

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/txcoord/configuration"
	"github.com/bitmark-inc/txcoord/digest"
	"github.com/bitmark-inc/txcoord/fault"
	"github.com/bitmark-inc/txcoord/transaction"
)

// chain methods used by the coordinator
const (
	MethodDynamicProperties = "Chain.DynamicProperties"
	MethodBroadcast         = "Transaction.Broadcast"
	MethodStatus            = "Transaction.Status"
)

// DefaultPollInterval - used when WaitForTransaction is given no interval
const DefaultPollInterval = time.Second

// State - current global chain state
type State struct {
	HeadBlockNumber         uint64    `json:"head_block_number"`
	HeadBlockID             string    `json:"head_block_id"`
	Time                    time.Time `json:"time"`
	LastIrreversibleBlockNo uint64    `json:"last_irreversible_block_num"`
}

// StatusArguments - transaction status request
type StatusArguments struct {
	TxId digest.Digest `json:"txid"`
}

// StatusReply - transaction status response
type StatusReply struct {
	TxId        digest.Digest `json:"txid"`
	Status      string        `json:"status"`
	BlockNumber uint64        `json:"block_number"`
}

// CurrentState - fetch the chain state from the node, never cached
func (c *Connection) CurrentState(ctx context.Context) (*State, error) {
	var state State
	err := c.Call(ctx, MethodDynamicProperties, struct{}{}, &state)
	if nil != err {
		return nil, err
	}
	return &state, nil
}

// Broadcast - submit a signed transaction
//
// an error reported by the node becomes a RejectedError with the
// node's reason unchanged
func (c *Connection) Broadcast(ctx context.Context, signed *transaction.Signed) (*transaction.BroadcastReply, error) {
	var reply transaction.BroadcastReply
	err := c.Call(ctx, MethodBroadcast, signed, &reply)
	if nil != err {
		if fault.IsErrRemote(err) {
			return nil, fault.Rejected(errors.Cause(err).Error())
		}
		return nil, err
	}
	if reply.TxId.IsZero() {
		reply.TxId = signed.TxId
	}
	if "" == reply.Status {
		reply.Status = transaction.StatusAccepted
	}
	return &reply, nil
}

// WaitForTransaction - poll until a transaction reaches level
//
// level is one of configuration.BlockingHead or BlockingIrreversible;
// the wait is bounded only by ctx
func (c *Connection) WaitForTransaction(ctx context.Context, txId digest.Digest, level string, interval time.Duration) (*StatusReply, error) {
	var accept map[string]bool
	switch level {
	case configuration.BlockingHead:
		accept = map[string]bool{
			transaction.StatusHead:         true,
			transaction.StatusIrreversible: true,
		}
	case configuration.BlockingIrreversible:
		accept = map[string]bool{
			transaction.StatusIrreversible: true,
		}
	default:
		return nil, fault.ErrNotInclusionLevel
	}

	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	arguments := StatusArguments{TxId: txId}

loop:
	for {
		var reply StatusReply
		err := c.Call(ctx, MethodStatus, arguments, &reply)

		switch {
		case nil != err && fault.IsErrRemote(err):
			// not yet seen by the node
			c.log.Debugf("status: %s  remote: %s", txId, err)
		case nil != err:
			if nil != ctx.Err() {
				break loop
			}
			return nil, err
		case accept[reply.Status]:
			c.log.Infof("txid: %s  status: %s  block: %d", txId, reply.Status, reply.BlockNumber)
			return &reply, nil
		case transaction.StatusExpired == reply.Status:
			return nil, fault.ErrTransactionExpired
		case transaction.StatusPending == reply.Status,
			transaction.StatusHead == reply.Status:
		default:
			return nil, errors.WithMessage(fault.ErrUnknownStatus, reply.Status)
		}

		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
		}
	}

	return nil, errors.WithMessage(fault.ErrWaitTimeout, ctx.Err().Error())
}
