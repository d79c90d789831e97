// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package router - decides where finalized operations go and drives
// the chosen buffer to its result
//
// precedence, first match wins:
//
//   1. explicit target: append and return the parent buffer
//   2. legacy proposer: append to the default proposal, reset to the
//      session expiration and review
//   3. the default buffer
//
// after 2 or 3 the session mode selects unsigned, bundle or
// sign-and-broadcast
package router

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txcoord/connection"
	"github.com/bitmark-inc/txcoord/digest"
	"github.com/bitmark-inc/txcoord/fault"
	"github.com/bitmark-inc/txcoord/operation"
	"github.com/bitmark-inc/txcoord/registry"
	"github.com/bitmark-inc/txcoord/transaction"
	"github.com/bitmark-inc/txcoord/wallet"
)

// Chain - what the router needs from the node
type Chain interface {
	Broadcast(ctx context.Context, signed *transaction.Signed) (*transaction.BroadcastReply, error)
	WaitForTransaction(ctx context.Context, txId digest.Digest, level string, interval time.Duration) (*connection.StatusReply, error)
}

// Mode - session flags fixed at construction
type Mode struct {
	Unsigned        bool
	Bundle          bool
	NoBroadcast     bool
	Proposer        string
	Blocking        string
	BlockingTimeout time.Duration
	PollInterval    time.Duration
}

// Options - per call routing options
type Options struct {
	// *transaction.Buffer or *transaction.Proposal
	AppendTo interface{}
	FeeAsset string
}

// Result - exactly one field is set
//
//   Buffer       explicit target or unsigned mode
//   Snapshot     bundle mode
//   Reply        broadcast
//   Transaction  no broadcast or blocking
type Result struct {
	Buffer      *transaction.Buffer
	Snapshot    *transaction.Snapshot
	Reply       *transaction.BroadcastReply
	Transaction *transaction.Signed
}

// Router - the finalize state machine of a session
type Router struct {
	log *logger.L

	mode     Mode
	registry *registry.Registry
	keys     wallet.KeyProvider
	chain    Chain

	warningsLock sync.Mutex
	warnings     []string
}

// New - create a router
func New(mode Mode, r *registry.Registry, keys wallet.KeyProvider, chain Chain) *Router {
	return &Router{
		log:      logger.New("router"),
		mode:     mode,
		registry: r,
		keys:     keys,
		chain:    chain,
	}
}

// Finalize - route operations authorized by account at permission
func (r *Router) Finalize(ctx context.Context, ops []operation.Operation, account string, permission operation.Permission, options Options) (*Result, error) {
	if 0 == len(ops) {
		return nil, fault.ErrNoOperations
	}

	if nil != options.AppendTo {
		return r.appendTo(ops, account, permission, options.AppendTo)
	}

	var buffer *transaction.Buffer

	if "" != r.mode.Proposer {
		p, err := r.registry.DefaultProposal(r.mode.Proposer, 0, 0)
		if nil != err {
			return nil, err
		}
		expiration, review := r.registry.ProposalDefaults()
		if err := p.SetExpiration(expiration); nil != err {
			return nil, err
		}
		if err := p.SetReview(review); nil != err {
			return nil, err
		}
		err = p.AppendOps(ops...)
		if nil != err {
			return nil, err
		}
		buffer = p.Parent()
		r.log.Debugf("proposer: %s  operations: %v", r.mode.Proposer, operation.Names(ops))
	} else {
		b, err := r.registry.Default()
		if nil != err {
			return nil, err
		}
		err = b.AppendOps(ops...)
		if nil != err {
			return nil, err
		}
		buffer = b
	}

	if "" != options.FeeAsset {
		err := buffer.SetFeeAsset(options.FeeAsset)
		if nil != err {
			return nil, err
		}
	}

	switch {
	case r.mode.Unsigned:
		err := buffer.AddSigningInformation(account, permission)
		if nil != err {
			return nil, err
		}
		return &Result{Buffer: buffer}, nil

	case r.mode.Bundle:
		err := buffer.AppendSigner(account, permission)
		if nil != err {
			return nil, err
		}
		snapshot, err := buffer.Export()
		if nil != err {
			return nil, err
		}
		return &Result{Snapshot: snapshot}, nil

	default:
		err := buffer.AppendSigner(account, permission)
		if nil != err {
			return nil, err
		}
		return r.SignAndBroadcast(ctx, buffer)
	}
}

// explicit target: append, record the signer and stop
func (r *Router) appendTo(ops []operation.Operation, account string, permission operation.Permission, target interface{}) (*Result, error) {
	if "" != r.mode.Proposer {
		r.warn("append target given while proposer %q is set: proposer ignored", r.mode.Proposer)
	}

	switch t := target.(type) {
	case *transaction.Proposal:
		if nil == t {
			return nil, fault.ErrInvalidTarget
		}
		err := t.AppendOps(ops...)
		if nil != err {
			return nil, err
		}
		parent := t.Parent()
		err = parent.AppendSigner(t.Proposer(), permission)
		if nil != err {
			return nil, err
		}
		return &Result{Buffer: parent}, nil

	case *transaction.Buffer:
		if nil == t {
			return nil, fault.ErrInvalidTarget
		}
		err := t.AppendOps(ops...)
		if nil != err {
			return nil, err
		}
		err = t.AppendSigner(account, permission)
		if nil != err {
			return nil, err
		}
		return &Result{Buffer: t}, nil

	default:
		r.log.Errorf("invalid append target: %T", target)
		return nil, fault.ErrInvalidTarget
	}
}

// SignAndBroadcast - sign a buffer, submit it and optionally wait for inclusion
func (r *Router) SignAndBroadcast(ctx context.Context, buffer *transaction.Buffer) (*Result, error) {
	if nil == r.keys {
		return nil, fault.ErrNoWallet
	}

	_, err := buffer.Sign(ctx, r.keys)
	if nil != err {
		return nil, err
	}

	return r.Broadcast(ctx, buffer)
}

// Broadcast - submit an already signed buffer
func (r *Router) Broadcast(ctx context.Context, buffer *transaction.Buffer) (*Result, error) {
	signed, err := buffer.Signed()
	if nil != err {
		return nil, err
	}

	reply, err := buffer.Broadcast(ctx, r.chain, r.mode.NoBroadcast)
	r.registry.Release(buffer)
	if nil != err {
		return nil, err
	}

	if r.mode.NoBroadcast {
		return &Result{Transaction: signed}, nil
	}

	if "" == r.mode.Blocking {
		return &Result{Reply: reply}, nil
	}

	if r.mode.BlockingTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.mode.BlockingTimeout)
		defer cancel()
	}

	status, err := r.chain.WaitForTransaction(ctx, signed.TxId, r.mode.Blocking, r.mode.PollInterval)
	if nil != err {
		return nil, err
	}
	r.log.Infof("txid: %s  included: %s  block: %d", signed.TxId, status.Status, status.BlockNumber)

	return &Result{Transaction: signed}, nil
}

func (r *Router) warn(format string, arguments ...interface{}) {
	message := fmt.Sprintf(format, arguments...)
	r.log.Warn(message)

	r.warningsLock.Lock()
	r.warnings = append(r.warnings, message)
	r.warningsLock.Unlock()
}

// Warnings - configuration conflicts seen so far
func (r *Router) Warnings() []string {
	r.warningsLock.Lock()
	defer r.warningsLock.Unlock()

	list := make([]string, len(r.warnings))
	copy(list, r.warnings)
	return list
}
