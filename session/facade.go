// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package session

import (
	"context"
	"time"

	"github.com/bitmark-inc/txcoord/configuration"
	"github.com/bitmark-inc/txcoord/connection"
	"github.com/bitmark-inc/txcoord/fault"
	"github.com/bitmark-inc/txcoord/operation"
	"github.com/bitmark-inc/txcoord/registry"
	"github.com/bitmark-inc/txcoord/router"
	"github.com/bitmark-inc/txcoord/transaction"
	"github.com/bitmark-inc/txcoord/wallet"
)

// Info - summary of the session and the chain
type Info struct {
	Node     string            `json:"node,omitempty"`
	Offline  bool              `json:"offline"`
	Prefix   string            `json:"prefix"`
	ChainID  string            `json:"chain_id,omitempty"`
	Default  string            `json:"default_account,omitempty"`
	State    *connection.State `json:"state,omitempty"`
	Warnings []string          `json:"warnings,omitempty"`
}

// Options - the options the session was built with
func (s *Session) Options() configuration.Options {
	return s.options
}

// Prefix - account prefix of the chain, or the configured one when offline
func (s *Session) Prefix() string {
	return s.options.Prefix
}

// Configuration - the persisted settings
func (s *Session) Configuration() configuration.Provider {
	return s.provider
}

// Connection - the session's chain connection
func (s *Session) Connection() *connection.Connection {
	return s.connection
}

// Keystore - the wallet file, nil when keys were supplied
func (s *Session) Keystore() *wallet.Keystore {
	return s.keystore
}

// NewTransaction - create another transaction buffer
func (s *Session) NewTransaction(options registry.TxOptions) *transaction.Buffer {
	return s.registry.NewTransaction(options)
}

// NewProposal - create a proposal inside parent, nil for the default buffer
func (s *Session) NewProposal(parent *transaction.Buffer, proposer string, expiration time.Duration, review time.Duration) (*transaction.Proposal, error) {
	return s.registry.NewProposal(parent, proposer, expiration, review)
}

// Default - the default transaction buffer
func (s *Session) Default() (*transaction.Buffer, error) {
	return s.registry.Default()
}

// Clear - empty a buffer, nil for the default buffer, and forget its proposals
func (s *Session) Clear(buffer *transaction.Buffer) error {
	buffer, err := s.buffer(buffer)
	if nil != err {
		return err
	}
	s.registry.Clear(buffer)
	return nil
}

// DefaultProposal - get or configure the default proposal
func (s *Session) DefaultProposal(proposer string, expiration time.Duration, review time.Duration) (*transaction.Proposal, error) {
	return s.registry.DefaultProposal(proposer, expiration, review)
}

// Transactions - all transaction buffers
func (s *Session) Transactions() []*transaction.Buffer {
	return s.registry.Transactions()
}

// Proposals - all proposals
func (s *Session) Proposals() []*transaction.Proposal {
	return s.registry.Proposals()
}

// Finalize - route operations; an empty account selects the default account
func (s *Session) Finalize(ctx context.Context, ops []operation.Operation, account string, permission operation.Permission, options router.Options) (*router.Result, error) {
	if "" == account {
		account, _ = s.provider.Get(configuration.KeyDefaultAccount)
	}
	if "" == account {
		return nil, fault.ErrNoAccount
	}
	if "" == permission {
		permission = operation.DefaultPermission
	}
	return s.router.Finalize(ctx, ops, account, permission, options)
}

// Sign - sign a buffer, nil for the default buffer
//
// seeds, if given, replace the session keys for this call
func (s *Session) Sign(ctx context.Context, buffer *transaction.Buffer, seeds []string) (*transaction.Signed, error) {
	buffer, err := s.buffer(buffer)
	if nil != err {
		return nil, err
	}

	keys := s.keys
	if 0 != len(seeds) {
		supplied, err := wallet.NewSupplied(s.options.Prefix, seeds)
		if nil != err {
			return nil, err
		}
		keys = supplied
	}
	if nil == keys {
		return nil, fault.ErrNoWallet
	}
	return buffer.Sign(ctx, keys)
}

// Broadcast - submit a signed buffer, nil for the default buffer
func (s *Session) Broadcast(ctx context.Context, buffer *transaction.Buffer) (*router.Result, error) {
	buffer, err := s.buffer(buffer)
	if nil != err {
		return nil, err
	}
	return s.router.Broadcast(ctx, buffer)
}

func (s *Session) buffer(buffer *transaction.Buffer) (*transaction.Buffer, error) {
	if nil != buffer {
		return buffer, nil
	}
	return s.registry.Default()
}

// Info - session summary; the chain state is fetched when online
func (s *Session) Info(ctx context.Context) (*Info, error) {
	info := &Info{
		Node:     s.connection.Node(),
		Offline:  s.connection.IsOffline(),
		Prefix:   s.options.Prefix,
		Warnings: s.router.Warnings(),
	}
	info.Default, _ = s.provider.Get(configuration.KeyDefaultAccount)

	if info.Offline {
		return info, nil
	}

	info.ChainID, _ = s.connection.ChainID()
	state, err := s.connection.CurrentState(ctx)
	if nil != err {
		return nil, err
	}
	info.State = state
	return info, nil
}

// NewWallet - create the keystore protected by password
func (s *Session) NewWallet(password string) error {
	if nil == s.keystore {
		return fault.ErrNoWallet
	}
	return s.keystore.Create(password)
}

// Unlock - unlock the keystore
func (s *Session) Unlock(password string) error {
	if nil == s.keystore {
		return fault.ErrNoWallet
	}
	return s.keystore.Unlock(password)
}

// SetDefaultAccount - account used when Finalize is given none
func (s *Session) SetDefaultAccount(account string) error {
	if "" == account {
		return fault.ErrNoAccount
	}
	return s.provider.Set(configuration.KeyDefaultAccount, account)
}

// Warnings - conflicts reported while routing
func (s *Session) Warnings() []string {
	return s.router.Warnings()
}
