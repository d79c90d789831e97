// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package session - one coordinator instance: connection, key
// provider, buffer registry and router built from a set of options
//
// the options are copied at construction and never change afterwards
package session

import (
	"context"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txcoord/background"
	"github.com/bitmark-inc/txcoord/configuration"
	"github.com/bitmark-inc/txcoord/connection"
	"github.com/bitmark-inc/txcoord/discovery"
	"github.com/bitmark-inc/txcoord/fault"
	"github.com/bitmark-inc/txcoord/packing"
	"github.com/bitmark-inc/txcoord/registry"
	"github.com/bitmark-inc/txcoord/router"
	"github.com/bitmark-inc/txcoord/rpccalls"
	"github.com/bitmark-inc/txcoord/transaction"
	"github.com/bitmark-inc/txcoord/wallet"
)

// Modules - the concrete collaborators of a session, nil fields get defaults
//
//   Dialer      JSON-RPC dialer with default rate limits
//   Lookup      DNS TXT lookup
//   TTL         DNS SOA TTL
//   Serializer  packing.Canonical
//   Config      leveldb store if options.Store is set, else memory
//   Keys        chosen from the options; setting it with option keys is ambiguous
//   Clock       time.Now
type Modules struct {
	Dialer     connection.Dialer
	Lookup     discovery.Lookuper
	TTL        func(string) time.Duration
	Serializer packing.Serializer
	Config     configuration.Provider
	Keys       wallet.KeyProvider
	Clock      func() time.Time
}

// Session - a configured coordinator
type Session struct {
	log     *logger.L
	options configuration.Options

	provider   configuration.Provider
	store      *configuration.Store
	connection *connection.Connection
	keys       wallet.KeyProvider
	keystore   *wallet.Keystore
	registry   *registry.Registry
	router     *router.Router
	background *background.T
}

// New - build a session
//
// connects unless offline and selects exactly one key source: the
// Keys module, supplied seeds, forced keys or the keystore
func New(ctx context.Context, options *configuration.Options, modules Modules) (*Session, error) {
	opts := *options
	opts.APIs = append([]string{}, options.APIs...)
	if err := opts.Validate(); nil != err {
		return nil, err
	}

	s := &Session{
		log:     logger.New("session"),
		options: opts,
	}

	ok := false
	defer func() {
		if !ok {
			s.Close()
		}
	}()

	s.provider = modules.Config
	if nil == s.provider {
		if "" != opts.Store {
			store, err := configuration.OpenStore(opts.Store, false)
			if nil != err {
				return nil, err
			}
			s.store = store
			s.provider = store
		} else {
			s.provider = configuration.NewMemory(nil)
		}
	}

	dialer := modules.Dialer
	if nil == dialer {
		dialer = connection.RPCDialer(rpccalls.Options{})
	}
	resolver := discovery.NewResolver(modules.Lookup, modules.TTL)
	s.connection = connection.New(s.provider, dialer, resolver, opts.Offline)

	settings := transaction.Settings{
		Serializer: modules.Serializer,
		Expiration: opts.ExpirationDuration(),
		FeeAsset:   opts.FeeAsset,
		Clock:      modules.Clock,
	}

	if !opts.Offline {
		credentials := rpccalls.Credentials{
			User:     opts.RPCUser,
			Password: opts.RPCPassword,
		}
		err := s.connection.Connect(ctx, opts.Node, credentials, opts.APIs)
		if nil != err {
			return nil, err
		}
		prefix, _ := s.connection.Prefix()
		if "" != prefix {
			s.options.Prefix = prefix
		}
		settings.ChainID, _ = s.connection.ChainID()
	}

	if err := s.setupKeys(modules.Keys); nil != err {
		return nil, err
	}

	s.registry = registry.New(settings, s.provider, opts.ProposalExpirationDuration(), opts.ProposalReviewDuration())
	s.registry.Reset()

	mode := router.Mode{
		Unsigned:        opts.Unsigned,
		Bundle:          opts.Bundle,
		NoBroadcast:     opts.NoBroadcast,
		Proposer:        opts.Proposer,
		Blocking:        opts.Blocking,
		BlockingTimeout: opts.BlockingTimeoutDuration(),
	}
	s.router = router.New(mode, s.registry, s.keys, s.connection)

	ok = true
	s.log.Infof("session: offline: %t  unsigned: %t  bundle: %t  prefix: %s", opts.Offline, opts.Unsigned, opts.Bundle, s.options.Prefix)
	return s, nil
}

// select the key provider
func (s *Session) setupKeys(module wallet.KeyProvider) error {
	opts := &s.options
	given := 0 != len(opts.Keys) || 0 != len(opts.ForceKeys)

	if nil != module {
		if given {
			return fault.ErrAmbiguousKeys
		}
		s.keys = module
		return nil
	}

	mode := wallet.Mode{
		Keys:      opts.Keys,
		ForceKeys: opts.ForceKeys,
		Prefix:    opts.Prefix,
	}

	if !given {
		keystore, err := wallet.OpenKeystore(opts.Keystore, opts.UnlockDuration())
		if nil != err {
			return err
		}
		s.keystore = keystore
		mode.Keystore = keystore

		if "" != opts.Keystore {
			watcher, err := keystore.Watcher()
			if nil != err {
				return err
			}
			s.background = background.Start(background.Processes{watcher}, nil)
		}
	} else if "" != opts.Keystore {
		return fault.ErrAmbiguousKeys
	}

	keys, err := wallet.New(mode)
	if nil != err {
		return err
	}
	s.keys = keys
	return nil
}

// Close - stop background work and release the connection and store
func (s *Session) Close() error {
	s.background.Stop()
	s.background = nil

	var err error
	if nil != s.connection {
		err = s.connection.Close()
	}
	if nil != s.store {
		if e := s.store.Close(); nil == err {
			err = e
		}
		s.store = nil
	}
	return err
}
