// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package connection

import (
	"context"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/txcoord/configuration"
	"github.com/bitmark-inc/txcoord/fault"
	"github.com/bitmark-inc/txcoord/rpccalls"
)

// Transport - an open RPC link to a node
type Transport interface {
	Call(ctx context.Context, method string, args interface{}, reply interface{}) error
	ChainParameters() rpccalls.ChainParameters
	Close() error
}

// Dialer - opens transports
type Dialer interface {
	Dial(ctx context.Context, node string, credentials rpccalls.Credentials, apis []string) (Transport, error)
}

// DialerFunc - adapter to use a function as a Dialer
type DialerFunc func(ctx context.Context, node string, credentials rpccalls.Credentials, apis []string) (Transport, error)

// Dial - calls f
func (f DialerFunc) Dial(ctx context.Context, node string, credentials rpccalls.Credentials, apis []string) (Transport, error) {
	return f(ctx, node, credentials, apis)
}

// RPCDialer - dialer for JSON-RPC nodes
func RPCDialer(options rpccalls.Options) Dialer {
	return DialerFunc(func(ctx context.Context, node string, credentials rpccalls.Credentials, apis []string) (Transport, error) {
		client, err := rpccalls.Dial(ctx, node, credentials, apis, options)
		if nil != err {
			return nil, err
		}
		return client, nil
	})
}

// Resolver - turns a configured node name into a dialable address
type Resolver interface {
	Resolve(node string) (string, error)
}

// Connection - current link to the chain
type Connection struct {
	mutex sync.RWMutex
	log   *logger.L

	provider  configuration.Provider
	dialer    Dialer
	resolver  Resolver
	offline   bool
	node      string
	transport Transport
}

// New - create an unconnected connection; a nil resolver dials node names as given
func New(provider configuration.Provider, dialer Dialer, resolver Resolver, offline bool) *Connection {
	return &Connection{
		log:      logger.New("connection"),
		provider: provider,
		dialer:   dialer,
		resolver: resolver,
		offline:  offline,
	}
}

// Connect - dial a node
//
// empty node or credential fields are taken from the configuration
// provider; any previous transport is closed once the new one is open
func (c *Connection) Connect(ctx context.Context, node string, credentials rpccalls.Credentials, apis []string) error {
	if c.offline {
		return fault.ErrOffline
	}

	if "" == node {
		node = c.setting(configuration.KeyNode)
	}
	if "" == node {
		return fault.ErrNoNodeConfigured
	}
	if "" == credentials.User {
		credentials.User = c.setting(configuration.KeyRPCUser)
	}
	if "" == credentials.Password {
		credentials.Password = c.setting(configuration.KeyRPCPassword)
	}

	address := node
	if nil != c.resolver {
		a, err := c.resolver.Resolve(node)
		if nil != err {
			c.log.Errorf("resolve node: %q  error: %s", node, err)
			return err
		}
		address = a
	}

	c.log.Infof("connect to: %s", address)
	transport, err := c.dialer.Dial(ctx, address, credentials, apis)
	if nil != err {
		c.log.Errorf("connect to: %s  error: %s", address, err)
		if fault.IsErrConnection(err) {
			return err
		}
		return errors.WithMessage(fault.ErrConnectionFailed, err.Error())
	}

	c.mutex.Lock()
	previous := c.transport
	c.transport = transport
	c.node = address
	c.mutex.Unlock()

	if nil != previous {
		previous.Close()
	}
	return nil
}

func (c *Connection) setting(key string) string {
	if nil == c.provider {
		return ""
	}
	value, _ := c.provider.Get(key)
	return value
}

// IsConnected - true if a transport is open
func (c *Connection) IsConnected() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return nil != c.transport
}

// IsOffline - true if the connection was created offline
func (c *Connection) IsOffline() bool {
	return c.offline
}

// Node - address of the connected node
func (c *Connection) Node() string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.node
}

// current transport or the reason there is none
func (c *Connection) current() (Transport, error) {
	if c.offline {
		return nil, fault.ErrOffline
	}

	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if nil == c.transport {
		return nil, fault.ErrNotConnected
	}
	return c.transport, nil
}

// Prefix - account prefix reported by the node
func (c *Connection) Prefix() (string, error) {
	t, err := c.current()
	if nil != err {
		return "", err
	}
	return t.ChainParameters().Prefix, nil
}

// ChainID - chain identifier reported by the node
func (c *Connection) ChainID() (string, error) {
	t, err := c.current()
	if nil != err {
		return "", err
	}
	return t.ChainParameters().ChainID, nil
}

// Call - pass a request to the node
func (c *Connection) Call(ctx context.Context, method string, args interface{}, reply interface{}) error {
	t, err := c.current()
	if nil != err {
		return err
	}
	return t.Call(ctx, method, args, reply)
}

// Close - close the transport, if any
func (c *Connection) Close() error {
	c.mutex.Lock()
	t := c.transport
	c.transport = nil
	c.mutex.Unlock()

	if nil == t {
		return nil
	}
	return t.Close()
}
