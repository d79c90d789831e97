// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package connection_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/txcoord/configuration"
	"github.com/bitmark-inc/txcoord/connection"
	"github.com/bitmark-inc/txcoord/digest"
	"github.com/bitmark-inc/txcoord/fault"
	"github.com/bitmark-inc/txcoord/fixtures"
	"github.com/bitmark-inc/txcoord/mocks"
	"github.com/bitmark-inc/txcoord/rpccalls"
	"github.com/bitmark-inc/txcoord/transaction"
)

var parameters = rpccalls.ChainParameters{
	Prefix:  fixtures.Prefix,
	ChainID: fixtures.ChainID,
}

func TestConnectFromProvider(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	provider := configuration.NewMemory(map[string]string{
		configuration.KeyNode:        "node.example.com:2130",
		configuration.KeyRPCUser:     "alice",
		configuration.KeyRPCPassword: "secret",
	})

	transport := mocks.NewMockTransport(ctl)
	dialer := mocks.NewMockDialer(ctl)
	dialer.EXPECT().
		Dial(gomock.Any(), "node.example.com:2130", rpccalls.Credentials{User: "alice", Password: "secret"}, configuration.DefaultAPIs).
		Return(transport, nil).
		Times(1)
	transport.EXPECT().ChainParameters().Return(parameters).Times(2)
	transport.EXPECT().Close().Return(nil).Times(1)

	c := connection.New(provider, dialer, nil, false)
	assert.False(t, c.IsConnected(), "connected before connect")

	_, err := c.Prefix()
	assert.Equal(t, fault.ErrNotConnected, err, "wrong error")

	err = c.Connect(context.Background(), "", rpccalls.Credentials{}, configuration.DefaultAPIs)
	assert.Nil(t, err, "connect error")
	assert.True(t, c.IsConnected(), "not connected")
	assert.Equal(t, "node.example.com:2130", c.Node(), "wrong node")

	prefix, err := c.Prefix()
	assert.Nil(t, err, "prefix error")
	assert.Equal(t, fixtures.Prefix, prefix, "wrong prefix")

	chainID, err := c.ChainID()
	assert.Nil(t, err, "chain id error")
	assert.Equal(t, fixtures.ChainID, chainID, "wrong chain id")

	assert.Nil(t, c.Close(), "close error")
	assert.False(t, c.IsConnected(), "connected after close")
	assert.Nil(t, c.Close(), "second close error")
}

func TestConnectArgumentsOverrideProvider(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	provider := mocks.NewMockProvider(ctl)
	provider.EXPECT().Get(configuration.KeyRPCPassword).Return("stored", true).Times(1)

	resolver := mocks.NewMockResolver(ctl)
	resolver.EXPECT().Resolve("dns:nodes.example.com").Return("192.168.0.1:2130", nil).Times(1)

	transport := mocks.NewMockTransport(ctl)
	dialer := mocks.NewMockDialer(ctl)
	dialer.EXPECT().
		Dial(gomock.Any(), "192.168.0.1:2130", rpccalls.Credentials{User: "bob", Password: "stored"}, gomock.Nil()).
		Return(transport, nil).
		Times(1)

	c := connection.New(provider, dialer, resolver, false)
	err := c.Connect(context.Background(), "dns:nodes.example.com", rpccalls.Credentials{User: "bob"}, nil)
	assert.Nil(t, err, "connect error")
	assert.Equal(t, "192.168.0.1:2130", c.Node(), "wrong node")
}

func TestConnectNoNode(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	dialer := mocks.NewMockDialer(ctl)
	dialer.EXPECT().Dial(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	c := connection.New(configuration.NewMemory(nil), dialer, nil, false)
	err := c.Connect(context.Background(), "", rpccalls.Credentials{}, nil)
	assert.Equal(t, fault.ErrNoNodeConfigured, err, "wrong error")
	assert.True(t, fault.IsErrConfiguration(err), "not a configuration error")
}

func TestConnectOffline(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	dialer := mocks.NewMockDialer(ctl)
	dialer.EXPECT().Dial(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	c := connection.New(nil, dialer, nil, true)
	assert.True(t, c.IsOffline(), "not offline")

	err := c.Connect(context.Background(), "127.0.0.1:2130", rpccalls.Credentials{}, nil)
	assert.Equal(t, fault.ErrOffline, err, "wrong connect error")

	_, err = c.Prefix()
	assert.True(t, fault.IsErrOffline(err), "wrong prefix error")

	_, err = c.CurrentState(context.Background())
	assert.True(t, fault.IsErrOffline(err), "wrong state error")

	_, err = c.Broadcast(context.Background(), &transaction.Signed{})
	assert.True(t, fault.IsErrOffline(err), "wrong broadcast error")
}

func TestConnectFailureIsNotRetried(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	dialer := mocks.NewMockDialer(ctl)
	dialer.EXPECT().
		Dial(gomock.Any(), "127.0.0.1:2130", gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("connection refused")).
		Times(1)

	c := connection.New(nil, dialer, nil, false)
	err := c.Connect(context.Background(), "127.0.0.1:2130", rpccalls.Credentials{}, nil)
	assert.NotNil(t, err, "no error")
	assert.True(t, fault.IsErrConnection(err), "not a connection error")
	assert.Contains(t, err.Error(), "connection refused", "reason lost")
	assert.False(t, c.IsConnected(), "connected after failure")
}

func TestConnectResolveFailure(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	resolver := mocks.NewMockResolver(ctl)
	resolver.EXPECT().Resolve("dns:nowhere.example.com").Return("", fault.ErrNoNodeFound).Times(1)

	dialer := mocks.NewMockDialer(ctl)
	dialer.EXPECT().Dial(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	c := connection.New(nil, dialer, resolver, false)
	err := c.Connect(context.Background(), "dns:nowhere.example.com", rpccalls.Credentials{}, nil)
	assert.Equal(t, fault.ErrNoNodeFound, err, "wrong error")
}

func TestReconnectClosesPrevious(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	first := mocks.NewMockTransport(ctl)
	second := mocks.NewMockTransport(ctl)
	dialer := mocks.NewMockDialer(ctl)
	gomock.InOrder(
		dialer.EXPECT().Dial(gomock.Any(), "127.0.0.1:2130", gomock.Any(), gomock.Any()).Return(first, nil),
		dialer.EXPECT().Dial(gomock.Any(), "127.0.0.1:2131", gomock.Any(), gomock.Any()).Return(second, nil),
	)
	first.EXPECT().Close().Return(nil).Times(1)

	c := connection.New(nil, dialer, nil, false)
	assert.Nil(t, c.Connect(context.Background(), "127.0.0.1:2130", rpccalls.Credentials{}, nil), "first connect")
	assert.Nil(t, c.Connect(context.Background(), "127.0.0.1:2131", rpccalls.Credentials{}, nil), "second connect")
	assert.Equal(t, "127.0.0.1:2131", c.Node(), "wrong node")
}

// connect a connection to a mock transport
func connected(t *testing.T, ctl *gomock.Controller) (*connection.Connection, *mocks.MockTransport) {
	transport := mocks.NewMockTransport(ctl)
	dialer := connection.DialerFunc(func(context.Context, string, rpccalls.Credentials, []string) (connection.Transport, error) {
		return transport, nil
	})

	c := connection.New(nil, dialer, nil, false)
	err := c.Connect(context.Background(), "127.0.0.1:2130", rpccalls.Credentials{}, nil)
	assert.Nil(t, err, "connect error")
	return c, transport
}

func TestCurrentState(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	c, transport := connected(t, ctl)

	transport.EXPECT().
		Call(gomock.Any(), connection.MethodDynamicProperties, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ interface{}, reply interface{}) error {
			reply.(*connection.State).HeadBlockNumber = 1234
			return nil
		}).
		Times(2)

	for i := 0; i < 2; i += 1 {
		state, err := c.CurrentState(context.Background())
		assert.Nil(t, err, "state error")
		assert.Equal(t, uint64(1234), state.HeadBlockNumber, "wrong head block")
	}
}

func TestBroadcast(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	c, transport := connected(t, ctl)

	signed := &transaction.Signed{
		TxId: digest.New([]byte("transaction")),
	}

	transport.EXPECT().
		Call(gomock.Any(), connection.MethodBroadcast, signed, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ interface{}, reply interface{}) error {
			reply.(*transaction.BroadcastReply).BlockNumber = 99
			return nil
		}).
		Times(1)

	reply, err := c.Broadcast(context.Background(), signed)
	assert.Nil(t, err, "broadcast error")
	assert.Equal(t, signed.TxId, reply.TxId, "wrong txid")
	assert.Equal(t, uint64(99), reply.BlockNumber, "wrong block number")
	assert.Equal(t, transaction.StatusAccepted, reply.Status, "wrong status")
}

func TestBroadcastRejected(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	c, transport := connected(t, ctl)

	reason := "missing required active authority: account alice"
	transport.EXPECT().
		Call(gomock.Any(), connection.MethodBroadcast, gomock.Any(), gomock.Any()).
		Return(errors.WithMessage(fault.Remote(reason), connection.MethodBroadcast)).
		Times(1)

	_, err := c.Broadcast(context.Background(), &transaction.Signed{})
	assert.True(t, fault.IsErrRejected(err), "not rejected")
	assert.Equal(t, reason, err.Error(), "reason not verbatim")
}

func TestBroadcastConnectionError(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	c, transport := connected(t, ctl)

	transport.EXPECT().
		Call(gomock.Any(), connection.MethodBroadcast, gomock.Any(), gomock.Any()).
		Return(fault.ErrConnectionFailed).
		Times(1)

	_, err := c.Broadcast(context.Background(), &transaction.Signed{})
	assert.Equal(t, fault.ErrConnectionFailed, err, "wrong error")
}

// transport replying with a fixed list of statuses, repeating the last
func statuses(transport *mocks.MockTransport, list ...string) {
	n := 0
	transport.EXPECT().
		Call(gomock.Any(), connection.MethodStatus, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ interface{}, reply interface{}) error {
			s := list[len(list)-1]
			if n < len(list) {
				s = list[n]
			}
			n += 1
			if "" == s {
				return fault.Remote("transaction not found")
			}
			r := reply.(*connection.StatusReply)
			r.Status = s
			r.BlockNumber = uint64(n)
			return nil
		}).
		AnyTimes()
}

func TestWaitForTransactionHead(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	c, transport := connected(t, ctl)
	statuses(transport, "", transaction.StatusPending, transaction.StatusHead)

	reply, err := c.WaitForTransaction(context.Background(), digest.Digest{}, configuration.BlockingHead, time.Millisecond)
	assert.Nil(t, err, "wait error")
	assert.Equal(t, transaction.StatusHead, reply.Status, "wrong status")
	assert.Equal(t, uint64(3), reply.BlockNumber, "wrong poll count")
}

func TestWaitForTransactionIrreversible(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	c, transport := connected(t, ctl)
	statuses(transport, transaction.StatusHead, transaction.StatusHead, transaction.StatusIrreversible)

	reply, err := c.WaitForTransaction(context.Background(), digest.Digest{}, configuration.BlockingIrreversible, time.Millisecond)
	assert.Nil(t, err, "wait error")
	assert.Equal(t, transaction.StatusIrreversible, reply.Status, "wrong status")
}

func TestWaitForTransactionExpired(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	c, transport := connected(t, ctl)
	statuses(transport, transaction.StatusPending, transaction.StatusExpired)

	_, err := c.WaitForTransaction(context.Background(), digest.Digest{}, configuration.BlockingHead, time.Millisecond)
	assert.Equal(t, fault.ErrTransactionExpired, err, "wrong error")
}

func TestWaitForTransactionDeadline(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	c, transport := connected(t, ctl)
	statuses(transport, transaction.StatusPending)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := c.WaitForTransaction(ctx, digest.Digest{}, configuration.BlockingIrreversible, 5*time.Millisecond)
	assert.Equal(t, fault.ErrWaitTimeout, errors.Cause(err), "wrong error")
}

func TestWaitForTransactionBadLevel(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	c, _ := connected(t, ctl)

	_, err := c.WaitForTransaction(context.Background(), digest.Digest{}, "soon", time.Millisecond)
	assert.Equal(t, fault.ErrNotInclusionLevel, err, "wrong error")
}
