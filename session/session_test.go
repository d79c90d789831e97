// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package session_test

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/txcoord/configuration"
	"github.com/bitmark-inc/txcoord/connection"
	"github.com/bitmark-inc/txcoord/fault"
	"github.com/bitmark-inc/txcoord/fixtures"
	"github.com/bitmark-inc/txcoord/mocks"
	"github.com/bitmark-inc/txcoord/operation"
	"github.com/bitmark-inc/txcoord/registry"
	"github.com/bitmark-inc/txcoord/router"
	"github.com/bitmark-inc/txcoord/rpccalls"
	"github.com/bitmark-inc/txcoord/session"
	"github.com/bitmark-inc/txcoord/transaction"
)

const password = "correct horse battery"

func offlineOptions() *configuration.Options {
	options := configuration.NewOptions()
	options.Offline = true
	return options
}

func op(name string) operation.Operation {
	return &operation.Raw{Name: name}
}

func TestOfflineSession(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	dialer := mocks.NewMockDialer(ctl)
	dialer.EXPECT().Dial(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	options := offlineOptions()
	options.Keys = []string{fixtures.Seed1}

	s, err := session.New(context.Background(), options, session.Modules{Dialer: dialer})
	assert.Nil(t, err, "session error")
	defer s.Close()

	assert.Equal(t, fixtures.Prefix, s.Prefix(), "wrong prefix")
	assert.Nil(t, s.Keystore(), "keystore opened with supplied keys")

	d, err := s.Default()
	assert.Nil(t, err, "default error")
	assert.True(t, d.IsEmpty(), "default buffer not empty")

	_, err = s.Finalize(context.Background(), []operation.Operation{op("transfer")}, fixtures.Account1, operation.Active, router.Options{})
	assert.True(t, fault.IsErrOffline(err), "wrong error: %s", err)

	info, err := s.Info(context.Background())
	assert.Nil(t, err, "info error")
	assert.True(t, info.Offline, "not offline")
	assert.Nil(t, info.State, "state fetched offline")
}

func TestOfflineNoBroadcast(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	options := offlineOptions()
	options.NoBroadcast = true
	options.Keys = []string{fixtures.Seed1}

	s, err := session.New(context.Background(), options, session.Modules{})
	assert.Nil(t, err, "session error")
	defer s.Close()

	result, err := s.Finalize(context.Background(), []operation.Operation{op("transfer")}, fixtures.Account1, "", router.Options{})
	assert.Nil(t, err, "finalize error")
	assert.NotNil(t, result.Transaction, "no signed transaction")
	assert.Equal(t, []transaction.Signer{{Account: fixtures.Account1, Permission: operation.Active}}, result.Transaction.Signers, "default permission not used")
}

func TestOnlineFinalize(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	transport := mocks.NewMockTransport(ctl)
	dialer := mocks.NewMockDialer(ctl)
	dialer.EXPECT().
		Dial(gomock.Any(), "127.0.0.1:2130", rpccalls.Credentials{User: "alice", Password: "secret"}, configuration.DefaultAPIs).
		Return(transport, nil).
		Times(1)
	transport.EXPECT().
		ChainParameters().
		Return(rpccalls.ChainParameters{Prefix: fixtures.Prefix, ChainID: fixtures.ChainID}).
		AnyTimes()

	canned := transaction.BroadcastReply{BlockNumber: 12, Status: transaction.StatusAccepted}
	transport.EXPECT().
		Call(gomock.Any(), connection.MethodBroadcast, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, args interface{}, reply interface{}) error {
			signed := args.(*transaction.Signed)
			assert.Equal(t, 1, len(signed.Operations), "wrong operation count")
			assert.Equal(t, "op1", signed.Operations[0].Name, "wrong operation")
			canned.TxId = signed.TxId
			*reply.(*transaction.BroadcastReply) = canned
			return nil
		}).
		Times(1)
	transport.EXPECT().Close().Return(nil).Times(1)

	options := configuration.NewOptions()
	options.Node = "127.0.0.1:2130"
	options.RPCUser = "alice"
	options.RPCPassword = "secret"
	options.Keys = []string{fixtures.Seed1}

	s, err := session.New(context.Background(), options, session.Modules{Dialer: dialer})
	assert.Nil(t, err, "session error")

	result, err := s.Finalize(context.Background(), []operation.Operation{op("op1")}, fixtures.Account1, operation.Active, router.Options{})
	assert.Nil(t, err, "finalize error")
	assert.Equal(t, canned, *result.Reply, "wrong reply")

	assert.Nil(t, s.Close(), "close error")
}

func TestOnlineNoNode(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	dialer := mocks.NewMockDialer(ctl)
	dialer.EXPECT().Dial(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := session.New(context.Background(), configuration.NewOptions(), session.Modules{Dialer: dialer})
	assert.Equal(t, fault.ErrNoNodeConfigured, err, "wrong error")
}

func TestAmbiguousKeys(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	options := offlineOptions()
	options.Keys = []string{fixtures.Seed1}
	options.ForceKeys = map[string]map[string]string{
		"alice": {"active": fixtures.Seed2},
	}
	_, err := session.New(context.Background(), options, session.Modules{})
	assert.Equal(t, fault.ErrAmbiguousKeys, err, "keys and forced keys accepted")

	options = offlineOptions()
	options.Keys = []string{fixtures.Seed1}
	options.Keystore = "wallet.json"
	_, err = session.New(context.Background(), options, session.Modules{})
	assert.Equal(t, fault.ErrAmbiguousKeys, err, "keys and keystore accepted")

	options = offlineOptions()
	options.Keys = []string{fixtures.Seed1}
	_, err = session.New(context.Background(), options, session.Modules{Keys: mocks.NewMockKeyProvider(ctl)})
	assert.Equal(t, fault.ErrAmbiguousKeys, err, "keys and key module accepted")
	assert.True(t, fault.IsErrConfiguration(err), "not a configuration error")
}

func TestInvalidOptions(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	options := offlineOptions()
	options.Blocking = "eventually"
	_, err := session.New(context.Background(), options, session.Modules{})
	assert.Equal(t, fault.ErrInvalidBlocking, err, "wrong error")
}

func TestMemoryWallet(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	options := offlineOptions()
	options.Unsigned = true

	s, err := session.New(context.Background(), options, session.Modules{})
	assert.Nil(t, err, "session error")
	defer s.Close()

	assert.NotNil(t, s.Keystore(), "no keystore")
	assert.Equal(t, fault.ErrNoWallet, s.Unlock(password), "unlock before create")

	assert.Nil(t, s.NewWallet(password), "create error")
	assert.Equal(t, fault.ErrWalletExists, s.NewWallet(password), "wallet created twice")
	assert.Equal(t, fault.ErrWrongPassword, s.Unlock("not the password"), "wrong password accepted")
	assert.Nil(t, s.Unlock(password), "unlock error")

	assert.Nil(t, s.Keystore().AddKey("alice", operation.Active, fixtures.Seed1), "add key error")

	_, err = s.Finalize(context.Background(), []operation.Operation{op("transfer")}, "alice", operation.Active, router.Options{})
	assert.Nil(t, err, "finalize error")

	signed, err := s.Sign(context.Background(), nil, nil)
	assert.Nil(t, err, "sign error")
	assert.Equal(t, 1, len(signed.Signatures), "wrong signature count")

	_, err = s.Broadcast(context.Background(), nil)
	assert.True(t, fault.IsErrOffline(err), "broadcast while offline")
}

func TestSignWithSeeds(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	options := offlineOptions()
	options.Bundle = true

	s, err := session.New(context.Background(), options, session.Modules{})
	assert.Nil(t, err, "session error")
	defer s.Close()

	b := s.NewTransaction(registry.TxOptions{})
	_, err = s.Finalize(context.Background(), []operation.Operation{op("transfer")}, fixtures.Account2, operation.Owner, router.Options{AppendTo: b})
	assert.Nil(t, err, "finalize error")

	_, err = s.Sign(context.Background(), b, nil)
	assert.True(t, fault.IsErrMissingKey(err), "signed without keys")

	signed, err := s.Sign(context.Background(), b, []string{fixtures.Seed2})
	assert.Nil(t, err, "sign error")
	assert.Equal(t, 1, len(signed.Signatures), "wrong signature count")
	assert.True(t, b.IsSigned(), "buffer not signed")

	d, _ := s.Default()
	assert.True(t, d.IsEmpty(), "default buffer changed")
}

func TestDefaultAccount(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	options := offlineOptions()
	options.Unsigned = true

	s, err := session.New(context.Background(), options, session.Modules{})
	assert.Nil(t, err, "session error")
	defer s.Close()

	_, err = s.Finalize(context.Background(), []operation.Operation{op("transfer")}, "", operation.Active, router.Options{})
	assert.Equal(t, fault.ErrNoAccount, err, "finalize without account")

	assert.Equal(t, fault.ErrNoAccount, s.SetDefaultAccount(""), "empty default accepted")
	assert.Nil(t, s.SetDefaultAccount("carol"), "set default error")

	result, err := s.Finalize(context.Background(), []operation.Operation{op("transfer")}, "", operation.Active, router.Options{})
	assert.Nil(t, err, "finalize error")
	assert.Equal(t, []transaction.Signer{{Account: "carol", Permission: operation.Active}}, result.Buffer.Signers(), "default account not used")

	p, err := s.DefaultProposal("", 0, 0)
	assert.Nil(t, err, "proposal error")
	assert.Equal(t, "carol", p.Proposer(), "default account not proposer")
	assert.Equal(t, 1, len(s.Proposals()), "wrong proposal count")

	info, err := s.Info(context.Background())
	assert.Nil(t, err, "info error")
	assert.Equal(t, "carol", info.Default, "wrong default account")
}

func TestProposerSession(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	options := offlineOptions()
	options.Bundle = true
	options.Proposer = "legacy"
	options.ProposalExpiration = 3600
	options.ProposalReview = 60

	s, err := session.New(context.Background(), options, session.Modules{})
	assert.Nil(t, err, "session error")
	defer s.Close()

	target, err := s.NewProposal(nil, "explicit", 0, 0)
	assert.Nil(t, err, "proposal error")
	assert.Equal(t, time.Hour, target.Expiration(), "wrong proposal expiration")
	assert.Equal(t, time.Minute, target.Review(), "wrong proposal review")

	_, err = s.Finalize(context.Background(), []operation.Operation{op("transfer")}, "alice", operation.Active, router.Options{AppendTo: target})
	assert.Nil(t, err, "finalize error")
	assert.Equal(t, 1, len(s.Warnings()), "conflict not reported")
}

func TestClearDropsProposals(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	options := offlineOptions()
	options.Bundle = true
	options.Proposer = "legacy"

	s, err := session.New(context.Background(), options, session.Modules{})
	assert.Nil(t, err, "session error")
	defer s.Close()

	_, err = s.Finalize(context.Background(), []operation.Operation{op("transfer")}, "alice", operation.Active, router.Options{})
	assert.Nil(t, err, "finalize error")
	assert.Equal(t, 1, len(s.Proposals()), "wrong proposal count")

	assert.Nil(t, s.Clear(nil), "clear error")
	assert.Equal(t, 0, len(s.Proposals()), "proposal kept")

	d, err := s.Default()
	assert.Nil(t, err, "default error")
	assert.True(t, d.IsEmpty(), "default buffer not cleared")
}

func TestKeystoreFile(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir, err := ioutil.TempDir("", "txcoord-session")
	assert.Nil(t, err, "temp dir error")
	defer os.RemoveAll(dir)

	options := offlineOptions()
	options.Keystore = filepath.Join(dir, "wallet.json")
	options.Store = filepath.Join(dir, "config.leveldb")

	s, err := session.New(context.Background(), options, session.Modules{})
	assert.Nil(t, err, "session error")
	assert.Nil(t, s.NewWallet(password), "create error")
	assert.Nil(t, s.Keystore().AddKey("alice", operation.Active, fixtures.Seed1), "add key error")
	assert.Nil(t, s.SetDefaultAccount("alice"), "set default error")
	assert.Nil(t, s.Close(), "close error")

	s, err = session.New(context.Background(), options, session.Modules{})
	assert.Nil(t, err, "reopen error")
	defer s.Close()

	assert.True(t, s.Keystore().Exists(), "wallet not saved")
	assert.True(t, s.Keystore().Locked(), "reopened wallet unlocked")
	assert.Equal(t, 1, len(s.Keystore().Entries()), "key not saved")

	info, err := s.Info(context.Background())
	assert.Nil(t, err, "info error")
	assert.Equal(t, "alice", info.Default, "default account not stored")
}

func TestShared(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	session.ClearShared()
	_, err := session.Shared()
	assert.Equal(t, fault.ErrNoSharedSession, err, "wrong error")

	s, err := session.New(context.Background(), offlineOptions(), session.Modules{})
	assert.Nil(t, err, "session error")
	defer s.Close()

	assert.Nil(t, session.SetShared(s), "previous session present")
	got, err := session.Shared()
	assert.Nil(t, err, "shared error")
	assert.Equal(t, s, got, "wrong shared session")

	assert.Equal(t, s, session.ClearShared(), "wrong cleared session")
	_, err = session.Shared()
	assert.Equal(t, fault.ErrNoSharedSession, err, "slot not cleared")
}
