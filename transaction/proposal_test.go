// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/txcoord/fault"
	"github.com/bitmark-inc/txcoord/fixtures"
	"github.com/bitmark-inc/txcoord/operation"
	"github.com/bitmark-inc/txcoord/transaction"
)

func TestNewProposalJoinsParent(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	parent := transaction.NewBuffer(settings())
	assert.Nil(t, parent.AppendOps(op("transfer", nil)), "append error")

	p, err := transaction.NewProposal(parent, "alice", time.Hour, 0)
	assert.Nil(t, err, "proposal error")
	assert.Equal(t, parent, p.Parent(), "wrong parent")
	assert.True(t, p.IsEmpty(), "not empty")

	ops := parent.Operations()
	assert.Equal(t, 2, len(ops), "parent did not grow by one")
	assert.Equal(t, operation.Operation(p), ops[1], "proposal not appended")
	assert.Equal(t, transaction.ProposalName, ops[1].OperationName(), "wrong name")
}

func TestNewProposalInvalid(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	parent := transaction.NewBuffer(settings())

	_, err := transaction.NewProposal(nil, "alice", time.Hour, 0)
	assert.Equal(t, fault.ErrInvalidTarget, err, "nil parent accepted")

	_, err = transaction.NewProposal(parent, "", time.Hour, 0)
	assert.Equal(t, fault.ErrNoAccount, err, "empty proposer accepted")

	_, err = transaction.NewProposal(parent, "alice", 0, 0)
	assert.Equal(t, fault.ErrInvalidExpiration, err, "zero expiration accepted")

	_, err = transaction.NewProposal(parent, "alice", time.Hour, -time.Second)
	assert.Equal(t, fault.ErrInvalidExpiration, err, "negative review accepted")

	assert.True(t, parent.IsEmpty(), "parent changed")
}

func TestProposalJSON(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	parent := transaction.NewBuffer(settings())
	p, err := transaction.NewProposal(parent, "alice", time.Hour, 10*time.Minute)
	assert.Nil(t, err, "proposal error")
	assert.Nil(t, p.AppendOps(op("transfer", map[string]interface{}{"amount": 1})), "append error")

	b, err := json.Marshal(p)
	assert.Nil(t, err, "marshal error")
	assert.JSONEq(t, `{
  "fee_paying_account": "alice",
  "expiration_time": "1970-01-01T01:16:40Z",
  "review_period_seconds": 600,
  "proposed_ops": [{"name": "transfer", "op": {"amount": 1}}]
}`, string(b), "wrong JSON")

	assert.Nil(t, p.SetReview(0), "review error")
	b, err = json.Marshal(p)
	assert.Nil(t, err, "marshal error")
	assert.NotContains(t, string(b), "review_period_seconds", "zero review serialized")
}

func TestProposalSetters(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	p, err := transaction.NewProposal(transaction.NewBuffer(settings()), "alice", time.Hour, 0)
	assert.Nil(t, err, "proposal error")

	assert.Nil(t, p.SetProposer("bob"), "proposer error")
	assert.Equal(t, "bob", p.Proposer(), "wrong proposer")
	assert.Equal(t, fault.ErrNoAccount, p.SetProposer(""), "empty proposer accepted")

	assert.Nil(t, p.SetExpiration(2*time.Hour), "expiration error")
	assert.Equal(t, 2*time.Hour, p.Expiration(), "wrong expiration")
	assert.Equal(t, fault.ErrInvalidExpiration, p.SetExpiration(0), "zero expiration accepted")

	assert.Nil(t, p.SetReview(time.Minute), "review error")
	assert.Equal(t, time.Minute, p.Review(), "wrong review")
	assert.Equal(t, fault.ErrInvalidExpiration, p.SetReview(-time.Minute), "negative review accepted")

	assert.Nil(t, p.AppendOps(op("a", nil), op("b", nil)), "append error")
	assert.Equal(t, []string{"a", "b"}, operation.Names(p.Operations()), "wrong order")
	assert.Equal(t, fault.ErrNoOperations, p.AppendOps(p), "self append accepted")
}

func TestProposalFrozenWithParent(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	now := epoch
	s := settings()
	s.Clock = func() time.Time {
		now = now.Add(time.Minute)
		return now
	}

	parent := transaction.NewBuffer(s)
	p, err := transaction.NewProposal(parent, fixtures.Account1, time.Hour, 0)
	assert.Nil(t, err, "proposal error")
	assert.Nil(t, p.AppendOps(op("transfer", nil)), "append error")
	assert.Nil(t, parent.AppendSigner(p.Proposer(), operation.Active), "signer error")

	signed, err := parent.Sign(context.Background(), supplied(t, fixtures.Seed1))
	assert.Nil(t, err, "sign error")

	assert.Equal(t, fault.ErrBufferSigned, p.SetProposer("bob"), "proposer changed")
	assert.Equal(t, fault.ErrBufferSigned, p.SetExpiration(time.Minute), "expiration changed")
	assert.Equal(t, fault.ErrBufferSigned, p.SetReview(time.Minute), "review changed")
	assert.Equal(t, fault.ErrBufferSigned, p.AppendOps(op("vote", nil)), "operation appended")

	// sealed expiration does not move with the clock
	b, err := json.Marshal(p)
	assert.Nil(t, err, "marshal error")
	assert.JSONEq(t, string(signed.Operations[0].Body), string(b), "proposal changed after signing")

	_, err = transaction.NewProposal(parent, "alice", time.Hour, 0)
	assert.Equal(t, fault.ErrBufferSigned, err, "proposal added to signed parent")
}
