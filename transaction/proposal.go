// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/bitmark-inc/txcoord/fault"
	"github.com/bitmark-inc/txcoord/operation"
)

// ProposalName - operation name of a proposal
const ProposalName = "proposal_create"

// Proposal - operations wrapped for deferred approval
//
// the proposal is itself a single operation in its parent buffer
type Proposal struct {
	mutex sync.Mutex

	parent     *Buffer
	clock      func() time.Time
	proposer   string
	expiration time.Duration
	review     time.Duration
	operations []operation.Operation
	sealedAt   time.Time
	frozen     bool
}

// JSON body of a proposal
type proposalBody struct {
	FeePayingAccount string     `json:"fee_paying_account"`
	ExpirationTime   time.Time  `json:"expiration_time"`
	ReviewPeriod     int        `json:"review_period_seconds,omitempty"`
	ProposedOps      []Envelope `json:"proposed_ops"`
}

// NewProposal - create a proposal and append it to parent
func NewProposal(parent *Buffer, proposer string, expiration time.Duration, review time.Duration) (*Proposal, error) {
	if nil == parent {
		return nil, fault.ErrInvalidTarget
	}
	if "" == proposer {
		return nil, fault.ErrNoAccount
	}
	if expiration <= 0 || review < 0 {
		return nil, fault.ErrInvalidExpiration
	}

	p := &Proposal{
		parent:     parent,
		clock:      parent.settings.Clock,
		proposer:   proposer,
		expiration: expiration,
		review:     review,
	}

	err := parent.AppendOps(p)
	if nil != err {
		return nil, err
	}
	return p, nil
}

// OperationName - for operation.Operation
func (p *Proposal) OperationName() string {
	return ProposalName
}

// Seal - fix the absolute expiration time, including nested proposals
//
// the zero time returns to counting from the current time
func (p *Proposal) Seal(at time.Time) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.sealedAt = at
	for _, op := range p.operations {
		if sealer, ok := op.(operation.Sealer); ok {
			sealer.Seal(at)
		}
	}
}

// called when the parent is signed
func (p *Proposal) freeze() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.frozen = true
	for _, op := range p.operations {
		if f, ok := op.(freezer); ok {
			f.freeze()
		}
	}
}

// Parent - the buffer holding this proposal
func (p *Proposal) Parent() *Buffer {
	return p.parent
}

// Proposer - account paying for the proposal
func (p *Proposal) Proposer() string {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.proposer
}

// SetProposer - change the proposer
func (p *Proposal) SetProposer(proposer string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.frozen {
		return fault.ErrBufferSigned
	}
	if "" == proposer {
		return fault.ErrNoAccount
	}
	p.proposer = proposer
	return nil
}

// Expiration - validity of the proposal counted from signing
func (p *Proposal) Expiration() time.Duration {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.expiration
}

// SetExpiration - change the proposal validity
func (p *Proposal) SetExpiration(expiration time.Duration) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.frozen {
		return fault.ErrBufferSigned
	}
	if expiration <= 0 {
		return fault.ErrInvalidExpiration
	}
	p.expiration = expiration
	return nil
}

// Review - review period, zero for none
func (p *Proposal) Review() time.Duration {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.review
}

// SetReview - change the review period
func (p *Proposal) SetReview(review time.Duration) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.frozen {
		return fault.ErrBufferSigned
	}
	if review < 0 {
		return fault.ErrInvalidExpiration
	}
	p.review = review
	return nil
}

// AppendOps - add operations to be proposed
func (p *Proposal) AppendOps(ops ...operation.Operation) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.frozen {
		return fault.ErrBufferSigned
	}
	for _, op := range ops {
		if nil == op || op == operation.Operation(p) {
			return fault.ErrNoOperations
		}
	}
	p.operations = append(p.operations, ops...)
	return nil
}

// Operations - copy of the proposed operations
func (p *Proposal) Operations() []operation.Operation {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	ops := make([]operation.Operation, len(p.operations))
	copy(ops, p.operations)
	return ops
}

// IsEmpty - true if nothing has been proposed
func (p *Proposal) IsEmpty() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return 0 == len(p.operations)
}

// MarshalJSON - body of the proposal_create operation
//
// before sealing the expiration is counted from the current time
func (p *Proposal) MarshalJSON() ([]byte, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	ops, err := envelopes(p.operations)
	if nil != err {
		return nil, err
	}

	start := p.sealedAt
	if start.IsZero() {
		start = p.clock()
	}

	body := proposalBody{
		FeePayingAccount: p.proposer,
		ExpirationTime:   start.Add(p.expiration).UTC(),
		ReviewPeriod:     int(p.review / time.Second),
		ProposedOps:      ops,
	}
	return json.Marshal(body)
}
