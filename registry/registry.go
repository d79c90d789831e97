// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package registry - owner of the transaction and proposal buffers
// of a session
//
// the first transaction buffer is the default buffer; it exists from
// Reset until the session ends
package registry

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txcoord/configuration"
	"github.com/bitmark-inc/txcoord/fault"
	"github.com/bitmark-inc/txcoord/transaction"
)

// TxOptions - overrides for a new transaction buffer, zero fields
// take the session values
type TxOptions struct {
	Expiration time.Duration
	FeeAsset   string
}

// Registry - the buffers of one session
type Registry struct {
	mutex sync.Mutex
	log   *logger.L

	settings           transaction.Settings
	provider           configuration.Provider
	proposalExpiration time.Duration
	proposalReview     time.Duration

	transactions []*transaction.Buffer
	proposals    []*transaction.Proposal
}

// New - create an empty registry; Reset must be called before use
func New(settings transaction.Settings, provider configuration.Provider, proposalExpiration time.Duration, proposalReview time.Duration) *Registry {
	return &Registry{
		log:                logger.New("registry"),
		settings:           settings,
		provider:           provider,
		proposalExpiration: proposalExpiration,
		proposalReview:     proposalReview,
	}
}

// Reset - discard all buffers and create a new default buffer
func (r *Registry) Reset() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.proposals = nil
	r.transactions = []*transaction.Buffer{
		transaction.NewBuffer(r.settings),
	}
	r.log.Debug("reset")
}

// Default - the default transaction buffer
func (r *Registry) Default() (*transaction.Buffer, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.defaultBuffer()
}

// must hold the mutex
func (r *Registry) defaultBuffer() (*transaction.Buffer, error) {
	if 0 == len(r.transactions) {
		return nil, fault.ErrNoDefaultBuffer
	}
	return r.transactions[0], nil
}

// NewTransaction - create and register another transaction buffer
func (r *Registry) NewTransaction(options TxOptions) *transaction.Buffer {
	settings := r.settings
	if options.Expiration > 0 {
		settings.Expiration = options.Expiration
	}
	if "" != options.FeeAsset {
		settings.FeeAsset = options.FeeAsset
	}
	b := transaction.NewBuffer(settings)

	r.mutex.Lock()
	r.transactions = append(r.transactions, b)
	n := len(r.transactions)
	r.mutex.Unlock()

	r.log.Debugf("transaction buffers: %d", n)
	return b
}

// NewProposal - create a proposal inside parent and register it
//
// a nil parent selects the default buffer, an empty proposer the
// configured default account and zero durations the session defaults
func (r *Registry) NewProposal(parent *transaction.Buffer, proposer string, expiration time.Duration, review time.Duration) (*transaction.Proposal, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.newProposal(parent, proposer, expiration, review)
}

// must hold the mutex
func (r *Registry) newProposal(parent *transaction.Buffer, proposer string, expiration time.Duration, review time.Duration) (*transaction.Proposal, error) {
	if nil == parent {
		b, err := r.defaultBuffer()
		if nil != err {
			return nil, err
		}
		parent = b
	}
	if "" == proposer && nil != r.provider {
		proposer, _ = r.provider.Get(configuration.KeyDefaultAccount)
	}
	if 0 == expiration {
		expiration = r.proposalExpiration
	}
	if 0 == review {
		review = r.proposalReview
	}

	p, err := transaction.NewProposal(parent, proposer, expiration, review)
	if nil != err {
		return nil, err
	}
	r.proposals = append(r.proposals, p)
	r.log.Debugf("proposal by: %s  proposals: %d", proposer, len(r.proposals))
	return p, nil
}

// DefaultProposal - get the first proposal, creating it in the default buffer if needed
//
// on an existing proposal each non-zero argument replaces the
// corresponding setting; proposals whose parent was cleared are
// dropped first
func (r *Registry) DefaultProposal(proposer string, expiration time.Duration, review time.Duration) (*transaction.Proposal, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.prune()
	if 0 == len(r.proposals) {
		return r.newProposal(nil, proposer, expiration, review)
	}

	p := r.proposals[0]
	if "" != proposer {
		if err := p.SetProposer(proposer); nil != err {
			return nil, err
		}
	}
	if 0 != expiration {
		if err := p.SetExpiration(expiration); nil != err {
			return nil, err
		}
	}
	if 0 != review {
		if err := p.SetReview(review); nil != err {
			return nil, err
		}
	}
	return p, nil
}

// ProposalDefaults - session expiration and review period of new proposals
func (r *Registry) ProposalDefaults() (time.Duration, time.Duration) {
	return r.proposalExpiration, r.proposalReview
}

// Transactions - all transaction buffers, the default first
func (r *Registry) Transactions() []*transaction.Buffer {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	list := make([]*transaction.Buffer, len(r.transactions))
	copy(list, r.transactions)
	return list
}

// Proposals - all registered proposals in creation order
func (r *Registry) Proposals() []*transaction.Proposal {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.prune()
	list := make([]*transaction.Proposal, len(r.proposals))
	copy(list, r.proposals)
	return list
}

// Clear - empty a buffer and forget the proposals it held
func (r *Registry) Clear(buffer *transaction.Buffer) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	buffer.Clear()
	r.filter(func(p *transaction.Proposal) bool {
		return p.Parent() != buffer
	})
}

// Release - forget the proposals of a buffer whose transaction has been consumed
func (r *Registry) Release(buffer *transaction.Buffer) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.filter(func(p *transaction.Proposal) bool {
		return p.Parent() != buffer
	})
}

// drop proposals that are no longer operations of their parent
//
// must hold the mutex
func (r *Registry) prune() {
	r.filter(func(p *transaction.Proposal) bool {
		if p.Parent().Contains(p) {
			return true
		}
		r.log.Debugf("detached proposal by: %s dropped", p.Proposer())
		return false
	})
}

// must hold the mutex
func (r *Registry) filter(keep func(*transaction.Proposal) bool) {
	kept := r.proposals[:0]
	for _, p := range r.proposals {
		if keep(p) {
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(r.proposals); i += 1 {
		r.proposals[i] = nil
	}
	r.proposals = kept
}
