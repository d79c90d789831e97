// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import (
	"github.com/pkg/errors"

	"github.com/bitmark-inc/txcoord/account"
	"github.com/bitmark-inc/txcoord/fault"
	"github.com/bitmark-inc/txcoord/operation"
)

// Supplied - keys given directly as seeds
//
// each key answers for the account named by its public key text,
// at any permission level
type Supplied struct {
	keys map[string]*account.PrivateKey
}

// NewSupplied - decode a list of seeds
func NewSupplied(prefix string, seeds []string) (*Supplied, error) {
	s := &Supplied{
		keys: make(map[string]*account.PrivateKey),
	}
	for i, seed := range seeds {
		privateKey, err := account.PrivateKeyFromSeed(seed)
		if nil != err {
			return nil, errors.WithMessagef(err, "key[%d]", i)
		}
		s.keys[privateKey.PublicKey().String(prefix)] = privateKey
	}
	return s, nil
}

// Accounts - public key text of every supplied key
func (s *Supplied) Accounts() []string {
	accounts := make([]string, 0, len(s.keys))
	for a := range s.keys {
		accounts = append(accounts, a)
	}
	return accounts
}

// ResolveKey - private key for account
func (s *Supplied) ResolveKey(accountName string, permission operation.Permission) (*account.PrivateKey, error) {
	privateKey, ok := s.keys[accountName]
	if !ok {
		return nil, errors.WithMessagef(fault.ErrMissingSignerKey, "signer: %s@%s", accountName, permission)
	}
	return privateKey, nil
}
