// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import (
	"github.com/bitmark-inc/txcoord/account"
	"github.com/bitmark-inc/txcoord/fault"
	"github.com/bitmark-inc/txcoord/operation"
)

// KeyProvider - supplies the private key of a signer
//
// a missing key is reported as a fault.MissingKeyError
type KeyProvider interface {
	ResolveKey(account string, permission operation.Permission) (*account.PrivateKey, error)
}

// Mode - the key sources a session was given, at most one may be set
type Mode struct {
	Keystore  *Keystore
	Keys      []string
	ForceKeys map[string]map[string]string
	Prefix    string
}

// New - build the key provider for a mode
func New(mode Mode) (KeyProvider, error) {
	n := 0
	if nil != mode.Keystore {
		n += 1
	}
	if 0 != len(mode.Keys) {
		n += 1
	}
	if 0 != len(mode.ForceKeys) {
		n += 1
	}

	switch {
	case n > 1:
		return nil, fault.ErrAmbiguousKeys
	case nil != mode.Keystore:
		return mode.Keystore, nil
	case 0 != len(mode.Keys):
		s, err := NewSupplied(mode.Prefix, mode.Keys)
		if nil != err {
			return nil, err
		}
		return s, nil
	case 0 != len(mode.ForceKeys):
		f, err := NewForced(mode.ForceKeys)
		if nil != err {
			return nil, err
		}
		return f, nil
	default:
		return nil, fault.ErrNoWallet
	}
}
