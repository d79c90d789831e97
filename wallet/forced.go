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

// Forced - explicit keys per account and permission
type Forced struct {
	keys map[string]map[operation.Permission]*account.PrivateKey
}

// NewForced - decode an account -> permission -> seed map
func NewForced(overrides map[string]map[string]string) (*Forced, error) {
	f := &Forced{
		keys: make(map[string]map[operation.Permission]*account.PrivateKey),
	}
	for accountName, permissions := range overrides {
		levels := make(map[operation.Permission]*account.PrivateKey)
		for p, seed := range permissions {
			permission := operation.Permission(p)
			if !permission.Valid() {
				return nil, errors.WithMessagef(fault.ErrInvalidPermission, "%s@%s", accountName, p)
			}
			privateKey, err := account.PrivateKeyFromSeed(seed)
			if nil != err {
				return nil, errors.WithMessagef(err, "%s@%s", accountName, p)
			}
			levels[permission] = privateKey
		}
		f.keys[accountName] = levels
	}
	return f, nil
}

// ResolveKey - private key for account at permission
func (f *Forced) ResolveKey(accountName string, permission operation.Permission) (*account.PrivateKey, error) {
	if privateKey, ok := f.keys[accountName][permission]; ok {
		return privateKey, nil
	}
	return nil, errors.WithMessagef(fault.ErrMissingSignerKey, "signer: %s@%s", accountName, permission)
}
