// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"sort"

	"github.com/bitmark-inc/txcoord/fault"
	"github.com/bitmark-inc/txcoord/operation"
)

// Signer - an account whose authority a transaction needs
type Signer struct {
	Account    string               `json:"account"`
	Permission operation.Permission `json:"permission"`
}

func (s Signer) validate() error {
	if "" == s.Account {
		return fault.ErrNoAccount
	}
	if !s.Permission.Valid() {
		return fault.ErrInvalidPermission
	}
	return nil
}

// signer set, unordered
type signerSet map[Signer]struct{}

// sorted list of the set
func (set signerSet) list() []Signer {
	signers := make([]Signer, 0, len(set))
	for s := range set {
		signers = append(signers, s)
	}
	sort.Slice(signers, func(i, j int) bool {
		if signers[i].Account == signers[j].Account {
			return signers[i].Permission < signers[j].Permission
		}
		return signers[i].Account < signers[j].Account
	})
	return signers
}
