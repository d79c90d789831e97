// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package operation

import (
	"github.com/bitmark-inc/txcoord/fault"
)

// Permission - named authority level of an account
type Permission string

// the permission levels
const (
	Owner  Permission = "owner"
	Active Permission = "active"
	Memo   Permission = "memo"
)

// DefaultPermission - level used when none is given
const DefaultPermission = Active

// Valid - check for a known level
func (p Permission) Valid() bool {
	switch p {
	case Owner, Active, Memo:
		return true
	default:
		return false
	}
}

// ParsePermission - convert text to a permission, empty selects the default
func ParsePermission(s string) (Permission, error) {
	if "" == s {
		return DefaultPermission, nil
	}
	p := Permission(s)
	if !p.Valid() {
		return "", fault.ErrInvalidPermission
	}
	return p, nil
}

// String - for the fmt package
func (p Permission) String() string {
	return string(p)
}
