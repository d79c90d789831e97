// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/txcoord/fault"
)

// common errors - keep in alphabetic order
const (
	ErrInvalidFields   = fault.InvalidError("fields must be a JSON object")
	ErrMissingArgument = fault.InvalidError("missing argument")
	ErrNoStore         = fault.ConfigurationError("no settings store configured")
	ErrSeedOrNew       = fault.InvalidError("give exactly one of: seed, new")
	ErrUnknownKey      = fault.InvalidError("unknown configuration key")
)
