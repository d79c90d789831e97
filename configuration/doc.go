// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - session options and the key/value
// configuration provider
//
// options are read from a Lua configuration file; most of base Lua is
// available such as reading files to set key data and getenv to
// extract environment supplied items.
//
// the provider holds the values that outlive a session: the node, the
// RPC credentials and the default account.
package configuration
