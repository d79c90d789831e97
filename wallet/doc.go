// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wallet - sources of the private keys used to sign
//
// a session uses exactly one of:
//
//   Keystore  an encrypted JSON file unlocked by password
//   Supplied  a list of seeds, each key serves the account named by its public key
//   Forced    explicit account -> permission -> seed overrides
package wallet
