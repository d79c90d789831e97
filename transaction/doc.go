// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transaction - buffers that collect operations and signers
// until they are signed and broadcast
//
// a Buffer becomes immutable once signed; a Proposal is an operation
// inside a parent Buffer and becomes immutable when its parent is signed
package transaction
