// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// txcoord-cli - command line access to a transaction coordinator session
//
// e.g. to transfer as the default account and wait for inclusion:
//
//   txcoord-cli -c ~/.config/txcoord-cli/txcoord.conf finalize \
//     -n transfer -f '{"to":"bob","amount":"1 CORE"}' -b head
package main
