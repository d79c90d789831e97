// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package connection - the session's link to a chain node
//
// node and credentials fall back to the configuration provider, dns:
// nodes are resolved before dialling and there is no automatic retry
package connection
