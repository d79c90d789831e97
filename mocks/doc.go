// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mocks - gomock doubles for the coordinator interfaces
package mocks

//go:generate mockgen -destination=configuration.go -package=mocks github.com/bitmark-inc/txcoord/configuration Provider
//go:generate mockgen -destination=connection.go -package=mocks github.com/bitmark-inc/txcoord/connection Dialer,Resolver,Transport
//go:generate mockgen -destination=lookuper.go -package=mocks github.com/bitmark-inc/txcoord/discovery Lookuper
//go:generate mockgen -destination=router.go -package=mocks github.com/bitmark-inc/txcoord/router Chain
//go:generate mockgen -destination=transaction.go -package=mocks github.com/bitmark-inc/txcoord/transaction Broadcaster
//go:generate mockgen -destination=wallet.go -package=mocks github.com/bitmark-inc/txcoord/wallet KeyProvider
