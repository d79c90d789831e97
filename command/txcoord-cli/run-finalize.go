// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/txcoord/configuration"
	"github.com/bitmark-inc/txcoord/operation"
	"github.com/bitmark-inc/txcoord/router"
	"github.com/bitmark-inc/txcoord/session"
)

func runFinalize(c *cli.Context) error {

	m := getMetadata(c)

	op, err := parseOperation(c.String("name"), c.String("fields"))
	if nil != err {
		return err
	}

	permission, err := operation.ParsePermission(c.String("permission"))
	if nil != err {
		return err
	}

	options := *m.options
	if proposer := c.String("proposer"); "" != proposer {
		options.Proposer = proposer
	}
	if c.Bool("unsigned") {
		options.Unsigned = true
	}
	if c.Bool("bundle") {
		options.Bundle = true
	}
	if c.Bool("nobroadcast") {
		options.NoBroadcast = true
	}
	if blocking := c.String("blocking"); "" != blocking {
		options.Blocking = blocking
	}
	if c.IsSet("timeout") {
		options.BlockingTimeout = c.Int("timeout")
	}

	ctx := context.Background()
	s, err := session.New(ctx, &options, session.Modules{})
	if nil != err {
		return err
	}
	defer s.Close()

	if needsKeys(&options) && nil != s.Keystore() {
		password, err := walletPassword(c, "sign transaction", false)
		if nil != err {
			return err
		}
		if err := s.Unlock(password); nil != err {
			return err
		}
	}

	result, err := s.Finalize(ctx, []operation.Operation{op}, c.String("account"), permission, router.Options{
		FeeAsset: c.String("fee-asset"),
	})
	if nil != err {
		return err
	}

	for _, w := range s.Warnings() {
		fmt.Fprintf(m.e, "warning: %s\n", w)
	}

	return printResult(m, result)
}

func needsKeys(options *configuration.Options) bool {
	return !options.Unsigned && !options.Bundle
}

func printResult(m *metadata, result *router.Result) error {
	switch {
	case nil != result.Snapshot:
		return printJson(m.w, result.Snapshot)
	case nil != result.Buffer:
		snapshot, err := result.Buffer.Export()
		if nil != err {
			return err
		}
		return printJson(m.w, snapshot)
	case nil != result.Transaction:
		return printJson(m.w, result.Transaction)
	case nil != result.Reply:
		return printJson(m.w, result.Reply)
	default:
		return nil
	}
}
