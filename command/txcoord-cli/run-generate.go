// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/txcoord/keypair"
)

func runGenerate(c *cli.Context) error {

	m := getMetadata(c)

	rawKeyPair, _, err := keypair.MakeRawKeyPair(m.options.Prefix, c.Bool("testnet"))
	if nil != err {
		return err
	}

	printJson(m.w, rawKeyPair)
	return nil
}
