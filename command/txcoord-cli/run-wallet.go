// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/txcoord/keypair"
	"github.com/bitmark-inc/txcoord/operation"
)

func runWalletCreate(c *cli.Context) error {

	m := getMetadata(c)

	s, err := offlineSession(m)
	if nil != err {
		return err
	}
	defer s.Close()

	password, err := walletPassword(c, "create wallet", true)
	if nil != err {
		return err
	}

	if err := s.NewWallet(password); nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "created wallet: %s\n", m.options.Keystore)
	}
	return nil
}

type addKeyResult struct {
	Account    string               `json:"account"`
	Permission operation.Permission `json:"permission"`
	PublicKey  string               `json:"public_key"`
	Seed       string               `json:"seed,omitempty"`
}

func runAddKey(c *cli.Context) error {

	m := getMetadata(c)

	account := c.String("account")
	if "" == account {
		return ErrMissingArgument
	}

	permission, err := operation.ParsePermission(c.String("permission"))
	if nil != err {
		return err
	}

	seed := c.String("seed")
	generate := c.Bool("new")
	if ("" == seed) == !generate {
		return ErrSeedOrNew
	}

	if generate {
		seed, err = keypair.NewSeed(false)
		if nil != err {
			return err
		}
	}
	raw, _, err := keypair.MakeRawKeyPairFromSeed(m.options.Prefix, seed)
	if nil != err {
		return err
	}

	s, err := offlineSession(m)
	if nil != err {
		return err
	}
	defer s.Close()

	password, err := walletPassword(c, "add key to wallet", false)
	if nil != err {
		return err
	}
	if err := s.Unlock(password); nil != err {
		return err
	}

	if err := s.Keystore().AddKey(account, permission, seed); nil != err {
		return err
	}

	result := addKeyResult{
		Account:    account,
		Permission: permission,
		PublicKey:  raw.PublicKey,
	}
	if generate {
		result.Seed = seed
	}
	printJson(m.w, result)
	return nil
}
