// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/txcoord/configuration"
)

func runSet(c *cli.Context) error {

	m := getMetadata(c)

	key := c.Args().Get(0)
	value := c.Args().Get(1)
	if "" == key || "" == value {
		return ErrMissingArgument
	}
	if err := checkKey(key); nil != err {
		return err
	}

	store, err := openStore(m, false)
	if nil != err {
		return err
	}
	defer store.Close()

	if err := store.Set(key, value); nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "set %s = %q\n", key, value)
	}
	return nil
}

func runGet(c *cli.Context) error {

	m := getMetadata(c)

	key := c.Args().Get(0)
	if "" != key {
		if err := checkKey(key); nil != err {
			return err
		}
	}

	store, err := openStore(m, true)
	if nil != err {
		return err
	}
	defer store.Close()

	values := settings(store)
	if "" != key {
		value, ok := values[key]
		if !ok {
			return nil
		}
		fmt.Fprintf(m.w, "%s\n", value)
		return nil
	}

	printJson(m.w, values)
	return nil
}

func openStore(m *metadata, readOnly bool) (*configuration.Store, error) {
	if "" == m.options.Store {
		return nil, ErrNoStore
	}
	return configuration.OpenStore(m.options.Store, readOnly)
}
