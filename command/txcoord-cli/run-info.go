// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/txcoord/session"
)

func runInfo(c *cli.Context) error {

	m := getMetadata(c)

	ctx := context.Background()
	s, err := session.New(ctx, m.options, session.Modules{})
	if nil != err {
		return err
	}
	defer s.Close()

	info, err := s.Info(ctx)
	if nil != err {
		return err
	}

	printJson(m.w, info)
	return nil
}
