// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/txcoord/configuration"
	"github.com/bitmark-inc/txcoord/operation"
	"github.com/bitmark-inc/txcoord/session"
)

// keys accepted by set and get
var settableKeys = []string{
	configuration.KeyDefaultAccount,
	configuration.KeyNode,
	configuration.KeyRPCPassword,
	configuration.KeyRPCUser,
}

func keyList() string {
	return strings.Join(settableKeys, ", ")
}

func checkKey(key string) error {
	for _, k := range settableKeys {
		if k == key {
			return nil
		}
	}
	return ErrUnknownKey
}

// operation from a name and a JSON object
func parseOperation(name string, fields string) (*operation.Raw, error) {
	if "" == name {
		return nil, ErrMissingArgument
	}

	m := make(map[string]interface{})
	if "" != fields {
		if err := json.Unmarshal([]byte(fields), &m); nil != err {
			return nil, ErrInvalidFields
		}
		if nil == m {
			return nil, ErrInvalidFields
		}
	}

	return &operation.Raw{
		Name:   name,
		Fields: m,
	}, nil
}

// only the configured values of the settable keys
func settings(provider configuration.Provider) map[string]string {
	values := make(map[string]string)
	for _, k := range settableKeys {
		if v, ok := provider.Get(k); ok {
			values[k] = v
		}
	}
	return values
}

func getMetadata(c *cli.Context) *metadata {
	return c.App.Metadata["config"].(*metadata)
}

// a session without a node connection
func offlineSession(m *metadata) (*session.Session, error) {
	options := *m.options
	options.Offline = true
	return session.New(context.Background(), &options, session.Modules{})
}
