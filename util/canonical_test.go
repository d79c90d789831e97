// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/txcoord/fault"
	"github.com/bitmark-inc/txcoord/util"
)

func TestCanonical(t *testing.T) {

	testData := []struct {
		in  string
		out string
	}{
		{"127.0.0.1:1234", "127.0.0.1:1234"},
		{" 127.0.0.1:1 ", "127.0.0.1:1"},
		{"127.0.0.1:65535", "127.0.0.1:65535"},
		{"[::1]:1234", "[::1]:1234"},
		{"[0:0::0:0]:1234", "[::]:1234"},
	}

	for i, d := range testData {
		c, err := util.CanonicalIPandPort(d.in)
		assert.Nil(t, err, "%d: unexpected error", i)
		assert.Equal(t, d.out, c, "%d: wrong canonical form", i)
	}
}

func TestCanonicalBadIP(t *testing.T) {

	testData := []string{
		"127.1:1234",
		"256.0.0.0:1234",
		"0:0:1234",
		"[]:1234",
		"[as34::]:1234",
		"*:1234",
		"node.example.com:1234",
	}

	for i, d := range testData {
		_, err := util.CanonicalIPandPort(d)
		assert.Equal(t, fault.ErrInvalidIPAddress, err, "%d: %q", i, d)
	}
}

func TestCanonicalBadPort(t *testing.T) {

	testData := []string{
		"127.0.0.1:0",
		"127.0.0.1:65536",
		"[::1]:x",
		"node.example.com:-1",
	}

	for i, d := range testData {
		_, err := util.CanonicalHostPort(d)
		assert.Equal(t, fault.ErrInvalidPortNumber, err, "%d: %q", i, d)
	}
}

func TestCanonicalHostName(t *testing.T) {
	c, err := util.CanonicalHostPort("Node.Example.COM:2130")
	assert.Nil(t, err, "unexpected error")
	assert.Equal(t, "node.example.com:2130", c, "wrong host")

	c, err = util.CanonicalHostPort("[::1]:2130")
	assert.Nil(t, err, "unexpected error")
	assert.Equal(t, "[::1]:2130", c, "wrong IPv6 form")
}
