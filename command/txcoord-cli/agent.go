// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os/exec"
	"strings"
)

const (
	passwordTag = "txcoord-cli:password:"
)

// ask an external agent (e.g. gpg-agent style helper) for the password
func passwordFromAgent(name string, title string, agent string, clear bool) (string, error) {

	cacheId := passwordTag + name
	errorMessage := ""
	prompt := "Password for: " + name
	description := "Enter password to: " + title

	arguments := []string{}
	if clear {
		arguments = append(arguments, "--clear")
	}
	arguments = append(arguments, []string{
		"--confirm=1",
		cacheId,
		errorMessage,
		prompt,
		description}...)

	out, err := exec.Command(agent, arguments...).Output()
	return strings.TrimRight(string(out), "\r\n"), err
}
