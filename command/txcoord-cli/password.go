// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/bitmark-inc/txcoord/fault"
)

const minimumPasswordLength = 8

var passwordConsole *terminal.Terminal

func getTerminal() (*terminal.Terminal, int, *terminal.State) {
	oldState, err := terminal.MakeRaw(0)
	if err != nil {
		panic(err)
	}

	if nil != passwordConsole {
		return passwordConsole, 0, oldState
	}

	tmpIO, err := os.OpenFile("/dev/tty", os.O_RDWR, os.ModePerm)
	if nil != err {
		panic("No console")
	}

	passwordConsole = terminal.NewTerminal(tmpIO, "txcoord-cli: ")

	return passwordConsole, 0, oldState
}

func promptNewPasswordReader() (string, error) {
	console, fd, state := getTerminal()
	password, err := console.ReadPassword("Set wallet password(length >= 8): ")
	if nil != err {
		fmt.Printf("Get password fail: %s\n", err)
		return "", err
	}
	terminal.Restore(fd, state)

	if err := checkPassword(password); nil != err {
		return "", err
	}

	console, fd, state = getTerminal()
	verifyPassword, err := console.ReadPassword("Verify password: ")
	if nil != err {
		fmt.Printf("verify failed: %s\n", err)
		return "", fault.ErrPasswordMismatch
	}
	terminal.Restore(fd, state)

	if password != verifyPassword {
		return "", fault.ErrPasswordMismatch
	}

	return password, nil
}

func promptCheckPasswordReader() (string, error) {
	console, fd, state := getTerminal()
	password, err := console.ReadPassword("password: ")
	if nil != err {
		fmt.Printf("Get password fail: %s\n", err)
		return "", err
	}
	terminal.Restore(fd, state)

	return password, nil
}

func checkPassword(password string) error {
	if len(password) < minimumPasswordLength {
		return fault.ErrInvalidPasswordLen
	}
	return nil
}

// password from the global flag, the agent or the terminal
func walletPassword(c *cli.Context, title string, create bool) (string, error) {
	if password := c.GlobalString("password"); "" != password {
		if create {
			return password, checkPassword(password)
		}
		return password, nil
	}

	if agent := c.GlobalString("use-agent"); "" != agent {
		password, err := passwordFromAgent("wallet", title, agent, c.GlobalBool("zero-agent-cache"))
		if nil != err {
			return "", err
		}
		if create {
			return password, checkPassword(password)
		}
		return password, nil
	}

	if create {
		return promptNewPasswordReader()
	}
	return promptCheckPasswordReader()
}
