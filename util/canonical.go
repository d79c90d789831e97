// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"net"
	"strconv"
	"strings"

	"github.com/bitmark-inc/txcoord/fault"
)

// CanonicalIPandPort - make the IP:Port canonical
//
// examples:
//   IPv4:  127.0.0.1:1234
//   IPv6:  [::1]:1234
func CanonicalIPandPort(hostPort string) (string, error) {

	host, port, err := net.SplitHostPort(strings.TrimSpace(hostPort))
	if nil != err {
		return "", fault.ErrInvalidIPAddress
	}

	IP := net.ParseIP(strings.Trim(host, " "))
	if nil == IP {
		return "", fault.ErrInvalidIPAddress
	}

	numericPort, err := parsePort(port)
	if nil != err {
		return "", err
	}

	return JoinIPandPort(IP, numericPort), nil
}

// CanonicalHostPort - like CanonicalIPandPort but also accepts a DNS host name
func CanonicalHostPort(hostPort string) (string, error) {

	host, port, err := net.SplitHostPort(strings.TrimSpace(hostPort))
	if nil != err || "" == host {
		return "", fault.ErrInvalidIPAddress
	}

	if IP := net.ParseIP(host); nil != IP {
		return CanonicalIPandPort(hostPort)
	}

	numericPort, err := parsePort(port)
	if nil != err {
		return "", err
	}
	return strings.ToLower(host) + ":" + strconv.Itoa(numericPort), nil
}

// JoinIPandPort - IPv6 addresses are bracketed
func JoinIPandPort(IP net.IP, port int) string {
	if nil != IP.To4() {
		return IP.String() + ":" + strconv.Itoa(port)
	}
	return "[" + IP.String() + "]:" + strconv.Itoa(port)
}

func parsePort(port string) (int, error) {
	numericPort, err := strconv.Atoi(strings.Trim(port, " "))
	if nil != err {
		return 0, fault.ErrInvalidPortNumber
	}
	if numericPort < 1 || numericPort > 65535 {
		return 0, fault.ErrInvalidPortNumber
	}
	return numericPort, nil
}
