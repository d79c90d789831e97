// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package discovery

import (
	"encoding/hex"
	"net"
	"strconv"
	"strings"

	"github.com/bitmark-inc/txcoord/fault"
)

// the tag to detect applicable TXT records from DNS
var supportedTags = map[string]struct{}{
	"txcoord=v1": {},
}

const (
	fingerprintLength = 2 * 32 // characters
)

// TXT - node connection data from a DNS TXT record
type TXT struct {
	IPv4                   net.IP
	IPv6                   net.IP
	RPCPort                uint16
	CertificateFingerprint []byte
}

// Parse - decode DNS TXT records of this form
//
//   <TAG> a=<IPv4;[IPv6]> r=<PORT> f=<SHA3-256(cert)>
//
// the fingerprint is optional; unknown or repeated items are errors
func Parse(s string) (*TXT, error) {

	t := &TXT{}

	countA := 0
	countF := 0
	countR := 0

words:
	for i, w := range strings.Split(strings.TrimSpace(s), " ") {

		if 0 == i {
			if _, ok := supportedTags[w]; ok {
				continue words
			}
			return nil, fault.ErrInvalidDnsTxtRecord
		}

		// ignore empty
		if "" == w {
			continue words
		}

		// require form: <letter>=<word>
		if len(w) < 3 || '=' != w[1] {
			return nil, fault.ErrInvalidDnsTxtRecord
		}

		// w[0]=tag character; w[1]= char('='); w[2:]=parameter
		parameter := w[2:]
		err := error(nil)
		switch w[0] {
		case 'a':
		addresses:
			for _, address := range strings.Split(parameter, ";") {
				if "" == address {
					continue addresses
				}
				if '[' == address[0] {
					end := len(address) - 1
					if ']' == address[end] {
						address = address[1:end]
					}
				}
				IP := net.ParseIP(address)
				if nil == IP {
					err = fault.ErrInvalidIPAddress
					break addresses
				}
				if nil != IP.To4() {
					t.IPv4 = IP
				} else {
					t.IPv6 = IP
				}
			}
			countA += 1

		case 'r':
			t.RPCPort, err = getPort(parameter)
			countR += 1

		case 'f':
			if len(parameter) != fingerprintLength {
				err = fault.ErrInvalidFingerprint
			} else {
				t.CertificateFingerprint, err = hex.DecodeString(parameter)
				if nil != err {
					err = fault.ErrInvalidFingerprint
				}
			}
			countF += 1

		default:
			err = fault.ErrInvalidDnsTxtRecord
		}
		if nil != err {
			return nil, err
		}
	}

	// ensure that there is only one each of the items
	if 1 != countA || countF > 1 {
		return nil, fault.ErrInvalidDnsTxtRecord
	}
	if 1 != countR {
		return nil, fault.ErrNoRpcPort
	}

	return t, nil
}

func getPort(s string) (uint16, error) {

	port, err := strconv.Atoi(s)
	if nil != err {
		return 0, fault.ErrInvalidPortNumber
	}
	if port < 1 || port > 65535 {
		return 0, fault.ErrInvalidPortNumber
	}
	return uint16(port), nil
}
