// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package discovery

import (
	"strings"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/txcoord/fault"
	"github.com/bitmark-inc/txcoord/util"
)

// node names of this form are looked up in DNS
const dnsPrefix = "dns:"

// schemes accepted in front of host:port
var schemes = []string{"tcp://", "tls://"}

// Resolver - turns a configured node into a dialable address
type Resolver struct {
	log      *logger.L
	lookuper Lookuper
	ttl      func(string) time.Duration
	resolved *cache.Cache
}

// NewResolver - create a resolver; a nil ttl reads the SOA record of each domain
func NewResolver(lookuper Lookuper, ttl func(string) time.Duration) *Resolver {
	log := logger.New("discovery")
	if nil == lookuper {
		lookuper = NewLookuper(log, nil)
	}
	if nil == ttl {
		ttl = func(domain string) time.Duration {
			return TTL(log, domain)
		}
	}
	return &Resolver{
		log:      log,
		lookuper: lookuper,
		ttl:      ttl,
		resolved: cache.New(maximumTTL, 10*time.Minute),
	}
}

// Resolve - address of a node
//
//   dns:<domain>           first usable record of the domain's TXT records
//   [scheme]<host>:<port>  canonical form, scheme kept
func (r *Resolver) Resolve(node string) (string, error) {
	node = strings.TrimSpace(node)

	if !strings.HasPrefix(node, dnsPrefix) {
		for _, scheme := range schemes {
			if strings.HasPrefix(node, scheme) {
				address, err := util.CanonicalHostPort(node[len(scheme):])
				if nil != err {
					return "", err
				}
				return scheme + address, nil
			}
		}
		return util.CanonicalHostPort(node)
	}

	domain := node[len(dnsPrefix):]
	if obj, found := r.resolved.Get(domain); found {
		return obj.(string), nil
	}

	txts, err := r.lookuper.Lookup(domain)
	if nil != err {
		return "", err
	}

	for _, t := range txts {
		IP := t.IPv4
		if nil == IP {
			IP = t.IPv6
		}
		if nil == IP || 0 == t.RPCPort {
			continue
		}
		address := util.JoinIPandPort(IP, int(t.RPCPort))
		expiry := r.ttl(domain)
		r.resolved.Set(domain, address, expiry)
		r.log.Infof("node: %q resolved to: %s for: %v", node, address, expiry)
		return address, nil
	}

	return "", fault.ErrNoNodeFound
}
