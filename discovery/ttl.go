// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package discovery

import (
	"net"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/miekg/dns"
)

const (
	maximumTTL = 1 * time.Hour // upper limit on keeping a resolved node
	configFile = "/etc/resolv.conf"
)

// TTL - time to keep the records of a domain, from its SOA record
//
// falls back to one hour when no name server answers
func TTL(log *logger.L, domain string) time.Duration {
	t := maximumTTL
	var servers []string // dns name server

	// reading default configuration file
	conf, err := dns.ClientConfigFromFile(configFile)

	if nil != err {
		log.Warnf("reading %s error: %s", configFile, err)
		goto done
	}

	if 0 == len(conf.Servers) {
		log.Warnf("cannot get dns name server")
		goto done
	}

	servers = conf.Servers
	// limit the nameservers to lookup
	if len(servers) > 3 {
		servers = servers[:3]
	}

loop:
	for _, server := range servers {

		s := net.JoinHostPort(server, conf.Port)
		c := dns.Client{}
		msg := dns.Msg{}
		msg.SetQuestion(dns.Fqdn(domain), dns.TypeSOA)

		r, _, err := c.Exchange(&msg, s)
		if nil != err {
			log.Debugf("exchange with dns server %q error: %s", s, err)
			continue loop
		}

		sections := [][]dns.RR{r.Answer, r.Ns, r.Extra}

		for _, section := range sections {
			ttl := ttl(section)
			if 0 < ttl {
				log.Infof("got TTL record from server %q value %d", s, ttl)
				ttlSec := time.Duration(ttl) * time.Second
				if maximumTTL > ttlSec {
					t = ttlSec
				}
				break loop
			}
		}
	}

done:
	log.Debugf("keep node domain: %q for: %v", domain, t)
	return t
}

// get TTL record from a resource record, SOA preferred
func ttl(rrs []dns.RR) uint32 {
	for _, rr := range rrs {
		if soa, ok := rr.(*dns.SOA); ok {
			return soa.Hdr.Ttl
		}
	}
	if 0 != len(rrs) {
		return rrs[0].Header().Ttl
	}
	return 0
}
