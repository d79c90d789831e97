// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/txcoord/fault"
)

// node methods used when connecting
const (
	MethodLogin           = "Node.Login"
	MethodAPIs            = "Node.APIs"
	MethodChainProperties = "Chain.Properties"
)

const (
	plainScheme = "tcp://"
	tlsScheme   = "tls://"

	defaultRate  = 20
	defaultBurst = 40
)

// Credentials - RPC user name and password, both may be empty
type Credentials struct {
	User     string
	Password string
}

// Options - client behaviour
type Options struct {
	Verbose bool
	Handle  io.Writer // if verbose is set output items here

	// outbound request limit, zero for the default
	Rate  float64
	Burst int

	// verify the node certificate
	VerifyCertificate bool
}

// LoginArguments - for Node.Login
type LoginArguments struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

// APIsArguments - for Node.APIs
type APIsArguments struct {
	APIs []string `json:"apis"`
}

// APIsReply - APIs the node enabled for this connection
type APIsReply struct {
	APIs []string `json:"apis"`
}

// ChainParameters - fixed properties of the chain behind a node
type ChainParameters struct {
	Prefix  string `json:"prefix"`
	ChainID string `json:"chain_id"`
}

// Client - to hold RPC connections streams
type Client struct {
	log        *logger.L
	conn       net.Conn
	client     *rpc.Client
	limiter    *rate.Limiter
	verbose    bool
	handle     io.Writer
	apis       []string
	parameters ChainParameters
}

// Dial - connect to a node, log in and read the chain parameters
func Dial(ctx context.Context, node string, credentials Credentials, apis []string, options Options) (*Client, error) {

	log := logger.New("rpccalls")

	address := node
	secure := true
	switch {
	case strings.HasPrefix(node, plainScheme):
		address = node[len(plainScheme):]
		secure = false
	case strings.HasPrefix(node, tlsScheme):
		address = node[len(tlsScheme):]
	}

	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if nil != err {
		log.Errorf("dial: %q  error: %s", node, err)
		return nil, errors.WithMessage(fault.ErrConnectionFailed, err.Error())
	}

	if secure {
		host, _, _ := net.SplitHostPort(address)
		tlsConfig := &tls.Config{
			ServerName:         host,
			InsecureSkipVerify: !options.VerifyCertificate,
		}
		tlsConn := tls.Client(conn, tlsConfig)
		if deadline, ok := ctx.Deadline(); ok {
			_ = tlsConn.SetDeadline(deadline)
		}
		if err := tlsConn.Handshake(); nil != err {
			conn.Close()
			log.Errorf("TLS handshake: %q  error: %s", node, err)
			return nil, errors.WithMessage(fault.ErrConnectionFailed, err.Error())
		}
		_ = tlsConn.SetDeadline(time.Time{})
		conn = tlsConn
	}

	r := options.Rate
	if r <= 0 {
		r = defaultRate
	}
	burst := options.Burst
	if burst <= 0 {
		burst = defaultBurst
	}

	c := &Client{
		log:     log,
		conn:    conn,
		client:  jsonrpc.NewClient(conn),
		limiter: rate.NewLimiter(rate.Limit(r), burst),
		verbose: options.Verbose,
		handle:  options.Handle,
	}

	if err := c.setup(ctx, credentials, apis); nil != err {
		c.Close()
		return nil, err
	}

	log.Infof("connected to: %q  prefix: %q  chain: %s", node, c.parameters.Prefix, c.parameters.ChainID)
	return c, nil
}

func (c *Client) setup(ctx context.Context, credentials Credentials, apis []string) error {

	if "" != credentials.User || "" != credentials.Password {
		loginArgs := LoginArguments{
			User:     credentials.User,
			Password: credentials.Password,
		}
		var ok bool
		if err := c.Call(ctx, MethodLogin, loginArgs, &ok); nil != err {
			return err
		}
		if !ok {
			return fault.ErrLoginFailed
		}
	}

	if 0 != len(apis) {
		var reply APIsReply
		if err := c.Call(ctx, MethodAPIs, APIsArguments{APIs: apis}, &reply); nil != err {
			return err
		}
		c.apis = reply.APIs
	}

	return c.Call(ctx, MethodChainProperties, struct{}{}, &c.parameters)
}

// ChainParameters - the prefix and id of the connected chain
func (c *Client) ChainParameters() ChainParameters {
	return c.parameters
}

// APIs - the APIs the node enabled
func (c *Client) APIs() []string {
	return c.apis
}

// Close - shutdown the node connection
func (c *Client) Close() error {
	return c.client.Close()
}
