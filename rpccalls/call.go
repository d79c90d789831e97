// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"context"
	"net/rpc"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/txcoord/fault"
)

// Call - perform a request and wait for the reply or the end of ctx
//
// an error string from the node becomes a fault.RemoteError, any other
// failure is a connection error
func (c *Client) Call(ctx context.Context, method string, args interface{}, reply interface{}) error {

	if err := c.limit(ctx); nil != err {
		return err
	}

	c.printJson(method+" Request", args)

	call := c.client.Go(method, args, reply, make(chan *rpc.Call, 1))

	select {
	case <-call.Done:
	case <-ctx.Done():
		c.log.Warnf("%s: abandoned: %s", method, ctx.Err())
		return errors.Wrap(ctx.Err(), method)
	}

	if nil != call.Error {
		if s, ok := call.Error.(rpc.ServerError); ok {
			c.log.Debugf("%s: node error: %s", method, s)
			return fault.Remote(string(s))
		}
		c.log.Errorf("%s: error: %s", method, call.Error)
		return errors.WithMessage(fault.ErrConnectionFailed, call.Error.Error())
	}

	c.printJson(method+" Reply", reply)
	return nil
}
