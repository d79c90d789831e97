// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/txcoord/background"
)

type counter struct {
	count    int64
	finished int64
	args     interface{}
}

func (c *counter) Run(args interface{}, shutdown <-chan struct{}) {
	c.args = args
loop:
	for {
		select {
		case <-shutdown:
			break loop
		default:
		}
		atomic.AddInt64(&c.count, 1)
		time.Sleep(time.Millisecond)
	}
	atomic.StoreInt64(&c.finished, 1)
}

func TestBackground(t *testing.T) {
	proc1 := &counter{}
	proc2 := &counter{}

	p := background.Start(background.Processes{proc1, proc2}, "argument")
	time.Sleep(20 * time.Millisecond)
	p.Stop()

	assert.Equal(t, int64(1), atomic.LoadInt64(&proc1.finished), "process 1 not finished")
	assert.Equal(t, int64(1), atomic.LoadInt64(&proc2.finished), "process 2 not finished")
	assert.True(t, atomic.LoadInt64(&proc1.count) > 0, "process 1 did not run")
	assert.Equal(t, "argument", proc1.args, "wrong argument")

	// second stop does not block or panic
	p.Stop()
}

func TestStopNil(t *testing.T) {
	var p *background.T
	p.Stop()
}
