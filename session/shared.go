// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package session

import (
	"sync"

	"github.com/bitmark-inc/txcoord/fault"
)

// process-wide optional session
var shared struct {
	sync.RWMutex
	session *Session
}

// SetShared - install a session, returning any previous one
func SetShared(s *Session) *Session {
	shared.Lock()
	defer shared.Unlock()

	previous := shared.session
	shared.session = s
	return previous
}

// Shared - the installed session
func Shared() (*Session, error) {
	shared.RLock()
	defer shared.RUnlock()

	if nil == shared.session {
		return nil, fault.ErrNoSharedSession
	}
	return shared.session, nil
}

// ClearShared - remove the installed session without closing it
func ClearShared() *Session {
	return SetShared(nil)
}
