// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package operation

import (
	"encoding/json"
	"time"
)

// Operation - a chain operation; the coordinator never looks inside
// beyond its name, the body travels as JSON
type Operation interface {
	OperationName() string
}

// Sealer - optional interface for operations holding time relative
// fields that must be fixed when the enclosing transaction is signed;
// sealing with the zero time releases the fields again
type Sealer interface {
	Seal(at time.Time)
}

// Raw - generic operation built from a name and a set of fields
type Raw struct {
	Name   string
	Fields map[string]interface{}
}

// OperationName - the name of the operation
func (r *Raw) OperationName() string {
	return r.Name
}

// MarshalJSON - fields form the body, name is carried separately
func (r *Raw) MarshalJSON() ([]byte, error) {
	if nil == r.Fields {
		return []byte("{}"), nil
	}
	return json.Marshal(r.Fields)
}

// Names - names of a list of operations, in order
func Names(ops []Operation) []string {
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.OperationName()
	}
	return names
}
