// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package packing

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/txcoord/fault"
	"github.com/bitmark-inc/txcoord/operation"
	"github.com/bitmark-inc/txcoord/util"
)

// Packed - packed records are just a byte slice
type Packed []byte

// Unsigned - the parts of a transaction covered by signatures
type Unsigned struct {
	Expiration time.Time
	FeeAsset   string
	Operations []operation.Operation
}

// Serializer - converts an unsigned transaction to the bytes that are
// hashed for the transaction id and signed
type Serializer interface {
	Pack(*Unsigned) ([]byte, error)
}

// leading tag of a packed transaction
const transactionTag = 0x01

// Canonical - default serializer
//
// layout: tag, expiration seconds, fee asset, operation count, then
// for each operation its name and its JSON body; all integers are
// Varint64 and strings/bodies are prefixed by Varint64(length)
type Canonical struct{}

// Pack - pack an unsigned transaction
func (Canonical) Pack(unsigned *Unsigned) ([]byte, error) {
	if nil == unsigned || 0 == len(unsigned.Operations) {
		return nil, fault.ErrNoOperations
	}

	buffer := appendUint64(nil, transactionTag)

	expiration := unsigned.Expiration.Unix()
	if expiration < 0 {
		expiration = 0
	}
	buffer = appendUint64(buffer, uint64(expiration))
	buffer = appendString(buffer, unsigned.FeeAsset)
	buffer = appendUint64(buffer, uint64(len(unsigned.Operations)))

	for i, op := range unsigned.Operations {
		body, err := json.Marshal(op)
		if nil != err {
			return nil, errors.Wrapf(err, "operation %d: %s", i, op.OperationName())
		}
		buffer = appendString(buffer, op.OperationName())
		buffer = appendBytes(buffer, body)
	}

	return buffer, nil
}

// append a single field to a buffer
//
// the field is prefixed by Varint64(length)
func appendString(buffer Packed, s string) Packed {
	buffer = util.AppendVarint64(buffer, uint64(len(s)))
	return append(buffer, s...)
}

// append a bytes to a buffer
//
// the field is prefixed by Varint64(length)
func appendBytes(buffer Packed, data []byte) Packed {
	buffer = util.AppendVarint64(buffer, uint64(len(data)))
	return append(buffer, data...)
}

// append a Varint64 to buffer
func appendUint64(buffer Packed, value uint64) Packed {
	return util.AppendVarint64(buffer, value)
}
