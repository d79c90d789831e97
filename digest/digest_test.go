// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package digest_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/txcoord/digest"
	"github.com/bitmark-inc/txcoord/fault"
)

// SHA3-256 of the empty string
const emptyDigest = "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a"

func TestNewDigest(t *testing.T) {
	d := digest.New([]byte{})
	assert.Equal(t, emptyDigest, d.String(), "wrong digest")
	assert.Equal(t, "<SHA3-256:"+emptyDigest+">", fmt.Sprintf("%#v", d), "wrong go string")
	assert.False(t, d.IsZero(), "digest should not be zero")
	assert.True(t, digest.Digest{}.IsZero(), "unset digest should be zero")
}

func TestDigestJSON(t *testing.T) {
	d := digest.New([]byte{})

	buffer, err := json.Marshal(d)
	assert.Nil(t, err, "marshal error")
	assert.Equal(t, `"`+emptyDigest+`"`, string(buffer), "wrong JSON")

	var back digest.Digest
	err = json.Unmarshal(buffer, &back)
	assert.Nil(t, err, "unmarshal error")
	assert.Equal(t, d, back, "round trip mismatch")
}

func TestDigestInvalidText(t *testing.T) {
	testData := []string{
		"",
		"a7ff",
		emptyDigest + "00",
		"x7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a",
	}

	for i, s := range testData {
		var d digest.Digest
		err := d.UnmarshalText([]byte(s))
		assert.Equal(t, fault.ErrNotTransactionID, err, "%d: expected error for %q", i, s)
	}
}

func TestFromBytes(t *testing.T) {
	var d digest.Digest
	err := digest.FromBytes(&d, make([]byte, 31))
	assert.Equal(t, fault.ErrNotTransactionID, err, "short buffer accepted")

	b := make([]byte, digest.Length)
	b[0] = 0x42
	err = digest.FromBytes(&d, b)
	assert.Nil(t, err, "unexpected error")
	assert.Equal(t, byte(0x42), d[0], "wrong first byte")
}
