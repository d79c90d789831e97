// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"github.com/pkg/errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ConfigurationError GenericError
type ConnectionError GenericError
type ExistsError GenericError
type ExpiredError GenericError
type InvalidError GenericError
type InvariantError GenericError
type MissingKeyError GenericError
type NotFoundError GenericError
type OfflineError GenericError
type ProcessError GenericError
type RejectedError GenericError
type RemoteError GenericError

// common errors - keep in alphabetic order
var (
	ErrAmbiguousKeys        = ConfigurationError("more than one key source given")
	ErrBufferSigned         = ExpiredError("buffer is already signed")
	ErrCannotDecodeSeed     = InvalidError("cannot decode seed")
	ErrChecksumMismatch     = InvalidError("checksum mismatch")
	ErrConfigurationMissing = ConfigurationError("configuration file did not return a table")
	ErrConnectionFailed     = ConnectionError("connection failed")
	ErrCryptoFailed         = ProcessError("crypto failed")
	ErrInvalidBlocking      = ConfigurationError("blocking must be one of: head, irreversible")
	ErrInvalidDnsTxtRecord  = InvalidError("invalid node domain TXT record")
	ErrInvalidExpiration    = ConfigurationError("invalid expiration or review period")
	ErrInvalidFingerprint   = InvalidError("invalid certificate fingerprint")
	ErrInvalidIPAddress     = InvalidError("invalid IP address")
	ErrInvalidKeyLength     = InvalidError("invalid key length")
	ErrInvalidNodeDomain    = InvalidError("invalid node domain")
	ErrInvalidPasswordLen   = InvalidError("invalid password length")
	ErrInvalidPermission    = InvalidError("invalid permission")
	ErrInvalidPortNumber    = InvalidError("invalid port number")
	ErrInvalidPublicKey     = InvalidError("invalid public key")
	ErrInvalidSeedHeader    = InvalidError("invalid seed header")
	ErrInvalidSeedLength    = InvalidError("invalid seed length")
	ErrInvalidTarget        = InvalidError("append target is not a transaction or proposal buffer")
	ErrKeyAlreadyExists     = ExistsError("key already exists")
	ErrLoginFailed          = ConnectionError("login failed")
	ErrMissingSignerKey     = MissingKeyError("missing private key for required signer")
	ErrNoAccount            = InvalidError("no account given")
	ErrNoDefaultBuffer      = InvariantError("no default transaction buffer")
	ErrNoNodeConfigured     = ConfigurationError("no node configured")
	ErrNoNodeFound          = NotFoundError("no node found in DNS TXT records")
	ErrNoOperations         = InvalidError("no operations")
	ErrNoRpcPort            = InvalidError("no rpc port in TXT record")
	ErrNoSharedSession      = NotFoundError("no shared session")
	ErrNoSigners            = InvalidError("transaction has no signers")
	ErrNoWallet             = NotFoundError("wallet has not been created")
	ErrNotConnected         = ConnectionError("not connected")
	ErrNotInclusionLevel    = InvalidError("unknown inclusion level")
	ErrNotSigned            = InvalidError("transaction is not signed")
	ErrNotTransactionID     = InvalidError("not a transaction id")
	ErrOffline              = OfflineError("offline mode")
	ErrPasswordMismatch     = InvalidError("password mismatch")
	ErrRateLimiting         = ProcessError("rate limiting")
	ErrTransactionExpired   = ExpiredError("transaction expired before inclusion")
	ErrUnknownStatus        = ProcessError("unknown transaction status")
	ErrUnmarshalTextFailed  = InvalidError("unmarshal text failed")
	ErrWaitTimeout          = ProcessError("timed out waiting for transaction")
	ErrWalletExists         = ExistsError("wallet already exists")
	ErrWalletLocked         = MissingKeyError("wallet is locked")
	ErrWrongPassword        = InvalidError("wrong password")
)

// the error interface methods
func (e GenericError) Error() string       { return string(e) }
func (e ConfigurationError) Error() string { return string(e) }
func (e ConnectionError) Error() string    { return string(e) }
func (e ExistsError) Error() string        { return string(e) }
func (e ExpiredError) Error() string       { return string(e) }
func (e InvalidError) Error() string       { return string(e) }
func (e InvariantError) Error() string     { return string(e) }
func (e MissingKeyError) Error() string    { return string(e) }
func (e NotFoundError) Error() string      { return string(e) }
func (e OfflineError) Error() string       { return string(e) }
func (e ProcessError) Error() string       { return string(e) }
func (e RejectedError) Error() string      { return string(e) }
func (e RemoteError) Error() string        { return string(e) }

// Rejected - a node refused a transaction, keep its reason verbatim
func Rejected(reason string) error { return RejectedError(reason) }

// Remote - an error string returned by the node for an RPC call
func Remote(reason string) error { return RemoteError(reason) }

// determine the class of an error
func IsErrConfiguration(e error) bool { _, ok := errors.Cause(e).(ConfigurationError); return ok }
func IsErrConnection(e error) bool    { _, ok := errors.Cause(e).(ConnectionError); return ok }
func IsErrExists(e error) bool        { _, ok := errors.Cause(e).(ExistsError); return ok }
func IsErrExpired(e error) bool       { _, ok := errors.Cause(e).(ExpiredError); return ok }
func IsErrInvalid(e error) bool       { _, ok := errors.Cause(e).(InvalidError); return ok }
func IsErrInvariant(e error) bool     { _, ok := errors.Cause(e).(InvariantError); return ok }
func IsErrMissingKey(e error) bool    { _, ok := errors.Cause(e).(MissingKeyError); return ok }
func IsErrNotFound(e error) bool      { _, ok := errors.Cause(e).(NotFoundError); return ok }
func IsErrOffline(e error) bool       { _, ok := errors.Cause(e).(OfflineError); return ok }
func IsErrProcess(e error) bool       { _, ok := errors.Cause(e).(ProcessError); return ok }
func IsErrRejected(e error) bool      { _, ok := errors.Cause(e).(RejectedError); return ok }
func IsErrRemote(e error) bool        { _, ok := errors.Cause(e).(RemoteError); return ok }
