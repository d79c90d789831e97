// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import (
	"encoding/hex"
	"encoding/json"
	"io/ioutil"
	"os"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/txcoord/account"
	"github.com/bitmark-inc/txcoord/fault"
	"github.com/bitmark-inc/txcoord/operation"
)

const (
	minimumPasswordLength = 8

	// encrypted with the password key to verify an unlock
	passwordCheck = "txcoord keystore password verification"

	// cache entry holding the derived password key
	secretCacheKey = ":secret"

	cleanupInterval = time.Minute
)

// Entry - one encrypted key in the keystore
type Entry struct {
	Account    string               `json:"account"`
	Permission operation.Permission `json:"permission"`
	PublicKey  string               `json:"public_key"`
	Data       string               `json:"data"`
}

// the file layout
type keystoreFile struct {
	Salt  *Salt    `json:"salt"`
	Check string   `json:"check"`
	Keys  []*Entry `json:"keys"`
}

// Keystore - password protected store of seeds
//
// decrypted keys and the derived password key are held in a cache and
// expire after the unlock timeout, after which the keystore is locked
type Keystore struct {
	mutex    sync.RWMutex
	log      *logger.L
	fileName string
	salt     *Salt
	check    string
	entries  []*Entry
	unlocked *cache.Cache
	timeout  time.Duration
}

// OpenKeystore - load a keystore file
//
// a missing file gives an empty keystore that Create will initialise,
// an empty file name gives a keystore that is never written to disk
func OpenKeystore(fileName string, unlockTimeout time.Duration) (*Keystore, error) {

	if unlockTimeout <= 0 {
		unlockTimeout = cache.NoExpiration
	}

	k := &Keystore{
		log:      logger.New("wallet"),
		fileName: fileName,
		unlocked: cache.New(unlockTimeout, cleanupInterval),
		timeout:  unlockTimeout,
	}

	if "" == fileName {
		return k, nil
	}

	err := k.load()
	if nil != err && !os.IsNotExist(errors.Cause(err)) {
		return nil, err
	}
	return k, nil
}

// read the file, replacing the entries in memory
func (k *Keystore) load() error {
	data, err := ioutil.ReadFile(k.fileName)
	if nil != err {
		return err
	}

	var f keystoreFile
	if err := json.Unmarshal(data, &f); nil != err {
		return errors.Wrapf(err, "keystore: %q", k.fileName)
	}

	if nil != k.salt && (nil == f.Salt || *k.salt != *f.Salt) {
		k.log.Warn("keystore password changed, locking")
		k.unlocked.Flush()
	}

	k.salt = f.Salt
	k.check = f.Check
	k.entries = f.Keys
	k.log.Infof("loaded %d keys from: %q", len(k.entries), k.fileName)
	return nil
}

// Exists - true once a wallet has been created
func (k *Keystore) Exists() bool {
	k.mutex.RLock()
	defer k.mutex.RUnlock()
	return nil != k.salt
}

// Create - initialise a new wallet protected by password
//
// an existing wallet is never overwritten; the new wallet is left unlocked
func (k *Keystore) Create(password string) error {
	k.mutex.Lock()
	defer k.mutex.Unlock()

	if nil != k.salt {
		return fault.ErrWalletExists
	}
	if len(password) < minimumPasswordLength {
		return fault.ErrInvalidPasswordLen
	}

	salt, err := MakeSalt()
	if nil != err {
		return err
	}
	secretKey, err := generateKey(password, salt)
	if nil != err {
		return err
	}
	check, err := encryptData(passwordCheck, secretKey)
	if nil != err {
		return err
	}

	k.salt = salt
	k.check = check
	k.entries = []*Entry{}

	if err := k.save(); nil != err {
		k.salt = nil
		return err
	}

	k.unlocked.Set(secretCacheKey, secretKey, cache.DefaultExpiration)
	k.log.Info("wallet created")
	return nil
}

// Unlock - verify the password and make the keys available
func (k *Keystore) Unlock(password string) error {
	k.mutex.Lock()
	defer k.mutex.Unlock()

	if nil == k.salt {
		return fault.ErrNoWallet
	}

	secretKey, err := generateKey(password, k.salt)
	if nil != err {
		return err
	}
	if _, err := decryptData(k.check, secretKey); nil != err {
		k.log.Warn("unlock: wrong password")
		return fault.ErrWrongPassword
	}

	k.unlocked.Set(secretCacheKey, secretKey, cache.DefaultExpiration)
	k.log.Debugf("unlocked for: %s", k.timeout)
	return nil
}

// Lock - forget the password key and all decrypted keys
func (k *Keystore) Lock() {
	k.unlocked.Flush()
}

// Locked - true when keys cannot be decrypted
func (k *Keystore) Locked() bool {
	_, found := k.unlocked.Get(secretCacheKey)
	return !found
}

func (k *Keystore) secretKey() (*[32]byte, error) {
	obj, found := k.unlocked.Get(secretCacheKey)
	if !found {
		return nil, fault.ErrWalletLocked
	}
	return obj.(*[32]byte), nil
}

func cacheKey(accountName string, permission operation.Permission) string {
	return accountName + "@" + string(permission)
}

// AddKey - store a seed as the key of account at a permission level
func (k *Keystore) AddKey(accountName string, permission operation.Permission, seed string) error {
	if !permission.Valid() {
		return fault.ErrInvalidPermission
	}

	k.mutex.Lock()
	defer k.mutex.Unlock()

	if nil == k.salt {
		return fault.ErrNoWallet
	}
	secretKey, err := k.secretKey()
	if nil != err {
		return err
	}

	privateKey, err := account.PrivateKeyFromSeed(seed)
	if nil != err {
		return err
	}

	for _, e := range k.entries {
		if accountName == e.Account && permission == e.Permission {
			return fault.ErrKeyAlreadyExists
		}
	}

	data, err := encryptData(seed, secretKey)
	if nil != err {
		return err
	}

	k.entries = append(k.entries, &Entry{
		Account:    accountName,
		Permission: permission,
		PublicKey:  hex.EncodeToString(privateKey.PublicKey()),
		Data:       data,
	})

	if err := k.save(); nil != err {
		k.entries = k.entries[:len(k.entries)-1]
		return err
	}

	k.unlocked.Set(cacheKey(accountName, permission), privateKey, cache.DefaultExpiration)
	k.log.Infof("added key for: %s@%s", accountName, permission)
	return nil
}

// Entries - copy of the public part of the stored keys
func (k *Keystore) Entries() []Entry {
	k.mutex.RLock()
	defer k.mutex.RUnlock()

	entries := make([]Entry, len(k.entries))
	for i, e := range k.entries {
		entries[i] = *e
		entries[i].Data = ""
	}
	return entries
}

// ResolveKey - private key for account at permission
func (k *Keystore) ResolveKey(accountName string, permission operation.Permission) (*account.PrivateKey, error) {
	name := cacheKey(accountName, permission)

	if obj, found := k.unlocked.Get(name); found {
		return obj.(*account.PrivateKey), nil
	}

	k.mutex.RLock()
	defer k.mutex.RUnlock()

	var entry *Entry
	for _, e := range k.entries {
		if accountName == e.Account && permission == e.Permission {
			entry = e
			break
		}
	}
	if nil == entry {
		return nil, errors.WithMessagef(fault.ErrMissingSignerKey, "signer: %s@%s", accountName, permission)
	}

	secretKey, err := k.secretKey()
	if nil != err {
		return nil, err
	}

	seed, err := decryptData(entry.Data, secretKey)
	if nil != err {
		return nil, err
	}
	privateKey, err := account.PrivateKeyFromSeed(seed)
	if nil != err {
		return nil, err
	}

	k.unlocked.Set(name, privateKey, cache.DefaultExpiration)
	return privateKey, nil
}

// Save - write the keystore file
func (k *Keystore) Save() error {
	k.mutex.RLock()
	defer k.mutex.RUnlock()
	return k.save()
}

// write to a temporary file, keep the previous version as .bk
func (k *Keystore) save() error {
	if "" == k.fileName {
		return nil
	}

	data, err := json.MarshalIndent(keystoreFile{
		Salt:  k.salt,
		Check: k.check,
		Keys:  k.entries,
	}, "", "  ")
	if nil != err {
		return err
	}

	tempFile := k.fileName + ".new"
	previousFile := k.fileName + ".bk"

	_ = os.Remove(tempFile)

	if err := ioutil.WriteFile(tempFile, data, 0600); nil != err {
		k.log.Errorf("write keystore error: %s", err)
		return err
	}

	err = os.Remove(previousFile)
	if nil != err && !os.IsNotExist(err) {
		return err
	}
	err = os.Rename(k.fileName, previousFile)
	if nil != err && !os.IsNotExist(err) {
		return err
	}
	return os.Rename(tempFile, k.fileName)
}

// reload - read the file again after a change on disk
func (k *Keystore) reload() error {
	k.mutex.Lock()
	defer k.mutex.Unlock()
	if "" == k.fileName {
		return nil
	}
	return k.load()
}
