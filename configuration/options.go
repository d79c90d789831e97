// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/txcoord/fault"
)

// inclusion levels for blocking broadcasts
const (
	BlockingNone         = ""
	BlockingHead         = "head"
	BlockingIrreversible = "irreversible"
)

// basic defaults
const (
	DefaultExpiration         = 30
	DefaultProposalExpiration = 86400
	DefaultProposalReview     = 0
	DefaultBlockingTimeout    = 60
	DefaultUnlockTimeout      = 300
	DefaultFeeAsset           = "CORE"
	DefaultPrefix             = "TXC"

	defaultLogDirectory = "log"
	defaultLogFile      = "txcoord.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// DefaultAPIs - APIs requested from the node on connect
var DefaultAPIs = []string{"database", "network_broadcast"}

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

var defaultLogLevels = LoglevelMap{
	logger.DefaultTag: "critical",
}

func (m LoglevelMap) copy() map[string]string {
	levels := make(map[string]string, len(m))
	for k, v := range m {
		levels[k] = v
	}
	return levels
}

// Options - settings fixed for the life of a session
type Options struct {
	Node        string   `gluamapper:"node" json:"node"`
	RPCUser     string   `gluamapper:"rpcuser" json:"rpcuser"`
	RPCPassword string   `gluamapper:"rpcpassword" json:"rpcpassword"`
	APIs        []string `gluamapper:"apis" json:"apis"`
	Store       string   `gluamapper:"store" json:"store"`
	Prefix      string   `gluamapper:"prefix" json:"prefix"`

	Offline     bool `gluamapper:"offline" json:"offline"`
	Unsigned    bool `gluamapper:"unsigned" json:"unsigned"`
	Bundle      bool `gluamapper:"bundle" json:"bundle"`
	NoBroadcast bool `gluamapper:"nobroadcast" json:"nobroadcast"`

	Blocking        string `gluamapper:"blocking" json:"blocking"`
	BlockingTimeout int    `gluamapper:"blocking_timeout" json:"blocking_timeout"`

	Expiration         int    `gluamapper:"expiration" json:"expiration"`
	FeeAsset           string `gluamapper:"fee_asset" json:"fee_asset"`
	Proposer           string `gluamapper:"proposer" json:"proposer"`
	ProposalExpiration int    `gluamapper:"proposal_expiration" json:"proposal_expiration"`
	ProposalReview     int    `gluamapper:"proposal_review" json:"proposal_review"`

	Keystore      string                       `gluamapper:"keystore" json:"keystore"`
	UnlockTimeout int                          `gluamapper:"unlock_timeout" json:"unlock_timeout"`
	Keys          []string                     `gluamapper:"keys" json:"-"`
	ForceKeys     map[string]map[string]string `gluamapper:"force_keys" json:"-"`

	Logging logger.Configuration `gluamapper:"logging" json:"logging"`
}

// NewOptions - options holding every default
//
// the API list is left empty so a configuration file replaces it
// entirely; Validate fills in the default list
func NewOptions() *Options {
	return &Options{
		Blocking:           BlockingNone,
		BlockingTimeout:    DefaultBlockingTimeout,
		Expiration:         DefaultExpiration,
		FeeAsset:           DefaultFeeAsset,
		Prefix:             DefaultPrefix,
		ProposalExpiration: DefaultProposalExpiration,
		ProposalReview:     DefaultProposalReview,
		UnlockTimeout:      DefaultUnlockTimeout,

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels.copy(),
		},
	}
}

// Validate - check values that have a fixed set of choices
func (options *Options) Validate() error {
	switch options.Blocking {
	case BlockingNone, BlockingHead, BlockingIrreversible:
	default:
		return fault.ErrInvalidBlocking
	}
	if options.Expiration <= 0 || options.ProposalExpiration <= 0 {
		return fault.ErrInvalidExpiration
	}
	if options.ProposalReview < 0 || options.BlockingTimeout < 0 {
		return fault.ErrInvalidExpiration
	}
	if 0 == len(options.APIs) {
		options.APIs = append([]string{}, DefaultAPIs...)
	}
	return nil
}

// ExpirationDuration - lifetime of a signed transaction
func (options *Options) ExpirationDuration() time.Duration {
	return time.Duration(options.Expiration) * time.Second
}

// ProposalExpirationDuration - lifetime of a proposal
func (options *Options) ProposalExpirationDuration() time.Duration {
	return time.Duration(options.ProposalExpiration) * time.Second
}

// ProposalReviewDuration - review period of a proposal, zero for none
func (options *Options) ProposalReviewDuration() time.Duration {
	return time.Duration(options.ProposalReview) * time.Second
}

// BlockingTimeoutDuration - how long a blocking broadcast waits
func (options *Options) BlockingTimeoutDuration() time.Duration {
	return time.Duration(options.BlockingTimeout) * time.Second
}

// UnlockDuration - how long decrypted keys stay cached
func (options *Options) UnlockDuration() time.Duration {
	return time.Duration(options.UnlockTimeout) * time.Second
}

// GetOptions - read a configuration file over the defaults
//
// relative file names in the result are taken from the directory
// holding the configuration file
func GetOptions(configurationFileName string) (*Options, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := NewOptions()
	if err := ParseConfigurationFile(configurationFileName, options); nil != err {
		return nil, err
	}

	if err := options.Validate(); nil != err {
		return nil, err
	}

	options.Keystore = ensureAbsolute(dataDirectory, options.Keystore)
	options.Store = ensureAbsolute(dataDirectory, options.Store)
	options.Logging.Directory = ensureAbsolute(dataDirectory, options.Logging.Directory)

	return options, nil
}

// ensure the path is absolute, empty stays empty
func ensureAbsolute(directory string, filePath string) string {
	if "" == filePath || filepath.IsAbs(filePath) {
		return filePath
	}
	return filepath.Join(directory, filePath)
}
