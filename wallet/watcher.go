// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import (
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/txcoord/fault"
)

// FileWatcher - reloads a keystore when its file is replaced or written
//
// the directory is watched since saving renames a new file over the old one
type FileWatcher struct {
	log      *logger.L
	keystore *Keystore
	watcher  *fsnotify.Watcher
	fileName string
	changed  chan struct{}
}

// Watcher - background process that keeps the keystore in step with its file
func (k *Keystore) Watcher() (*FileWatcher, error) {
	if "" == k.fileName {
		return nil, fault.ErrNoWallet
	}

	filePath, err := filepath.Abs(filepath.Clean(k.fileName))
	if nil != err {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if nil != err {
		return nil, err
	}

	if err := w.Add(filepath.Dir(filePath)); nil != err {
		w.Close()
		return nil, err
	}

	return &FileWatcher{
		log:      logger.New("wallet-watcher"),
		keystore: k,
		watcher:  w,
		fileName: filepath.Base(filePath),
		changed:  make(chan struct{}, 1),
	}, nil
}

// Changed - signalled after each reload, extra signals are discarded
func (w *FileWatcher) Changed() <-chan struct{} {
	return w.changed
}

// Run - process file events until shutdown
func (w *FileWatcher) Run(args interface{}, shutdown <-chan struct{}) {
	defer w.watcher.Close()

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			if filepath.Base(event.Name) != w.fileName {
				continue loop
			}
			if !watcherEventFileChange(event) {
				continue loop
			}
			w.log.Infof("file event: %v", event)
			if err := w.keystore.reload(); nil != err {
				w.log.Errorf("reload error: %s", err)
				continue loop
			}
			w.sendEvent()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			w.log.Errorf("watcher error: %s", err)
		}
	}
	w.log.Info("stopped")
}

func (w *FileWatcher) sendEvent() {
	select {
	case w.changed <- struct{}{}:
	default:
		w.log.Debug("event channel full, discard event")
	}
}

func watcherEventFileChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create
}
