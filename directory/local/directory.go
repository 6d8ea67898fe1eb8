// Copyright (c) 2023 - for information on the respective copyright owner
// see the NOTICE file and/or the repository at
// https://github.com/interledger-labs/ilp-node
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package local

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/interledger-labs/ilp-node"
	"github.com/interledger-labs/ilp-node/directory"
)

// Directory provides access to connector addresses stored locally in a file
// on the file system. The methods defined over it are safe for concurrent
// access.
//
// It generates a cache of all addresses in the directory file during
// initialization. Add and Remove operations act only on the cached list and
// do not update the directory file. The changes in cache can be updated to
// the directory file by explicitly calling UpdateStorage method.
type Directory struct {
	mutex      sync.RWMutex
	connectors map[string]ilp.Address

	localFilePath string
}

// New returns an instance of connector directory backed by the given file.
//
// The file is a yaml list of address strings. All addresses are cached in
// memory during initialization and Add, Remove operations affect only the
// cache. The changes are updated to the directory file only when
// UpdateStorage method is explicitly called. There is no mechanism to reload
// the cache if the directory file is updated.
func New(filePath string) (*Directory, error) {
	f, err := os.Open(filepath.Clean(filePath))
	if err != nil {
		return nil, err
	}
	defer f.Close() // nolint: errcheck, gosec  // safe to defer f.Close() for files opened in read mode.

	var entries []string
	decoder := yaml.NewDecoder(f)
	if err = decoder.Decode(&entries); err != nil && err != io.EOF {
		return nil, err
	}

	connectors := make(map[string]ilp.Address, len(entries))
	for _, entry := range entries {
		addr, apiErr := parseConnectorAddr(entry)
		if apiErr != nil {
			return nil, apiErr
		}
		connectors[addr.String()] = addr
	}
	return &Directory{
		connectors:    connectors,
		localFilePath: filePath,
	}, nil
}

func parseConnectorAddr(entry string) (ilp.Address, error) {
	addr, apiErr := ilp.ParseAddress(entry)
	if apiErr != nil {
		return ilp.Address{}, errors.Wrap(directory.ErrInvalidConnectorAddress, apiErr.Error())
	}
	if addr.IsPrefix() {
		return ilp.Address{}, errors.Wrap(directory.ErrInvalidConnectorAddress, entry)
	}
	return addr, nil
}

// Connectors returns a snapshot of all known connector addresses in
// canonical (lexical) order.
func (d *Directory) Connectors() []ilp.Address {
	d.mutex.RLock()
	defer d.mutex.RUnlock()

	connectors := make([]ilp.Address, 0, len(d.connectors))
	for _, addr := range d.connectors {
		connectors = append(connectors, addr)
	}
	sort.Slice(connectors, func(i, j int) bool {
		return connectors[i].String() < connectors[j].String()
	})
	return connectors
}

// IsKnown reports whether the given address is a known connector.
func (d *Directory) IsKnown(addr ilp.Address) bool {
	d.mutex.RLock()
	_, ok := d.connectors[addr.String()]
	d.mutex.RUnlock()
	return ok
}

// Add adds the connector address to the directory cache. Returns an error if
// the address is not a valid account address or is already registered.
func (d *Directory) Add(addr ilp.Address) error {
	if addr.IsZero() || addr.IsPrefix() {
		return errors.Wrap(directory.ErrInvalidConnectorAddress, addr.String())
	}
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if _, ok := d.connectors[addr.String()]; ok {
		return directory.ErrConnectorAlreadyRegistered
	}
	d.connectors[addr.String()] = addr
	return nil
}

// Remove removes the connector address from the directory cache.
// Returns an error if the address is not registered.
func (d *Directory) Remove(addr ilp.Address) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if _, ok := d.connectors[addr.String()]; !ok {
		return directory.ErrUnknownConnector
	}
	delete(d.connectors, addr.String())
	return nil
}

// UpdateStorage writes the latest state of the directory cache to the yaml
// file.
func (d *Directory) UpdateStorage() (err error) {
	d.mutex.RLock()
	defer d.mutex.RUnlock()

	f, err := os.Create(d.localFilePath)
	if err != nil {
		return errors.Wrap(err, "opening directory file for writing")
	}
	defer func() {
		if fCloseErr := f.Close(); fCloseErr != nil {
			err = fmt.Errorf("%w; and error closing file - %s", err, fCloseErr.Error())
		}
	}()

	entries := make([]string, 0, len(d.connectors))
	for addr := range d.connectors {
		entries = append(entries, addr)
	}
	sort.Strings(entries)

	encoder := yaml.NewEncoder(f)
	if err = encoder.Encode(entries); err != nil {
		return errors.Wrap(err, "encoding data as yaml")
	}
	err = errors.Wrap(encoder.Close(), "closing encoder")
	// receive the error in "err" before returning to ensure file close error is captured.
	return err
}
