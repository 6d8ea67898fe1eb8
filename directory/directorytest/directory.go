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

// Package directorytest provides helpers to set up connector directory
// files for tests.
package directorytest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// NewDirectoryFileT is the test friendly version of NewDirectoryFile.
// It uses the passed testing.T to handle the errors and registers the
// cleanup functions on it.
func NewDirectoryFileT(t *testing.T, connectorAddrs ...string) string {
	directoryFile, err := NewDirectoryFile(connectorAddrs...)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err = os.Remove(directoryFile); err != nil {
			t.Log("Error in test cleanup: removing file - " + directoryFile)
		}
	})
	return directoryFile
}

// NewDirectoryFile sets up a local connector directory as a file in the
// system's temp directory with the given list of connector addresses and
// returns the path of the file.
func NewDirectoryFile(connectorAddrs ...string) (string, error) {
	tempFile, err := ioutil.TempFile("", "")
	if err != nil {
		return "", errors.Wrap(err, "creating temp file for local directory")
	}

	entries := append([]string{}, connectorAddrs...)
	encoder := yaml.NewEncoder(tempFile)
	if err := encoder.Encode(entries); err != nil {
		tempFile.Close()           // nolint: errcheck
		os.Remove(tempFile.Name()) // nolint: errcheck
		return "", errors.Wrap(err, "encoding directory entries")
	}
	if err := encoder.Close(); err != nil {
		tempFile.Close()           // nolint: errcheck
		os.Remove(tempFile.Name()) // nolint: errcheck
		return "", errors.Wrap(err, "closing encoder")
	}
	return tempFile.Name(), tempFile.Close()
}
