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

// Package local implements a connector directory where the connector
// addresses are stored in a YAML file locally on the disk.
//
// The complete list of addresses is loaded into an in-memory cache during
// initialization. Add and Remove operations act only on the cache and do not
// affect the contents of the file.
//
// Latest state of the cache can be updated to the file by explicitly calling
// UpdateStorage method. Normally this should be called before shutting down
// the node.
package local
