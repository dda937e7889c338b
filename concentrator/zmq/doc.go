// Copyright 2024 The gwbridge Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package zmq implements the concentrator package's EventReader and
// CommandClient interfaces over ZeroMQ SUB and REQ sockets, the transport
// a local Concentratord-style process exposes. Messages are two-frame:
// a short ASCII type tag followed by a gw-package binary payload.
package zmq
