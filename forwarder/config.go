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

package forwarder

import (
	"time"

	"github.com/brocaar/gwbridge/config"
)

// DefaultKeepaliveInterval is used when a server's configured interval is
// zero.
const DefaultKeepaliveInterval = 5 * time.Second

// PollTimeout is the read deadline used for the UDP socket. The
// concentrator event stream and command socket are bounded by the
// transport's own timeout (zmq.PollTimeout, also 100 ms).
const PollTimeout = 100 * time.Millisecond

// Config is the immutable, per-upstream configuration an Instance runs
// with.
type Config struct {
	Server               string
	KeepaliveInterval    time.Duration
	KeepaliveMaxFailures uint
	FilterCRCOK          bool
	FilterCRCInvalid     bool
	FilterCRCMissing     bool
}

// NewConfig converts a config.Server into a forwarder.Config, filling in
// the keepalive interval default.
func NewConfig(s config.Server) Config {
	interval := s.KeepaliveInterval
	if interval == 0 {
		interval = DefaultKeepaliveInterval
	}
	return Config{
		Server:               s.Server,
		KeepaliveInterval:    interval,
		KeepaliveMaxFailures: s.KeepaliveMaxFailures,
		FilterCRCOK:          s.FilterCRCOK,
		FilterCRCInvalid:     s.FilterCRCInvalid,
		FilterCRCMissing:     s.FilterCRCMissing,
	}
}
