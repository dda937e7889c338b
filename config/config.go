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

// Package config defines the shapes viper populates when loading
// gwbridge's configuration file. Loading itself lives in cmd/gwbridge.
package config

import "time"

// Config is the top-level configuration tree.
type Config struct {
	General      General       `mapstructure:"general"`
	Concentrator Concentrator  `mapstructure:"concentrator"`
	Servers      []Server      `mapstructure:"server"`
	Metrics      MetricsConfig `mapstructure:"metrics"`
}

// General holds process-wide settings.
type General struct {
	// LogLevel is a logrus level name ("debug", "info", "warning", ...).
	LogLevel string `mapstructure:"log_level"`
	Syslog   bool   `mapstructure:"syslog"`
}

// Concentrator describes how to reach the local radio concentrator's RPC
// sockets.
type Concentrator struct {
	EventURL   string `mapstructure:"event_url"`
	CommandURL string `mapstructure:"command_url"`
}

// MetricsConfig configures the optional Prometheus HTTP exposition.
type MetricsConfig struct {
	// Bind, when non-empty, is the address promhttp.Handler listens on.
	Bind string `mapstructure:"bind"`
}

// Server describes one upstream Semtech UDP packet-forwarder server.
type Server struct {
	// Server is the upstream "host:port" this instance connects to.
	Server string `mapstructure:"server"`

	// KeepaliveInterval is the PULL_DATA period. Zero means the protocol
	// default of 5 seconds.
	KeepaliveInterval time.Duration `mapstructure:"keepalive_interval"`

	// KeepaliveMaxFailures is the number of consecutive missed PULL_ACKs
	// tolerated before the instance restarts. Zero disables the check.
	KeepaliveMaxFailures uint `mapstructure:"keepalive_max_failures"`

	FilterCRCOK      bool `mapstructure:"filter_crc_ok"`
	FilterCRCInvalid bool `mapstructure:"filter_crc_invalid"`
	FilterCRCMissing bool `mapstructure:"filter_crc_missing"`
}
