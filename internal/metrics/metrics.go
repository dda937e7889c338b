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

// Package metrics wires the Prometheus counter vectors shared by the
// forwarder and supervisor packages.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// A Registry holds the four UDP traffic counter families, each labeled by
// upstream server and frame type.
type Registry struct {
	UDPSentCount     *prometheus.CounterVec
	UDPSentBytes     *prometheus.CounterVec
	UDPReceivedCount *prometheus.CounterVec
	UDPReceivedBytes *prometheus.CounterVec
}

// New returns a Registry with all four counter vectors created but not
// yet registered with any prometheus.Registerer.
func New() *Registry {
	labels := []string{"server", "type"}
	return &Registry{
		UDPSentCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gwbridge",
			Name:      "udp_sent_count",
			Help:      "Number of UDP datagrams sent upstream, by frame type.",
		}, labels),
		UDPSentBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gwbridge",
			Name:      "udp_sent_bytes",
			Help:      "Number of UDP bytes sent upstream, by frame type.",
		}, labels),
		UDPReceivedCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gwbridge",
			Name:      "udp_received_count",
			Help:      "Number of UDP datagrams received from upstream, by frame type.",
		}, labels),
		UDPReceivedBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gwbridge",
			Name:      "udp_received_bytes",
			Help:      "Number of UDP bytes received from upstream, by frame type.",
		}, labels),
	}
}

// MustRegister registers all four counter vectors with reg.
func (r *Registry) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(r.UDPSentCount, r.UDPSentBytes, r.UDPReceivedCount, r.UDPReceivedBytes)
}

// SentDatagram records one outgoing datagram of the given frame type and
// size for server.
func (r *Registry) SentDatagram(server, frameType string, size int) {
	r.UDPSentCount.WithLabelValues(server, frameType).Inc()
	r.UDPSentBytes.WithLabelValues(server, frameType).Add(float64(size))
}

// ReceivedDatagram records one incoming datagram of the given frame type
// and size for server.
func (r *Registry) ReceivedDatagram(server, frameType string, size int) {
	r.UDPReceivedCount.WithLabelValues(server, frameType).Inc()
	r.UDPReceivedBytes.WithLabelValues(server, frameType).Add(float64(size))
}
