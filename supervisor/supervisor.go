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

// Package supervisor spawns one forwarder.Instance per configured
// upstream server and restarts it forever until the process shuts down.
package supervisor

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/brocaar/gwbridge/concentrator/gw"
	"github.com/brocaar/gwbridge/config"
	"github.com/brocaar/gwbridge/forwarder"
	"github.com/brocaar/gwbridge/internal/metrics"
)

var log = logrus.WithField("component", "supervisor")

// Supervisor owns the shared Prometheus registry and the set of running
// forwarder instances.
type Supervisor struct {
	Config            config.Config
	OpenEventReader   forwarder.OpenEventReader
	OpenCommandClient forwarder.OpenCommandClient

	registry *metrics.Registry
}

// New returns a Supervisor for cfg, using openEvents/openCommand to dial
// fresh concentrator handles for every forwarder instance restart.
func New(cfg config.Config, openEvents forwarder.OpenEventReader, openCommand forwarder.OpenCommandClient) *Supervisor {
	return &Supervisor{
		Config:            cfg,
		OpenEventReader:   openEvents,
		OpenCommandClient: openCommand,
		registry:          metrics.New(),
	}
}

// Registry returns the Prometheus counter vectors every forwarder
// instance reports into, for cmd/gwbridge to register with promhttp.
func (s *Supervisor) Registry() *metrics.Registry {
	return s.registry
}

// Run fetches the gateway identity once, then spawns one forwarder
// instance per configured server and blocks until ctx is canceled.
func (s *Supervisor) Run(ctx context.Context) error {
	gatewayID, err := s.fetchGatewayID(ctx)
	if err != nil {
		return err
	}

	hosts := make([]string, len(s.Config.Servers))
	for i, srv := range s.Config.Servers {
		hosts[i] = srv.Server
	}
	log.WithField("gateway_id", gatewayID.String()).WithField("servers", hosts).
		Info("starting upstream forwarders")

	var wg sync.WaitGroup
	for _, srv := range s.Config.Servers {
		inst := forwarder.NewInstance(forwarder.NewConfig(srv), gatewayID, s.OpenEventReader, s.OpenCommandClient, s.registry)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := inst.Start(ctx); err != nil {
				log.WithError(err).WithField("server", inst.Config.Server).Error("forwarder instance exited")
			}
		}()
	}
	wg.Wait()
	return nil
}

func (s *Supervisor) fetchGatewayID(ctx context.Context) (gw.GatewayID, error) {
	client, err := s.OpenCommandClient(ctx)
	if err != nil {
		return gw.GatewayID{}, err
	}
	defer client.Close()

	return client.GetGatewayID(ctx)
}
