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

package translator

import (
	"github.com/brocaar/gwbridge/codec"
	"github.com/brocaar/gwbridge/concentrator/gw"
)

// StatsToStat converts a gateway statistics snapshot to its stat JSON
// model. rxfw and ackr are supplied by the caller rather than read off
// stats: they describe the forwarder's own uplink-push bookkeeping, which
// the concentrator has no way to know.
func (t *Translator) StatsToStat(stats *gw.GatewayStats, rxfw uint32, ackr float64) (codec.Stat, error) {
	if stats == nil {
		return codec.Stat{}, &InvalidUplink{Reason: "missing stats"}
	}

	return codec.Stat{
		Time: t.receiveTime(stats.Time),
		Lati: stats.Latitude,
		Long: stats.Longitude,
		Alti: uint32(stats.Altitude),
		Rxnb: stats.RxPacketsReceived,
		Rxok: stats.RxPacketsReceivedOk,
		Rxfw: rxfw,
		Ackr: ackr,
		Dwnb: stats.TxPacketsReceived,
		Txnb: stats.TxPacketsEmitted,
	}, nil
}
