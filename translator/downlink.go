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
	"encoding/base64"
	"encoding/binary"

	"google.golang.org/protobuf/types/known/durationpb"

	"github.com/brocaar/gwbridge/codec"
	"github.com/brocaar/gwbridge/concentrator/gw"
)

// TXPKToDownlinkItem converts a scheduled transmission to the item shape
// the concentrator command accepts. The caller is responsible for wrapping
// the result into a DownlinkFrame with a DownlinkID and GatewayID: those
// belong to the forwarder's PULL_RESP bookkeeping, not to the txpk itself.
//
// Timing is chosen in priority order: Imme true selects immediate
// transmission; otherwise a present Tmst schedules relative to the
// radio's internal clock, encoded as the tmst value's big-endian bytes in
// Context; otherwise a present Tmms schedules at an absolute GPS time.
// A txpk with none of the three is an *InvalidDownlink.
func (t *Translator) TXPKToDownlinkItem(txpk codec.TXPK) (*gw.DownlinkFrameItem, error) {
	modulation, err := encodeModulation(txpk)
	if err != nil {
		return nil, err
	}

	timing, context, err := downlinkTiming(txpk)
	if err != nil {
		return nil, err
	}

	payload, err := base64.StdEncoding.DecodeString(txpk.Data)
	if err != nil {
		return nil, &InvalidDownlink{Reason: "data is not valid base64: " + err.Error()}
	}

	return &gw.DownlinkFrameItem{
		PhyPayload: payload,
		TxInfo: &gw.DownlinkTxInfo{
			Frequency:  uint32(txpk.Freq * 1e6),
			Power:      int32(txpk.Powe),
			Modulation: modulation,
			Timing:     timing,
			Context:    context,
		},
	}, nil
}

// encodeModulation maps a txpk's modulation/datarate pair to the
// concentrator's modulation block, rejecting a modulation/datarate
// mismatch (e.g. FSK with a LoRa spreading-factor datarate).
func encodeModulation(txpk codec.TXPK) (*gw.Modulation, error) {
	switch txpk.Modu {
	case codec.ModulationLoRa:
		if txpk.DatR.LoRa == nil {
			return nil, &InvalidDownlink{Reason: "modu LORA requires a LoRa datarate"}
		}
		ipol := true
		if txpk.Ipol != nil {
			ipol = *txpk.Ipol
		}
		return &gw.Modulation{
			Lora: &gw.LoraModulationInfo{
				Bandwidth:             txpk.DatR.LoRa.Bandwidth,
				SpreadingFactor:       uint32(txpk.DatR.LoRa.SF),
				CodeRate:              codingRateToGW(txpk.CodR),
				PolarizationInversion: ipol,
			},
		}, nil
	case codec.ModulationFSK:
		if txpk.DatR.LoRa != nil {
			return nil, &InvalidDownlink{Reason: "modu FSK requires an FSK datarate"}
		}
		return &gw.Modulation{
			Fsk: &gw.FskModulationInfo{Datarate: txpk.DatR.FSK},
		}, nil
	default:
		return nil, &UnsupportedModulation{Modulation: string(txpk.Modu)}
	}
}

func downlinkTiming(txpk codec.TXPK) (*gw.Timing, []byte, error) {
	if txpk.Imme != nil && *txpk.Imme {
		return &gw.Timing{Immediately: &gw.ImmediatelyTiming{}}, nil, nil
	}

	if txpk.Tmst != nil {
		context := make([]byte, 4)
		binary.BigEndian.PutUint32(context, *txpk.Tmst)
		return &gw.Timing{Delay: &gw.DelayTiming{Delay: &durationpb.Duration{}}}, context, nil
	}

	if txpk.Tmms != nil {
		ms := *txpk.Tmms
		return &gw.Timing{
			GpsEpoch: &gw.GPSEpochTiming{
				TimeSinceGPSEpoch: &durationpb.Duration{
					Seconds: int64(ms / 1000),
					Nanos:   int32((ms % 1000) * 1_000_000),
				},
			},
		}, nil, nil
	}

	return nil, nil, &InvalidDownlink{Reason: "none of imme, tmst or tmms is set"}
}

func codingRateToGW(cr codec.CodingRate) gw.CodeRate {
	switch cr {
	case codec.CodingRate4_5:
		return gw.CodeRate4_5
	case codec.CodingRate4_6:
		return gw.CodeRate4_6
	case codec.CodingRate4_7:
		return gw.CodeRate4_7
	case codec.CodingRate4_8:
		return gw.CodeRate4_8
	default:
		return gw.CodeRateUndefined
	}
}
