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
	"math"
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/brocaar/gwbridge/codec"
	"github.com/brocaar/gwbridge/concentrator/gw"
)

// UplinkToRXPK converts a received radio frame to its rxpk JSON model.
// frame must carry both TxInfo and RxInfo, and a LoRa or FSK modulation;
// anything else returns *InvalidUplink or *UnsupportedModulation.
func (t *Translator) UplinkToRXPK(frame *gw.UplinkFrame) (codec.RXPK, error) {
	if frame.RxInfo == nil {
		return codec.RXPK{}, &InvalidUplink{Reason: "missing rx_info"}
	}
	if frame.TxInfo == nil {
		return codec.RXPK{}, &InvalidUplink{Reason: "missing tx_info"}
	}
	rx, tx := frame.RxInfo, frame.TxInfo

	modu, datr, codR, err := decodeModulation(tx.Modulation)
	if err != nil {
		return codec.RXPK{}, err
	}

	rxpk := codec.RXPK{
		Time: t.receiveTime(rx.Time),
		Tmst: contextToTmst(rx.Context),
		Freq: float64(tx.Frequency) / 1e6,
		Chan: uint8(rx.Channel),
		RFCh: uint8(rx.RfChain),
		Stat: crcStatusFromGW(rx.CrcStatus),
		Modu: modu,
		DatR: datr,
		CodR: codR,
		RSSI: rx.Rssi,
		Size: capToUint8(len(frame.PhyPayload)),
		Data: base64.StdEncoding.EncodeToString(frame.PhyPayload),
	}

	// lsnr has no meaning for FSK demodulation; only LoRa frames carry it.
	if tx.Modulation != nil && tx.Modulation.Lora != nil {
		snr := float64(rx.Snr)
		rxpk.LSNR = &snr
	}

	if rx.TimeSinceGPSEpoch != nil {
		ms := uint64(rx.TimeSinceGPSEpoch.GetSeconds())*1000 + uint64(rx.TimeSinceGPSEpoch.GetNanos())/1_000_000
		rxpk.Tmms = &ms
	}

	return rxpk, nil
}

// decodeModulation maps a concentrator modulation block to the codec's
// modulation/datarate/coding-rate trio. The coding rate is nil for FSK.
func decodeModulation(m *gw.Modulation) (codec.Modulation, codec.DataRate, *codec.CodingRate, error) {
	switch {
	case m != nil && m.Lora != nil:
		cr := codingRateFromGW(m.Lora.CodeRate)
		return codec.ModulationLoRa, codec.NewLoRaDataRate(uint8(m.Lora.SpreadingFactor), m.Lora.Bandwidth), &cr, nil
	case m != nil && m.Fsk != nil:
		return codec.ModulationFSK, codec.NewFSKDataRate(m.Fsk.Datarate), nil, nil
	default:
		return "", codec.DataRate{}, nil, &UnsupportedModulation{Modulation: "lr-fhss"}
	}
}

// receiveTime returns ts as a time.Time, falling back to the Translator's
// clock when ts is nil or outside the range a protobuf timestamp can
// validly represent.
func (t *Translator) receiveTime(ts *timestamppb.Timestamp) time.Time {
	if ts == nil || ts.CheckValid() != nil {
		return t.Clock.Now()
	}
	return ts.AsTime()
}

func capToUint8(n int) uint8 {
	if n > math.MaxUint8 {
		return math.MaxUint8
	}
	return uint8(n)
}

// contextToTmst recovers the legacy tmst counter from the opaque context
// the concentrator attaches to a received frame, reading its first four
// bytes as a big-endian counter. A context shorter than four bytes yields 0.
func contextToTmst(context []byte) uint32 {
	if len(context) < 4 {
		return 0
	}
	return binary.BigEndian.Uint32(context[:4])
}

func crcStatusFromGW(s gw.CRCStatus) codec.CRCStatus {
	switch s {
	case gw.CRCStatusOK:
		return codec.CRCOK
	case gw.CRCStatusInvalid:
		return codec.CRCInvalid
	default:
		return codec.CRCMissing
	}
}

func codingRateFromGW(cr gw.CodeRate) codec.CodingRate {
	switch cr {
	case gw.CodeRate4_5:
		return codec.CodingRate4_5
	case gw.CodeRate4_6:
		return codec.CodingRate4_6
	case gw.CodeRate4_7:
		return codec.CodingRate4_7
	case gw.CodeRate4_8:
		return codec.CodingRate4_8
	default:
		return codec.CodingRateUndefined
	}
}
