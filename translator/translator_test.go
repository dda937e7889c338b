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
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/brocaar/gwbridge/codec"
	"github.com/brocaar/gwbridge/concentrator/gw"
)

func falsePtr() *bool { v := false; return &v }

func TestUplinkToRXPKLoRa(t *testing.T) {
	frame := &gw.UplinkFrame{
		PhyPayload: []byte{1, 2, 3},
		TxInfo: &gw.UplinkTxInfo{
			Frequency: 868300000,
			Modulation: &gw.Modulation{
				Lora: &gw.LoraModulationInfo{
					Bandwidth:       125000,
					SpreadingFactor: 12,
					CodeRate:        gw.CodeRate4_5,
				},
			},
		},
		RxInfo: &gw.UplinkRxInfo{
			Time:              &timestamppb.Timestamp{},
			TimeSinceGPSEpoch: &durationpb.Duration{Seconds: 1},
			Context:           []byte{1, 2, 3, 4},
			Channel:           1,
			RfChain:           1,
			CrcStatus:         gw.CRCStatusOK,
			Rssi:              -160,
			Snr:               5.5,
		},
	}

	tr := New()
	rxpk, err := tr.UplinkToRXPK(frame)
	require.NoError(t, err)

	b, err := rxpk.MarshalJSON()
	require.NoError(t, err)
	require.JSONEq(t,
		`{"time":"1970-01-01T00:00:00+00:00","tmms":1000,"tmst":16909060,"freq":868.3,"chan":1,"rfch":1,"stat":1,"modu":"LORA","datr":"SF12BW125","codr":"4/5","rssi":-160,"lsnr":5.5,"size":3,"data":"AQID"}`,
		string(b))
}

func TestUplinkToRXPKFSK(t *testing.T) {
	frame := &gw.UplinkFrame{
		PhyPayload: []byte{1, 2, 3},
		TxInfo: &gw.UplinkTxInfo{
			Frequency:  868300000,
			Modulation: &gw.Modulation{Fsk: &gw.FskModulationInfo{Datarate: 50000}},
		},
		RxInfo: &gw.UplinkRxInfo{
			Time:              &timestamppb.Timestamp{},
			TimeSinceGPSEpoch: &durationpb.Duration{Seconds: 1},
			Context:           []byte{1, 2, 3, 4},
			Channel:           1,
			RfChain:           2,
			CrcStatus:         gw.CRCStatusOK,
			Rssi:              -160,
		},
	}

	tr := New()
	rxpk, err := tr.UplinkToRXPK(frame)
	require.NoError(t, err)
	require.Nil(t, rxpk.CodR)
	require.Nil(t, rxpk.LSNR)

	b, err := rxpk.MarshalJSON()
	require.NoError(t, err)
	require.JSONEq(t,
		`{"time":"1970-01-01T00:00:00+00:00","tmms":1000,"tmst":16909060,"freq":868.3,"chan":1,"rfch":2,"stat":1,"modu":"FSK","datr":50000,"rssi":-160,"size":3,"data":"AQID"}`,
		string(b))
}

func TestUplinkToRXPKMissingRxInfo(t *testing.T) {
	_, err := New().UplinkToRXPK(&gw.UplinkFrame{TxInfo: &gw.UplinkTxInfo{}})
	require.Error(t, err)
	var invalid *InvalidUplink
	require.ErrorAs(t, err, &invalid)
}

func TestUplinkToRXPKUnsupportedModulation(t *testing.T) {
	frame := &gw.UplinkFrame{
		TxInfo: &gw.UplinkTxInfo{Modulation: &gw.Modulation{}},
		RxInfo: &gw.UplinkRxInfo{Time: &timestamppb.Timestamp{}},
	}
	_, err := New().UplinkToRXPK(frame)
	var unsupported *UnsupportedModulation
	require.ErrorAs(t, err, &unsupported)
}

func TestStatsToStat(t *testing.T) {
	stats := &gw.GatewayStats{
		Time:                &timestamppb.Timestamp{},
		Latitude:            1.123,
		Longitude:           2.123,
		Altitude:            3,
		RxPacketsReceived:   10,
		RxPacketsReceivedOk: 5,
		TxPacketsReceived:   14,
		TxPacketsEmitted:    7,
	}

	stat, err := New().StatsToStat(stats, 0, 0.0)
	require.NoError(t, err)

	b, err := stat.MarshalJSON()
	require.NoError(t, err)
	require.JSONEq(t,
		`{"time":"1970-01-01 00:00:00 UTC","lati":1.123,"long":2.123,"alti":3,"rxnb":10,"rxok":5,"rxfw":0,"ackr":0.0,"dwnb":14,"txnb":7}`,
		string(b))
}

func TestTXPKToDownlinkItemLoRaDelay(t *testing.T) {
	tmst := uint32(5000000)
	txpk := codec.TXPK{
		Tmst: &tmst,
		Freq: 864.123456,
		Rfch: 0,
		Powe: 14,
		Modu: codec.ModulationLoRa,
		DatR: codec.NewLoRaDataRate(11, 125000),
		CodR: codec.CodingRate4_5,
		Ipol: falsePtr(),
		Size: 32,
		Data: "H3P3N2i9qc4yt7rK7ldqoeCVJGBybzPY5h1Dd7P7p8s=",
	}

	item, err := New().TXPKToDownlinkItem(txpk)
	require.NoError(t, err)

	require.Equal(t, uint32(864123456), item.TxInfo.Frequency)
	require.Equal(t, int32(14), item.TxInfo.Power)
	require.Equal(t, []byte{0, 76, 75, 64}, item.TxInfo.Context)
	require.NotNil(t, item.TxInfo.Timing.Delay)
	require.Equal(t, int64(0), item.TxInfo.Timing.Delay.Delay.Seconds)
	require.False(t, item.TxInfo.Modulation.Lora.PolarizationInversion)
	require.EqualValues(t, 11, item.TxInfo.Modulation.Lora.SpreadingFactor)
	require.Equal(t, uint32(125000), item.TxInfo.Modulation.Lora.Bandwidth)
	require.Equal(t, gw.CodeRate4_5, item.TxInfo.Modulation.Lora.CodeRate)

	wantPayload, err := base64.StdEncoding.DecodeString("H3P3N2i9qc4yt7rK7ldqoeCVJGBybzPY5h1Dd7P7p8s=")
	require.NoError(t, err)
	require.Equal(t, wantPayload, item.PhyPayload)
}

func TestTXPKToDownlinkItemImmediate(t *testing.T) {
	imme := true
	txpk := codec.TXPK{
		Imme: &imme,
		Modu: codec.ModulationFSK,
		DatR: codec.NewFSKDataRate(50000),
		Data: "AQID",
	}

	item, err := New().TXPKToDownlinkItem(txpk)
	require.NoError(t, err)
	require.NotNil(t, item.TxInfo.Timing.Immediately)
	require.Nil(t, item.TxInfo.Context)
}

func TestTXPKToDownlinkItemNoTiming(t *testing.T) {
	txpk := codec.TXPK{
		Modu: codec.ModulationFSK,
		DatR: codec.NewFSKDataRate(50000),
		Data: "AQID",
	}
	_, err := New().TXPKToDownlinkItem(txpk)
	var invalid *InvalidDownlink
	require.ErrorAs(t, err, &invalid)
}

func TestTXPKToDownlinkItemModulationMismatch(t *testing.T) {
	imme := true
	txpk := codec.TXPK{
		Imme: &imme,
		Modu: codec.ModulationFSK,
		DatR: codec.NewLoRaDataRate(7, 125000),
		Data: "AQID",
	}
	_, err := New().TXPKToDownlinkItem(txpk)
	var invalid *InvalidDownlink
	require.ErrorAs(t, err, &invalid)
}
