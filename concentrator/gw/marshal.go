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

package gw

import "fmt"

const (
	modulationTagNone = 0
	modulationTagLora = 1
	modulationTagFsk  = 2

	timingTagNone        = 0
	timingTagImmediately = 1
	timingTagDelay       = 2
	timingTagGpsEpoch    = 3
)

func (e *encoder) modulation(m *Modulation) {
	switch {
	case m == nil:
		e.u8(modulationTagNone)
	case m.Lora != nil:
		e.u8(modulationTagLora)
		e.u32(m.Lora.Bandwidth)
		e.u32(m.Lora.SpreadingFactor)
		e.u8(uint8(m.Lora.CodeRate))
		e.bool(m.Lora.PolarizationInversion)
	case m.Fsk != nil:
		e.u8(modulationTagFsk)
		e.u32(m.Fsk.Datarate)
	default:
		e.u8(modulationTagNone)
	}
}

func (d *decoder) modulation() (*Modulation, error) {
	switch tag := d.u8(); tag {
	case modulationTagNone:
		return nil, nil
	case modulationTagLora:
		m := &Modulation{Lora: &LoraModulationInfo{
			Bandwidth:       d.u32(),
			SpreadingFactor: d.u32(),
			CodeRate:        CodeRate(d.u8()),
		}}
		m.Lora.PolarizationInversion = d.bool()
		return m, d.err
	case modulationTagFsk:
		return &Modulation{Fsk: &FskModulationInfo{Datarate: d.u32()}}, d.err
	default:
		return nil, fmt.Errorf("gw: unknown modulation tag %d", tag)
	}
}

func (e *encoder) timing(t *Timing) {
	switch {
	case t == nil:
		e.u8(timingTagNone)
	case t.Immediately != nil:
		e.u8(timingTagImmediately)
	case t.Delay != nil:
		e.u8(timingTagDelay)
		e.duration(t.Delay.Delay)
	case t.GpsEpoch != nil:
		e.u8(timingTagGpsEpoch)
		e.duration(t.GpsEpoch.TimeSinceGPSEpoch)
	default:
		e.u8(timingTagNone)
	}
}

func (d *decoder) timing() (*Timing, error) {
	switch tag := d.u8(); tag {
	case timingTagNone:
		return nil, nil
	case timingTagImmediately:
		return &Timing{Immediately: &ImmediatelyTiming{}}, d.err
	case timingTagDelay:
		return &Timing{Delay: &DelayTiming{Delay: d.duration()}}, d.err
	case timingTagGpsEpoch:
		return &Timing{GpsEpoch: &GPSEpochTiming{TimeSinceGPSEpoch: d.duration()}}, d.err
	default:
		return nil, fmt.Errorf("gw: unknown timing tag %d", tag)
	}
}

// MarshalUplinkFrame encodes an uplink event for the concentrator event
// socket's wire format.
func MarshalUplinkFrame(f *UplinkFrame) ([]byte, error) {
	e := &encoder{}
	e.bytesField(f.PhyPayload)
	e.present(f.TxInfo != nil, func() {
		e.u32(f.TxInfo.Frequency)
		e.modulation(f.TxInfo.Modulation)
	})
	e.present(f.RxInfo != nil, func() {
		e.gatewayID(f.RxInfo.GatewayID)
		e.u32(f.RxInfo.UplinkID)
		e.timestamp(f.RxInfo.Time)
		e.duration(f.RxInfo.TimeSinceGPSEpoch)
		e.i32(f.RxInfo.Rssi)
		e.f32(f.RxInfo.Snr)
		e.u32(f.RxInfo.Channel)
		e.u32(f.RxInfo.RfChain)
		e.bytesField(f.RxInfo.Context)
		e.u8(uint8(f.RxInfo.CrcStatus))
	})
	return e.bytesOut(), nil
}

// UnmarshalUplinkFrame decodes an uplink event.
func UnmarshalUplinkFrame(b []byte) (*UplinkFrame, error) {
	d := newDecoder(b)
	f := &UplinkFrame{PhyPayload: d.bytesField()}

	d.ifPresent(func() {
		f.TxInfo = &UplinkTxInfo{Frequency: d.u32()}
		mod, err := d.modulation()
		if err != nil && d.err == nil {
			d.err = err
		}
		f.TxInfo.Modulation = mod
	})
	d.ifPresent(func() {
		f.RxInfo = &UplinkRxInfo{
			GatewayID:         d.gatewayID(),
			UplinkID:          d.u32(),
			Time:              d.timestamp(),
			TimeSinceGPSEpoch: d.duration(),
			Rssi:              d.i32(),
			Snr:       d.f32(),
			Channel:   d.u32(),
			RfChain:   d.u32(),
			Context:   d.bytesField(),
			CrcStatus: CRCStatus(d.u8()),
		}
	})

	if d.err != nil {
		return nil, d.err
	}
	return f, nil
}

// MarshalGatewayStats encodes a gateway statistics event.
func MarshalGatewayStats(s *GatewayStats) ([]byte, error) {
	e := &encoder{}
	e.gatewayID(s.GatewayID)
	e.timestamp(s.Time)
	e.f64(s.Latitude)
	e.f64(s.Longitude)
	e.i32(s.Altitude)
	e.u32(s.RxPacketsReceived)
	e.u32(s.RxPacketsReceivedOk)
	e.u32(s.TxPacketsReceived)
	e.u32(s.TxPacketsEmitted)
	return e.bytesOut(), nil
}

// UnmarshalGatewayStats decodes a gateway statistics event.
func UnmarshalGatewayStats(b []byte) (*GatewayStats, error) {
	d := newDecoder(b)
	s := &GatewayStats{
		GatewayID:           d.gatewayID(),
		Time:                d.timestamp(),
		Latitude:            d.f64(),
		Longitude:           d.f64(),
		Altitude:            d.i32(),
		RxPacketsReceived:   d.u32(),
		RxPacketsReceivedOk: d.u32(),
		TxPacketsReceived:   d.u32(),
		TxPacketsEmitted:    d.u32(),
	}
	if d.err != nil {
		return nil, d.err
	}
	return s, nil
}

// MarshalDownlinkFrame encodes a send-downlink-frame command.
func MarshalDownlinkFrame(f *DownlinkFrame) ([]byte, error) {
	e := &encoder{}
	e.u32(f.DownlinkID)
	e.gatewayID(f.GatewayID)
	e.u32(uint32(len(f.Items)))
	for _, item := range f.Items {
		e.bytesField(item.PhyPayload)
		e.present(item.TxInfo != nil, func() {
			e.u32(item.TxInfo.Frequency)
			e.i32(item.TxInfo.Power)
			e.modulation(item.TxInfo.Modulation)
			e.timing(item.TxInfo.Timing)
			e.bytesField(item.TxInfo.Context)
		})
	}
	return e.bytesOut(), nil
}

// UnmarshalDownlinkFrame decodes a send-downlink-frame command.
func UnmarshalDownlinkFrame(b []byte) (*DownlinkFrame, error) {
	d := newDecoder(b)
	f := &DownlinkFrame{
		DownlinkID: d.u32(),
		GatewayID:  d.gatewayID(),
	}
	n := d.u32()
	for i := uint32(0); i < n && d.err == nil; i++ {
		item := &DownlinkFrameItem{PhyPayload: d.bytesField()}
		d.ifPresent(func() {
			txInfo := &DownlinkTxInfo{Frequency: d.u32(), Power: d.i32()}
			mod, err := d.modulation()
			if err != nil && d.err == nil {
				d.err = err
			}
			txInfo.Modulation = mod
			timing, err := d.timing()
			if err != nil && d.err == nil {
				d.err = err
			}
			txInfo.Timing = timing
			txInfo.Context = d.bytesField()
			item.TxInfo = txInfo
		})
		f.Items = append(f.Items, item)
	}
	if d.err != nil {
		return nil, d.err
	}
	return f, nil
}

// MarshalDownlinkTxAck encodes a send-downlink-frame command's reply.
func MarshalDownlinkTxAck(a *DownlinkTxAck) ([]byte, error) {
	e := &encoder{}
	e.gatewayID(a.GatewayID)
	e.u32(a.DownlinkID)
	e.u32(uint32(len(a.Items)))
	for _, item := range a.Items {
		e.u8(uint8(item.Status))
	}
	return e.bytesOut(), nil
}

// UnmarshalDownlinkTxAck decodes a send-downlink-frame command's reply.
func UnmarshalDownlinkTxAck(b []byte) (*DownlinkTxAck, error) {
	d := newDecoder(b)
	a := &DownlinkTxAck{
		GatewayID:  d.gatewayID(),
		DownlinkID: d.u32(),
	}
	n := d.u32()
	for i := uint32(0); i < n && d.err == nil; i++ {
		a.Items = append(a.Items, &DownlinkTxAckItem{Status: TxAckStatus(d.u8())})
	}
	if d.err != nil {
		return nil, d.err
	}
	return a, nil
}

// MarshalGetGatewayIDResponse encodes the get-gateway-id command's reply:
// the gateway identifier as its 16-character lowercase hex string.
func MarshalGetGatewayIDResponse(id GatewayID) ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalGetGatewayIDResponse decodes the get-gateway-id command's
// reply: a hex-string identifier that must be hex-decoded to bytes, not
// treated as the raw identifier itself.
func UnmarshalGetGatewayIDResponse(b []byte) (GatewayID, error) {
	id, err := ParseGatewayID(string(b))
	if err != nil {
		return id, fmt.Errorf("gw: gateway id response: %w", err)
	}
	return id, nil
}
