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

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// encoder assembles a binary message field by field, in declaration order,
// the way the codec package's objectWriter assembles JSON: sequential and
// order-preserving. Writes to its buffer cannot fail, so it keeps no error.
type encoder struct {
	buf bytes.Buffer
}

func (e *encoder) u8(v uint8)   { e.buf.WriteByte(v) }
func (e *encoder) bool(v bool) {
	if v {
		e.buf.WriteByte(1)
	} else {
		e.buf.WriteByte(0)
	}
}

func (e *encoder) u32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	e.buf.Write(b[:])
}

func (e *encoder) i32(v int32) { e.u32(uint32(v)) }

func (e *encoder) f32(v float32) { e.u32(math.Float32bits(v)) }

func (e *encoder) f64(v float64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], math.Float64bits(v))
	e.buf.Write(b[:])
}

func (e *encoder) i64(v int64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	e.buf.Write(b[:])
}

// bytesField writes a u32 length prefix followed by b.
func (e *encoder) bytesField(b []byte) {
	e.u32(uint32(len(b)))
	e.buf.Write(b)
}

// present writes a 1-byte presence flag, then calls write if ok.
func (e *encoder) present(ok bool, write func()) {
	e.bool(ok)
	if ok {
		write()
	}
}

func (e *encoder) timestamp(ts *timestamppb.Timestamp) {
	e.present(ts != nil, func() {
		e.i64(ts.GetSeconds())
		e.i32(ts.GetNanos())
	})
}

func (e *encoder) duration(d *durationpb.Duration) {
	e.present(d != nil, func() {
		e.i64(d.GetSeconds())
		e.i32(d.GetNanos())
	})
}

func (e *encoder) bytesOut() []byte { return e.buf.Bytes() }

// decoder reads a binary message field by field. Every read method
// records the first error encountered and becomes a no-op afterward, so
// callers can chain reads and check err once at the end.
type decoder struct {
	b   []byte
	off int
	err error
}

func newDecoder(b []byte) *decoder { return &decoder{b: b} }

func (d *decoder) need(n int) bool {
	if d.err != nil {
		return false
	}
	if d.off+n > len(d.b) {
		d.err = fmt.Errorf("gw: unexpected end of message (need %d bytes at offset %d, have %d)", n, d.off, len(d.b))
		return false
	}
	return true
}

func (d *decoder) u8() uint8 {
	if !d.need(1) {
		return 0
	}
	v := d.b[d.off]
	d.off++
	return v
}

func (d *decoder) bool() bool { return d.u8() != 0 }

func (d *decoder) u32() uint32 {
	if !d.need(4) {
		return 0
	}
	v := binary.BigEndian.Uint32(d.b[d.off : d.off+4])
	d.off += 4
	return v
}

func (d *decoder) i32() int32 { return int32(d.u32()) }

func (d *decoder) f32() float32 { return math.Float32frombits(d.u32()) }

func (d *decoder) u64() uint64 {
	if !d.need(8) {
		return 0
	}
	v := binary.BigEndian.Uint64(d.b[d.off : d.off+8])
	d.off += 8
	return v
}

func (d *decoder) f64() float64 { return math.Float64frombits(d.u64()) }

func (d *decoder) i64() int64 { return int64(d.u64()) }

func (d *decoder) bytesField() []byte {
	n := d.u32()
	if !d.need(int(n)) {
		return nil
	}
	v := make([]byte, n)
	copy(v, d.b[d.off:d.off+int(n)])
	d.off += int(n)
	return v
}

// ifPresent reads the presence flag and, when set, calls read.
func (d *decoder) ifPresent(read func()) bool {
	ok := d.bool()
	if ok && d.err == nil {
		read()
	}
	return ok
}

func (d *decoder) timestamp() *timestamppb.Timestamp {
	var ts *timestamppb.Timestamp
	d.ifPresent(func() {
		ts = &timestamppb.Timestamp{Seconds: d.i64(), Nanos: d.i32()}
	})
	return ts
}

func (d *decoder) duration() *durationpb.Duration {
	var dur *durationpb.Duration
	d.ifPresent(func() {
		dur = &durationpb.Duration{Seconds: d.i64(), Nanos: d.i32()}
	})
	return dur
}

func (d *decoder) gatewayID() GatewayID {
	var id GatewayID
	if !d.need(len(id)) {
		return id
	}
	copy(id[:], d.b[d.off:d.off+len(id)])
	d.off += len(id)
	return id
}

func (e *encoder) gatewayID(id GatewayID) {
	e.buf.Write(id[:])
}
