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

package codec

import (
	"bytes"
	"encoding/json"
)

// objectWriter assembles a JSON object one field at a time, in the exact
// order fields are added. The packet-forwarder protocol's field ordering
// and field omission rules are part of the wire contract, so types in
// this package build their JSON by hand rather than relying on
// struct-tag-driven marshaling.
type objectWriter struct {
	buf   bytes.Buffer
	first bool
	err   error
}

func newObjectWriter() *objectWriter {
	w := &objectWriter{first: true}
	w.buf.WriteByte('{')
	return w
}

// field appends key:value, marshaling value with encoding/json.
func (w *objectWriter) field(key string, value interface{}) {
	if w.err != nil {
		return
	}
	b, err := json.Marshal(value)
	if err != nil {
		w.err = err
		return
	}
	if !w.first {
		w.buf.WriteByte(',')
	}
	w.first = false

	kb, _ := json.Marshal(key)
	w.buf.Write(kb)
	w.buf.WriteByte(':')
	w.buf.Write(b)
}

// raw appends key:rawValue, where rawValue is already-encoded JSON.
func (w *objectWriter) raw(key string, rawValue json.RawMessage) {
	if w.err != nil {
		return
	}
	if !w.first {
		w.buf.WriteByte(',')
	}
	w.first = false

	kb, _ := json.Marshal(key)
	w.buf.Write(kb)
	w.buf.WriteByte(':')
	w.buf.Write(rawValue)
}

// bytes closes the object and returns its encoding.
func (w *objectWriter) bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	w.buf.WriteByte('}')
	return w.buf.Bytes(), nil
}
