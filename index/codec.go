// Copyright 2022 Sogang University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package index

import (
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// EncodeKeys encodes the keys in the wire format of a packed repeated sint64
// field, without the field tag.
func EncodeKeys(keys []int64) []byte {
	b := make([]byte, 0, len(keys))
	for _, key := range keys {
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(key))
	}
	return b
}

// DecodeKeys decodes keys encoded by EncodeKeys.
func DecodeKeys(b []byte) ([]int64, error) {
	keys := make([]int64, 0, len(b))
	for 0 < len(b) {
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, errors.Wrapf(protowire.ParseError(n), "decode key %d", len(keys))
		}
		keys = append(keys, protowire.DecodeZigZag(v))
		b = b[n:]
	}
	return keys, nil
}
