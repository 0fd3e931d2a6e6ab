// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package axisfmt

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dchest/siphash"
	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// Container layout, all integers little-endian or uvarint:
//
//	magic   "axs1" (4 bytes)
//	id      tracking UUID (16 bytes)
//	dlen    uvarint, then dlen bytes of definition JSON
//	alen    uvarint, then alen bytes of compression name
//	count   uvarint, total number of values
//	blocks  until count values are consumed:
//	  n     uvarint, values in this block
//	  clen  uvarint, compressed payload length
//	  sum   siphash-2-4 of the payload, keyed by id (8 bytes)
//	  data  clen bytes
//	hash    blake2b-256 of the id, the definition JSON, the
//	        compression name, the value count (8 bytes LE)
//	        and the logical little-endian value stream
//	        (32 bytes)
//
// The per-block siphash catches corruption before the block
// is handed to the decompressor; the trailing blake2b hash
// pins the metadata and the logical content independently of
// block boundaries and compression choice.

var magic = []byte("axs1")

// blockValues is the number of values per compressed block.
const blockValues = 8192

// ErrCorrupt is wrapped by Decode for any structural damage:
// bad magic, truncation, checksum or content-hash mismatch.
var ErrCorrupt = errors.New("corrupt axis container")

func appendUvarint(dst []byte, v uint64) []byte {
	var tmp [binary.MaxVarintLen64]byte
	return append(dst, tmp[:binary.PutUvarint(tmp[:], v)]...)
}

func blockSum(id uuid.UUID, data []byte) uint64 {
	k0 := binary.LittleEndian.Uint64(id[:8])
	k1 := binary.LittleEndian.Uint64(id[8:])
	return siphash.Hash(k0, k1, data)
}

func le64(dst []byte, vals []int64) []byte {
	for _, v := range vals {
		dst = binary.LittleEndian.AppendUint64(dst, uint64(v))
	}
	return dst
}

// Encode appends a container holding def and raw to dst and
// returns the extended slice along with the fresh tracking ID
// it assigned. algo names the block compression, "zstd" or
// "s2"; an unknown name is an error, not a fallback.
func Encode(dst []byte, def *Definition, raw []int64, algo string) ([]byte, uuid.UUID, error) {
	if _, err := def.Spec(); err != nil {
		return nil, uuid.UUID{}, err
	}
	comp, err := compression(algo)
	if err != nil {
		return nil, uuid.UUID{}, err
	}
	djson, err := json.Marshal(def)
	if err != nil {
		return nil, uuid.UUID{}, err
	}
	id := uuid.New()
	dst = append(dst, magic...)
	dst = append(dst, id[:]...)
	dst = appendUvarint(dst, uint64(len(djson)))
	dst = append(dst, djson...)
	dst = appendUvarint(dst, uint64(len(algo)))
	dst = append(dst, algo...)
	dst = appendUvarint(dst, uint64(len(raw)))
	hash, err := blake2b.New256(nil)
	if err != nil {
		return nil, uuid.UUID{}, err
	}
	hash.Write(id[:])
	hash.Write(djson)
	hash.Write([]byte(algo))
	var cnt [8]byte
	binary.LittleEndian.PutUint64(cnt[:], uint64(len(raw)))
	hash.Write(cnt[:])
	var plain, packed []byte
	for len(raw) > 0 {
		n := blockValues
		if n > len(raw) {
			n = len(raw)
		}
		plain = le64(plain[:0], raw[:n])
		raw = raw[n:]
		hash.Write(plain)
		packed = comp.Compress(plain, packed[:0])
		dst = appendUvarint(dst, uint64(n))
		dst = appendUvarint(dst, uint64(len(packed)))
		dst = binary.LittleEndian.AppendUint64(dst, blockSum(id, packed))
		dst = append(dst, packed...)
	}
	dst = hash.Sum(dst)
	return dst, id, nil
}

type reader struct {
	buf []byte
}

func (r *reader) uvarint() (uint64, error) {
	v, n := binary.Uvarint(r.buf)
	if n <= 0 {
		return 0, fmt.Errorf("short uvarint: %w", ErrCorrupt)
	}
	r.buf = r.buf[n:]
	return v, nil
}

func (r *reader) bytes(n int) ([]byte, error) {
	if n < 0 || len(r.buf) < n {
		return nil, fmt.Errorf("%d bytes missing: %w", n-len(r.buf), ErrCorrupt)
	}
	b := r.buf[:n]
	r.buf = r.buf[n:]
	return b, nil
}

// Decode parses a container produced by Encode and returns
// the definition, the raw values, and the tracking ID. Every
// block checksum and the trailing content hash are verified;
// any mismatch fails with an error wrapping ErrCorrupt, and
// nothing partial is returned.
func Decode(src []byte) (*Definition, []int64, uuid.UUID, error) {
	r := &reader{buf: src}
	var id uuid.UUID
	m, err := r.bytes(4)
	if err == nil && !bytes.Equal(m, magic) {
		err = fmt.Errorf("bad magic %q: %w", m, ErrCorrupt)
	}
	if err != nil {
		return nil, nil, id, err
	}
	idb, err := r.bytes(16)
	if err != nil {
		return nil, nil, id, err
	}
	copy(id[:], idb)
	dlen, err := r.uvarint()
	if err != nil {
		return nil, nil, id, err
	}
	djson, err := r.bytes(int(dlen))
	if err != nil {
		return nil, nil, id, err
	}
	def, err := ParseDefinition(djson)
	if err != nil {
		return nil, nil, id, err
	}
	alen, err := r.uvarint()
	if err != nil {
		return nil, nil, id, err
	}
	algob, err := r.bytes(int(alen))
	if err != nil {
		return nil, nil, id, err
	}
	decomp, err := decompression(string(algob))
	if err != nil {
		return nil, nil, id, err
	}
	count, err := r.uvarint()
	if err != nil {
		return nil, nil, id, err
	}
	hash, err := blake2b.New256(nil)
	if err != nil {
		return nil, nil, id, err
	}
	hash.Write(id[:])
	hash.Write(djson)
	hash.Write(algob)
	var cnt [8]byte
	binary.LittleEndian.PutUint64(cnt[:], count)
	hash.Write(cnt[:])
	// count is untrusted until the blocks deliver it; cap the
	// initial allocation at one block and let append grow it
	capHint := count
	if capHint > blockValues {
		capHint = blockValues
	}
	vals := make([]int64, 0, capHint)
	var plain []byte
	for uint64(len(vals)) < count {
		n, err := r.uvarint()
		if err != nil {
			return nil, nil, id, err
		}
		if n == 0 || n > count-uint64(len(vals)) {
			return nil, nil, id, fmt.Errorf("block of %d values: %w", n, ErrCorrupt)
		}
		clen, err := r.uvarint()
		if err != nil {
			return nil, nil, id, err
		}
		sumb, err := r.bytes(8)
		if err != nil {
			return nil, nil, id, err
		}
		packed, err := r.bytes(int(clen))
		if err != nil {
			return nil, nil, id, err
		}
		if blockSum(id, packed) != binary.LittleEndian.Uint64(sumb) {
			return nil, nil, id, fmt.Errorf("block checksum mismatch: %w", ErrCorrupt)
		}
		if cap(plain) < int(n)*8 {
			plain = make([]byte, int(n)*8)
		}
		plain = plain[:int(n)*8]
		if err := decomp.Decompress(packed, plain); err != nil {
			return nil, nil, id, fmt.Errorf("%v: %w", err, ErrCorrupt)
		}
		hash.Write(plain)
		for i := 0; i < len(plain); i += 8 {
			vals = append(vals, int64(binary.LittleEndian.Uint64(plain[i:])))
		}
	}
	want, err := r.bytes(32)
	if err != nil {
		return nil, nil, id, err
	}
	if !bytes.Equal(hash.Sum(nil), want) {
		return nil, nil, id, fmt.Errorf("content hash mismatch: %w", ErrCorrupt)
	}
	if len(r.buf) != 0 {
		return nil, nil, id, fmt.Errorf("%d trailing bytes: %w", len(r.buf), ErrCorrupt)
	}
	return def, vals, id, nil
}
