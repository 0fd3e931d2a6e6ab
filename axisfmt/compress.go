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
	"fmt"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
)

// A compressor appends the compressed form of src to dst.
type compressor interface {
	Name() string
	Compress(src, dst []byte) []byte
}

// A decompressor expands src into dst, which must already
// have the exact decompressed length. It must be safe to call
// from multiple goroutines.
type decompressor interface {
	Name() string
	Decompress(src, dst []byte) error
}

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil)
	if err != nil {
		panic(err)
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic(err)
	}
}

type zstdCompressor struct{}

func (zstdCompressor) Name() string { return "zstd" }

func (zstdCompressor) Compress(src, dst []byte) []byte {
	return zstdEncoder.EncodeAll(src, dst)
}

type zstdDecompressor struct{}

func (zstdDecompressor) Name() string { return "zstd" }

func (zstdDecompressor) Decompress(src, dst []byte) error {
	ret, err := zstdDecoder.DecodeAll(src, dst[:0:len(dst)])
	if err != nil {
		return err
	}
	if len(ret) != len(dst) {
		return fmt.Errorf("expected %d bytes decompressed; got %d", len(dst), len(ret))
	}
	return nil
}

type s2Compressor struct{}

func (s2Compressor) Name() string { return "s2" }

func (s2Compressor) Compress(src, dst []byte) []byte {
	return append(dst, s2.Encode(nil, src)...)
}

type s2Decompressor struct{}

func (s2Decompressor) Name() string { return "s2" }

func (s2Decompressor) Decompress(src, dst []byte) error {
	ret, err := s2.Decode(dst[:0:len(dst)], src)
	if err != nil {
		return err
	}
	if len(ret) != len(dst) {
		return fmt.Errorf("expected %d bytes decompressed; got %d", len(dst), len(ret))
	}
	return nil
}

// compression selects a block compressor by name.
func compression(name string) (compressor, error) {
	switch name {
	case "zstd":
		return zstdCompressor{}, nil
	case "s2":
		return s2Compressor{}, nil
	}
	return nil, fmt.Errorf("axisfmt: no compressor %q", name)
}

// decompression selects a block decompressor by name.
func decompression(name string) (decompressor, error) {
	switch name {
	case "zstd":
		return zstdDecompressor{}, nil
	case "s2":
		return s2Decompressor{}, nil
	}
	return nil, fmt.Errorf("axisfmt: no decompressor %q", name)
}
