// Copyright 2025 ScyllaDB
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package samplelog

import (
	"bufio"
	"compress/gzip"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

type Compression int

const (
	NoCompression Compression = iota
	ZSTDCompression
	GZIPCompression
)

func (c Compression) String() string {
	switch c {
	case NoCompression:
		return "none"
	case ZSTDCompression:
		return "zstd"
	case GZIPCompression:
		return "gzip"
	default:
		panic("unknown compression")
	}
}

func ParseCompression(value string) (Compression, error) {
	switch value {
	case "none", "":
		return NoCompression, nil
	case "zstd":
		return ZSTDCompression, nil
	case "gzip":
		return GZIPCompression, nil
	default:
		return NoCompression, errors.Errorf("unknown compression %q", value)
	}
}

// newWriter wraps output. Closing the returned closer finishes the
// compressed frame; it does not close output.
func (c Compression) newWriter(output io.Writer) (*bufio.Writer, io.Closer, error) {
	switch c {
	case ZSTDCompression:
		zstdWriter, err := zstd.NewWriter(output,
			zstd.WithEncoderLevel(zstd.SpeedFastest),
			zstd.WithEncoderCRC(true),
		)
		if err != nil {
			return nil, nil, err
		}

		return bufio.NewWriterSize(zstdWriter, bufioWriterSize), zstdWriter, nil
	case GZIPCompression:
		gzipWriter, err := gzip.NewWriterLevel(output, gzip.BestSpeed)
		if err != nil {
			return nil, nil, err
		}

		return bufio.NewWriterSize(gzipWriter, bufioWriterSize), gzipWriter, nil
	default:
		return bufio.NewWriterSize(output, bufioWriterSize), nil, nil
	}
}

func (c Compression) newReader(input io.Reader) (io.Reader, func(), error) {
	switch c {
	case ZSTDCompression:
		zstdReader, err := zstd.NewReader(input)
		if err != nil {
			return nil, nil, err
		}
		return zstdReader, zstdReader.Close, nil
	case GZIPCompression:
		gzipReader, err := gzip.NewReader(input)
		if err != nil {
			return nil, nil, err
		}
		return gzipReader, func() { _ = gzipReader.Close() }, nil
	default:
		return input, func() {}, nil
	}
}
