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

// Package samplelog writes drawn variates to a CSV file, optionally
// compressed, so runs can be analyzed outside the simulator.
package samplelog

import (
	"bufio"
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/scylladb/simvar/pkg/metrics"
	"github.com/scylladb/simvar/pkg/utils"
)

const (
	defaultChanSize   = 1024
	errorsOnFileLimit = 5

	bufioWriterSize = 8192 * 4
)

var (
	ErrClosed = errors.New("sample writer is closed")

	header = []string{"replication", "distribution", "index", "value"}
)

type (
	// Record is one drawn value. Index counts the draws of one distribution
	// within one replication, starting at 0.
	Record struct {
		Distribution string
		Replication  uint64
		Index        uint64
		Value        float64
	}

	Writer interface {
		Write(rec Record) error
		Close() error
	}

	writer struct {
		logger  *zap.Logger
		output  io.Closer
		channel chan Record
		metrics metrics.Queue
		done    chan struct{}
		err     error
		mu      sync.RWMutex
		closed  bool
	}
)

// NewFileWriter creates filename and writes records to it. An empty
// filename yields a writer that discards everything.
func NewFileWriter(ctx context.Context, filename string, compression Compression, logger *zap.Logger) (Writer, error) {
	if filename == "" {
		return nopWriter{}, nil
	}

	fd, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sample file %q", filename)
	}

	w, err := NewWriter(filename, fd, compression, logger)
	if err != nil {
		utils.IgnoreError(fd.Close)
		return nil, err
	}

	go fileSizeReporter(ctx, fd)

	return w, nil
}

// NewWriter writes records to w. If w is an io.Closer it is closed by Close.
func NewWriter(name string, w io.Writer, compression Compression, logger *zap.Logger) (Writer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	buffered, compressor, err := compression.newWriter(w)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create %s writer", compression)
	}

	out := &writer{
		logger:  logger,
		channel: make(chan Record, defaultChanSize),
		metrics: metrics.NewQueue("samples:"+name, defaultChanSize),
		done:    make(chan struct{}),
	}

	if c, ok := w.(io.Closer); ok {
		out.output = c
	}

	go out.committer(buffered, compressor)

	return out, nil
}

func fileSizeReporter(ctx context.Context, f *os.File) {
	timer := time.NewTicker(1 * time.Second)
	defer timer.Stop()

	name := f.Name()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			info, err := f.Stat()
			if err != nil {
				continue
			}

			metrics.FileSizeMetrics.WithLabelValues(name).Set(float64(info.Size()))
		}
	}
}

// Write queues rec. It is safe for concurrent use.
func (w *writer) Write(rec Record) error {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		return ErrClosed
	}

	w.metrics.Enqueued(len(w.channel))
	w.channel <- rec

	return nil
}

// Close drains the queue, flushes the compressed stream and closes the
// underlying file. It returns the first error the committer hit.
func (w *writer) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	w.closed = true
	close(w.channel)
	w.mu.Unlock()

	<-w.done

	if w.output != nil {
		if err := w.output.Close(); err != nil && w.err == nil {
			w.err = err
		}
	}

	return w.err
}

func (w *writer) committer(buffered *bufio.Writer, compressor io.Closer) {
	defer close(w.done)

	out := csv.NewWriter(buffered)
	row := make([]string, len(header))
	num := make([]byte, 0, 32)
	errsAtRow := 0

	_ = out.Write(header)

	for rec := range w.channel {
		w.metrics.Dequeued()

		if errsAtRow > errorsOnFileLimit {
			continue
		}

		row[0] = utils.FormatString(num, rec.Replication)
		row[1] = rec.Distribution
		row[2] = strconv.FormatUint(rec.Index, 10)
		row[3] = strconv.FormatFloat(rec.Value, 'g', -1, 64)

		if err := out.Write(row); err != nil {
			errsAtRow++
			w.logger.Error("failed to write sample", zap.Error(err))
			if w.err == nil {
				w.err = err
			}
			continue
		}

		errsAtRow = 0
	}

	out.Flush()
	if err := out.Error(); err != nil && w.err == nil {
		w.err = err
	}

	if err := buffered.Flush(); err != nil && w.err == nil {
		w.err = err
	}

	if compressor != nil {
		if err := compressor.Close(); err != nil && w.err == nil {
			w.err = err
		}
	}
}

// Read decodes every record of a sample file written with compression.
func Read(r io.Reader, compression Compression) ([]Record, error) {
	input, closeInput, err := compression.newReader(r)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s reader", compression)
	}
	defer closeInput()

	rows, err := csv.NewReader(input).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read samples")
	}

	if len(rows) == 0 {
		return nil, errors.New("missing sample header")
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, parseErr := parseRecord(row)
		if parseErr != nil {
			return nil, errors.Wrapf(parseErr, "line %d", i+2)
		}
		records = append(records, rec)
	}

	return records, nil
}

func parseRecord(row []string) (Record, error) {
	if len(row) != len(header) {
		return Record{}, errors.Errorf("expected %d fields, got %d", len(header), len(row))
	}

	replication, err := strconv.ParseUint(row[0], 10, 64)
	if err != nil {
		return Record{}, err
	}

	index, err := strconv.ParseUint(row[2], 10, 64)
	if err != nil {
		return Record{}, err
	}

	value, err := strconv.ParseFloat(row[3], 64)
	if err != nil {
		return Record{}, err
	}

	return Record{
		Replication:  replication,
		Distribution: row[1],
		Index:        index,
		Value:        value,
	}, nil
}

type nopWriter struct{}

func (nopWriter) Write(Record) error { return nil }

func (nopWriter) Close() error { return nil }
