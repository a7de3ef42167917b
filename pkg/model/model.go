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

// Package model loads a set of named distributions from a JSON model file and
// binds their random streams for each replication.
package model

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/samber/mo"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/scylladb/simvar/pkg/distributions"
	"github.com/scylladb/simvar/pkg/simerror"
	"github.com/scylladb/simvar/pkg/streams"
)

type (
	Entry struct {
		Params     map[string]any `json:"params,omitempty"`
		MinValue   *float64       `json:"min_value,omitempty"`
		MaxValue   *float64       `json:"max_value,omitempty"`
		RandomSeed *uint64        `json:"random_seed,omitempty"`
		Name       string         `json:"name"`
		Type       string         `json:"type"`
		Unit       string         `json:"unit,omitempty"`
	}

	Config struct {
		Name          string  `json:"name"`
		Distributions []Entry `json:"distributions"`
		FirstStream   uint64  `json:"first_stream,omitempty"`
	}

	// Model is one instance of a configuration: its distributions and the
	// registry their streams come from. A Model is owned by a single
	// replication at a time.
	Model struct {
		logger   *zap.Logger
		registry *streams.Registry
		byName   map[string]*distributions.Distribution
		config   Config
		ordered  []*distributions.Distribution
	}
)

// Load reads and parses the model file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to read model file %q", path)
	}

	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, errors.Wrapf(err, "model file %q", path)
	}

	return cfg, nil
}

// Parse decodes a model. Unknown top-level and entry keys are rejected;
// params are checked later against the family they belong to.
func Parse(r io.Reader) (Config, error) {
	var cfg Config

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to parse model JSON")
	}

	return cfg, nil
}

// Spec converts an entry into the distribution factory input.
func (e Entry) Spec() distributions.Spec {
	spec := distributions.Spec{
		Name:   e.Name,
		Type:   e.Type,
		Unit:   e.Unit,
		Params: e.Params,
	}

	if e.MinValue != nil {
		spec.MinValue = mo.Some(*e.MinValue)
	}
	if e.MaxValue != nil {
		spec.MaxValue = mo.Some(*e.MaxValue)
	}
	if e.RandomSeed != nil {
		spec.RandomSeed = mo.Some(*e.RandomSeed)
	}

	return spec
}

// Validate builds every distribution of cfg once and reports all problems
// together.
func (c Config) Validate() error {
	_, err := New(c, nil)
	return err
}

// New builds the distributions of cfg and binds them to replication 0.
// Every configuration error of every distribution is returned at once.
func New(cfg Config, logger *zap.Logger) (*Model, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []streams.Option{streams.WithLogger(logger.Named("streams"))}
	if cfg.FirstStream != 0 {
		opts = append(opts, streams.WithFirstStream(cfg.FirstStream))
	}

	m := &Model{
		logger:   logger,
		registry: streams.NewRegistry(opts...),
		byName:   make(map[string]*distributions.Distribution, len(cfg.Distributions)),
		ordered:  make([]*distributions.Distribution, 0, len(cfg.Distributions)),
		config:   cfg,
	}

	var err error
	seen := make(map[string]struct{}, len(cfg.Distributions))
	for _, entry := range cfg.Distributions {
		if _, ok := seen[entry.Name]; ok {
			err = multierr.Append(err, simerror.Invalid(entry.Name, "Name", "is used by more than one distribution"))
			continue
		}
		seen[entry.Name] = struct{}{}

		d, dErr := distributions.New(entry.Spec())
		if dErr != nil {
			err = multierr.Append(err, dErr)
			continue
		}

		m.byName[entry.Name] = d
		m.ordered = append(m.ordered, d)
	}

	if err != nil {
		return nil, err
	}

	if err = m.Init(0); err != nil {
		return nil, err
	}

	return m, nil
}

// Init rebinds every distribution for replication: the registry is reset,
// its substream set to replication, and streams are assigned in file order
// so a distribution keeps its stream numbers across replications. Fixed
// RandomSeed blocks are reserved first so the counter skips them.
func (m *Model) Init(replication uint64) error {
	m.registry.Reset()

	if err := m.registry.SetSubstream(replication); err != nil {
		return err
	}

	var err error
	for _, fixed := range []bool{true, false} {
		for _, d := range m.ordered {
			if d.RandomSeed().IsPresent() == fixed {
				err = multierr.Append(err, d.Init(m.registry))
			}
		}
	}

	if err != nil {
		return err
	}

	m.logger.Debug("model initialized",
		zap.String("model", m.config.Name),
		zap.Uint64("replication", replication),
		zap.Int("streams", m.registry.Len()),
	)

	return nil
}

func (m *Model) Name() string {
	return m.config.Name
}

func (m *Model) Config() Config {
	return m.config
}

// Get returns the distribution called name.
func (m *Model) Get(name string) (*distributions.Distribution, bool) {
	d, ok := m.byName[name]
	return d, ok
}

// Distributions returns the distributions in file order.
func (m *Model) Distributions() []*distributions.Distribution {
	return m.ordered
}

// Streams is the number of random streams owned by the distributions.
func (m *Model) Streams() int {
	return m.registry.Len()
}

// Assignments lists the stream blocks of the current replication.
func (m *Model) Assignments() []streams.Assignment {
	return m.registry.Assignments()
}
