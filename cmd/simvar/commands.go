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

package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/scylladb/simvar/pkg/metrics"
	"github.com/scylladb/simvar/pkg/model"
	"github.com/scylladb/simvar/pkg/replication"
	"github.com/scylladb/simvar/pkg/report"
	"github.com/scylladb/simvar/pkg/samplelog"
	"github.com/scylladb/simvar/pkg/utils"
)

func sampleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "sample",
		Short:        "Run replications of a model and compare drawn samples with analytic moments",
		RunE:         runSample,
		SilenceUsage: true,
	}

	setupSampleFlags(cmd)

	return cmd
}

func describeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "describe",
		Short:        "Validate a model and print its distributions and stream assignment",
		RunE:         runDescribe,
		SilenceUsage: true,
	}

	setupDescribeFlags(cmd)

	return cmd
}

func runSample(cmd *cobra.Command, _ []string) (err error) {
	logger := createLogger(level, stderr)

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if metricsBind != "" {
		metrics.StartMetricsServer(ctx, metricsBind)
	}

	cfg, err := model.Load(modelFile)
	if err != nil {
		return err
	}

	compression, err := samplelog.ParseCompression(compressionArg)
	if err != nil {
		return err
	}

	sink, err := samplelog.NewFileWriter(ctx, outFileArg, compression, logger.Named("samplelog"))
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := sink.Close(); closeErr != nil {
			err = multierr.Append(err, errors.Wrap(closeErr, "failed to close samples file"))
		}
	}()

	opts := []replication.Option{
		replication.WithLogger(logger.Named("replication")),
		replication.WithConcurrency(concurrency),
		replication.WithFirstReplication(firstReplication),
		replication.WithSink(sink),
	}
	if quantiles {
		opts = append(opts, replication.WithValues())
	}

	printSetup(cmd.OutOrStdout(), cfg)

	var results []replication.Result
	err = metrics.ExecutionTimeWithError("sample", func() error {
		var runErr error
		results, runErr = replication.New(cfg, replications, samples, opts...).Run(ctx)
		return runErr
	})
	if err != nil {
		logger.Error("replications failed", zap.Error(err), zap.NamedError("cause", utils.UnwrapErr(err)))
		return err
	}

	rows, err := report.Summarize(results)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout())
	return report.Write(cmd.OutOrStdout(), rows)
}

func runDescribe(cmd *cobra.Command, _ []string) error {
	logger := createLogger(level, stderr)

	cfg, err := model.Load(modelFile)
	if err != nil {
		return err
	}

	timer := metrics.ExecutionTimeStart("describe")
	m, err := model.New(cfg, logger.Named("model"))
	timer.Record()
	if err != nil {
		return err
	}

	return report.WriteModel(cmd.OutOrStdout(), m)
}
