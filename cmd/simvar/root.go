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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"syscall"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/scylladb/simvar/pkg/model"
	"github.com/scylladb/simvar/pkg/utils"
)

// Logs go to stderr so the report on stdout stays machine readable.
var stderr io.Writer = os.Stderr

var rootCmd = &cobra.Command{
	Use:          "simvar",
	Short:        "simvar draws reproducible random variates from simulation model distributions.",
	RunE:         runRoot,
	SilenceUsage: true,
}

func init() {
	setupFlags(rootCmd)

	rootCmd.AddCommand(sampleCommand(), describeCommand())
}

func runRoot(cmd *cobra.Command, _ []string) error {
	shouldExit, err := checkVersion(cmd.OutOrStdout())
	if err != nil || shouldExit {
		return err
	}

	return cmd.Help()
}

func checkVersion(out io.Writer) (bool, error) {
	if !versionFlag && !versionJSONFlag {
		return false, nil
	}

	info := NewVersionInfo()

	if versionJSONFlag {
		data, err := json.Marshal(info)
		if err != nil {
			return false, err
		}

		_, _ = fmt.Fprintln(out, string(data))
		return true, nil
	}

	_, _ = fmt.Fprintln(out, info.String())
	return true, nil
}

func createLogger(level string, out io.Writer) *zap.Logger {
	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl.SetLevel(zap.InfoLevel)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	encoderCfg.EncodeDuration = zapcore.StringDurationEncoder
	encoderCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	encoderCfg.EncodeCaller = nil

	logger := zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(out)),
		lvl,
	))

	utils.AddFinalizer("logger", func() error {
		// Sync on a terminal or pipe fails with EINVAL or ENOTTY.
		if err := logger.Sync(); err != nil && !errors.Is(err, syscall.EINVAL) && !errors.Is(err, syscall.ENOTTY) {
			return err
		}
		return nil
	})

	return logger
}

func printSetup(out io.Writer, cfg model.Config) {
	tw := new(tabwriter.Writer)
	tw.Init(out, 0, 8, 2, '\t', tabwriter.AlignRight)
	_, _ = fmt.Fprintf(tw, "Model:\t%s\n", cfg.Name)
	_, _ = fmt.Fprintf(tw, "Distributions:\t%d\n", len(cfg.Distributions))
	_, _ = fmt.Fprintf(tw, "Replications:\t%d\n", replications)
	_, _ = fmt.Fprintf(tw, "First replication:\t%d\n", firstReplication)
	_, _ = fmt.Fprintf(tw, "Samples:\t%d\n", samples)
	_, _ = fmt.Fprintf(tw, "Concurrency:\t%d\n", concurrency)
	if outFileArg == "" {
		_, _ = fmt.Fprintf(tw, "Output file:\t%s\n", "<none>")
	} else {
		_, _ = fmt.Fprintf(tw, "Output file:\t%s (%s)\n", outFileArg, compressionArg)
	}
	_ = tw.Flush()
}
