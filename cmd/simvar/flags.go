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
	"github.com/spf13/cobra"
)

var (
	modelFile        string
	outFileArg       string
	compressionArg   string
	metricsBind      string
	level            string
	replications     uint64
	samples          uint64
	firstReplication uint64
	concurrency      int
	quantiles        bool
	versionFlag      bool
	versionJSONFlag  bool
)

func setupFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&versionFlag, "version", "", false, "Print version information")
	cmd.PersistentFlags().BoolVarP(&versionJSONFlag, "version-json", "", false, "Print version information in JSON format")
	cmd.PersistentFlags().
		StringVarP(&level, "level", "", "info", "Specify the logging level, debug|info|warn|error")
}

//nolint:lll
func setupSampleFlags(cmd *cobra.Command) {
	cmd.Flags().
		StringVarP(&modelFile, "model", "m", "", "Model JSON file with the distributions to sample")
	cmd.Flags().
		Uint64VarP(&replications, "replications", "r", 1, "Number of replications to run")
	cmd.Flags().
		Uint64VarP(&firstReplication, "first-replication", "", 0, "Replication number of the first replication, selects its random substream")
	cmd.Flags().
		Uint64VarP(&samples, "samples", "n", 1000, "Number of samples to draw from every distribution in every replication")
	cmd.Flags().
		IntVarP(&concurrency, "concurrency", "c", 1, "Number of replications to run concurrently")
	cmd.Flags().
		StringVarP(&outFileArg, "outfile", "", "", "Specify the name of the file the drawn samples are written to")
	cmd.Flags().
		StringVarP(&compressionArg, "compression", "", "none", "Compression of the samples file, none|gzip|zstd")
	cmd.Flags().
		StringVarP(&metricsBind, "bind", "b", "", "Specify the interface and port which to bind prometheus metrics on, for example ':2112'. Disabled when empty")
	cmd.Flags().
		BoolVarP(&quantiles, "quantiles", "", true, "Keep drawn values in memory to report percentiles")

	_ = cmd.MarkFlagRequired("model")
}

func setupDescribeFlags(cmd *cobra.Command) {
	cmd.Flags().
		StringVarP(&modelFile, "model", "m", "", "Model JSON file with the distributions to describe")

	_ = cmd.MarkFlagRequired("model")
}
