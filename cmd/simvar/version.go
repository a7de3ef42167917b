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
	"runtime"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type VersionInfo struct {
	Version    string `json:"version"`
	CommitSHA  string `json:"commit_sha"`
	CommitDate string `json:"commit_date"`
	GoVersion  string `json:"go_version"`
}

func NewVersionInfo() VersionInfo {
	return VersionInfo{
		Version:    version,
		CommitSHA:  commit,
		CommitDate: date,
		GoVersion:  runtime.Version(),
	}
}

func (v VersionInfo) String() string {
	return fmt.Sprintf(`simvar:
    version: %s
    commit sha: %s
    commit date: %s
    go: %s`,
		v.Version,
		v.CommitSHA,
		v.CommitDate,
		v.GoVersion,
	)
}
