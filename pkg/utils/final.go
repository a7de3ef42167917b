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

package utils

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

type finalizer struct {
	run  func() error
	name string
}

var (
	finalizers   []finalizer
	finalizersMu sync.Mutex
)

// AddFinalizer registers f to run at process exit, after the command
// returned. Finalizers run in reverse order of registration, each at most
// once.
func AddFinalizer(name string, f func() error) {
	finalizersMu.Lock()
	defer finalizersMu.Unlock()

	finalizers = append(finalizers, finalizer{name: name, run: sync.OnceValue(f)})
}

// ExecuteFinalizers runs every finalizer, even after one failed, and returns
// their errors combined.
func ExecuteFinalizers() error {
	finalizersMu.Lock()
	defer finalizersMu.Unlock()

	var err error
	for i := len(finalizers) - 1; i >= 0; i-- {
		if fErr := finalizers[i].run(); fErr != nil {
			err = multierr.Append(err, errors.Wrapf(fErr, "finalizer %s", finalizers[i].name))
		}
	}

	return err
}
