// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package descriptor

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// Option configures how descriptors are loaded.
type Option func(*config)

// WithLogger sets the logger to report progress to, overriding [Logger].
func WithLogger(l *zap.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithInclude restricts loading to the files whose paths match at least one
// of the given doublestar globs, such as "google/**/*.proto".
//
// May be given more than once; the globs accumulate. With no globs, every
// file is loaded.
func WithInclude(globs ...string) Option {
	return func(c *config) { c.include = append(c.include, globs...) }
}

type config struct {
	logger  *zap.Logger
	include []string
}

func newConfig(opts []Option) (*config, error) {
	c := new(config)
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = Logger()
	}
	for _, glob := range c.include {
		if !doublestar.ValidatePattern(glob) {
			return nil, fmt.Errorf("descriptor: invalid include pattern %q", glob)
		}
	}
	return c, nil
}

// included returns whether the file at path should be loaded.
func (c *config) included(path string) bool {
	if len(c.include) == 0 {
		return true
	}
	for _, glob := range c.include {
		if ok, _ := doublestar.Match(glob, path); ok {
			return true
		}
	}
	return false
}
