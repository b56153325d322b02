/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package streampipe

import (
	"github.com/rulego/streampipe/logger"
)

// Option configures the facade.
type Option func(*Streampipe)

// WithLogger installs a custom logger for construction traces.
func WithLogger(log logger.Logger) Option {
	return func(s *Streampipe) {
		s.logger = log
	}
}

// WithDiscardLogger silences construction traces.
func WithDiscardLogger() Option {
	return func(s *Streampipe) {
		s.logger = logger.NewDiscardLogger()
	}
}

// WithLogLevel adjusts the level of the installed logger.
func WithLogLevel(level logger.Level) Option {
	return func(s *Streampipe) {
		s.logger.SetLevel(level)
	}
}
