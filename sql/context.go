// Copyright 2022 DoltHub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sql

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Context carries a cancellation signal and a logger through the
// window-aggregation core, without the session/catalog machinery a
// full query engine's context would also carry.
type Context struct {
	context.Context
	logger *logrus.Entry
}

// NewContext wraps ctx with a logger. A nil logger falls back to the
// standard logrus logger at its default level.
func NewContext(ctx context.Context, logger *logrus.Entry) *Context {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Context{Context: ctx, logger: logger}
}

// NewEmptyContext returns a Context over context.Background() with the
// standard logger, for tests.
func NewEmptyContext() *Context {
	return NewContext(context.Background(), nil)
}

// Logger returns the context's structured logger.
func (c *Context) Logger() *logrus.Entry { return c.logger }
