// Copyright 2018 Irfan Sharif.
// Copyright 2018 The Kura Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package log implements the leveled console used alongside the diagnostic
// message log. Console statements are filtered by a per-logger Mode that can be
// swapped at runtime, and carry a header whose format is chosen with Flags.
//
// Basic example:
//
//      logger := log.New()
//      logger.Info("hello, world")
//
// The logger can be configured to be safe for concurrent use, fan out to
// several writers, emit debug statements, etc. using variadic options during
// initialization:
//
//      writer := log.MultiWriter(os.Stderr, buffer)
//      writer = log.SynchronizedWriter(writer)
//
//      logf := log.Lmode | log.Ldate | log.Ltime | log.Lshortfile
//
//      logger := log.New(log.Writer(writer), log.Flags(logf), log.Level(log.VerboseMode))
//
// Code that renders its own call-site location (instrumentation shims, for
// instance) uses Emit to attribute a statement to that location, or Output to
// attribute it to a caller further up the stack. Unlike the standard library
// logger there is no Fatal: terminating the process is left to the caller.
package log
