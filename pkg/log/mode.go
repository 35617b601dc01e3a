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

package log

import (
	"fmt"
	"strings"
)

// Mode is a bitmask of log levels. A logger emits a statement when the
// statement's level intersects the logger's mode, so modes can be composed
// freely (e.g. WarnMode|ErrorMode) rather than being strictly ordered.
type Mode int32

const (
	DebugMode Mode = 1 << iota
	InfoMode
	WarnMode
	ErrorMode

	// The zero-value of DisabledMode can also be used to check if modes
	// intersect, i.e. (lmode&m) != DisabledMode checks if the statement level
	// is filtered through by the logger mode.
	DisabledMode Mode = 0
	DefaultMode       = InfoMode | WarnMode | ErrorMode
	VerboseMode       = DebugMode | DefaultMode
)

func (m Mode) String() string {
	switch m {
	case DebugMode:
		return "debug"
	case InfoMode:
		return "info"
	case WarnMode:
		return "warn"
	case ErrorMode:
		return "error"
	case DisabledMode:
		return "disabled"
	}

	var parts []string
	for _, single := range []Mode{DebugMode, InfoMode, WarnMode, ErrorMode} {
		if m&single != DisabledMode {
			parts = append(parts, single.String())
		}
	}
	return strings.Join(parts, "|")
}

func (m Mode) byte() byte {
	switch m {
	case DebugMode:
		return 'D'
	case InfoMode:
		return 'I'
	case WarnMode:
		return 'W'
	case ErrorMode:
		return 'E'
	default:
		return '?'
	}
}

// ParseLevel maps a threshold level name to the mode that admits that level
// and everything more severe: "warn" yields WarnMode|ErrorMode.
func ParseLevel(level string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return VerboseMode, nil
	case "info":
		return DefaultMode, nil
	case "warn":
		return WarnMode | ErrorMode, nil
	case "error":
		return ErrorMode, nil
	case "off", "disabled":
		return DisabledMode, nil
	}
	return DisabledMode, fmt.Errorf("unknown log level %q (want debug|info|warn|error|off)", level)
}
