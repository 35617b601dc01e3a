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

package zdebug

import (
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/sugawarayuuta/sonnet"
)

// Settings is the operator facing form of the flag registry, as read from a
// JSON settings file:
//
//      {
//              "flags": ["trim", "set_error"],
//              "recover": true,
//              "dbgmsg_enable": true,
//              "free_leak_on_eio": false,
//              "dbgmsg_maxsize": 4194304
//      }
//
// "mask" may be given instead of (or in addition to) "flags" to set raw bits.
type Settings struct {
	Flags         []string `json:"flags"`
	Mask          uint32   `json:"mask"`
	Recover       bool     `json:"recover"`
	DbgmsgEnable  bool     `json:"dbgmsg_enable"`
	FreeLeakOnEIO bool     `json:"free_leak_on_eio"`
	DbgmsgMaxSize int      `json:"dbgmsg_maxsize"`
}

// LoadSettings reads and validates the settings file at path.
func LoadSettings(path string) (Settings, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("reading settings: %v", err)
	}
	s, err := ParseSettings(data)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %v", path, err)
	}
	return s, nil
}

// ParseSettings decodes and validates settings from JSON.
func ParseSettings(data []byte) (Settings, error) {
	var s Settings
	if err := sonnet.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("decoding settings: %v", err)
	}
	if _, err := s.Categories(); err != nil {
		return Settings{}, err
	}
	if s.DbgmsgMaxSize < 0 {
		return Settings{}, fmt.Errorf("dbgmsg_maxsize must not be negative, got %d", s.DbgmsgMaxSize)
	}
	return s, nil
}

// Categories returns the instrumentation mask the settings describe: the
// union of the named flags and the raw mask.
func (s Settings) Categories() (Category, error) {
	mask, err := ParseCategories(strings.Join(s.Flags, ","))
	if err != nil {
		return DebugNone, err
	}
	return mask | Category(s.Mask), nil
}

// Apply stores the settings into d's flag registry and resizes its log when a
// size is given.
func (s Settings) Apply(d *Debug) error {
	mask, err := s.Categories()
	if err != nil {
		return err
	}
	f := d.Flags()
	f.SetMask(mask)
	f.SetRecover(s.Recover)
	f.SetRecordingEnabled(s.DbgmsgEnable)
	f.SetFreeLeakOnEIO(s.FreeLeakOnEIO)
	if s.DbgmsgMaxSize > 0 {
		d.Log().SetMaxSize(s.DbgmsgMaxSize)
	}
	return nil
}
