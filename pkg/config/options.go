// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
)

// Options is a map of named options, as passed to an adapter before its first
// use.  Consumers read only the options they recognise, such that unknown
// options are ignored.  Values are typically decoded from YAML, or given on
// the command-line as strings.
type Options map[string]any

// ParseOptions parses options of the form "key=value".
func ParseOptions(args []string) (Options, error) {
	options := make(Options)
	//
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		//
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid option \"%s\" (expected key=value)", arg)
		}
		//
		options[key] = value
	}
	//
	return options, nil
}

// Bool returns the value of a boolean option, or a default when the option is
// absent or malformed.
func (p Options) Bool(key string, def bool) bool {
	switch v := p[key].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	//
	return def
}

// Int returns the value of an integer option, or a default when the option is
// absent or malformed.
func (p Options) Int(key string, def int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case uint:
		return int(v)
	case string:
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	//
	return def
}

// String returns the value of a string option, or a default when the option is
// absent.  Non-string values are formatted.
func (p Options) String(key string, def string) string {
	v, ok := p[key]
	//
	if !ok || v == nil {
		return def
	} else if s, ok := v.(string); ok {
		return s
	}
	//
	return fmt.Sprintf("%v", v)
}

// Merge returns a copy of these options, overridden by another set.
func (p Options) Merge(other Options) Options {
	merged := maps.Clone(p)
	//
	if merged == nil {
		merged = make(Options)
	}
	//
	maps.Copy(merged, other)
	//
	return merged
}
