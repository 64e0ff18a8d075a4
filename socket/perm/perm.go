/*
 * MIT License
 *
 * Copyright (c) 2025 eventsock contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package perm is a thin, octal-string-aware wrapper over os.FileMode used
// for the permission bits a Unix-domain listening socket's file is created
// with.
package perm

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// Perm is a file permission bitmask, expressed the way Unix tooling
// expects (octal), but carried as its own type so a zero value reads as
// "unset" rather than "mode 0".
type Perm os.FileMode

// FileMode converts to the standard library's representation.
func (p Perm) FileMode() os.FileMode {
	return os.FileMode(p)
}

// String renders the permission as a zero-padded octal string, e.g. "0644".
func (p Perm) String() string {
	return fmt.Sprintf("0%o", uint32(p))
}

// Parse accepts an octal string ("0644", "644") and returns the matching
// Perm. An empty string parses to the zero value with no error.
func Parse(s string) (Perm, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	s = strings.TrimPrefix(s, "0o")
	n, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("perm: invalid octal mode %q: %w", s, err)
	}
	return Perm(n), nil
}

// ViperDecoderHook lets a config struct declare a Perm field and populate
// it from an octal string in the underlying config source, exactly like
// socket/protocol's hook does for NetworkProtocol. The returned func
// matches mapstructure.DecodeHookFuncType's shape so it plugs directly
// into viper.DecodeHook without a direct dependency on that package.
func ViperDecoderHook() func(reflect.Type, reflect.Type, interface{}) (interface{}, error) {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String || to != reflect.TypeOf(Perm(0)) {
			return data, nil
		}
		s, ok := data.(string)
		if !ok {
			return data, nil
		}
		return Parse(s)
	}
}
