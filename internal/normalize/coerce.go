// coerce.go
//
// RoomFinder listings and helper-profile data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of roomfinder-api.
// roomfinder-api is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// roomfinder-api is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with roomfinder-api.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Package normalize converts loosely typed form input and stored column values
// into canonical scalars and string lists.
package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ToNumber converts v to a finite float64.
// nil, empty and whitespace-only strings, unparseable input and non-finite
// results all yield nil.
func ToNumber(v any) *float64 {
	var f float64

	switch n := v.(type) {
	case nil:
		return nil
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case bool:
		if n {
			f = 1
		}
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		return parseNumber(n)
	case []byte:
		return parseNumber(string(n))
	case *float64:
		if n == nil {
			return nil
		}
		f = *n
	case *string:
		if n == nil {
			return nil
		}
		return parseNumber(*n)
	default:
		return nil
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func parseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// ToInt truncates the result of ToNumber toward zero. Integer columns are 32-bit,
// so values outside the int32 range yield nil rather than a wrapped number.
func ToInt(v any) *int {
	f := ToNumber(v)
	if f == nil {
		return nil
	}
	if *f > math.MaxInt32 || *f < math.MinInt32 {
		return nil
	}
	i := int(*f)
	return &i
}

// ToBool accepts true, "true", 1 and "1" as true. Everything else is false.
func ToBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case *bool:
		return b != nil && *b
	case string:
		return b == "true" || b == "1"
	case []byte:
		s := string(b)
		return s == "true" || s == "1"
	case nil:
		return false
	}

	if f := ToNumber(v); f != nil {
		return *f == 1
	}
	return false
}

// ToString returns the display form of a scalar. nil becomes "".
func ToString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	case *string:
		if s == nil {
			return ""
		}
		return *s
	case bool:
		return strconv.FormatBool(s)
	case json.Number:
		return s.String()
	}

	if f := ToNumber(v); f != nil {
		return strconv.FormatFloat(*f, 'f', -1, 64)
	}

	// Objects nested in a list keep their JSON form rather than a Go-ism.
	if b, err := json.Marshal(v); err == nil {
		return string(b)
	}
	return ""
}

// Truthy reports whether v would be skipped by a first-present fallback chain:
// missing, nil, blank strings, numeric zero and false are not truthy.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	case []byte:
		return strings.TrimSpace(string(t)) != ""
	case bool:
		return t
	case *string:
		return t != nil && strings.TrimSpace(*t) != ""
	case *float64:
		return t != nil && *t != 0
	case *int:
		return t != nil && *t != 0
	case *bool:
		return t != nil && *t
	}

	if f := ToNumber(v); f != nil {
		return *f != 0
	}
	return true
}
