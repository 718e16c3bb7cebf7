// flex_list.go
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

package types

import (
	"github.com/roomfinder/roomfinder-api/internal/normalize"
)

// FlexList is a string list that can be unmarshaled from a JSON array, a single
// string, comma-separated text or a JSON-encoded array inside a string. Objects
// contribute their values in document order.
type FlexList []string

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexList) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = nil
		return nil
	}

	raw, err := normalize.DecodeJSON(data)
	if err != nil {
		return err
	}
	*f = FlexList(normalize.ToStringList(raw))
	return nil
}

// Slice converts FlexList back to []string. A nil list stays nil so callers can
// tell an omitted field from an empty one.
func (f FlexList) Slice() []string {
	if f == nil {
		return nil
	}
	return []string(f)
}
