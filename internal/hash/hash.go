/*
Copyright © 2026 the twostream authors.
This file is part of twostream.

twostream is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

twostream is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with twostream.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package hash creates stable keys for solver inputs.
package hash

import (
	"encoding/gob"
	"fmt"
	"hash/fnv"

	"github.com/davecgh/go-spew/spew"
)

// Hash returns a hex-encoded 128-bit FNV-1a hash of the given objects,
// encoded in order. Objects are gob encoded; if gob cannot encode one of
// them, the go-spew representation of all of them is hashed instead.
// Objects should not contain maps, whose gob encoding is not ordered.
func Hash(objects ...interface{}) string {
	h := fnv.New128a()
	e := gob.NewEncoder(h)
	ok := true
	for _, o := range objects {
		if err := e.Encode(o); err != nil {
			ok = false
			break
		}
	}
	if !ok {
		h.Reset()
		printer := spew.ConfigState{
			Indent:                  " ",
			SortKeys:                true,
			DisableMethods:          true,
			SpewKeys:                true,
			DisablePointerAddresses: true,
			DisableCapacities:       true,
		}
		for _, o := range objects {
			printer.Fprintf(h, "%#v", o)
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
