// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package snapshot is a thin JSON file-IO wrapper around
// reservoir.State, following the teacher's inp/sim.go convention of one
// JSON document per run: gosl/io.ReadFile to load, gosl/io.WriteFileV to
// save, encoding/json.MarshalIndent for the pretty-printed form.
package snapshot

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/ressim/reservoir"
)

// Encode serialises a State to indented JSON.
func Encode(s reservoir.State) ([]byte, error) {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, chk.Err("snapshot: failed to encode state: %v", err)
	}
	return b, nil
}

// Decode parses a State from JSON.
func Decode(data []byte) (reservoir.State, error) {
	var s reservoir.State
	if err := json.Unmarshal(data, &s); err != nil {
		return reservoir.State{}, chk.Err("snapshot: failed to decode state: %v", err)
	}
	return s, nil
}

// Save writes a State to path as indented JSON.
func Save(path string, s reservoir.State) error {
	b, err := Encode(s)
	if err != nil {
		return err
	}
	io.WriteFileV(path, b)
	return nil
}

// Load reads and decodes a State from path.
func Load(path string) (reservoir.State, error) {
	b, err := io.ReadFile(path)
	if err != nil {
		return reservoir.State{}, chk.Err("snapshot: cannot read state file %q: %v", path, err)
	}
	return Decode(b)
}
