// Copyright 2026 The nes6502 authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/prefixtree/v2"
)

// Host configuration variables adjustable with the set command.
type settings struct {
	HexMode      bool
	MemDumpBytes int
	DisasmLines  int
	MaxStepLines int
}

func newSettings() *settings {
	return &settings{
		MemDumpBytes: 64,
		DisasmLines:  10,
		MaxStepLines: 20,
	}
}

// Each variable registers a name, a help string and an accessor
// returning a pointer to its storage. The prefix tree lets the set
// command accept any unambiguous abbreviation of a name.
type settingVar struct {
	name string
	doc  string
	ref  func(s *settings) any
}

var settingVars = []settingVar{
	{"hexmode", "hexadecimal input mode",
		func(s *settings) any { return &s.HexMode }},
	{"memdumpbytes", "default number of memory bytes to dump",
		func(s *settings) any { return &s.MemDumpBytes }},
	{"disasmlines", "default number of lines to disassemble",
		func(s *settings) any { return &s.DisasmLines }},
	{"maxsteplines", "max lines to display when stepping",
		func(s *settings) any { return &s.MaxStepLines }},
}

var settingsTree = prefixtree.New[*settingVar]()

func init() {
	for i := range settingVars {
		settingsTree.Add(settingVars[i].name, &settingVars[i])
	}
}

func (s *settings) display(w io.Writer) {
	for _, v := range settingVars {
		switch p := v.ref(s).(type) {
		case *bool:
			fmt.Fprintf(w, "    %-14s %-6v (%s)\n", v.name, *p, v.doc)
		case *int:
			fmt.Fprintf(w, "    %-14s %-6d (%s)\n", v.name, *p, v.doc)
		}
	}
}

// assign parses and stores a new value for the named variable. Numeric
// values run through the host's expression evaluator.
func (s *settings) assign(key, value string, eval func(string) (int64, error)) error {
	v, err := settingsTree.FindValue(key)
	if err != nil {
		return fmt.Errorf("setting '%s' not found", key)
	}

	switch p := v.ref(s).(type) {
	case *bool:
		switch strings.ToLower(value) {
		case "0", "false":
			*p = false
		case "1", "true":
			*p = true
		default:
			return fmt.Errorf("invalid bool value '%s'", value)
		}
	case *int:
		n, err := eval(value)
		if err != nil {
			return err
		}
		*p = int(n)
	}
	return nil
}
