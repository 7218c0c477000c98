// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command enum generates the boilerplate for integer enums.
//
// It is run from a go:generate directive, such as
//
//	//go:generate go run github.com/bufbuild/protohydrate/internal/enum kind.yaml
//
// Each configuration file holds a list of enums. Their code is written next
// to it, to the file with the same name ending in .go instead of .yaml.
//
// Every enum gets String and GoString methods. The first value of an enum is
// its zero value, which is never parsed by the optional parse function.
package main

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"go/format"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

// generator is printed in the header of every generated file.
const generator = "github.com/bufbuild/protohydrate/internal/enum"

type enum struct {
	Name   string  `yaml:"name"`
	Type   string  `yaml:"type"`
	Docs   string  `yaml:"docs"`
	Total  string  `yaml:"total"` // A constant counting the values. Optional.
	Parse  string  `yaml:"parse"` // A function inverting String. Optional.
	Values []value `yaml:"values"`
}

type value struct {
	Name   string `yaml:"name"`
	String string `yaml:"string"`
	Docs   string `yaml:"docs"` // Placed after the value when it fits one line.
}

//go:embed enum.go.tmpl
var tmplText string

var tmpl = template.Must(template.New("enum").Funcs(template.FuncMap{
	"docs":    docs,
	"oneLine": oneLine,
	"lower":   strings.ToLower,
	"trim":    strings.TrimSpace,
}).Parse(tmplText))

// load reads and checks a configuration file.
func load(path string) ([]enum, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	var enums []enum
	if err := dec.Decode(&enums); err != nil {
		return nil, err
	}
	return enums, check(enums)
}

// check validates the names and strings of each enum.
func check(enums []enum) error {
	var errs []error
	for _, e := range enums {
		if e.Name == "" || e.Type == "" {
			errs = append(errs, errors.New("enum is missing a name or type"))
			continue
		}
		if len(e.Values) == 0 {
			errs = append(errs, fmt.Errorf("%s: no values", e.Name))
		}

		names := make(map[string]struct{})
		strs := make(map[string]struct{})
		for _, v := range e.Values {
			if v.Name == "" || v.String == "" {
				errs = append(errs, fmt.Errorf("%s: value is missing a name or string", e.Name))
				continue
			}
			if _, ok := names[v.Name]; ok {
				errs = append(errs, fmt.Errorf("%s: duplicate value %s", e.Name, v.Name))
			}
			if _, ok := strs[v.String]; ok {
				errs = append(errs, fmt.Errorf("%s: duplicate string %q", e.Name, v.String))
			}
			names[v.Name] = struct{}{}
			strs[v.String] = struct{}{}
		}
	}
	return errors.Join(errs...)
}

// generate writes the gofmt'd code for enums in package pkg. source names
// the configuration file they came from.
func generate(w io.Writer, pkg, source string, enums []enum) error {
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, struct {
		Generator, Package, Source string
		Enums                      []enum
	}{generator, pkg, source, enums})
	if err != nil {
		return err
	}

	code, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("formatting generated code: %w", err)
	}
	_, err = w.Write(code)
	return err
}

// docs converts text into a doc comment, with each line prefixed by indent.
func docs(text, indent string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var out strings.Builder
	for line := range strings.SplitSeq(text, "\n") {
		out.WriteString(indent)
		if line == "" {
			out.WriteString("//\n")
			continue
		}
		out.WriteString("// ")
		out.WriteString(line)
		out.WriteString("\n")
	}
	return out.String()
}

// oneLine returns whether text is a non-empty single line.
func oneLine(text string) bool {
	text = strings.TrimSpace(text)
	return text != "" && !strings.Contains(text, "\n")
}

func run(config string) error {
	if filepath.Ext(config) != ".yaml" {
		return errors.New("configuration file must end in .yaml")
	}
	enums, err := load(config)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := generate(&buf, os.Getenv("GOPACKAGE"), filepath.Base(config), enums); err != nil {
		return err
	}
	return os.WriteFile(strings.TrimSuffix(config, ".yaml")+".go", buf.Bytes(), 0o644)
}

func main() {
	failed := false
	for _, config := range os.Args[1:] {
		if err := run(config); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", config, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
