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

package dump

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/bufbuild/protohydrate/ast"
	"github.com/bufbuild/protohydrate/seq"
)

// Text writes one line per node of a, in name order: its kind, its full name
// and a summary of its attributes, aligned in columns.
func Text(w io.Writer, a *ast.AST) error {
	type row struct{ kind, name, attrs string }

	var (
		rows                []row
		kindWidth, nameWidth int
	)
	for n := range seq.Values(a.Nodes()) {
		r := row{n.Kind().String(), n.FullName(), strings.Join(attrs(n), " ")}
		kindWidth = max(kindWidth, uniseg.StringWidth(r.kind))
		nameWidth = max(nameWidth, uniseg.StringWidth(r.name))
		rows = append(rows, r)
	}

	out := bufio.NewWriter(w)
	for _, r := range rows {
		line := pad(r.kind, kindWidth) + "  " + pad(r.name, nameWidth) + "  " + r.attrs
		if _, err := fmt.Fprintln(out, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return out.Flush()
}

// pad right-pads s with spaces to the given display width.
func pad(s string, width int) string {
	return s + strings.Repeat(" ", max(0, width-uniseg.StringWidth(s)))
}

func attrs(n ast.Node) []string {
	var out []string
	attr := func(key string, value any) {
		if s := fmt.Sprint(value); s != "" {
			out = append(out, key+"="+s)
		}
	}
	flag := func(name string, set bool) {
		if set {
			out = append(out, name)
		}
	}

	switch n.Kind() {
	case ast.KindPackage:
		p := n.AsPackage()
		attr("files", strings.Join(names(p.Files()), ","))
	case ast.KindFile:
		f := n.AsFile()
		attr("syntax", f.Syntax())
		attr("package", f.Package().FullName())
		attr("imports", strings.Join(names(f.Dependencies()), ","))
		flag("deprecated", f.IsDeprecated())
	case ast.KindMessage:
		m := n.AsMessage()
		attr("file", m.File().Path())
		attr("parent", m.Parent().FullName())
		flag("map_entry", m.IsMapEntry())
		flag("deprecated", m.IsDeprecated())
	case ast.KindEnum:
		e := n.AsEnum()
		attr("file", e.File().Path())
		attr("parent", e.Parent().FullName())
		flag("deprecated", e.IsDeprecated())
	case ast.KindEnumValue:
		v := n.AsEnumValue()
		attr("enum", v.Enum().FullName())
		attr("number", v.Number())
		flag("deprecated", v.IsDeprecated())
	case ast.KindService:
		s := n.AsService()
		attr("file", s.File().Path())
		flag("deprecated", s.IsDeprecated())
	case ast.KindMethod:
		m := n.AsMethod()
		attr("input", m.Input().FullName())
		attr("output", m.Output().FullName())
		flag("client_streaming", m.IsClientStreaming())
		flag("server_streaming", m.IsServerStreaming())
		flag("deprecated", m.IsDeprecated())
	case ast.KindField:
		f := n.AsField()
		attr("number", f.Number())
		attr("type", fieldType(f))
		attr("variant", f.Variant())
		attr("oneof", f.Oneof().FullName())
		flag("deprecated", f.IsDeprecated())
	case ast.KindOneof:
		o := n.AsOneof()
		attr("message", o.Message().FullName())
		flag("synthetic", o.IsSynthetic())
	case ast.KindExtension:
		e := n.AsExtension()
		attr("extendee", e.Extendee().FullName())
		attr("number", e.Number())
		attr("type", extensionType(e))
		flag("deprecated", e.IsDeprecated())
	}
	return out
}
