// Package gen renders Go source declaring precomputed digests, for use from
// go:generate directives so constant digests never cost anything at run time.
package gen

import (
	"bytes"
	"go/format"
	"go/token"
	"strconv"
	"strings"
	"text/template"

	"gopkg.in/fatih/set.v0"
	cerrors "massnet.org/sha2/errors"
	"massnet.org/sha2/sumfile"
)

// Entry declares one digest variable.
type Entry struct {
	Name      string
	Algorithm sumfile.Algorithm
	Input     []byte
}

// File is one generated source file.
type File struct {
	Package string
	// Command is recorded in the generated header.
	Command string
	Entries []Entry
}

// ParseEntry parses "name=algo:text". The text may contain further colons.
func ParseEntry(arg string) (Entry, error) {
	eq := strings.IndexByte(arg, '=')
	if eq <= 0 {
		return Entry{}, cerrors.Errorf(cerrors.ErrInvalidParameter, "entry %q is not name=algo:text", arg)
	}
	rest := arg[eq+1:]
	colon := strings.IndexByte(rest, ':')
	if colon <= 0 {
		return Entry{}, cerrors.Errorf(cerrors.ErrInvalidParameter, "entry %q is not name=algo:text", arg)
	}
	algo, err := sumfile.LookupAlgorithm(rest[:colon])
	if err != nil {
		return Entry{}, err
	}
	return Entry{Name: arg[:eq], Algorithm: algo, Input: []byte(rest[colon+1:])}, nil
}

var srcTemplate = template.Must(template.New("digests").Funcs(template.FuncMap{
	"mod8": func(i int) int { return i % 8 },
}).Parse(`// Code generated by {{.Command}}; DO NOT EDIT.

package {{.Package}}
{{range .Vars}}
// {{.Name}} is the {{.Tag}} digest of {{.Quoted}}.
var {{.Name}} = [{{.Size}}]byte{ {{- range $i, $b := .Bytes}}{{if eq (mod8 $i) 0}}
{{end}}{{printf "0x%02x" $b}},{{end}}
}
{{end}}`))

type templateVar struct {
	Name   string
	Tag    string
	Quoted string
	Size   int
	Bytes  []byte
}

// Source renders f as gofmt'ed Go source.
func Source(f File) ([]byte, error) {
	if !token.IsIdentifier(f.Package) {
		return nil, cerrors.Errorf(cerrors.ErrInvalidParameter, "invalid package name %q", f.Package)
	}
	if len(f.Entries) == 0 {
		return nil, cerrors.New(cerrors.ErrInvalidParameter, "nothing to generate")
	}
	command := f.Command
	if command == "" {
		command = "sha2sum gen"
	}

	names := set.New(set.NonThreadSafe)
	vars := make([]templateVar, 0, len(f.Entries))
	for _, e := range f.Entries {
		if !token.IsIdentifier(e.Name) {
			return nil, cerrors.Errorf(cerrors.ErrInvalidParameter, "invalid variable name %q", e.Name)
		}
		if names.Has(e.Name) {
			return nil, cerrors.Errorf(cerrors.ErrInvalidParameter, "duplicate variable name %q", e.Name)
		}
		names.Add(e.Name)
		if e.Algorithm.IsZero() {
			return nil, cerrors.Errorf(cerrors.ErrInvalidAlgorithm, "no algorithm for %s", e.Name)
		}
		vars = append(vars, templateVar{
			Name:   e.Name,
			Tag:    e.Algorithm.Tag(),
			Quoted: strconv.Quote(string(e.Input)),
			Size:   e.Algorithm.Size(),
			Bytes:  e.Algorithm.Sum(e.Input),
		})
	}

	var buf bytes.Buffer
	err := srcTemplate.Execute(&buf, struct {
		Command string
		Package string
		Vars    []templateVar
	}{command, f.Package, vars})
	if err != nil {
		return nil, cerrors.Wrap(cerrors.ErrUnknown, err, "execute template")
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, cerrors.Wrapf(cerrors.ErrUnknown, err, "format generated source\n%s", buf.Bytes())
	}
	return src, nil
}
