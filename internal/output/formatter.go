// Package output renders CLI results as a table, JSON or YAML.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Formatter renders a result value.
type Formatter interface {
	Format(data any) (string, error)
}

// NewFormatter returns a Formatter for format: "table" (default), "json"
// or "yaml".
func NewFormatter(format string) Formatter {
	switch strings.ToLower(format) {
	case "json":
		return JSON{}
	case "yaml":
		return YAML{}
	default:
		return Table{}
	}
}

// Table prints a struct as key/value lines and a slice of structs as rows
// under an upper-cased header. Column names come from the json tag when set.
type Table struct{}

func (Table) Format(data any) (string, error) {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)

	v := reflect.Indirect(reflect.ValueOf(data))
	switch v.Kind() {
	case reflect.Slice:
		if v.Len() == 0 {
			return "No results.\n", nil
		}
		elem := reflect.Indirect(v.Index(0))
		if elem.Kind() != reflect.Struct {
			for i := 0; i < v.Len(); i++ {
				fmt.Fprintln(w, v.Index(i).Interface())
			}
			break
		}

		fields := columns(elem.Type())
		headers := make([]string, len(fields))
		for i, f := range fields {
			headers[i] = strings.ToUpper(f.name)
		}
		fmt.Fprintln(w, strings.Join(headers, "\t"))

		for i := 0; i < v.Len(); i++ {
			row := reflect.Indirect(v.Index(i))
			vals := make([]string, len(fields))
			for j, f := range fields {
				vals[j] = fmt.Sprint(row.Field(f.index).Interface())
			}
			fmt.Fprintln(w, strings.Join(vals, "\t"))
		}
	case reflect.Struct:
		for _, f := range columns(v.Type()) {
			fmt.Fprintf(w, "%s:\t%v\n", f.name, v.Field(f.index).Interface())
		}
	default:
		fmt.Fprintln(w, data)
	}

	if err := w.Flush(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type column struct {
	name  string
	index int
}

func columns(t reflect.Type) []column {
	cols := make([]column, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, _, _ := strings.Cut(f.Tag.Get("json"), ","); tag != "" && tag != "-" {
			name = tag
		}
		cols = append(cols, column{name: name, index: i})
	}
	return cols
}

// JSON prints indented JSON.
type JSON struct{}

func (JSON) Format(data any) (string, error) {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("format json: %w", err)
	}
	return string(b) + "\n", nil
}

// YAML prints YAML.
type YAML struct{}

func (YAML) Format(data any) (string, error) {
	b, err := yaml.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("format yaml: %w", err)
	}
	return string(b), nil
}
