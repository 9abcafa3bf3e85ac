package cmd

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// printer renders decoded platform state as indented field trees on an
// output stream, with bold section headers when the stream is a terminal.
type printer struct {
	w         io.Writer
	decorated bool
}

func newPrinter(w io.Writer) *printer {
	decorated := false
	if f, ok := w.(*os.File); ok {
		decorated = term.IsTerminal(int(f.Fd()))
	}
	return &printer{w: w, decorated: decorated}
}

func (p *printer) section(format string, args ...any) {
	if p.decorated {
		fmt.Fprintf(p.w, "\033[1m"+format+"\033[0m\n", args...)
		return
	}
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) note(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) blank() {
	fmt.Fprintln(p.w)
}

// value renders v as a multi-line field tree followed by a newline.
func (p *printer) value(v any) {
	var buf strings.Builder
	render(&buf, reflect.ValueOf(v), 0)
	buf.WriteString("\n")
	io.WriteString(p.w, buf.String())
}

var stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()

func render(buf *strings.Builder, v reflect.Value, indent int) {
	if !v.IsValid() {
		buf.WriteString("nil")
		return
	}

	if v.Type().Implements(stringerType) && v.Kind() != reflect.Pointer {
		buf.WriteString(v.Interface().(fmt.Stringer).String())
		return
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			buf.WriteString("nil")
			return
		}
		render(buf, v.Elem(), indent)
	case reflect.Struct:
		renderStruct(buf, v, indent)
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			buf.WriteString(strconv.Quote(cString(v)))
			return
		}
		renderList(buf, v, indent)
	case reflect.Bool:
		buf.WriteString(strconv.FormatBool(v.Bool()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		buf.WriteString(strconv.FormatUint(v.Uint(), 10))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		buf.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.String:
		buf.WriteString(strconv.Quote(v.String()))
	default:
		fmt.Fprintf(buf, "%v", v.Interface())
	}
}

func renderStruct(buf *strings.Builder, v reflect.Value, indent int) {
	t := v.Type()
	buf.WriteString(t.Name())
	buf.WriteString(" {\n")
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		pad(buf, indent+1)
		buf.WriteString(f.Name)
		buf.WriteString(": ")
		render(buf, v.Field(i), indent+1)
		buf.WriteString("\n")
	}
	pad(buf, indent)
	buf.WriteString("}")
}

func renderList(buf *strings.Builder, v reflect.Value, indent int) {
	if v.Len() == 0 {
		buf.WriteString("[]")
		return
	}
	buf.WriteString("[\n")
	for i := range v.Len() {
		pad(buf, indent+1)
		render(buf, v.Index(i), indent+1)
		buf.WriteString("\n")
	}
	pad(buf, indent)
	buf.WriteString("]")
}

// cString renders a byte array or slice as text up to the first NUL.
func cString(v reflect.Value) string {
	b := make([]byte, 0, v.Len())
	for i := range v.Len() {
		c := byte(v.Index(i).Uint())
		if c == 0 {
			break
		}
		b = append(b, c)
	}
	return string(b)
}

func pad(buf *strings.Builder, indent int) {
	for range indent {
		buf.WriteString("    ")
	}
}
