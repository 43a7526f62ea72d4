// Package render writes shapes as an SVG document.
package render

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/natefinch/atomic"

	"github.com/pavanmanishd/polygeo/shape"
)

const (
	header = `<svg width="1000" height="1000" xmlns="http://www.w3.org/2000/svg">` + "\n"
	footer = "</svg>\n"
)

// Write writes a complete SVG document with one element per shape, in
// order.
func Write(w io.Writer, shapes []shape.Shape) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(header)
	var line []byte
	for _, s := range shapes {
		line = s.AppendSVG(line[:0])
		line = append(line, '\n')
		bw.Write(line)
	}
	bw.WriteString(footer)
	return bw.Flush()
}

// Document returns the SVG document for shapes.
func Document(shapes []shape.Shape) []byte {
	var buf bytes.Buffer
	Write(&buf, shapes) // bytes.Buffer writes don't fail
	return buf.Bytes()
}

// WriteFile replaces the file at path with the SVG document for shapes.
// Readers see either the old file or the complete new one.
func WriteFile(path string, shapes []shape.Shape) error {
	if err := atomic.WriteFile(path, bytes.NewReader(Document(shapes))); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}
