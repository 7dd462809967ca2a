package xmltree

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// Encode writes root as an indented XML document with a standard declaration.
func Encode(w io.Writer, root *Element) error {
	if root == nil {
		return fmt.Errorf("encode xml: nil root element")
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write xml header: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := encodeElement(enc, root); err != nil {
		return fmt.Errorf("encode <%s>: %w", root.Tag, err)
	}
	if err := enc.Flush(); err != nil {
		return fmt.Errorf("flush xml encoder: %w", err)
	}

	_, err := io.WriteString(w, "\n")
	return err
}

// Marshal renders root as a standalone XML document.
func Marshal(root *Element) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeElement(enc *xml.Encoder, e *Element) error {
	start := xml.StartElement{Name: xml.Name{Local: e.Tag}}
	for _, a := range e.Attrs {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: a.Name},
			Value: a.Value,
		})
	}

	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if e.Text != "" {
		if err := enc.EncodeToken(xml.CharData(e.Text)); err != nil {
			return err
		}
	}
	for _, c := range e.Children {
		if err := encodeElement(enc, c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(xml.EndElement{Name: start.Name})
}
