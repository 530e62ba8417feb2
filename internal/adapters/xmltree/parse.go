package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"cbrrates/internal/domain"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// Parse reads a whole document and returns its root element as a Node.
// The root's own name is dropped and the root is always an *Object, even when empty.
// Any syntax problem fails with domain.ErrParse.
func Parse(data []byte) (Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty document", domain.ErrParse)
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charsetReader

	var root Node
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrParse, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil {
				return nil, fmt.Errorf("%w: second root element <%s>", domain.ErrParse, t.Name.Local)
			}
			root, err = parseElement(dec, t, true)
			if err != nil {
				return nil, err
			}
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return nil, fmt.Errorf("%w: text outside of the root element", domain.ErrParse)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("%w: no root element", domain.ErrParse)
	}
	return root, nil
}

func parseElement(dec *xml.Decoder, start xml.StartElement, isRoot bool) (Node, error) {
	obj := NewObject()
	for _, attr := range start.Attr {
		if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
			continue
		}
		obj.Add(attr.Name.Local, Scalar(attr.Value))
	}
	hasAttrs := obj.Len() > 0
	hasChildren := false

	var text strings.Builder
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		if err != nil {
			return nil, fmt.Errorf("%w: inside <%s>: %w", domain.ErrParse, start.Name.Local, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			child, childErr := parseElement(dec, t, false)
			if childErr != nil {
				return nil, childErr
			}
			obj.Add(t.Name.Local, child)
			hasChildren = true
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			s := strings.TrimSpace(text.String())
			if !isRoot && !hasAttrs && !hasChildren {
				return Scalar(s), nil
			}
			if s != "" {
				obj.Add(TextKey, Scalar(s))
			}
			return obj, nil
		}
	}
}

// charsetReader decodes legacy encodings; the bank serves windows-1251.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	if strings.EqualFold(label, "windows-1251") {
		return charmap.Windows1251.NewDecoder().Reader(input), nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}
