// Package document extracts article text from word-processing and plain text files.
package document

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for document formats that cannot be read.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ErrMissingBody is returned when a .docx archive has no word/document.xml part.
var ErrMissingBody = errors.New("docx: missing word/document.xml")

const bodyPart = "word/document.xml"

// Load returns the article text of a .docx or plain text file.
// For .docx files every paragraph's text is joined with newlines.
func Load(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".docx":
		return loadDocx(path)
	case ".txt", ".text", ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read document: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnsupportedFormat, ext)
	}
}

func loadDocx(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer archive.Close()

	for _, file := range archive.File {
		if file.Name != bodyPart {
			continue
		}
		body, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("open %s: %w", bodyPart, err)
		}
		defer body.Close()
		paragraphs, err := Paragraphs(body)
		if err != nil {
			return "", err
		}
		return strings.Join(paragraphs, "\n"), nil
	}
	return "", ErrMissingBody
}

// Paragraphs streams a WordprocessingML body and returns the text of each
// paragraph that sits directly under w:body. Paragraphs nested in tables,
// content controls or text boxes are not part of the body text, and drawing
// content is skipped so a text box cannot leak into its host paragraph.
func Paragraphs(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)
	var (
		paragraphs []string
		current    strings.Builder
		// stack holds the local names of the open elements.
		stack []string
		// para is the stack depth of the open body paragraph, 0 when none.
		para    int
		skip    int
		inProps int
		inText  bool
	)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse document xml: %w", err)
		}
		switch el := token.(type) {
		case xml.StartElement:
			name := el.Name.Local
			parent := ""
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}
			stack = append(stack, name)
			if skip > 0 || para == 0 {
				if skip > 0 {
					skip++
				} else if name == "p" && parent == "body" {
					para = len(stack)
					current.Reset()
				}
				continue
			}
			switch name {
			case "Fallback", "txbxContent", "drawing", "pict":
				skip = 1
			case "pPr", "rPr":
				inProps++
			case "t":
				inText = true
			case "tab":
				// w:tab inside paragraph properties is a tab stop definition.
				if inProps == 0 {
					current.WriteByte('\t')
				}
			case "cr":
				current.WriteByte('\n')
			case "br":
				if isLineBreak(el) {
					current.WriteByte('\n')
				}
			}
		case xml.EndElement:
			depth := len(stack)
			if depth > 0 {
				stack = stack[:depth-1]
			}
			switch {
			case skip > 0:
				skip--
			case para == 0:
			case depth == para:
				paragraphs = append(paragraphs, current.String())
				para = 0
			case el.Name.Local == "pPr" || el.Name.Local == "rPr":
				inProps--
			case el.Name.Local == "t":
				inText = false
			}
		case xml.CharData:
			if inText && skip == 0 && para > 0 {
				current.Write(el)
			}
		}
	}
	return paragraphs, nil
}

// isLineBreak reports whether a w:br is a text-wrapping break. Page and
// column breaks add no text.
func isLineBreak(el xml.StartElement) bool {
	for _, attr := range el.Attr {
		if attr.Name.Local == "type" {
			return attr.Value == "" || attr.Value == "textWrapping"
		}
	}
	return true
}
