package document

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleBody = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>City council</w:t></w:r><w:r><w:t xml:space="preserve"> approves budget</w:t></w:r></w:p>
    <w:p></w:p>
    <w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr><w:r><w:t>Column A</w:t><w:tab/><w:t>Column B</w:t></w:r></w:p>
    <w:p><w:r><w:t>Line one</w:t><w:br/><w:t>Line two</w:t></w:r></w:p>
    <w:p><w:r><w:t>Before page</w:t><w:br w:type="page"/><w:t>after</w:t></w:r></w:p>
    <w:sectPr/>
  </w:body>
</w:document>`

// writeDocx builds a minimal .docx archive with the given parts.
func writeDocx(t *testing.T, parts map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "article.docx")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create docx: %v", err)
	}
	writer := zip.NewWriter(file)
	for name, content := range parts {
		part, err := writer.Create(name)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
	return path
}

func TestLoadDocxJoinsParagraphs(t *testing.T) {
	path := writeDocx(t, map[string]string{
		"[Content_Types].xml": `<Types/>`,
		bodyPart:              sampleBody,
	})
	text, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := strings.Join([]string{
		"City council approves budget",
		"",
		"Column A\tColumn B",
		"Line one\nLine two",
		"Before pageafter",
	}, "\n")
	if text != want {
		t.Fatalf("unexpected text:\n%q\nwant:\n%q", text, want)
	}
}

const nestedBody = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
  xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006"
  xmlns:wps="http://schemas.microsoft.com/office/word/2010/wordprocessingShape"
  xmlns:v="urn:schemas-microsoft-com:vml">
  <w:body>
    <w:p><w:r><w:t>Intro</w:t></w:r></w:p>
    <w:tbl><w:tr><w:tc><w:p><w:r><w:t>Cell text</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
    <w:p>
      <w:r>
        <mc:AlternateContent>
          <mc:Choice Requires="wps">
            <w:drawing><wps:txbx><w:txbxContent><w:p><w:r><w:t>Box</w:t></w:r></w:p></w:txbxContent></wps:txbx></w:drawing>
          </mc:Choice>
          <mc:Fallback>
            <w:pict><v:textbox><w:txbxContent><w:p><w:r><w:t>Box</w:t></w:r></w:p></w:txbxContent></v:textbox></w:pict>
          </mc:Fallback>
        </mc:AlternateContent>
      </w:r>
      <w:r><w:t>Outro</w:t></w:r>
    </w:p>
    <w:sdt><w:sdtContent><w:p><w:r><w:t>Control</w:t></w:r></w:p></w:sdtContent></w:sdt>
    <w:sectPr/>
  </w:body>
</w:document>`

func TestParagraphsKeepsOnlyBodyParagraphs(t *testing.T) {
	paragraphs, err := Paragraphs(strings.NewReader(nestedBody))
	if err != nil {
		t.Fatalf("paragraphs: %v", err)
	}
	want := []string{"Intro", "Outro"}
	if len(paragraphs) != len(want) {
		t.Fatalf("expected %q, got %q", want, paragraphs)
	}
	for i := range want {
		if paragraphs[i] != want[i] {
			t.Fatalf("expected %q, got %q", want, paragraphs)
		}
	}
}

func TestParagraphsRejectsMalformedXML(t *testing.T) {
	if _, err := Paragraphs(strings.NewReader("<w:document><w:body><w:p>")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadDocxMissingBody(t *testing.T) {
	path := writeDocx(t, map[string]string{"[Content_Types].xml": `<Types/>`})
	if _, err := Load(path); !errors.Is(err, ErrMissingBody) {
		t.Fatalf("expected missing body error, got %v", err)
	}
}

func TestLoadPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "article.txt")
	if err := os.WriteFile(path, []byte("plain article\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	text, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if text != "plain article\n" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestLoadRejectsLegacyDoc(t *testing.T) {
	if _, err := Load("article.doc"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}
