package services

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`,
		"_rels/.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document ` + wordNS + `><w:body>` + body + `</w:body></w:document>`,
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

// buildPDF writes a minimal PDF with one Helvetica text line per page.
func buildPDF(t *testing.T, pages ...string) []byte {
	t.Helper()

	fontID := 3
	firstPageID := 4
	objectCount := 3 + 2*len(pages)

	objects := make([]string, objectCount+1)
	objects[1] = "<< /Type /Catalog /Pages 2 0 R >>"

	kids := make([]string, 0, len(pages))
	for i := range pages {
		kids = append(kids, fmt.Sprintf("%d 0 R", firstPageID+2*i))
	}
	objects[2] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages))
	objects[fontID] = "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>"

	for i, text := range pages {
		pageID := firstPageID + 2*i
		contentID := pageID + 1
		objects[pageID] = fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>",
			fontID, contentID,
		)
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		objects[contentID] = fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, objectCount+1)
	for id := 1; id <= objectCount; id++ {
		offsets[id] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", id, objects[id])
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", objectCount+1)
	buf.WriteString("0000000000 65535 f \n")
	for id := 1; id <= objectCount; id++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[id])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", objectCount+1, xrefOffset)

	return buf.Bytes()
}

func TestExtractText_DOCXParagraphs(t *testing.T) {
	body := `<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t xml:space="preserve">Go </w:t></w:r><w:r><w:tab/><w:t>Kubernetes</w:t></w:r></w:p>` +
		`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>Table cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>` +
		`<w:p><w:r><w:t>Line one</w:t><w:br/><w:t>Line two</w:t></w:r></w:p>` +
		`<w:p/>`

	extractor := NewTextExtractor(zap.NewNop())

	text, err := extractor.ExtractText(context.Background(), "resume.docx", buildDocx(t, body))
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe\nGo \tKubernetes\nLine one\nLine two\n\n", text)
	assert.NotContains(t, text, "Table cell")
}

func TestExtractText_DOCXWithoutText(t *testing.T) {
	extractor := NewTextExtractor(zap.NewNop())

	text, err := extractor.ExtractText(context.Background(), "blank.docx", buildDocx(t, `<w:p/><w:p><w:r><w:t>   </w:t></w:r></w:p>`))
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtractText_PDFPagesInOrder(t *testing.T) {
	extractor := NewTextExtractor(zap.NewNop())

	text, err := extractor.ExtractText(context.Background(), "resume.pdf", buildPDF(t, "Hello", "World"))
	require.NoError(t, err)

	hello := strings.Index(text, "Hello")
	world := strings.Index(text, "World")
	require.GreaterOrEqual(t, hello, 0, "text: %q", text)
	require.GreaterOrEqual(t, world, 0, "text: %q", text)
	assert.Less(t, hello, world)
}

func TestExtractText_UnsupportedFormat(t *testing.T) {
	extractor := NewTextExtractor(zap.NewNop())

	for _, name := range []string{"resume.txt", "resume.doc", "resume.PDF", "resume.Docx", "resume"} {
		t.Run(name, func(t *testing.T) {
			_, err := extractor.ExtractText(context.Background(), name, []byte("data"))
			assert.ErrorIs(t, err, ErrUnsupportedFormat)
		})
	}
}

func TestExtractText_CorruptDocuments(t *testing.T) {
	extractor := NewTextExtractor(zap.NewNop())

	tests := []struct {
		name     string
		fileName string
		data     []byte
	}{
		{name: "garbage pdf", fileName: "resume.pdf", data: []byte("this is not a pdf")},
		{name: "truncated pdf", fileName: "resume.pdf", data: buildPDF(t, "Hello")[:40]},
		{name: "garbage docx", fileName: "resume.docx", data: []byte("this is not a zip")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := extractor.ExtractText(context.Background(), tt.fileName, tt.data)
			assert.ErrorIs(t, err, ErrCorruptDocument)
			assert.Empty(t, text)
		})
	}
}

func TestExtractText_CanceledContext(t *testing.T) {
	extractor := NewTextExtractor(zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := extractor.ExtractText(ctx, "resume.pdf", buildPDF(t, "Hello"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSafeExtract_RecoversPanic(t *testing.T) {
	text, err := safeExtract(func([]byte) (string, error) {
		panic("index out of range")
	}, nil)

	assert.ErrorIs(t, err, ErrCorruptDocument)
	assert.Empty(t, text)
}

func TestDocxParagraphs_InvalidXML(t *testing.T) {
	_, err := docxParagraphs(`<w:document ` + wordNS + `><w:body><w:p>`)
	assert.Error(t, err)

	_, err = docxParagraphs("")
	assert.Error(t, err)
}
