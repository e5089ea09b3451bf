package services

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"go.uber.org/zap"
)

// TextExtractor turns resume bytes into plain text.
//
// A nil error with an empty string means the document parsed but has no text
// layer. Parser failures wrap ErrCorruptDocument and unknown suffixes return
// ErrUnsupportedFormat.
type TextExtractor interface {
	ExtractText(ctx context.Context, fileName string, data []byte) (string, error)
}

type textExtractor struct {
	logger *zap.Logger
}

func NewTextExtractor(logger *zap.Logger) TextExtractor {
	return &textExtractor{logger: logger}
}

func (e *textExtractor) ExtractText(ctx context.Context, fileName string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var extract func([]byte) (string, error)
	switch {
	case strings.HasSuffix(fileName, ".pdf"):
		extract = extractPDF
	case strings.HasSuffix(fileName, ".docx"):
		extract = extractDOCX
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, fileName)
	}

	text, err := safeExtract(extract, data)
	if err != nil {
		e.logger.Warn("text extraction failed",
			zap.String("file", fileName),
			zap.Int("size", len(data)),
			zap.Error(err),
		)
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		e.logger.Info("document has no text layer", zap.String("file", fileName))
		return "", nil
	}

	return text, nil
}

// safeExtract runs a parser and converts both errors and panics from the
// third-party readers into ErrCorruptDocument.
func safeExtract(extract func([]byte) (string, error), data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %v", ErrCorruptDocument, r)
		}
	}()

	text, err = extract(data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCorruptDocument, err)
	}
	return text, nil
}

// extractPDF concatenates the plain text of every page in page order.
func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", pageIndex, err)
		}

		textBuilder.WriteString(text)
	}

	return textBuilder.String(), nil
}

// extractDOCX returns each body paragraph followed by a newline.
func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer doc.Close()

	return docxParagraphs(doc.Editable().GetContent())
}

// docxParagraphs walks word/document.xml. Only top-level body paragraphs
// count; table cells and text boxes are skipped. Inside a run, w:t carries
// text, w:tab is a tab and w:br / w:cr are line breaks.
func docxParagraphs(documentXML string) (string, error) {
	if strings.TrimSpace(documentXML) == "" {
		return "", errors.New("document.xml is empty")
	}

	decoder := xml.NewDecoder(strings.NewReader(documentXML))

	var (
		out        strings.Builder
		para       strings.Builder
		paraDepth  int
		runDepth   int
		tableDepth int
		inText     bool
	)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "p":
				paraDepth++
				if paraDepth == 1 {
					para.Reset()
				}
			case "r":
				runDepth++
			case "t":
				inText = true
			case "tab":
				if paraDepth == 1 && runDepth > 0 {
					para.WriteByte('\t')
				}
			case "br", "cr":
				if paraDepth == 1 && runDepth > 0 {
					para.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth--
			case "r":
				runDepth--
			case "t":
				inText = false
			case "p":
				paraDepth--
				if paraDepth == 0 && tableDepth == 0 {
					out.WriteString(para.String())
					out.WriteByte('\n')
				}
			}
		case xml.CharData:
			if inText && paraDepth == 1 {
				para.Write(t)
			}
		}
	}

	return out.String(), nil
}
