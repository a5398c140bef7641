package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cerebroai/docapi/internal/domain/apperrors"
	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
)

const pageExtractTimeout = 10 * time.Second

const (
	mimePDF  = "application/pdf"
	mimeDOC  = "application/msword"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ExtractText pulls plain text out of raw file bytes. Anything other than
// PDF/DOC/DOCX is rejected before any parsing is attempted.
func ExtractText(data []byte, mimeType string) (string, error) {
	switch mimeType {
	case mimePDF:
		return extractPDF(data)
	case mimeDOC, mimeDOCX:
		return extractDoc(data)
	default:
		return "", fmt.Errorf("%w: %q", apperrors.ErrUnsupportedMimeType, mimeType)
	}
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: failed to open pdf: %v", apperrors.ErrExtraction, err)
	}

	var sb strings.Builder
	numPages := reader.NumPage()
	extracted := 0
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			// a single broken page should not sink the document
			continue
		}

		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(content)
		extracted++
	}

	if numPages > 0 && extracted == 0 {
		return "", fmt.Errorf("%w: no readable pages in pdf", apperrors.ErrExtraction)
	}
	return sb.String(), nil
}

// extractDoc handles .doc/.docx content. cat works on files, so the bytes
// take a round trip through a temp file.
func extractDoc(data []byte) (string, error) {
	tmp, err := os.CreateTemp("", "docapi-extract-*.docx")
	if err != nil {
		return "", fmt.Errorf("%w: temp file: %v", apperrors.ErrExtraction, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("%w: temp write: %v", apperrors.ErrExtraction, err)
	}
	tmp.Close()

	text, err := cat.File(tmp.Name())
	if err != nil {
		return "", fmt.Errorf("%w: failed to extract doc: %v", apperrors.ErrExtraction, err)
	}
	return text, nil
}

// protectExtract guards against parser hangs on malformed pages.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(pageExtractTimeout):
		return "", errors.New("page extraction timeout")
	}
}
