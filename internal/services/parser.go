package services

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ResumeParserService turns an uploaded resume file into plain text.
// PDF and DOCX are supported; anything else fails with
// ErrUnsupportedInputFormat.
type ResumeParserService interface {
	Parse(filePath string) (*ResumeContent, error)
}

type ResumeContent struct {
	Text      string
	PageCount int
	FilePath  string
}

type resumeParserService struct{}

func NewResumeParserService() ResumeParserService {
	return &resumeParserService{}
}

func (p *resumeParserService) Parse(filePath string) (*ResumeContent, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".pdf":
		return p.parsePDF(filePath)
	case ".docx":
		return p.parseDOCX(filePath)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedInputFormat, filepath.Ext(filePath))
	}
}

func (p *resumeParserService) parsePDF(filePath string) (*ResumeContent, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Log error but continue with other pages
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text content found in PDF")
	}

	return &ResumeContent{
		Text:      text,
		PageCount: totalPage,
		FilePath:  filePath,
	}, nil
}

// parseDOCX reads the word/document.xml entry of the docx archive and
// collects the text runs, one paragraph per line.
func (p *resumeParserService) parseDOCX(filePath string) (*ResumeContent, error) {
	archive, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer archive.Close()

	var docEntry *zip.File
	for _, file := range archive.File {
		if file.Name == "word/document.xml" {
			docEntry = file
			break
		}
	}
	if docEntry == nil {
		return nil, fmt.Errorf("%w: docx missing word/document.xml", ErrUnsupportedInputFormat)
	}

	reader, err := docEntry.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to read DOCX body: %w", err)
	}
	defer reader.Close()

	text, err := extractDOCXText(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DOCX body: %w", err)
	}

	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text content found in DOCX")
	}

	return &ResumeContent{
		Text:      text,
		PageCount: 1,
		FilePath:  filePath,
	}, nil
}

func extractDOCXText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var textBuilder strings.Builder
	var inTextRun bool

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch element := token.(type) {
		case xml.StartElement:
			if element.Name.Local == "t" {
				inTextRun = true
			}
		case xml.EndElement:
			if element.Name.Local == "t" {
				inTextRun = false
			}
			if element.Name.Local == "p" {
				textBuilder.WriteString("\n")
			}
		case xml.CharData:
			if inTextRun {
				textBuilder.Write(element)
			}
		}
	}

	return textBuilder.String(), nil
}

// Helper function to clean and normalize text
func CleanText(text string) string {
	// Remove excessive whitespace
	text = strings.TrimSpace(text)

	// Replace multiple newlines with double newline
	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
