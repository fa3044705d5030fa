package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/greengrowth-cpas/tax-agent/client"
	"github.com/greengrowth-cpas/tax-agent/dto"
	"github.com/greengrowth-cpas/tax-agent/utils"
	"go.uber.org/zap"
)

// Extraction diagnostics. Both mean "retry with a different file", not a crash.
var (
	ErrNoJSONFound = errors.New("no JSON object found in model reply")
	ErrNoText      = errors.New("no text could be extracted from the document")
)

// The extraction prompt includes at most this much of the document text.
// Cost and latency containment; a W-2's boxes sit on the first page anyway.
const maxPromptChars = 1000

const extractionSystemPrompt = "You are a helpful AI assistant that extracts structured tax information from W-2 form text. " +
	"Return only a valid JSON object with the following keys:\n" +
	"- Employee Name\n" +
	"- Employer Name\n" +
	"- Wages (Box 1)\n" +
	"- Federal Income Tax Withheld (Box 2)\n" +
	"- Social Security Wages (Box 3)\n" +
	"- Filing Year\n\n" +
	"Do not include any commentary or explanation. Only valid JSON."

// Completer is the chat-completion collaborator boundary.
type Completer interface {
	Complete(ctx context.Context, systemPrompt string, messages []client.Message) (string, error)
}

// ImageOCR recognizes text on a rendered page image.
type ImageOCR interface {
	ExtractTextFromImage(img image.Image) (string, error)
}

type ExtractionService struct {
	llm          Completer
	pdfProcessor PDFProcessor
	ocr          ImageOCR
	logger       *zap.Logger
}

func NewExtractionService(llm Completer, pdfProcessor PDFProcessor, ocr ImageOCR, logger *zap.Logger) *ExtractionService {
	return &ExtractionService{
		llm:          llm,
		pdfProcessor: pdfProcessor,
		ocr:          ocr,
		logger:       logger,
	}
}

// ExtractDocumentText pulls text out of an uploaded W-2 PDF. It tries the text
// layer first; scanned forms with little or no text layer fall back to OCR of
// the embedded page images.
func (s *ExtractionService) ExtractDocumentText(pdfData []byte) (string, error) {
	text, err := s.pdfProcessor.ExtractText(pdfData)
	if err != nil {
		s.logger.Warn("pdf text extraction failed", zap.Error(err))
	}

	if len(strings.TrimSpace(text)) < 20 {
		s.logger.Info("pdf has minimal text layer, attempting image-based OCR")
		if ocrText := s.ocrFallback(pdfData); ocrText != "" {
			text = ocrText
		}
	}

	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}
	return text, nil
}

func (s *ExtractionService) ocrFallback(pdfData []byte) string {
	images, err := s.pdfProcessor.ExtractImages(pdfData)
	if err != nil || len(images) == 0 {
		s.logger.Warn("failed to extract page images from pdf", zap.Error(err))
		return ""
	}

	var combined strings.Builder
	for _, img := range images {
		pageText, err := s.ocr.ExtractTextFromImage(img)
		if err != nil {
			s.logger.Warn("OCR failed for a page", zap.Error(err))
			continue
		}
		combined.WriteString(pageText)
		combined.WriteString("\n")
	}
	return combined.String()
}

// ExtractFields asks the model for the six recognized W-2 keys and parses the
// reply. LLM transport and status failures propagate as errors; malformed
// replies come back as ErrNoJSONFound or a decode error.
func (s *ExtractionService) ExtractFields(ctx context.Context, rawText string) (dto.ExtractedFields, error) {
	userMessage := fmt.Sprintf("Here is the W-2 text:\n\n%s\n\nExtract the fields and respond only with JSON.",
		truncateRunes(rawText, maxPromptChars))

	reply, err := s.llm.Complete(ctx, extractionSystemPrompt, []client.Message{
		{Role: dto.RoleUser, Content: userMessage},
	})
	if err != nil {
		return nil, fmt.Errorf("field extraction call failed: %w", err)
	}

	fields, err := ParseModelReply(reply)
	if err != nil {
		s.logger.Warn("could not parse extraction reply",
			zap.Error(err),
			zap.Int("reply_chars", len(reply)))
		return nil, err
	}

	s.logger.Info("extracted W-2 fields", zap.Int("keys", len(fields)))
	return fields, nil
}

// ParseModelReply locates the first brace-delimited span in the model text and
// strictly decodes it. Empty fields plus a sentinel or decode error come back
// for malformed replies; this function never panics.
func ParseModelReply(reply string) (dto.ExtractedFields, error) {
	span, ok := utils.FirstJSONObject(reply)
	if !ok {
		return nil, ErrNoJSONFound
	}

	var fields dto.ExtractedFields
	if err := json.Unmarshal([]byte(span), &fields); err != nil {
		return nil, fmt.Errorf("failed to decode extracted JSON: %w", err)
	}
	return fields, nil
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
