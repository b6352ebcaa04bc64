// Package ocr adapts external text-producing services. The intake
// pipeline only ever sees the ordered text lines a TextSource returns;
// recognition itself stays outside the core.
package ocr

// TextSource recognizes the text on a photographed receipt.
type TextSource interface {
	// RecognizeText returns the receipt's text lines in top-to-bottom
	// order as seen on the slip.
	RecognizeText(imageData []byte, contentType string) ([]string, error)
	// Close closes the source and releases resources
	Close() error
}

// transcribePrompt is the shared prompt used by all providers. The
// pipeline depends on line order being preserved, so the prompt asks
// for a plain transcription rather than interpreted fields.
const transcribePrompt = `You are reading a photographed retail receipt. Transcribe every line of text you can see, from top to bottom, exactly as printed.

Rules:
- Output plain text only: one receipt line per output line
- Preserve the original order of the lines
- Keep numbers, dates and currency amounts exactly as printed (e.g. "85,00", "28.12.2024")
- Do not translate, summarize, interpret or reorder anything
- Do not add labels, bullet points or markdown
- If a line is unreadable, skip it`
