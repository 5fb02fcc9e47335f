// Package token defines the flat token stream the parser consumes.
// Invariants:
//   - Char tokens carry exactly one rune; Span covers its UTF-8 bytes.
//   - Event tokens carry a non-Text markup event and share its span.
//   - The stream ends with exactly one EOF token; after it Next keeps returning EOF.
package token
