// Package pipeline converts the markdown of plan stages into HTML fragments
// and prepares composed documents for downstream converters.
//
// The stages are:
//   - Markdown preprocessing (line normalization, fence unwrapping, highlight syntax)
//   - Markdown to HTML fragment conversion via Goldmark
//   - Body extraction for the DOCX converter
//
// Page layout and PDF rendering are handled by the root bnccdoc package
// using headless Chrome (go-rod).
package pipeline
