package helper

import (
	"bytes"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

var markdown = goldmark.New(goldmark.WithRendererOptions(goldmarkHTML.WithHardWraps()))

// RenderMarkdown turns editor notes into HTML. Raw HTML in the source is dropped.
func RenderMarkdown(src string) (string, error) {
	if src == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
