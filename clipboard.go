package main

import (
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
)

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func writeClipboardText(text string) error {
	return clipboard.WriteAll(text)
}

func isRTF(text string) bool {
	return strings.HasPrefix(text, "{\\rtf") || strings.Contains(text, "\\rtf1")
}

func isHTML(text string) bool {
	t := strings.TrimSpace(text)
	return strings.HasPrefix(t, "<") &&
		(strings.Contains(t, "<html") || strings.Contains(t, "<body") || strings.Contains(t, "<div") || strings.Contains(t, "<pre"))
}

// extractTextFromRTF keeps the plain text of an RTF document. Paragraph
// and line controls become newlines, \'hh escapes are read as Latin-1.
func extractTextFromRTF(rtf string) string {
	var result strings.Builder
	b := []byte(rtf)
	depth := 0
	skipDepth := -1

	for i := 0; i < len(b); i++ {
		c := b[i]
		switch c {
		case '{':
			depth++
			// {\*\dest ...} and font/color tables carry no text
			if i+2 < len(b) && b[i+1] == '\\' && (b[i+2] == '*' || strings.HasPrefix(string(b[i+2:]), "fonttbl") || strings.HasPrefix(string(b[i+2:]), "colortbl")) && skipDepth < 0 {
				skipDepth = depth
			}
			continue
		case '}':
			if depth == skipDepth {
				skipDepth = -1
			}
			depth--
			continue
		case '\r', '\n':
			continue
		}
		if c != '\\' {
			if skipDepth < 0 {
				result.WriteByte(c)
			}
			continue
		}
		if i+1 >= len(b) {
			break
		}
		next := b[i+1]
		switch {
		case next == '\'' && i+3 < len(b):
			if val, err := strconv.ParseUint(string(b[i+2:i+4]), 16, 8); err == nil && skipDepth < 0 {
				result.WriteRune(rune(val))
			}
			i += 3
		case next == '\\' || next == '{' || next == '}':
			if skipDepth < 0 {
				result.WriteByte(next)
			}
			i++
		case next == '\n' || next == '\r':
			if skipDepth < 0 {
				result.WriteByte('\n')
			}
			i++
		case isASCIILetter(next):
			start := i + 1
			i++
			for i+1 < len(b) && isASCIILetter(b[i+1]) {
				i++
			}
			word := string(b[start : i+1])
			for i+1 < len(b) && (b[i+1] == '-' || (b[i+1] >= '0' && b[i+1] <= '9')) {
				i++
			}
			if i+1 < len(b) && b[i+1] == ' ' {
				i++
			}
			if skipDepth >= 0 {
				continue
			}
			switch word {
			case "par", "line":
				result.WriteByte('\n')
			case "tab":
				result.WriteByte('\t')
			}
		default:
			i++
		}
	}
	return result.String()
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

var htmlBreaks = strings.NewReplacer("<br>", "\n", "<br/>", "\n", "<br />", "\n", "</p>", "\n", "</div>", "\n")

var htmlEntities = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
	"&quot;", "\"",
	"&#39;", "'",
	"&nbsp;", " ",
)

func extractTextFromHTML(html string) string {
	html = htmlBreaks.Replace(html)
	var result strings.Builder
	inTag := false
	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			result.WriteRune(r)
		}
	}
	return htmlEntities.Replace(result.String())
}

// cleanClipboardText turns whatever the clipboard holds into plain text
// with \n line endings.
func cleanClipboardText(text string) string {
	if text == "" {
		return text
	}
	switch {
	case isRTF(text):
		text = extractTextFromRTF(text)
	case isHTML(text):
		text = extractTextFromHTML(text)
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var result strings.Builder
	for _, r := range text {
		if r == '\n' || r == '\t' || r >= 32 {
			result.WriteRune(r)
		}
	}
	return result.String()
}
