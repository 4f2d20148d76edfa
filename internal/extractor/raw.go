package extractor

import (
	"bytes"
	"compress/zlib"
	"encoding/hex"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf16"
)

// ExtractTextRaw is a fallback extractor that works directly on the raw PDF
// byte stream, without the ledongthuc/pdf library. Amex statements embed the
// Baht marker in Type0 fonts, where the glyph code only maps back to ฿
// through the font's ToUnicode CMap — which the structured library sometimes
// fails to apply. This path finds every ToUnicode stream, builds a merged
// glyph map, and decodes the text operators (Tj, TJ, ') itself.
func ExtractTextRaw(filePath string) ([]string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	streams := contentStreams(data)
	if len(streams) == 0 {
		return nil, nil
	}

	glyphs := findGlyphMap(streams)

	var texts []string
	for _, stream := range streams {
		if text := decodeStream(inflate(stream), glyphs); text != "" {
			texts = append(texts, text)
		}
	}
	if len(texts) == 0 {
		return nil, nil
	}
	return []string{strings.TrimSpace(strings.Join(texts, "\n"))}, nil
}

// contentStreams finds all stream...endstream blocks in the PDF.
func contentStreams(data []byte) [][]byte {
	var streams [][]byte
	begin := []byte("stream")
	end := []byte("endstream")

	offset := 0
	for offset < len(data) {
		idx := bytes.Index(data[offset:], begin)
		if idx < 0 {
			break
		}
		start := offset + idx + len(begin)
		if start < len(data) && data[start] == '\r' {
			start++
		}
		if start < len(data) && data[start] == '\n' {
			start++
		}

		endIdx := bytes.Index(data[start:], end)
		if endIdx < 0 {
			break
		}
		if endIdx > 0 {
			streams = append(streams, data[start:start+endIdx])
		}
		offset = start + endIdx + len(end)
	}
	return streams
}

// inflate attempts zlib decompression; returns the input unchanged on failure.
func inflate(data []byte) []byte {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return data
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return data
	}
	return out
}

// glyphMap maps uppercase hex glyph codes to Unicode strings, built from the
// ToUnicode CMap streams of the document's fonts.
type glyphMap map[string]string

var (
	bfCharBlockRe  = regexp.MustCompile(`(?s)beginbfchar\s*(.*?)\s*endbfchar`)
	bfRangeBlockRe = regexp.MustCompile(`(?s)beginbfrange\s*(.*?)\s*endbfrange`)
	hexTokenRe     = regexp.MustCompile(`<([0-9A-Fa-f]+)>`)
)

// findGlyphMap parses every ToUnicode CMap in the document into one merged map.
func findGlyphMap(streams [][]byte) glyphMap {
	merged := glyphMap{}
	for _, stream := range streams {
		content := string(inflate(stream))
		if !strings.Contains(content, "beginbfchar") && !strings.Contains(content, "beginbfrange") {
			continue
		}
		parseCMap(content, merged)
	}
	if len(merged) == 0 {
		return nil
	}
	return merged
}

func parseCMap(content string, into glyphMap) {
	// bfchar blocks: <srcCode> <unicodeValue> pairs
	for _, block := range bfCharBlockRe.FindAllStringSubmatch(content, -1) {
		tokens := hexTokenRe.FindAllStringSubmatch(block[1], -1)
		for i := 0; i+1 < len(tokens); i += 2 {
			if uni := hexToUnicode(tokens[i+1][1]); uni != "" {
				into[strings.ToUpper(tokens[i][1])] = uni
			}
		}
	}

	// bfrange blocks: <start> <end> <startUnicode>, or <start> <end> [<u1> <u2> ...]
	for _, block := range bfRangeBlockRe.FindAllStringSubmatch(content, -1) {
		for _, line := range strings.Split(block[1], "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if bracket := strings.Index(line, "["); bracket >= 0 {
				tokens := hexTokenRe.FindAllStringSubmatch(line[:bracket], -1)
				if len(tokens) < 2 {
					continue
				}
				startCode := hexToInt(tokens[0][1])
				hexLen := len(tokens[0][1])
				for i, ut := range hexTokenRe.FindAllStringSubmatch(line[bracket:], -1) {
					if uni := hexToUnicode(ut[1]); uni != "" {
						into[intToHex(startCode+i, hexLen)] = uni
					}
				}
				continue
			}

			tokens := hexTokenRe.FindAllStringSubmatch(line, -1)
			if len(tokens) < 3 {
				continue
			}
			startCode := hexToInt(tokens[0][1])
			endCode := hexToInt(tokens[1][1])
			dstCode := hexToInt(tokens[2][1])
			if startCode < 0 || endCode < 0 || dstCode < 0 {
				continue
			}
			hexLen := len(tokens[0][1])
			for code := startCode; code <= endCode; code++ {
				if uni := hexToUnicode(intToHex(dstCode+(code-startCode), len(tokens[2][1]))); uni != "" {
					into[intToHex(code, hexLen)] = uni
				}
			}
		}
	}
}

// decode translates raw string bytes through the glyph map. Code width is
// taken from the map's key length (2 hex chars per byte).
func (g glyphMap) decode(raw []byte) string {
	if len(g) == 0 {
		return ""
	}

	codeLen := 1
	for k := range g {
		codeLen = len(k) / 2
		break
	}
	if codeLen < 1 {
		codeLen = 1
	}

	var out strings.Builder
	for i := 0; i <= len(raw)-codeLen; i += codeLen {
		chunk := raw[i : i+codeLen]
		if uni, ok := g[strings.ToUpper(hex.EncodeToString(chunk))]; ok {
			out.WriteString(uni)
			continue
		}
		// Single-byte fallback for mixed-width fonts.
		if codeLen > 1 {
			if uni, ok := g[strings.ToUpper(hex.EncodeToString(chunk[:1]))]; ok {
				out.WriteString(uni)
				i -= codeLen - 1
				continue
			}
		}
		if codeLen == 1 && chunk[0] >= 32 && chunk[0] < 127 {
			out.WriteByte(chunk[0])
		}
	}
	return out.String()
}

// Text operator patterns.
var (
	hexTjRe    = regexp.MustCompile(`<([0-9A-Fa-f]+)>\s*Tj`)
	litTjRe    = regexp.MustCompile(`\(([^)]*)\)\s*(?:Tj|')`)
	tjArrayRe  = regexp.MustCompile(`\[([^\]]*)\]\s*TJ`)
	tjStringRe = regexp.MustCompile(`<([0-9A-Fa-f]+)>|\(([^)]*)\)`)
	tdRe       = regexp.MustCompile(`[\d.\-]+\s+[\d.\-]+\s+T[dD]`)
)

// decodeStream walks a content stream's text operators in order, emitting a
// newline whenever a positioning operator (Td/TD/T*) moves the cursor.
func decodeStream(data []byte, glyphs glyphMap) string {
	content := string(data)
	if !strings.Contains(content, "Tj") && !strings.Contains(content, "TJ") {
		return ""
	}

	var lines []string
	var current strings.Builder
	flush := func() {
		if line := strings.TrimSpace(current.String()); line != "" {
			lines = append(lines, line)
		}
		current.Reset()
	}

	for _, op := range strings.Split(content, "\n") {
		op = strings.TrimSpace(op)

		if op == "T*" || tdRe.MatchString(op) {
			flush()
		}
		for _, m := range hexTjRe.FindAllStringSubmatch(op, -1) {
			current.WriteString(decodeHexString(m[1], glyphs))
		}
		for _, m := range litTjRe.FindAllStringSubmatch(op, -1) {
			current.WriteString(decodeLiteralString(m[1], glyphs))
		}
		for _, arr := range tjArrayRe.FindAllStringSubmatch(op, -1) {
			// TJ arrays mix strings and kerning numbers; take the strings in order.
			for _, m := range tjStringRe.FindAllStringSubmatch(arr[1], -1) {
				if m[1] != "" {
					current.WriteString(decodeHexString(m[1], glyphs))
				} else {
					current.WriteString(decodeLiteralString(m[2], glyphs))
				}
			}
		}
	}
	flush()

	return strings.Join(lines, "\n")
}

func decodeHexString(hexStr string, glyphs glyphMap) string {
	raw, err := hex.DecodeString(hexStr)
	if err != nil {
		return ""
	}
	if text := glyphs.decode(raw); text != "" {
		return text
	}
	// No map entry — try direct UTF-16BE.
	if len(raw) >= 2 && len(raw)%2 == 0 {
		var out strings.Builder
		for i := 0; i+1 < len(raw); i += 2 {
			cp := rune(raw[i])<<8 | rune(raw[i+1])
			if unicode.IsPrint(cp) || cp == ' ' {
				out.WriteRune(cp)
			}
		}
		if out.Len() > 0 {
			return out.String()
		}
	}
	return stripUnprintable(string(raw))
}

func decodeLiteralString(s string, glyphs glyphMap) string {
	decoded := unescapePDFString(s)
	if text := glyphs.decode([]byte(decoded)); text != "" && mostlyPrintable(text) {
		return text
	}
	return stripUnprintable(decoded)
}

// unescapePDFString handles the basic PDF string escape sequences, including
// octal escapes.
func unescapePDFString(s string) string {
	var buf strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			buf.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			buf.WriteByte('\n')
		case 'r':
			buf.WriteByte('\r')
		case 't':
			buf.WriteByte('\t')
		case 'b':
			buf.WriteByte('\b')
		case 'f':
			buf.WriteByte('\f')
		case '(', ')', '\\':
			buf.WriteByte(s[i])
		default:
			if s[i] >= '0' && s[i] <= '7' {
				val := int(s[i] - '0')
				for j := 0; j < 2 && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '7'; j++ {
					i++
					val = val*8 + int(s[i]-'0')
				}
				buf.WriteByte(byte(val))
			} else {
				buf.WriteByte(s[i])
			}
		}
	}
	return buf.String()
}

func stripUnprintable(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\n' || r == '\r' || r == '\t' {
			return r
		}
		return -1
	}, s))
}

func mostlyPrintable(s string) bool {
	runes := []rune(s)
	if len(runes) == 0 {
		return false
	}
	printable := 0
	for _, r := range runes {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			printable++
		}
	}
	return float64(printable)/float64(len(runes)) > 0.5
}

func hexToInt(h string) int {
	val := 0
	for _, c := range strings.ToUpper(h) {
		val <<= 4
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'A' && c <= 'F':
			val += int(c-'A') + 10
		default:
			return -1
		}
	}
	return val
}

func intToHex(val, hexLen int) string {
	h := strings.ToUpper(hex.EncodeToString([]byte{byte(val >> 8), byte(val)}))
	if len(h) > hexLen {
		h = h[len(h)-hexLen:]
	}
	for len(h) < hexLen {
		h = "0" + h
	}
	return h
}

// hexToUnicode converts a hex-encoded Unicode value to a Go string,
// interpreting the bytes as UTF-16BE (with surrogate pair support).
func hexToUnicode(h string) string {
	if len(h)%2 != 0 {
		h = "0" + h
	}
	data, err := hex.DecodeString(h)
	if err != nil {
		return ""
	}

	if len(data) == 4 {
		hi := rune(uint16(data[0])<<8 | uint16(data[1]))
		lo := rune(uint16(data[2])<<8 | uint16(data[3]))
		if utf16.IsSurrogate(hi) && utf16.IsSurrogate(lo) {
			return string(utf16.DecodeRune(hi, lo))
		}
	}

	var out strings.Builder
	for i := 0; i+1 < len(data); i += 2 {
		out.WriteRune(rune(uint16(data[i])<<8 | uint16(data[i+1])))
	}
	return out.String()
}
