package speech

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Sanitize turns study text into something a speech engine reads
// naturally: HTML is stripped, unit abbreviations are spelled out, and
// symbols are transliterated.
func Sanitize(text string) string {
	text = stripHTML(text)
	text = expandUnits(text)
	text = symbolReplacer.Replace(text)
	return strings.Join(strings.Fields(text), " ")
}

// stripHTML keeps text content, drops script and style bodies, and puts
// a space at element boundaries so adjacent blocks do not run together.
func stripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken:
			if isRawTag(z) {
				skip++
			}
			b.WriteByte(' ')
		case html.EndTagToken:
			if isRawTag(z) && skip > 0 {
				skip--
			}
			b.WriteByte(' ')
		case html.SelfClosingTagToken:
			b.WriteByte(' ')
		}
	}
}

func isRawTag(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	switch string(name) {
	case "script", "style":
		return true
	}
	return false
}

type unitName struct {
	plural, singular string
}

// units maps an abbreviation to its spoken form. Compound units such as
// "dB/cm/MHz" are spoken part by part, joined with "per".
var units = map[string]unitName{
	"MHz":   {"megahertz", "megahertz"},
	"kHz":   {"kilohertz", "kilohertz"},
	"Hz":    {"hertz", "hertz"},
	"dB":    {"decibels", "decibel"},
	"mm":    {"millimeters", "millimeter"},
	"cm":    {"centimeters", "centimeter"},
	"km":    {"kilometers", "kilometer"},
	"µs":    {"microseconds", "microsecond"},
	"μs":    {"microseconds", "microsecond"},
	"ms":    {"milliseconds", "millisecond"},
	"mW":    {"milliwatts", "milliwatt"},
	"W":     {"watts", "watt"},
	"kg":    {"kilograms", "kilogram"},
	"m":     {"meters", "meter"},
	"s":     {"seconds", "second"},
	"sec":   {"seconds", "second"},
	"cm²":   {"square centimeters", "square centimeter"},
	"m³":    {"cubic meters", "cubic meter"},
	"rayls": {"rayls", "rayl"},
	"Rayls": {"rayls", "rayl"},
}

// standalone lists the units that may appear without a "/"; single
// letters are too ambiguous outside a compound.
var standalone = map[string]bool{
	"MHz": true, "kHz": true, "Hz": true, "dB": true, "mm": true, "cm": true,
	"km": true, "µs": true, "μs": true, "ms": true, "mW": true, "kg": true,
	"cm²": true, "m³": true, "rayls": true, "Rayls": true,
}

var unitToken = regexp.MustCompile(`[A-Za-zµμ][A-Za-zµμ²³]*(?:/[A-Za-zµμ][A-Za-zµμ²³]*)*`)

func expandUnits(s string) string {
	return unitToken.ReplaceAllStringFunc(s, func(tok string) string {
		parts := strings.Split(tok, "/")
		if len(parts) == 1 {
			if standalone[tok] {
				return units[tok].plural
			}
			return tok
		}

		spoken := make([]string, len(parts))
		for i, p := range parts {
			u, ok := units[p]
			if !ok {
				return tok
			}
			if i == 0 {
				spoken[i] = u.plural
			} else {
				spoken[i] = u.singular
			}
		}
		return strings.Join(spoken, " per ")
	})
}

var symbolReplacer = strings.NewReplacer(
	"°", " degrees ",
	"λ", " lambda ",
	"θ", " theta ",
	"×", " times ",
	"±", " plus or minus ",
	"≈", " approximately ",
	"≤", " less than or equal to ",
	"≥", " greater than or equal to ",
	"→", " leads to ",
	"²", " squared ",
	"³", " cubed ",
	"µ", " micro ",
	"μ", " micro ",
	"Δ", " delta ",
	"%", " percent ",
	"=", " equals ",
)
