package fits

import (
	"strconv"
	"strings"
)

const (
	cardSize       = 80
	blockSize      = 2880
	cardsPerBlock  = blockSize / cardSize
)

// card is one 80-column FITS header record, already split into keyword and
// raw value text (comment discarded on read, preserved on nothing — this
// package does not round-trip comments).
type card struct {
	keyword string
	value   string // raw, as it appeared after '=' and before '/', trimmed
	isHistory bool
}

// parseCards splits a header block's raw bytes into cards, stopping at END.
func parseCards(raw []byte) []card {
	var cards []card
	for i := 0; i+cardSize <= len(raw); i += cardSize {
		line := string(raw[i : i+cardSize])
		keyword := strings.TrimSpace(line[:8])
		if keyword == "END" {
			break
		}
		if keyword == "" || keyword == "COMMENT" {
			continue
		}
		if keyword == "HISTORY" {
			cards = append(cards, card{keyword: keyword, value: strings.TrimSpace(line[8:]), isHistory: true})
			continue
		}
		rest := line[8:]
		eq := strings.Index(rest, "=")
		if eq < 0 {
			continue
		}
		valueAndComment := rest[eq+1:]
		value := valueAndComment
		if slash := findCommentSlash(valueAndComment); slash >= 0 {
			value = valueAndComment[:slash]
		}
		cards = append(cards, card{keyword: keyword, value: strings.TrimSpace(value)})
	}
	return cards
}

// findCommentSlash finds the '/' that starts a trailing comment, ignoring
// slashes embedded inside a quoted string value.
func findCommentSlash(s string) int {
	inQuote := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\'':
			inQuote = !inQuote
		case '/':
			if !inQuote {
				return i
			}
		}
	}
	return -1
}

func (c card) stringValue() (string, bool) {
	v := strings.TrimSpace(c.value)
	if len(v) >= 2 && v[0] == '\'' && v[len(v)-1] == '\'' {
		return strings.TrimSpace(v[1 : len(v)-1]), true
	}
	return "", false
}

func (c card) floatValue() (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(c.value), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func (c card) intValue() (int, bool) {
	f, ok := c.floatValue()
	if !ok {
		return 0, false
	}
	return int(f), true
}

func (c card) boolValue() (bool, bool) {
	v := strings.TrimSpace(c.value)
	switch v {
	case "T":
		return true, true
	case "F":
		return false, true
	default:
		return false, false
	}
}

// lookup returns the first card matching keyword, case-insensitively.
func lookup(cards []card, keyword string) (card, bool) {
	for _, c := range cards {
		if strings.EqualFold(c.keyword, keyword) {
			return c, true
		}
	}
	return card{}, false
}

// lookupAny returns the first card matching any of the given keywords, in
// priority order — used for fields with multiple historical spellings
// (e.g. the sensor-temperature keyword family).
func lookupAny(cards []card, keywords ...string) (card, bool) {
	for _, keyword := range keywords {
		if c, ok := lookup(cards, keyword); ok {
			return c, true
		}
	}
	return card{}, false
}

func formatFloatCard(keyword string, value float64) string {
	return formatCard(keyword, strconv.FormatFloat(value, 'g', -1, 64))
}

func formatIntCard(keyword string, value int) string {
	return formatCard(keyword, strconv.Itoa(value))
}

func formatStringCard(keyword string, value string) string {
	quoted := "'" + strings.ReplaceAll(value, "'", "''") + "'"
	return formatCard(keyword, quoted)
}

func formatBoolCard(keyword string, value bool) string {
	if value {
		return formatCard(keyword, "T")
	}
	return formatCard(keyword, "F")
}

// formatCard renders a KEYWORD = VALUE card padded to exactly 80 columns.
func formatCard(keyword, value string) string {
	line := padRight(keyword, 8) + "= " + value
	return padRight(line, cardSize)
}

func formatHistoryCard(text string) string {
	return padRight(padRight("HISTORY", 8)+" "+text, cardSize)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}
