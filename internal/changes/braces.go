package changes

// MatchBraces returns the content of the balanced brace group that opens at
// pos, plus the index one past its closing brace. ok is false when pos is out
// of range, when text[pos] is not an opening brace, or when the group never
// closes before the end of the text. Callers treat a false return as "no
// argument here", not as a hard error.
func MatchBraces(text string, pos int) (content string, end int, ok bool) {
	if pos >= len(text) || text[pos] != '{' {
		return "", 0, false
	}
	depth := 0
	for i := pos; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
		}
		if depth == 0 {
			return text[pos+1 : i], i + 1, true
		}
	}
	return "", 0, false
}
