package ingest

// boundaries in priority order: paragraph break, then sentence ends.
var boundaries = [][]rune{
	[]rune("\n\n"),
	[]rune(".\n"),
	[]rune(". "),
}

// Split cuts text into consecutive chunks of at most targetSize characters.
// A chunk ends on the latest paragraph break or sentence end in its window
// when that boundary lies past the middle of the window; otherwise the text
// is cut at exactly targetSize characters. Joining the chunks gives back
// text unchanged.
//
// Sizes are counted in runes, so a cut never splits a multi-byte character.
func Split(text string, targetSize int) ([]string, error) {
	if text == "" {
		return nil, ErrEmptyInput
	}
	if targetSize <= 0 {
		return nil, ErrInvalidTargetSize
	}

	runes := []rune(text)
	n := len(runes)
	chunks := make([]string, 0, n/targetSize+1)
	for start := 0; start < n; {
		end := min(start+targetSize, n)
		if end < n {
			if cut, ok := boundaryCut(runes, start, end, targetSize); ok {
				end = cut
			}
		}
		chunks = append(chunks, string(runes[start:end]))
		start = end
	}
	return chunks, nil
}

// boundaryCut returns the cut position for the window [start, end), one
// past the first rune of the chosen delimiter. A delimiter before the middle
// of the window hands over to the next one; a delimiter exactly on the middle
// ends the search with a hard cut.
func boundaryCut(runes []rune, start, end, targetSize int) (int, bool) {
	mid := start + targetSize/2
	window := runes[start:end]
	for _, delim := range boundaries {
		pos := lastIndex(window, delim)
		if pos < 0 || start+pos < mid {
			continue
		}
		if start+pos == mid {
			return 0, false
		}
		return start + pos + 1, true
	}
	return 0, false
}

func lastIndex(s, sep []rune) int {
	for i := len(s) - len(sep); i >= 0; i-- {
		match := true
		for j := range sep {
			if s[i+j] != sep[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
