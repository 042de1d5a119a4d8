package dump

const (
	patternAnyRun       = '*'
	patternAnyCharacter = '?'
	patternClassOpen    = '['
	patternClassClose   = ']'
	patternClassNegate  = '!'
	patternClassRange   = '-'
)

// MatchName reports whether a file name matches a shell-style pattern. "*" matches any
// run of characters, "?" matches one, and "[...]" matches one character from a class
// with "a-z" ranges, negated by a leading "!". A "[" without a closing "]" is a literal
// character, so no pattern is ever malformed.
func MatchName(pattern string, name string) bool {
	return matchRunes([]rune(pattern), []rune(name))
}

func matchRunes(pattern []rune, name []rune) bool {
	for len(pattern) > 0 {
		switch pattern[0] {
		case patternAnyRun:
			for len(pattern) > 0 && pattern[0] == patternAnyRun {
				pattern = pattern[1:]
			}
			if len(pattern) == 0 {
				return true
			}
			for start := 0; start <= len(name); start++ {
				if matchRunes(pattern, name[start:]) {
					return true
				}
			}
			return false
		case patternAnyCharacter:
			if len(name) == 0 {
				return false
			}
			pattern, name = pattern[1:], name[1:]
		case patternClassOpen:
			class, remainder, closed := parseCharacterClass(pattern)
			if !closed {
				if len(name) == 0 || name[0] != patternClassOpen {
					return false
				}
				pattern, name = pattern[1:], name[1:]
				continue
			}
			if len(name) == 0 || !class.contains(name[0]) {
				return false
			}
			pattern, name = remainder, name[1:]
		default:
			if len(name) == 0 || name[0] != pattern[0] {
				return false
			}
			pattern, name = pattern[1:], name[1:]
		}
	}
	return len(name) == 0
}

type characterRange struct {
	low  rune
	high rune
}

type characterClass struct {
	negated bool
	ranges  []characterRange
}

func (class characterClass) contains(character rune) bool {
	for _, candidate := range class.ranges {
		if candidate.low <= character && character <= candidate.high {
			return !class.negated
		}
	}
	return class.negated
}

// parseCharacterClass reads the class opening pattern. A "]" directly after "[" or "[!"
// belongs to the class; closed is false when no terminating "]" follows.
func parseCharacterClass(pattern []rune) (class characterClass, remainder []rune, closed bool) {
	end := 1
	if end < len(pattern) && pattern[end] == patternClassNegate {
		end++
	}
	if end < len(pattern) && pattern[end] == patternClassClose {
		end++
	}
	for end < len(pattern) && pattern[end] != patternClassClose {
		end++
	}
	if end >= len(pattern) {
		return characterClass{}, pattern, false
	}

	body := pattern[1:end]
	if len(body) > 0 && body[0] == patternClassNegate {
		class.negated = true
		body = body[1:]
	}
	for index := 0; index < len(body); {
		if index+2 < len(body) && body[index+1] == patternClassRange {
			class.ranges = append(class.ranges, characterRange{low: body[index], high: body[index+2]})
			index += 3
			continue
		}
		class.ranges = append(class.ranges, characterRange{low: body[index], high: body[index]})
		index++
	}
	return class, pattern[end+1:], true
}
