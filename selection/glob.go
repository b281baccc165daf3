package selection

// matchGlob reports whether s matches pattern using shell-style glob
// semantics: '*' matches any run of characters (including none), '?'
// matches exactly one character, and '[...]' matches a character class
// (with a leading '!' or '^' negating it). This is hand-written rather than
// built on path.Match because pattern and s are source-identifier strings,
// not filesystem paths, so path.Match's '/'-segment special-casing does not
// apply; no glob library is present anywhere in the retrieved example pack.
func matchGlob(pattern, s string) bool {
	return matchHere(pattern, s)
}

func matchHere(pattern, s string) bool {
	for len(pattern) > 0 {
		switch pattern[0] {
		case '*':
			// Collapse consecutive '*' and try every possible split point.
			pattern = pattern[1:]
			if len(pattern) == 0 {
				return true
			}
			for i := 0; i <= len(s); i++ {
				if matchHere(pattern, s[i:]) {
					return true
				}
			}

			return false
		case '?':
			if len(s) == 0 {
				return false
			}
			pattern = pattern[1:]
			s = s[1:]
		case '[':
			end := findClassEnd(pattern)
			if end < 0 {
				// Malformed class: treat '[' as a literal.
				if len(s) == 0 || s[0] != '[' {
					return false
				}
				pattern = pattern[1:]
				s = s[1:]

				continue
			}
			if len(s) == 0 || !matchClass(pattern[1:end], s[0]) {
				return false
			}
			pattern = pattern[end+1:]
			s = s[1:]
		default:
			if len(s) == 0 || s[0] != pattern[0] {
				return false
			}
			pattern = pattern[1:]
			s = s[1:]
		}
	}

	return len(s) == 0
}

// findClassEnd returns the index of the ']' closing the class opened at
// pattern[0] == '[', or -1 if there is none.
func findClassEnd(pattern string) int {
	for i := 1; i < len(pattern); i++ {
		if pattern[i] == ']' && i > 1 {
			return i
		}
	}

	return -1
}

func matchClass(class string, c byte) bool {
	negate := false
	if len(class) > 0 && (class[0] == '!' || class[0] == '^') {
		negate = true
		class = class[1:]
	}

	matched := false
	for i := 0; i < len(class); i++ {
		if i+2 < len(class) && class[i+1] == '-' {
			if class[i] <= c && c <= class[i+2] {
				matched = true
			}
			i += 2

			continue
		}
		if class[i] == c {
			matched = true
		}
	}

	return matched != negate
}
