package location

// WithinOneEdit reports whether a and b differ by at most one insertion,
// deletion or substitution.
//
// It walks both strings with two pointers and, on a mismatch, skips a rune on
// the longer side (both sides when lengths are equal). This is an
// approximation of Levenshtein distance <= 1, not an exact computation: the
// skip direction is chosen by length alone.
func WithinOneEdit(a, b string) bool {
	if a == b {
		return true
	}

	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la-lb > 1 || lb-la > 1 {
		return false
	}

	i, j, diff := 0, 0, 0
	for i < la && j < lb {
		if ra[i] == rb[j] {
			i++
			j++
			continue
		}

		diff++
		if diff > 1 {
			return false
		}

		switch {
		case la > lb:
			i++
		case lb > la:
			j++
		default:
			i++
			j++
		}
	}

	diff += (la - i) + (lb - j)
	return diff <= 1
}
