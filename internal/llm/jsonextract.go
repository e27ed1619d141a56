package llm

// FirstJSONObject returns the first balanced JSON object substring of raw.
// Models often wrap their JSON in prose ("Aquí está el análisis: {...}"), so
// brace balancing is string- and escape-aware. Returns false when no balanced
// object exists.
func FirstJSONObject(raw []byte) ([]byte, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			// quotes in surrounding prose (depth 0) are not JSON strings
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 {
					return raw[start : i+1], true
				}
			}
		}
	}
	return nil, false
}
