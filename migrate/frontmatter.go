package migrate

import "strings"

// splitFrontmatter separates a leading YAML-style frontmatter block from
// the markdown body. Files without a block return ("", whole file).
func splitFrontmatter(text string) (block, body string) {
	if !strings.HasPrefix(text, "---") {
		return "", text
	}
	rest := strings.TrimPrefix(text, "---")
	rest = strings.TrimPrefix(rest, "\n")
	end := strings.Index(rest, "\n---")
	if end == -1 {
		return "", text
	}
	block = rest[:end]
	body = rest[end+len("\n---"):]
	body = strings.TrimPrefix(body, "\n")
	return block, body
}

// parseFrontmatter reads the block line by line. Values are scalars or
// inline lists (`[a, b]`); this is deliberately looser than YAML since the
// article files use unquoted values a strict decoder would reject.
func parseFrontmatter(block string) map[string]any {
	res := map[string]any{}
	for _, raw := range strings.Split(block, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]") {
			var items []string
			for _, v := range strings.Split(value[1:len(value)-1], ",") {
				if v = unquote(strings.TrimSpace(v)); v != "" {
					items = append(items, v)
				}
			}
			res[key] = items
			continue
		}
		res[key] = unquote(value)
	}
	return res
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// stringValue returns the frontmatter value as a scalar, flattening a
// single-element list.
func stringValue(fm map[string]any, key string) string {
	switch v := fm[key].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

// listValue returns the frontmatter value as a list, wrapping a scalar.
func listValue(fm map[string]any, key string) []string {
	switch v := fm[key].(type) {
	case []string:
		return v
	case string:
		if v != "" {
			return []string{v}
		}
	}
	return nil
}

// Slugify lowercases the input, strips everything but letters, digits,
// spaces and hyphens, and turns space runs into single hyphens.
func Slugify(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), "-")
}
