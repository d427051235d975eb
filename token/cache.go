package token

import "unicode/utf8"

// Cache holds the spans of exactly one line. A lookup for another line
// re-tokenizes and replaces the entry.
type Cache struct {
	line  int
	spans []Span
	valid bool

	misses int
}

// Lookup returns the spans for line, tokenizing text on a miss.
func (c *Cache) Lookup(line int, text string, t Tokenizer) []Span {
	if c.valid && c.line == line {
		return c.spans
	}
	var spans []Span
	if t != nil {
		spans = t.Tokenize(text, line)
	}
	c.line = line
	c.spans = Normalize(spans, utf8.RuneCountInString(text))
	c.valid = true
	c.misses++
	return c.spans
}

// Invalidate drops the entry when it belongs to line.
func (c *Cache) Invalidate(line int) {
	if c.valid && c.line == line {
		c.Reset()
	}
}

func (c *Cache) Reset() {
	c.line = 0
	c.spans = nil
	c.valid = false
}

// Line returns the cached line index.
func (c *Cache) Line() (int, bool) {
	return c.line, c.valid
}

// Misses counts how many lookups tokenized.
func (c *Cache) Misses() int { return c.misses }
