package confusion

import "sort"

// Counter counts occurrences and remembers the files they came from.
type Counter struct {
	Count int
	Files []string
}

// Incr adds one occurrence; a non-empty file is remembered.
func (c *Counter) Incr(file string) {
	c.Count++
	if file != "" {
		c.Files = append(c.Files, file)
	}
}

// Add returns a new counter holding the sum of c and o.
func (c *Counter) Add(o *Counter) *Counter {
	out := &Counter{Count: c.Count + o.Count}
	out.Files = append(append(out.Files, c.Files...), o.Files...)
	return out
}

// UniqueFiles returns the remembered files, sorted and deduplicated.
func (c *Counter) UniqueFiles() []string {
	seen := make(map[string]struct{}, len(c.Files))
	out := make([]string, 0, len(c.Files))
	for _, f := range c.Files {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
