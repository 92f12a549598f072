package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// propertyRegexp matches static ${name} properties resolved before compilation
	propertyRegexp = regexp.MustCompile(`\$\{[^{}]*\}`)
	// optionalRegexp matches a (…) optional clause; the character class forbids
	// nested or brace-containing clauses by construction
	optionalRegexp = regexp.MustCompile(`\([^(){}]*\)`)
	// variableRegexp matches a [name] placeholder; names cannot span into an
	// optional-clause delimiter
	variableRegexp = regexp.MustCompile(`\[[^\[\](){}]*\]`)
)

// MissingVariableError reports the first placeholder of a literal segment
// that has no value in the substitution environment.
type MissingVariableError struct {
	Name string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("variable %q not found in environment", e.Name)
}

// SubstituteProperties replaces every ${key} occurrence in pattern with the
// value from properties, or empty text when the key is absent. Replacements
// are applied rightmost first so earlier match offsets stay valid when a
// value's length differs from its placeholder. Inserted values are never
// re-scanned for further properties.
func SubstituteProperties(pattern string, properties map[string]string) string {
	matches := propertyRegexp.FindAllStringIndex(pattern, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		start, end := matches[i][0], matches[i][1]
		name := pattern[start+2 : end-1]
		pattern = pattern[:start] + properties[name] + pattern[end:]
	}
	return pattern
}

type substituteFunc func(vars map[string]string) (string, error)

// Segment is one contiguous slice of a compiled pattern, either a literal run
// or an optional clause. Its substitution closure is compiled once and reused
// across calls.
type Segment struct {
	start    int
	end      int
	optional bool
	raw      string // full span of the source pattern, parentheses included
	sub      substituteFunc
}

func (s Segment) Start() int     { return s.start }
func (s Segment) End() int       { return s.end }
func (s Segment) Optional() bool { return s.optional }
func (s Segment) Raw() string    { return s.raw }

// compileLiteral pre-scans the placeholder offsets of a literal run. The
// returned closure scans left to right and stops at the first placeholder
// missing from the environment; later missing names are not reported.
func compileLiteral(text string) substituteFunc {
	matches := variableRegexp.FindAllStringIndex(text, -1)
	return func(vars map[string]string) (string, error) {
		var b strings.Builder
		last := 0
		for _, m := range matches {
			name := text[m[0]+1 : m[1]-1]
			value, ok := vars[name]
			if !ok {
				return "", &MissingVariableError{Name: name}
			}
			b.WriteString(text[last:m[0]])
			b.WriteString(value)
			last = m[1]
		}
		b.WriteString(text[last:])
		return b.String(), nil
	}
}

// compileOptional wraps the embedded literal. All variables present or the
// whole clause vanishes; an optional segment never fails.
func compileOptional(text string) substituteFunc {
	inner := compileLiteral(text)
	return func(vars map[string]string) (string, error) {
		resolved, err := inner(vars)
		if err != nil {
			return "", nil
		}
		return resolved, nil
	}
}

// Pattern is a compiled location pattern, immutable and safe for concurrent
// substitution once built.
type Pattern struct {
	raw      string
	segments []Segment
}

// Compile splits a property-substituted pattern into its ordered segment
// sequence. The segment spans are contiguous and gap-free over the whole
// pattern; a violation of that contract is an internal-consistency fault and
// panics rather than surfacing as an error.
func Compile(pattern string) *Pattern {
	optionals := optionalRegexp.FindAllStringIndex(pattern, -1)

	var segments []Segment
	pos := 0
	next := 0
	for pos < len(pattern) {
		if next < len(optionals) && optionals[next][0] == pos {
			end := optionals[next][1]
			raw := pattern[pos:end]
			segments = append(segments, Segment{
				start:    pos,
				end:      end,
				optional: true,
				raw:      raw,
				sub:      compileOptional(raw[1 : len(raw)-1]),
			})
			pos = end
			next++
			continue
		}

		end := len(pattern)
		if next < len(optionals) {
			end = optionals[next][0]
		}
		raw := pattern[pos:end]
		segments = append(segments, Segment{
			start: pos,
			end:   end,
			raw:   raw,
			sub:   compileLiteral(raw),
		})
		pos = end
	}

	p := &Pattern{raw: pattern, segments: segments}
	p.assertContiguous()
	return p
}

func (p *Pattern) assertContiguous() {
	if len(p.segments) == 0 {
		if p.raw != "" {
			panic(fmt.Sprintf("pattern %q compiled to no segments", p.raw))
		}
		return
	}
	if p.segments[0].start != 0 {
		panic(fmt.Sprintf("pattern %q: first segment starts at %d", p.raw, p.segments[0].start))
	}
	for i := 0; i < len(p.segments)-1; i++ {
		if p.segments[i].end != p.segments[i+1].start {
			panic(fmt.Sprintf("pattern %q: gap between segments %d and %d", p.raw, i, i+1))
		}
	}
	if last := p.segments[len(p.segments)-1].end; last != len(p.raw) {
		panic(fmt.Sprintf("pattern %q: last segment ends at %d", p.raw, last))
	}
}

// Substitute applies every segment in order against vars and concatenates the
// results. It fails with the first literal-segment failure in segment order;
// optional segments can never be the cause.
func (p *Pattern) Substitute(vars map[string]string) (string, error) {
	var b strings.Builder
	for _, seg := range p.segments {
		resolved, err := seg.sub(vars)
		if err != nil {
			return "", err
		}
		b.WriteString(resolved)
	}
	return b.String(), nil
}

// Segments returns the compiled segment sequence.
func (p *Pattern) Segments() []Segment { return p.segments }

func (p *Pattern) String() string { return p.raw }
