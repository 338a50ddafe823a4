package parser

import "regexp"

// strategy is one named extraction heuristic: text in, value out, "" on miss.
// Chains are tried in priority order; keeping them as explicit lists makes
// the business heuristics auditable and testable one by one.
type strategy struct {
	name string
	fn   func(text string) string
}

// runChain returns the first non-empty value produced by the chain, together
// with the name of the strategy that produced it.
func runChain(chain []strategy, text string) (value, name string) {
	for _, s := range chain {
		if v := s.fn(text); v != "" {
			return v, s.name
		}
	}
	return "", ""
}

// sliceBetween cuts the span of text starting at the first match of startRe
// and ending just before the first subsequent match of endRe. RE2 has no
// lookahead, so section spans are sliced by index instead.
func sliceBetween(text string, startRe, endRe *regexp.Regexp) (string, bool) {
	loc := startRe.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	rest := text[loc[0]:]
	if end := endRe.FindStringIndex(text[loc[1]:]); end != nil {
		return text[loc[0] : loc[1]+end[0]], true
	}
	return rest, true
}

// sliceBetweenStrict is sliceBetween but fails when the end marker is absent.
func sliceBetweenStrict(text string, startRe, endRe *regexp.Regexp) (string, bool) {
	loc := startRe.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	end := endRe.FindStringIndex(text[loc[1]:])
	if end == nil {
		return "", false
	}
	return text[loc[0] : loc[1]+end[0]], true
}
