// Package ruleset defines the textual patterns that recognize IRC log line
// shapes, and how those patterns compose.
//
// A RuleSet is built from named sub-patterns (nick, chan, timestamp,
// nick_container, action_leader) which compose into the two top-level rules,
// message and action. Each sub-pattern is an independently replaceable unit:
// supply an override in Config.Subpatterns and the top-level rules re-compose
// around it. Different IRC clients disagree on timestamp brackets, nick
// decoration, and action markers, so the defaults are deliberately permissive
// and everything is swappable.
//
// Extracted fields are bound to named capture groups (timestamp, prefix,
// nick, chan, text), never positional indices, so reordering sub-patterns in
// a custom composition cannot silently shift field bindings.
package ruleset

import (
	"fmt"
	"regexp"
	"sync"
)

// Sub-pattern names accepted in Config.Subpatterns.
const (
	// SubNick is the nick character-class body (no capture group).
	SubNick = "nick"

	// SubChan is the channel character-class body (no capture group).
	SubChan = "chan"

	// SubTimestamp matches an optional leading timestamp, capturing the
	// bare time text (without brackets) as the "timestamp" group. A
	// zero-width match is valid: lines without timestamps still parse.
	SubTimestamp = "timestamp"

	// SubNickContainer matches the angle-bracketed "<@nick:#chan>" wrapper,
	// capturing "prefix", "nick", and "chan" groups. If no override is
	// given, it is composed from the resolved SubNick and SubChan bodies.
	SubNickContainer = "nick_container"

	// SubActionLeader matches the marker that introduces an action line.
	// No capture group.
	SubActionLeader = "action_leader"
)

// Capture group names the composed rules bind fields to.
const (
	GroupTimestamp = "timestamp"
	GroupPrefix    = "prefix"
	GroupNick      = "nick"
	GroupChan      = "chan"
	GroupText      = "text"
)

// Default sub-pattern texts. The nick and chan classes are broad on purpose:
// IRC has no single universal naming spec, and real-world nicks use brackets,
// braces, parens, and carets freely.
const (
	defaultNick         = `[\w\[\]{}()^]+`
	defaultChan         = `[&#][\w\[\]{}&#^]*`
	defaultTimestamp    = `\[?(?P<timestamp>\d{1,2}:\d{2}(?::\d{2})?)?\]?`
	defaultActionLeader = `\*`
)

// DefaultSubpatterns returns a fresh copy of the default sub-pattern map.
// SubNickContainer is absent from the map: unless overridden, it is composed
// from the nick and chan entries at build time.
func DefaultSubpatterns() map[string]string {
	return map[string]string{
		SubNick:         defaultNick,
		SubChan:         defaultChan,
		SubTimestamp:    defaultTimestamp,
		SubActionLeader: defaultActionLeader,
	}
}

// Config describes how to build a RuleSet.
//
// The zero value builds the default rules. Subpatterns entries override the
// defaults key-by-key; BuildMessage and BuildAction replace the top-level
// composition wholesale. A composition func receives the fully resolved
// sub-pattern map (overrides applied, nick_container composed) and returns
// the regular expression source for its rule.
type Config struct {
	Subpatterns  map[string]string
	BuildMessage func(sub map[string]string) string
	BuildAction  func(sub map[string]string) string
}

// BuildMessage is the default message composition: timestamp, optional
// whitespace, nick container, required whitespace, then the rest of the line
// as the message text.
func BuildMessage(sub map[string]string) string {
	return `^` + sub[SubTimestamp] + `\s*` + sub[SubNickContainer] + `\s+(?P<text>.+)$`
}

// BuildAction is the default action composition: timestamp, optional
// whitespace, the action leader, required whitespace, an optional decoration
// character, the nick, a single space, then the rest of the line as the
// action text.
func BuildAction(sub map[string]string) string {
	return `^` + sub[SubTimestamp] + `\s*` + sub[SubActionLeader] +
		`\s+(?P<prefix>[%@])?\s?(?P<nick>` + sub[SubNick] + `)\s(?P<text>.+)$`
}

// buildNickContainer composes the default nick container from the resolved
// nick and chan bodies: "<" with an optional %/@ decoration, the nick, an
// optional ":#chan" suffix, and ">", tolerating stray spaces around the
// decoration and before the closing bracket.
func buildNickContainer(sub map[string]string) string {
	return `<\s?(?P<prefix>[%@])?\s?(?P<nick>` + sub[SubNick] + `)(?::(?P<chan>` + sub[SubChan] + `))?\s?>`
}

// Captures maps capture group names to their matched text. Groups that did
// not participate in the match are present with an empty value.
type Captures map[string]string

// compiledRule pairs a compiled pattern with its name-to-index bindings.
type compiledRule struct {
	re     *regexp.Regexp
	groups map[string]int
}

func (r *compiledRule) match(line string) (Captures, bool) {
	m := r.re.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	caps := make(Captures, len(r.groups))
	for name, i := range r.groups {
		caps[name] = m[i]
	}
	return caps, true
}

// RuleSet holds the two compiled top-level rules. It is immutable after
// construction and safe for concurrent use: Go's regexp engine is reentrant
// and nothing here mutates after New returns.
type RuleSet struct {
	msg    *compiledRule
	action *compiledRule
}

// New builds a RuleSet from cfg. All overrides are validated and both
// top-level patterns compiled before any line can be classified; a malformed
// override fails the whole construction (no partial rule sets).
func New(cfg Config) (*RuleSet, error) {
	sub := DefaultSubpatterns()
	for name, text := range cfg.Subpatterns {
		switch name {
		case SubNick, SubChan, SubTimestamp, SubNickContainer, SubActionLeader:
		default:
			return nil, &ValidationError{
				Field:   name,
				Message: "unknown sub-pattern name",
			}
		}
		if text == "" {
			return nil, &ValidationError{
				Field:   name,
				Message: "sub-pattern must not be empty",
			}
		}
		sub[name] = text
	}

	// Compose the container only if the caller didn't supply one, so an
	// override of SubNick or SubChan propagates into it.
	if _, ok := sub[SubNickContainer]; !ok {
		sub[SubNickContainer] = buildNickContainer(sub)
	}

	buildMsg := cfg.BuildMessage
	if buildMsg == nil {
		buildMsg = BuildMessage
	}
	buildAction := cfg.BuildAction
	if buildAction == nil {
		buildAction = BuildAction
	}

	msg, err := compileRule("msg", buildMsg(sub))
	if err != nil {
		return nil, err
	}
	action, err := compileRule("action", buildAction(sub))
	if err != nil {
		return nil, err
	}

	return &RuleSet{msg: msg, action: action}, nil
}

// compileRule compiles a composed pattern and indexes its named groups.
// Rules must capture at least a nick and the line text; everything else is
// optional and dialect-dependent.
func compileRule(name, pattern string) (*compiledRule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &RuleError{
			Rule:    name,
			Pattern: pattern,
			Message: "invalid regular expression",
			Cause:   err,
		}
	}

	groups := make(map[string]int)
	for i, gname := range re.SubexpNames() {
		if gname != "" {
			groups[gname] = i
		}
	}

	for _, required := range []string{GroupNick, GroupText} {
		if _, ok := groups[required]; !ok {
			return nil, &RuleError{
				Rule:    name,
				Pattern: pattern,
				Message: fmt.Sprintf("composed pattern is missing the %q capture group", required),
			}
		}
	}

	return &compiledRule{re: re, groups: groups}, nil
}

// defaultRules is the construct-once cached default RuleSet. The defaults
// are compile-time constants, so construction cannot fail.
var defaultRules = sync.OnceValue(func() *RuleSet {
	rs, err := New(Config{})
	if err != nil {
		panic("ruleset: default rules failed to compile: " + err.Error())
	}
	return rs
})

// Default returns the shared default RuleSet. The same instance is returned
// on every call.
func Default() *RuleSet {
	return defaultRules()
}

// MatchMessage matches line against the message rule.
func (rs *RuleSet) MatchMessage(line string) (Captures, bool) {
	return rs.msg.match(line)
}

// MatchAction matches line against the action rule.
func (rs *RuleSet) MatchAction(line string) (Captures, bool) {
	return rs.action.match(line)
}

// MessagePattern returns the composed message pattern source.
func (rs *RuleSet) MessagePattern() string {
	return rs.msg.re.String()
}

// ActionPattern returns the composed action pattern source.
func (rs *RuleSet) ActionPattern() string {
	return rs.action.re.String()
}
