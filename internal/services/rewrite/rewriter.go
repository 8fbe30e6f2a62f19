// Package rewrite applies the import-specifier rule table to file content.
package rewrite

import (
	"fmt"
	"regexp"
	"strings"

	"extswap/internal/domain"
	"extswap/internal/errors"
)

// compiledRule is a validated rule with its pattern and replacement template.
type compiledRule struct {
	rule        domain.Rule
	pattern     *regexp.Regexp
	replacement string
}

// Rewriter rewrites import specifiers using an ordered rule table.
type Rewriter struct {
	rules []compiledRule
}

// NewRewriter validates and compiles the given rules. Rules are applied in
// the order given.
func NewRewriter(rules []domain.Rule) (*Rewriter, error) {
	if len(rules) == 0 {
		return nil, errors.NewValidationError("rules", "", "required", "at least one rewrite rule is required")
	}

	compiled := make([]compiledRule, 0, len(rules))
	for i, rule := range rules {
		if err := ValidateRule(i, rule); err != nil {
			return nil, err
		}
		c, err := compile(rule)
		if err != nil {
			return nil, fmt.Errorf("failed to compile rule %d: %w", i, err)
		}
		compiled = append(compiled, c)
	}

	return &Rewriter{rules: compiled}, nil
}

// Rewrite applies every rule to the whole content, each rule operating on the
// output of the previous one.
func (r *Rewriter) Rewrite(content string) domain.RewriteResult {
	result := content
	replacements := 0
	for _, c := range r.rules {
		replacements += len(c.pattern.FindAllStringIndex(result, -1))
		result = c.pattern.ReplaceAllString(result, c.replacement)
	}

	return domain.RewriteResult{
		Content:      result,
		Changed:      result != content,
		Replacements: replacements,
	}
}

// Rules returns the rule table in application order.
func (r *Rewriter) Rules() []domain.Rule {
	rules := make([]domain.Rule, len(r.rules))
	for i, c := range r.rules {
		rules[i] = c.rule
	}
	return rules
}

// Pattern returns the regular expression compiled for the i-th rule.
func (r *Rewriter) Pattern(i int) string {
	return r.rules[i].pattern.String()
}

// compile turns a rule into `from Q<prefix>([^Q]*)\.<from>Q`, where Q is the
// rule's quote. The path group excludes Q so a match never spans two
// specifiers.
func compile(rule domain.Rule) (compiledRule, error) {
	quote := rule.Quote.Char()

	var prefix string
	switch rule.Kind {
	case domain.PathKindAlias:
		prefix = rule.Alias + "/"
	case domain.PathKindRelative:
		prefix = "."
	}

	expr := "from " + quote + regexp.QuoteMeta(prefix) +
		"([^" + quote + "]*)" + regexp.QuoteMeta("."+rule.From) + quote

	pattern, err := regexp.Compile(expr)
	if err != nil {
		return compiledRule{}, err
	}

	replacement := "from " + quote + escapeTemplate(prefix) + "${1}" +
		escapeTemplate("."+rule.To) + quote

	return compiledRule{rule: rule, pattern: pattern, replacement: replacement}, nil
}

// escapeTemplate protects literal dollar signs (as in "$lib") from
// regexp.Expand.
func escapeTemplate(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}
