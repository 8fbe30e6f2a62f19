package rewrite

import (
	"fmt"
	"strings"

	"extswap/internal/domain"
	"extswap/internal/errors"
)

// forbiddenChars may not appear in extensions or aliases.
const forbiddenChars = "\"'\n"

// ValidateRule checks a single rule; index is used in the error field name.
func ValidateRule(index int, rule domain.Rule) error {
	field := func(name string) string {
		return fmt.Sprintf("rules[%d].%s", index, name)
	}

	switch rule.Kind {
	case domain.PathKindAlias, domain.PathKindRelative:
	default:
		return errors.NewValidationError(field("kind"), string(rule.Kind), "supported_values",
			"kind must be one of: alias, relative")
	}

	switch rule.Quote {
	case domain.QuoteDouble, domain.QuoteSingle:
	default:
		return errors.NewValidationError(field("quote"), string(rule.Quote), "supported_values",
			"quote must be one of: double, single")
	}

	if rule.Kind == domain.PathKindAlias {
		if rule.Alias == "" {
			return errors.NewValidationError(field("alias"), rule.Alias, "required",
				"alias rules need a non-empty alias")
		}
		if strings.ContainsAny(rule.Alias, forbiddenChars) {
			return errors.NewValidationError(field("alias"), rule.Alias, "charset",
				"alias must not contain quotes or newlines")
		}
	}

	for _, ext := range []struct{ name, value string }{{"from", rule.From}, {"to", rule.To}} {
		if ext.value == "" {
			return errors.NewValidationError(field(ext.name), ext.value, "required",
				"extension must not be empty")
		}
		if strings.ContainsAny(ext.value, forbiddenChars+"/\\") || strings.HasPrefix(ext.value, ".") {
			return errors.NewValidationError(field(ext.name), ext.value, "charset",
				"extension must be a bare token without leading dot, quotes or separators")
		}
	}

	if rule.From == rule.To {
		return errors.NewValidationError(field("to"), rule.To, "distinct",
			"old and new extension must differ")
	}

	return nil
}
