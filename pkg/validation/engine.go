package validation

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/values"
)

const (
	msgRequired   = "is required"
	msgString     = "must be a string"
	msgBoolean    = "must be a boolean"
	msgPattern    = "does not match required pattern"
	msgMinLength  = "must be at least %d characters"
	msgMaxLength  = "must be at most %d characters"
	msgOneOf      = "must be one of: %s"
	msgMinEntries = "must have at least %d entries"
)

// Validate runs a full pass over snapshot. The snapshot is only read.
func Validate(schema model.Schema, snapshot map[string]any) (Result, error) {
	set, err := schema.Effective(snapshot)
	if err != nil {
		return Result{}, fmt.Errorf("validation: %w", err)
	}

	errs := make(map[string]string)
	for _, field := range set.Fields {
		if msg := checkField(field, snapshot[field.Name]); msg != "" {
			errs[field.Name] = msg
		}
	}

	for _, list := range set.Lists {
		items := values.Items(snapshot[list.Name])
		if len(items) < list.Min() {
			errs[list.Name] = fmt.Sprintf(msgMinEntries, list.Min())
		}
		for idx, item := range items {
			for _, field := range list.Item {
				if msg := checkField(field, item[field.Name]); msg != "" {
					errs[values.ItemPath(list.Name, idx, field.Name)] = msg
				}
			}
		}
	}

	if len(errs) == 0 {
		return Result{Valid: true}, nil
	}
	return Result{Valid: false, Errors: errs}, nil
}

// CheckField applies the rules of a single field to value and returns the
// first violation, or "" when the value passes.
func CheckField(field model.FieldSpec, value any) string {
	return checkField(field, value)
}

func checkField(field model.FieldSpec, value any) string {
	switch field.Type {
	case model.FieldTypeBoolean:
		if value == nil {
			return ""
		}
		if _, ok := value.(bool); !ok {
			return msgBoolean
		}
		return ""
	case model.FieldTypeEnum:
		text, ok := stringValue(value)
		if !ok {
			return msgString
		}
		if strings.TrimSpace(text) == "" {
			return requiredMessage(field.Rules)
		}
		if !contains(field.Enum, text) {
			return fmt.Sprintf(msgOneOf, strings.Join(field.Enum, ", "))
		}
		return checkStringRules(field.Rules, text)
	default:
		text, ok := stringValue(value)
		if !ok {
			return msgString
		}
		return checkStringRules(field.Rules, text)
	}
}

func checkStringRules(rules []model.ValidationRule, text string) string {
	length := utf8.RuneCountInString(text)
	for _, rule := range rules {
		switch rule.Kind {
		case model.ValidationRuleRequired:
			if strings.TrimSpace(text) == "" {
				return messageFor(rule, msgRequired)
			}
		case model.ValidationRuleMinLength:
			if rule.Value == nil || length >= *rule.Value {
				continue
			}
			if length == 0 {
				return messageFor(rule, msgRequired)
			}
			return messageFor(rule, fmt.Sprintf(msgMinLength, *rule.Value))
		case model.ValidationRuleMaxLength:
			if rule.Value != nil && length > *rule.Value {
				return messageFor(rule, fmt.Sprintf(msgMaxLength, *rule.Value))
			}
		case model.ValidationRulePattern:
			re, err := compilePattern(rule.Pattern)
			if err != nil || !re.MatchString(text) {
				return messageFor(rule, msgPattern)
			}
		}
	}
	return ""
}

func messageFor(rule model.ValidationRule, fallback string) string {
	if rule.Message != "" {
		return rule.Message
	}
	return fallback
}

// requiredMessage reports a blank value only when a rule demands one.
func requiredMessage(rules []model.ValidationRule) string {
	for _, rule := range rules {
		switch {
		case rule.Kind == model.ValidationRuleRequired:
			return messageFor(rule, msgRequired)
		case rule.Kind == model.ValidationRuleMinLength && rule.Value != nil && *rule.Value > 0:
			return messageFor(rule, msgRequired)
		}
	}
	return ""
}

// stringValue treats an absent value as the empty string.
func stringValue(value any) (string, bool) {
	switch typed := value.(type) {
	case nil:
		return "", true
	case string:
		return typed, true
	default:
		return "", false
	}
}

func contains(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}

var patternCache sync.Map

func compilePattern(expr string) (*regexp.Regexp, error) {
	if cached, ok := patternCache.Load(expr); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	patternCache.Store(expr, re)
	return re, nil
}
