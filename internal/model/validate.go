package model

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode/utf8"
)

// ValidationError lists the fields of a draft that failed client-side checks.
// It is returned before any request is made.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type checker struct {
	errs map[string]string
}

func (c *checker) fail(field, msg string) {
	if c.errs == nil {
		c.errs = make(map[string]string)
	}
	if _, ok := c.errs[field]; !ok {
		c.errs[field] = msg
	}
}

func (c *checker) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		if strings.HasSuffix(field, "_ar") {
			c.fail(field, "مطلوب")
			return
		}
		c.fail(field, "required")
	}
}

func (c *checker) maxLen(field, value string, max int) {
	if max <= 0 || utf8.RuneCountInString(value) <= max {
		return
	}
	if strings.HasSuffix(field, "_ar") {
		c.fail(field, fmt.Sprintf("بحد أقصى %d حرفًا", max))
		return
	}
	c.fail(field, fmt.Sprintf("max %d chars", max))
}

// bilingual requires both localized values of name and bounds their length.
func (c *checker) bilingual(name, en, ar string, max int) {
	c.required(name+"_en", en)
	c.required(name+"_ar", ar)
	c.maxLen(name+"_en", strings.TrimSpace(en), max)
	c.maxLen(name+"_ar", strings.TrimSpace(ar), max)
}

func (c *checker) err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: c.errs}
}

// Trim returns a copy of fields with surrounding whitespace removed from
// every string field. Drafts are trimmed before validation and submission.
func Trim[F any](fields F) F {
	v := reflect.ValueOf(&fields).Elem()
	if v.Kind() != reflect.Struct {
		return fields
	}
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.Kind() == reflect.String && f.CanSet() {
			f.SetString(strings.TrimSpace(f.String()))
		}
	}
	return fields
}
