package content

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// issue is one structural failure at a path inside a record.
type issue struct {
	path    []string
	message string
}

func (i issue) String() string {
	p := strings.Join(i.path, ".")
	if p == "" {
		p = "<root>"
	}
	return p + ": " + i.message
}

// schema checks a raw value and returns it normalized: numbers as float64,
// defaults filled, unknown object keys dropped.
type schema interface {
	parse(v any, path []string) (any, []issue)
}

func at(path []string, elem string) []string {
	return append(slices.Clone(path), elem)
}

func invalidType(path []string, expected string, v any) []issue {
	return []issue{{path, fmt.Sprintf("Expected %s, received %s", expected, typeName(v))}}
}

func typeName(v any) string {
	if v == nil {
		return "null"
	}
	if _, ok := toNumber(v); ok {
		return "number"
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Map:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return reflect.TypeOf(v).String()
	}
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// toObject accepts map[string]any and maps with string-convertible keys as
// produced by YAML decoders. An empty array is an empty object, since a Lua
// table literal {} carries no shape.
func toObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case []any:
		if len(m) == 0 {
			return map[string]any{}, true
		}
		return nil, false
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// strings

type stringSchema struct {
	minLen int
	enum   []string
}

func str() *stringSchema      { return &stringSchema{} }
func nonEmpty() *stringSchema { return &stringSchema{minLen: 1} }

func enum(values ...string) *stringSchema {
	return &stringSchema{enum: values}
}

func (s *stringSchema) parse(v any, path []string) (any, []issue) {
	sv, ok := v.(string)
	if !ok {
		if len(s.enum) > 0 {
			return nil, invalidType(path, quoteJoin(s.enum), v)
		}
		return nil, invalidType(path, "string", v)
	}
	if len(s.enum) > 0 && !slices.Contains(s.enum, sv) {
		return nil, []issue{{path, fmt.Sprintf("Invalid enum value. Expected %s, received '%s'", quoteJoin(s.enum), sv)}}
	}
	if len([]rune(sv)) < s.minLen {
		return nil, []issue{{path, fmt.Sprintf("String must contain at least %d character(s)", s.minLen)}}
	}
	return sv, nil
}

func quoteJoin(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, " | ")
}

// numbers

type numberCheck struct {
	fails   func(float64) bool
	message string
}

type numberSchema struct {
	checks []numberCheck
}

func num() *numberSchema { return &numberSchema{} }

// maxInteger bounds integer fields so they convert to int without overflow
// on every platform.
const maxInteger = math.MaxInt32

func (s *numberSchema) integer() *numberSchema {
	s.checks = append(s.checks,
		numberCheck{
			fails:   func(f float64) bool { return f != math.Trunc(f) },
			message: "Expected integer, received float",
		},
		numberCheck{
			fails:   func(f float64) bool { return math.Abs(f) > maxInteger },
			message: "Integer must be between -" + formatNumber(maxInteger) + " and " + formatNumber(maxInteger),
		},
	)
	return s
}

func (s *numberSchema) min(n float64) *numberSchema {
	s.checks = append(s.checks, numberCheck{
		fails:   func(f float64) bool { return f < n },
		message: "Number must be greater than or equal to " + formatNumber(n),
	})
	return s
}

func (s *numberSchema) max(n float64) *numberSchema {
	s.checks = append(s.checks, numberCheck{
		fails:   func(f float64) bool { return f > n },
		message: "Number must be less than or equal to " + formatNumber(n),
	})
	return s
}

func (s *numberSchema) positive() *numberSchema {
	s.checks = append(s.checks, numberCheck{
		fails:   func(f float64) bool { return f <= 0 },
		message: "Number must be greater than 0",
	})
	return s
}

func (s *numberSchema) parse(v any, path []string) (any, []issue) {
	f, ok := toNumber(v)
	if !ok || math.IsNaN(f) {
		return nil, invalidType(path, "number", v)
	}
	if math.IsInf(f, 0) {
		return nil, []issue{{path, "Number must be finite"}}
	}
	var issues []issue
	for _, c := range s.checks {
		if c.fails(f) {
			issues = append(issues, issue{path, c.message})
		}
	}
	if len(issues) > 0 {
		return nil, issues
	}
	return f, nil
}

// booleans

type boolSchema struct{}

func boolean() boolSchema { return boolSchema{} }

func (boolSchema) parse(v any, path []string) (any, []issue) {
	b, ok := v.(bool)
	if !ok {
		return nil, invalidType(path, "boolean", v)
	}
	return b, nil
}

// arrays

type arraySchema struct {
	elem   schema
	minLen int
}

func arr(elem schema) *arraySchema { return &arraySchema{elem: elem} }

func (s *arraySchema) nonEmpty() *arraySchema {
	s.minLen = 1
	return s
}

func (s *arraySchema) parse(v any, path []string) (any, []issue) {
	rv := reflect.ValueOf(v)
	if v == nil || rv.Kind() != reflect.Slice {
		return nil, invalidType(path, "array", v)
	}
	var issues []issue
	if rv.Len() < s.minLen {
		issues = append(issues, issue{path, fmt.Sprintf("Array must contain at least %d element(s)", s.minLen)})
	}
	out := make([]any, rv.Len())
	for i := range rv.Len() {
		val, errs := s.elem.parse(rv.Index(i).Interface(), at(path, strconv.Itoa(i)))
		issues = append(issues, errs...)
		out[i] = val
	}
	if len(issues) > 0 {
		return nil, issues
	}
	return out, nil
}

// records of string keys to a single value schema

type recordSchema struct {
	value schema
}

func record(value schema) recordSchema { return recordSchema{value: value} }

func (s recordSchema) parse(v any, path []string) (any, []issue) {
	m, ok := toObject(v)
	if !ok {
		return nil, invalidType(path, "object", v)
	}
	var issues []issue
	out := make(map[string]any, len(m))
	for _, k := range sortedKeys(m) {
		val, errs := s.value.parse(m[k], at(path, k))
		issues = append(issues, errs...)
		out[k] = val
	}
	if len(issues) > 0 {
		return nil, issues
	}
	return out, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// scalar unions

type unionSchema struct {
	options []schema
}

func union(options ...schema) unionSchema { return unionSchema{options: options} }

func (s unionSchema) parse(v any, path []string) (any, []issue) {
	for _, o := range s.options {
		if val, errs := o.parse(v, path); len(errs) == 0 {
			return val, nil
		}
	}
	return nil, []issue{{path, "Invalid input"}}
}

// objects

type field struct {
	name     string
	schema   schema
	optional bool
	def      func() any
}

func req(name string, s schema) field { return field{name: name, schema: s} }
func opt(name string, s schema) field { return field{name: name, schema: s, optional: true} }

// withDefault fills a missing field with an empty array.
func withDefault(name string, s schema) field {
	return field{name: name, schema: s, def: func() any { return []any{} }}
}

type refinement struct {
	check   func(map[string]any) bool
	path    string
	message string
}

type objectSchema struct {
	fields  []field
	refines []refinement
}

func obj(fields ...field) *objectSchema { return &objectSchema{fields: fields} }

func (s *objectSchema) refine(check func(map[string]any) bool, path, message string) *objectSchema {
	s.refines = append(s.refines, refinement{check: check, path: path, message: message})
	return s
}

func (s *objectSchema) parse(v any, path []string) (any, []issue) {
	m, ok := toObject(v)
	if !ok {
		return nil, invalidType(path, "object", v)
	}

	var issues []issue
	out := make(map[string]any, len(s.fields))
	for _, f := range s.fields {
		raw, present := m[f.name]
		if !present {
			switch {
			case f.def != nil:
				out[f.name] = f.def()
			case f.optional:
			default:
				issues = append(issues, issue{at(path, f.name), "Required"})
			}
			continue
		}
		val, errs := f.schema.parse(raw, at(path, f.name))
		issues = append(issues, errs...)
		out[f.name] = val
	}
	if len(issues) > 0 {
		return nil, issues
	}

	for _, r := range s.refines {
		if !r.check(out) {
			issues = append(issues, issue{at(path, r.path), r.message})
		}
	}
	if len(issues) > 0 {
		return nil, issues
	}
	return out, nil
}

// discriminated unions of objects tagged by a "type" field

type taggedSchema struct {
	tags     []string
	variants map[string]*objectSchema
}

func tagged() *taggedSchema {
	return &taggedSchema{variants: make(map[string]*objectSchema)}
}

func (s *taggedSchema) variant(tag string, fields ...field) *taggedSchema {
	s.tags = append(s.tags, tag)
	s.variants[tag] = obj(append([]field{req("type", enum(tag))}, fields...)...)
	return s
}

func (s *taggedSchema) parse(v any, path []string) (any, []issue) {
	m, ok := toObject(v)
	if !ok {
		return nil, invalidType(path, "object", v)
	}
	tag, _ := m["type"].(string)
	variant, ok := s.variants[tag]
	if !ok {
		return nil, []issue{{at(path, "type"), "Invalid discriminator value. Expected " + quoteJoin(s.tags)}}
	}
	return variant.parse(m, path)
}
