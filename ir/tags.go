package ir

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	TagStr       = "!!str"
	TagInt       = "!!int"
	TagFloat     = "!!float"
	TagBool      = "!!bool"
	TagNull      = "!!null"
	TagTimestamp = "!!timestamp"
	TagBinary    = "!!binary"
	TagSeq       = "!!seq"
	TagSet       = "!!set"
	TagOmap      = "!!omap"
	TagMap       = "!!map"
	TagMerge     = "!!merge"

	longTagPrefix = "tag:yaml.org,2002:"
)

// NormalizeTag maps the long form of a core tag onto its "!!" short form.
// Local tags ("!color") are returned unchanged.
func NormalizeTag(tag string) string {
	if rest, ok := strings.CutPrefix(tag, longTagPrefix); ok {
		return "!!" + rest
	}
	if rest, ok := strings.CutPrefix(tag, "!<"+longTagPrefix); ok {
		return "!!" + strings.TrimSuffix(rest, ">")
	}
	return tag
}

// IsCoreTag reports whether tag is one of the YAML core schema tags.
func IsCoreTag(tag string) bool {
	switch tag {
	case TagStr, TagInt, TagFloat, TagBool, TagNull, TagTimestamp, TagBinary,
		TagSeq, TagSet, TagOmap, TagMap, TagMerge:
		return true
	}
	return false
}

var (
	boolValues = map[string]bool{
		"y": true, "Y": true, "yes": true, "Yes": true, "YES": true,
		"n": false, "N": false, "no": false, "No": false, "NO": false,
		"true": true, "True": true, "TRUE": true,
		"false": false, "False": false, "FALSE": false,
		"on": true, "On": true, "ON": true,
		"off": false, "Off": false, "OFF": false,
	}
	nullValues = map[string]bool{
		"": true, "~": true, "null": true, "Null": true, "NULL": true,
	}
	floatSpecials = map[string]float64{
		".inf": math.Inf(1), ".Inf": math.Inf(1), ".INF": math.Inf(1),
		"+.inf": math.Inf(1), "+.Inf": math.Inf(1), "+.INF": math.Inf(1),
		"-.inf": math.Inf(-1), "-.Inf": math.Inf(-1), "-.INF": math.Inf(-1),
		".nan": math.NaN(), ".NaN": math.NaN(), ".NAN": math.NaN(),
	}

	intRE       = regexp.MustCompile(`^[-+]?(0b[01_]+|0o?[0-7_]+|0x[0-9a-fA-F_]+|(0|[1-9][0-9_]*))$`)
	floatRE     = regexp.MustCompile(`^[-+]?([0-9][0-9_]*)?\.[0-9_]*([eE][-+]?[0-9]+)?$|^[-+]?[0-9][0-9_]*[eE][-+]?[0-9]+$`)
	timestampRE = regexp.MustCompile(`^[0-9]{4}-[0-9]{1,2}-[0-9]{1,2}(([Tt]|[ \t]+)[0-9]{1,2}:[0-9]{2}:[0-9]{2}(\.[0-9]*)?([ \t]*(Z|[-+][0-9]{1,2}(:[0-9]{2})?))?)?$`)
)

// ResolveTag returns the implicit tag of a plain (unquoted, untagged) scalar
// following the YAML 1.1 resolution rules.
func ResolveTag(text string) string {
	if nullValues[text] {
		return TagNull
	}
	if _, ok := boolValues[text]; ok {
		// single letter y/n are left as strings, as most loaders do.
		if len(text) > 1 {
			return TagBool
		}
		return TagStr
	}
	if _, ok := floatSpecials[text]; ok {
		return TagFloat
	}
	if intRE.MatchString(text) && strings.Trim(text, "+-_") != "" {
		return TagInt
	}
	if floatRE.MatchString(text) && text != "." {
		return TagFloat
	}
	if timestampRE.MatchString(text) {
		return TagTimestamp
	}
	return TagStr
}

// ParseBool decodes the YAML 1.1 boolean words. The match is case-insensitive.
func ParseBool(text string) (bool, error) {
	switch strings.ToLower(text) {
	case "yes", "on", "true":
		return true, nil
	case "no", "off", "false":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q is not a boolean", ErrBadTag, text)
}

// ParseInt decodes an integer literal into bitSize bits, honoring 0x, 0o, 0b and
// leading-zero octal prefixes and '_' digit separators.
func ParseInt(text string, bitSize int) (int64, error) {
	s := strings.ReplaceAll(text, "_", "")
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	base := 10
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		base, s = 16, s[2:]
	case strings.HasPrefix(s, "0o"), strings.HasPrefix(s, "0O"):
		base, s = 8, s[2:]
	case strings.HasPrefix(s, "0b"), strings.HasPrefix(s, "0B"):
		base, s = 2, s[2:]
	case len(s) > 1 && s[0] == '0':
		base, s = 8, s[1:]
	}
	if neg {
		s = "-" + s
	}
	return strconv.ParseInt(s, base, bitSize)
}

// ParseFloat decodes a float literal including the YAML .inf and .nan forms.
func ParseFloat(text string, bitSize int) (float64, error) {
	if f, ok := floatSpecials[text]; ok {
		return f, nil
	}
	return strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), bitSize)
}

var timestampFormats = []string{
	"2006-1-2T15:4:5.999999999Z07:00",
	"2006-1-2t15:4:5.999999999Z07:00",
	"2006-1-2 15:4:5.999999999",
	"2006-1-2",
}

// ParseTimestamp decodes a YAML timestamp. Values without a zone are UTC.
func ParseTimestamp(text string) (time.Time, error) {
	i := strings.IndexByte(text, '-')
	if i < 0 || !timestampRE.MatchString(text) {
		return time.Time{}, fmt.Errorf("%q is not a timestamp", text)
	}
	for _, f := range timestampFormats {
		if t, err := time.Parse(f, text); err == nil {
			return t, nil
		}
	}
	// spaced zone forms ("2001-12-14 21:59:43.10 -5")
	norm := normalizeSpacedZone(text)
	for _, f := range timestampFormats[:2] {
		if t, err := time.Parse(f, norm); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not a timestamp", text)
}

func normalizeSpacedZone(text string) string {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return text
	}
	res := fields[0] + "T" + fields[1]
	if len(fields) == 3 {
		z := fields[2]
		switch {
		case z == "Z":
		case len(z) == 2 || len(z) == 3 && !strings.Contains(z, ":"):
			// -5 or -05
			sign, hh := z[:1], z[1:]
			if len(hh) == 1 {
				hh = "0" + hh
			}
			z = sign + hh + ":00"
		}
		res += z
	} else if !strings.ContainsAny(fields[1], "Zz+") && strings.Count(fields[1], "-") == 0 {
		res += "Z"
	}
	return res
}
