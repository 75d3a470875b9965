package placeholder

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/signadot/typeconf/debug"
)

// Context is what deferred values are resolved against.
type Context struct {
	// Subject is the player or session the text is rendered for.
	Subject   any
	Providers *Providers
}

var markerRE = regexp.MustCompile(`%[A-Za-z0-9_.\-]+%`)

// HasMarkers reports whether s holds a "%name%" marker or a "$[expr]"
// expression.
func HasMarkers(s string) bool {
	if markerRE.MatchString(s) {
		return true
	}
	i := strings.Index(s, "$[")
	return i >= 0 && strings.IndexByte(s[i:], ']') > 0
}

func validName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		case c == '_' || c == '.' || c == '-':
		default:
			return false
		}
	}
	return true
}

func (ctx *Context) lookup(name string, extras map[string]string) (string, bool) {
	if v, ok := extras[name]; ok {
		return v, true
	}
	if ctx == nil {
		return "", false
	}
	return ctx.Providers.resolve(ctx.Subject, name)
}

// Expand substitutes the markers of s. Unknown "%name%" markers are kept as
// written; a "$[expr]" that fails to evaluate is an error.
func Expand(s string, ctx *Context, extras map[string]string) (string, error) {
	out := &strings.Builder{}
	n := len(s)
	for i := 0; i < n; {
		c := s[i]
		switch {
		case c == '$' && i+1 < n && s[i+1] == '[':
			key, end, ok := scanExpr(s, i+2)
			if !ok {
				out.WriteString(s[i:])
				i = n
				continue
			}
			v, err := evalExpr(key, ctx, extras)
			if err != nil {
				return "", fmt.Errorf("error evaluating %q: %w", key, err)
			}
			out.WriteString(v)
			i = end
		case c == '%':
			j := strings.IndexByte(s[i+1:], '%')
			if j < 0 || !validName(s[i+1:i+1+j]) {
				out.WriteByte(c)
				i++
				continue
			}
			name := s[i+1 : i+1+j]
			if v, ok := ctx.lookup(name, extras); ok {
				out.WriteString(v)
			} else {
				out.WriteString(s[i : i+j+2])
			}
			i += j + 2
		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String(), nil
}

// scanExpr reads an expression body starting at i up to the closing ']'.
// A backslash escapes the next character.
func scanExpr(s string, i int) (string, int, bool) {
	var key []byte
	for ; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if i+1 < len(s) {
				i++
				key = append(key, s[i])
			}
		case ']':
			return strings.TrimSpace(string(key)), i + 1, true
		default:
			key = append(key, s[i])
		}
	}
	return "", 0, false
}

func evalExpr(key string, ctx *Context, extras map[string]string) (string, error) {
	var subject any
	if ctx != nil {
		subject = ctx.Subject
	}
	vars := make(map[string]string, len(extras))
	for k, v := range extras {
		vars[k] = v
	}
	env := map[string]any{
		"subject": subject,
		"vars":    vars,
	}
	program, err := expr.Compile(key, expr.Env(env),
		expr.Function("ph", func(params ...any) (any, error) {
			v, _ := ctx.lookup(params[0].(string), extras)
			return v, nil
		}, new(func(string) string)))
	if err != nil {
		return "", err
	}
	x, err := vm.Run(program, env)
	if err != nil {
		return "", err
	}
	if debug.Lazy() {
		debug.Logf("eval %q gave %#v", key, x)
	}
	if x == nil {
		return "", nil
	}
	return fmt.Sprint(x), nil
}
