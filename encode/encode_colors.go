package encode

import (
	"strings"

	"github.com/fatih/color"

	"github.com/signadot/typeconf/ir"
)

type Colorable struct {
	Tag  string
	Attr ColorAttr
}

type ColorAttr int

const (
	CommentColor ColorAttr = iota
	TagColor
	FieldColor
	ValueColor
	SepColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

var colorTags = []string{
	ir.TagStr, ir.TagInt, ir.TagFloat, ir.TagBool, ir.TagNull, ir.TagTimestamp,
	ir.TagBinary, ir.TagSeq, ir.TagSet, ir.TagOmap, ir.TagMap,
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, t := range colorTags {
		able := Colorable{Tag: t, Attr: TagColor}
		colors.Map[able] = color.RGB(74, 92, 138).SprintfFunc()
		able.Attr = CommentColor
		colors.Map[able] = color.BlueString
		able.Attr = SepColor
		colors.Map[able] = color.RGB(255, 0, 196).SprintfFunc()
	}
	able := Colorable{Attr: ValueColor}
	for _, t := range []string{ir.TagInt, ir.TagFloat} {
		able.Tag = t
		colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	}
	able.Tag = ir.TagNull
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()
	able.Tag = ir.TagBool
	colors.Map[able] = color.CyanString
	able.Tag = ir.TagTimestamp
	colors.Map[able] = color.RGB(198, 198, 46).SprintfFunc()
	able.Tag = ir.TagStr
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()

	for _, t := range []string{ir.TagMap, ir.TagOmap} {
		able = Colorable{Tag: t, Attr: FieldColor}
		colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()
		able.Attr = SepColor
		colors.Map[able] = color.RGB(196, 128, 128).SprintfFunc()
	}
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(tag string, a ColorAttr, s string) string {
	return c.Get(tag, a)(s)
}

func (c *Colors) Get(tag string, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Tag: tag, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
