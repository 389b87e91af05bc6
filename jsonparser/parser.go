// Copyright 2024 The cfgdata Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package jsonparser

import (
	"fmt"
	"math"

	"github.com/niklasfrykholm/cfgdata"
)

// Parse parses src as strict JSON and stores the result as data's root
// value. It is equivalent to ParseWithSettings(src, data, Settings{}).
func Parse(src string, data *cfgdata.ConfigData) error {
	return ParseWithSettings(src, data, Settings{})
}

// ParseWithSettings parses src under the given relaxations and stores the
// result as data's root value. On error, data's root is left set to an
// empty object and the returned error is a *ParseError.
func ParseWithSettings(src string, data *cfgdata.ConfigData, settings Settings) (err error) {
	alloc, ud := data.Allocator()
	p := &parser{src: src, line: 1, settings: settings, cd: data, alloc: alloc, ud: ud}

	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(*ParseError)
			if !ok {
				panic(r)
			}
			data.SetRoot(data.AddObject(0))
			err = pe
		}
	}()

	p.skipWhitespace()

	var root cfgdata.Loc
	if settings.ImplicitRootObject && p.peek() != '{' {
		if p.atEnd() {
			root = data.AddObject(0)
		} else {
			root = p.parseMembers(false)
		}
	} else {
		if p.atEnd() {
			p.errorf("Unexpected end of input")
		}
		root = p.parseValue()
	}

	p.skipWhitespace()
	if !p.atEnd() {
		p.errorf("Unexpected character '%c'", p.peek())
	}

	data.SetRoot(root)
	return nil
}

type parser struct {
	src      string
	pos      int
	line     int
	settings Settings
	cd       *cfgdata.ConfigData
	alloc    cfgdata.AllocFunc
	ud       any
}

func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) peekAt(n int) byte {
	if p.pos+n >= len(p.src) {
		return 0
	}
	return p.src[p.pos+n]
}

// atEnd reports whether the input is exhausted: at the end of src or at its
// first NUL byte, which terminates the input like the end of the string.
func (p *parser) atEnd() bool { return p.pos >= len(p.src) || p.src[p.pos] == 0 }

func (p *parser) errorf(format string, args ...any) {
	panic(&ParseError{Line: p.line, Message: fmt.Sprintf(format, args...)})
}

func (p *parser) expectChar(c byte) {
	if p.peek() != c {
		p.errorf("Expected '%c', saw '%c'", c, p.peek())
	}
	p.pos++
}

func (p *parser) expectLiteral(lit string) {
	for i := 0; i < len(lit); i++ {
		p.expectChar(lit[i])
	}
}

// skipWhitespace consumes ASCII whitespace, comments (if enabled) and
// commas treated as whitespace (if optional commas are enabled). It is the
// single routine that advances over everything insignificant between
// tokens.
func (p *parser) skipWhitespace() {
	for {
		switch c := p.peek(); {
		case c == 0:
			return
		case c == '\n':
			p.line++
			p.pos++
		case c == ' ' || c == '\t' || c == '\r':
			p.pos++
		case p.settings.OptionalCommas && c == ',':
			p.pos++
		case p.settings.CComments && c == '/' && p.peekAt(1) == '/':
			p.pos += 2
			for p.peek() != 0 && p.peek() != '\n' {
				p.pos++
			}
		case p.settings.CComments && c == '/' && p.peekAt(1) == '*':
			p.pos += 2
			for !(p.peek() == '*' && p.peekAt(1) == '/') {
				if p.atEnd() {
					p.errorf("Unterminated comment")
				}
				if p.peek() == '\n' {
					p.line++
				}
				p.pos++
			}
			p.pos += 2
		default:
			return
		}
	}
}

func isUnquotedKeyChar(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') ||
		(c >= '0' && c <= '9') || c == '_' || c == '-'
}

func (p *parser) parseKey() cfgdata.Loc {
	p.skipWhitespace()
	if p.settings.UnquotedKeys && p.peek() != '"' {
		start := p.pos
		for isUnquotedKeyChar(p.peek()) {
			p.pos++
		}
		if p.pos == start {
			p.errorf("Unexpected character '%c'", p.peek())
		}
		return p.cd.AddString(p.src[start:p.pos])
	}
	return p.parseString()
}

func (p *parser) parseValue() cfgdata.Loc {
	p.skipWhitespace()
	switch c := p.peek(); {
	case c == '"':
		return p.parseString()
	case c == '-' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	case c == '{':
		return p.parseObject()
	case c == '[':
		return p.parseArray()
	case c == 't':
		p.expectLiteral("true")
		return cfgdata.True()
	case c == 'f':
		p.expectLiteral("false")
		return cfgdata.False()
	case c == 'n':
		p.expectLiteral("null")
		return cfgdata.Null()
	default:
		p.errorf("Unexpected character '%c'", p.peek())
		panic("unreachable")
	}
}

func (p *parser) parseObject() cfgdata.Loc {
	p.expectChar('{')
	p.skipWhitespace()
	if p.peek() == '}' {
		p.pos++
		return p.cd.AddObject(0)
	}
	obj := p.parseMembers(true)
	p.expectChar('}')
	return obj
}

// parseMembers parses a run of "key : value" members (or "key = value" /
// unquoted keys, per settings) separated by commas and/or whitespace. When
// expectBrace is true it stops at the first unconsumed '}' (parseObject
// consumes the closing brace itself); when false it runs to end of input,
// for an implicit root object.
func (p *parser) parseMembers(expectBrace bool) cfgdata.Loc {
	keys := newLocBuffer(p.alloc, p.ud)
	defer keys.free()
	values := newLocBuffer(p.alloc, p.ud)
	defer values.free()

	for {
		key := p.parseKey()
		keys.push(key)

		p.skipWhitespace()
		if p.settings.EqualsForColon && p.peek() == '=' {
			p.pos++
		} else {
			p.expectChar(':')
		}

		value := p.parseValue()
		values.push(value)

		p.skipWhitespace()
		if expectBrace {
			if p.peek() == '}' {
				break
			}
		} else if p.atEnd() {
			break
		}
		if !p.settings.OptionalCommas {
			p.expectChar(',')
		}
	}

	obj := p.cd.AddObject(keys.n)
	for i := 0; i < keys.n; i++ {
		obj = p.cd.SetLoc(obj, keys.get(i), values.get(i))
	}
	return obj
}

func (p *parser) parseArray() cfgdata.Loc {
	p.expectChar('[')
	p.skipWhitespace()
	if p.peek() == ']' {
		p.pos++
		return p.cd.AddArray(0)
	}

	items := newLocBuffer(p.alloc, p.ud)
	defer items.free()

	for {
		item := p.parseValue()
		items.push(item)

		p.skipWhitespace()
		if p.peek() == ']' {
			break
		}
		if !p.settings.OptionalCommas {
			p.expectChar(',')
		}
	}
	p.expectChar(']')

	arr := p.cd.AddArray(items.n)
	for i := 0; i < items.n; i++ {
		arr = p.cd.Push(arr, items.get(i))
	}
	return arr
}

func (p *parser) parseString() cfgdata.Loc {
	if p.settings.PythonMultilineStrings && p.peek() == '"' && p.peekAt(1) == '"' && p.peekAt(2) == '"' {
		return p.parseTripleQuotedString()
	}

	p.expectChar('"')
	cb := newCharBuffer(p.alloc, p.ud)
	defer cb.free()

	for {
		c := p.peek()
		switch {
		case c == 0:
			p.errorf("Unterminated string")
		case c == '"':
			p.pos++
			return p.cd.AddString(cb.string())
		case c < 0x20:
			if !p.settings.AllowControlCharacters {
				p.errorf("Literal control character in string")
			}
			if c == '\n' {
				p.line++
			}
			cb.push(c)
			p.pos++
		case c == '\\' && !p.settings.SkipEscapeSequences:
			p.pos++
			p.parseEscape(cb)
		default:
			cb.push(c)
			p.pos++
		}
	}
}

func (p *parser) parseEscape(cb *charBuffer) {
	switch e := p.peek(); e {
	case '"', '\\', '/':
		cb.push(e)
		p.pos++
	case 'b':
		cb.push('\b')
		p.pos++
	case 'f':
		cb.push('\f')
		p.pos++
	case 'n':
		cb.push('\n')
		p.pos++
	case 'r':
		cb.push('\r')
		p.pos++
	case 't':
		cb.push('\t')
		p.pos++
	case 'u':
		p.pos++
		cb.pushRune(p.parseUnicodeEscape())
	default:
		p.errorf("Unexpected character '%c'", p.peek())
	}
}

func hexDigit(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}

func (p *parser) parseUnicodeEscape() rune {
	v := 0
	for i := 0; i < 4; i++ {
		d, ok := hexDigit(p.peek())
		if !ok {
			p.errorf("Bad unicode escape")
		}
		v = v*16 + d
		p.pos++
	}
	if v > 0x1FFFFF {
		p.errorf("Bad unicode escape")
	}
	return rune(v)
}

// parseTripleQuotedString consumes a Python-style """ ... """ literal
// verbatim, with no escape processing. The terminator is the first """ not
// itself followed by another ".
func (p *parser) parseTripleQuotedString() cfgdata.Loc {
	p.pos += 3
	start := p.pos
	for {
		if p.atEnd() {
			p.errorf("Unterminated triple-quoted string")
		}
		if p.peek() == '"' && p.peekAt(1) == '"' && p.peekAt(2) == '"' && p.peekAt(3) != '"' {
			break
		}
		if p.peek() == '\n' {
			p.line++
		}
		p.pos++
	}
	s := p.src[start:p.pos]
	p.pos += 3
	return p.cd.AddString(s)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// parseNumber follows the JSON number grammar (-? int frac? exp?) exactly,
// rejecting leading zeros followed by more digits, a bare '.', and missing
// digits after '.' or 'e'/'E' by raising an error; any unconsumed trailing
// character (such as the second '0' of "00") is then caught by the caller
// as an unexpected character.
func (p *parser) parseNumber() cfgdata.Loc {
	sign := 1.0
	if p.peek() == '-' {
		sign = -1
		p.pos++
	}

	intPart := 0.0
	switch {
	case p.peek() == '0':
		p.pos++
	case isDigit(p.peek()):
		intPart = float64(p.peek() - '0')
		p.pos++
		for isDigit(p.peek()) {
			intPart = 10*intPart + float64(p.peek()-'0')
			p.pos++
		}
	default:
		p.errorf("Bad number format")
	}

	fracPart, fracDiv := 0.0, 1.0
	if p.peek() == '.' {
		p.pos++
		if !isDigit(p.peek()) {
			p.errorf("Bad number format")
		}
		for isDigit(p.peek()) {
			fracPart = 10*fracPart + float64(p.peek()-'0')
			fracDiv *= 10
			p.pos++
		}
	}

	expSign, expPart := 1.0, 0.0
	if c := p.peek(); c == 'e' || c == 'E' {
		p.pos++
		if p.peek() == '+' {
			p.pos++
		} else if p.peek() == '-' {
			expSign = -1
			p.pos++
		}
		if !isDigit(p.peek()) {
			p.errorf("Bad number format")
		}
		for isDigit(p.peek()) {
			expPart = 10*expPart + float64(p.peek()-'0')
			p.pos++
		}
	}

	v := sign * (intPart + fracPart/fracDiv) * math.Pow(10, expSign*expPart)
	return p.cd.AddNumber(v)
}
