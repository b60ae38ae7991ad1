package parse

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type ItemType int

const (
	itemError ItemType = iota
	itemEOF
	itemNumber  //+90, -15, 2.5
	itemPercent //%
	itemTag     //<DT_FREEZE_COLOR>
	itemWord    //Cold, Damage, to
	itemSymbol  //anything else, e.g. ( or :
)

var itemNames = map[ItemType]string{
	itemError:   "error",
	itemEOF:     "EOF",
	itemNumber:  "number",
	itemPercent: "percent",
	itemTag:     "tag",
	itemWord:    "word",
	itemSymbol:  "symbol",
}

func (i ItemType) String() string {
	if s, ok := itemNames[i]; ok {
		return s
	}
	return fmt.Sprintf("item(%d)", int(i))
}

type item struct {
	typ ItemType
	pos int
	val string
}

func (i item) String() string {
	switch {
	case i.typ == itemEOF:
		return "EOF"
	case i.typ == itemError:
		return i.val
	case len(i.val) > 10:
		return fmt.Sprintf("%.10q...", i.val)
	}
	return fmt.Sprintf("%q", i.val)
}

const eof = -1

type stateFn func(*lexer) stateFn

//lexer scans one stat line
type lexer struct {
	name  string
	input string
	state stateFn
	start int
	pos   int
	width int
	items chan item
}

func lex(name, input string) *lexer {
	return &lexer{
		name:  name,
		input: input,
		state: lexStat,
		items: make(chan item, 2),
	}
}

//nextItem runs the state machine until an item is ready
func (l *lexer) nextItem() item {
	for {
		select {
		case i := <-l.items:
			return i
		default:
			if l.state == nil {
				return item{typ: itemEOF, pos: l.pos}
			}
			l.state = l.state(l)
		}
	}
}

func (l *lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = w
	l.pos += w
	return r
}

func (l *lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

func (l *lexer) backup() {
	l.pos -= l.width
}

func (l *lexer) emit(t ItemType) {
	l.items <- item{typ: t, pos: l.start, val: l.input[l.start:l.pos]}
	l.start = l.pos
}

func (l *lexer) ignore() {
	l.start = l.pos
}

func (l *lexer) accept(valid string) bool {
	if strings.ContainsRune(valid, l.next()) {
		return true
	}
	l.backup()
	return false
}

func (l *lexer) acceptRun(valid string) int {
	n := 0
	for strings.ContainsRune(valid, l.next()) {
		n++
	}
	l.backup()
	return n
}

func (l *lexer) errorf(format string, args ...interface{}) stateFn {
	l.items <- item{typ: itemError, pos: l.start, val: fmt.Sprintf(format, args...)}
	return nil
}

func lexStat(l *lexer) stateFn {
	switch r := l.next(); {
	case r == eof:
		l.emit(itemEOF)
		return nil
	case unicode.IsSpace(r):
		l.ignore()
		return lexStat
	case r == '+' || r == '-' || isDigit(r) || (r == '.' && isDigit(l.peek())):
		l.backup()
		return lexNumber
	case r == '%':
		l.emit(itemPercent)
		return lexStat
	case r == '<':
		return lexTag
	case unicode.IsLetter(r):
		return lexWord
	default:
		l.emit(itemSymbol)
		return lexStat
	}
}

func lexNumber(l *lexer) stateFn {
	l.accept("+-")
	digits := "0123456789"
	n := l.acceptRun(digits)
	if l.accept(".") {
		n += l.acceptRun(digits)
	}
	if n == 0 {
		return l.errorf("bad number syntax: %q", l.input[l.start:l.pos])
	}
	l.emit(itemNumber)
	return lexStat
}

func lexTag(l *lexer) stateFn {
	for {
		switch l.next() {
		case eof:
			return l.errorf("unterminated tag")
		case '>':
			l.emit(itemTag)
			return lexStat
		}
	}
}

func lexWord(l *lexer) stateFn {
	for {
		r := l.next()
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'') {
			l.backup()
			break
		}
	}
	l.emit(itemWord)
	return lexStat
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
