package tool

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
)

// evaluate computes the value of an arithmetic expression over +, -, *, /,
// parentheses and unary minus using a recursive descent parser.
//
// Grammar:
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary }
//	unary   = "-" unary | primary
//	primary = number | "(" expr ")"
func evaluate(input string) (float64, error) {
	p := &exprParser{input: input}
	p.skipSpaces()
	if p.eof() {
		return 0, errors.New("空表达式")
	}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if !p.eof() {
		return 0, fmt.Errorf("位置 %d 处存在无法识别的字符 %q", p.pos, p.input[p.pos])
	}
	return v, nil
}

type exprParser struct {
	input string
	pos   int
}

func (p *exprParser) eof() bool { return p.pos >= len(p.input) }

func (p *exprParser) peek() byte { return p.input[p.pos] }

func (p *exprParser) skipSpaces() {
	for !p.eof() && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

func (p *exprParser) parseExpr() (float64, error) {
	v, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		if p.eof() {
			return v, nil
		}
		switch p.peek() {
		case '+':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			v += rhs
		case '-':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			v -= rhs
		default:
			return v, nil
		}
	}
}

func (p *exprParser) parseTerm() (float64, error) {
	v, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		if p.eof() {
			return v, nil
		}
		switch p.peek() {
		case '*':
			p.pos++
			rhs, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			v *= rhs
		case '/':
			p.pos++
			rhs, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			if rhs == 0 {
				return 0, errors.New("除数为零")
			}
			v /= rhs
		default:
			return v, nil
		}
	}
}

func (p *exprParser) parseUnary() (float64, error) {
	p.skipSpaces()
	if !p.eof() && p.peek() == '-' {
		p.pos++
		v, err := p.parseUnary()
		return -v, err
	}
	return p.parsePrimary()
}

func (p *exprParser) parsePrimary() (float64, error) {
	p.skipSpaces()
	if p.eof() {
		return 0, errors.New("表达式意外结束")
	}
	if p.peek() == '(' {
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		p.skipSpaces()
		if p.eof() || p.peek() != ')' {
			return 0, errors.New("缺少右括号")
		}
		p.pos++
		return v, nil
	}
	return p.parseNumber()
}

func (p *exprParser) parseNumber() (float64, error) {
	start := p.pos
	for !p.eof() && (isDigit(p.peek()) || p.peek() == '.') {
		p.pos++
	}
	if p.pos == start {
		return 0, fmt.Errorf("位置 %d 处存在无法识别的字符 %q", p.pos, p.input[p.pos])
	}
	lit := p.input[start:p.pos]
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0, fmt.Errorf("无效的数字 %q", lit)
	}
	return v, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
