package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/valu/internal/value"
)

// maxNesting matches encoding/json's own nesting limit.
const maxNesting = 10000

// DecodeStructural decodes a complete JSON document into a Value. Object
// key order follows the input unless WithOrdering says otherwise; a
// repeated key keeps its first position and takes the last value. Anything
// after the document other than whitespace is rejected.
func DecodeStructural(data []byte, opts ...Option) (value.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	p := &parser{dec: dec, data: data, cfg: newConfig(opts)}

	tok, err := dec.Token()
	if err != nil {
		return nil, p.wrap(err)
	}
	v, err := p.parseValue(tok, 0)
	if err != nil {
		return nil, err
	}

	end := int(dec.InputOffset())
	if rest := skipSpace(data, end); rest < len(data) {
		return nil, value.NewParseError(rest, "trailing data after value")
	}
	return v, nil
}

type parser struct {
	dec  *json.Decoder
	data []byte
	cfg  config
}

func (p *parser) parseValue(tok json.Token, depth int) (value.Value, error) {
	switch t := tok.(type) {
	case nil:
		return value.Null{}, nil
	case bool:
		return value.Bool(t), nil
	case string:
		return value.String(t), nil
	case json.Number:
		n, err := value.ParseNumber(string(t))
		if err != nil {
			if value.IsOutOfRange(err) {
				return nil, err
			}
			return nil, value.NewParseError(p.offset(), "invalid number %s", t)
		}
		return n, nil
	case json.Delim:
		if depth >= maxNesting {
			return nil, value.NewParseError(p.offset(), "exceeded max nesting depth %d", maxNesting)
		}
		switch t {
		case '{':
			return p.parseObject(depth + 1)
		case '[':
			return p.parseArray(depth + 1)
		}
	}
	return nil, value.NewParseError(p.offset(), "unexpected token %v", tok)
}

func (p *parser) parseObject(depth int) (value.Value, error) {
	obj := value.NewObject(p.cfg.ordering)
	for p.dec.More() {
		keyTok, err := p.dec.Token()
		if err != nil {
			return nil, p.wrap(err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, value.NewParseError(p.offset(), "object key must be a string")
		}
		valTok, err := p.dec.Token()
		if err != nil {
			return nil, p.wrap(err)
		}
		v, err := p.parseValue(valTok, depth)
		if err != nil {
			return nil, fmt.Errorf("object[%q]: %w", key, err)
		}
		obj.Insert(key, v)
	}
	if _, err := p.dec.Token(); err != nil {
		return nil, p.wrap(err)
	}
	return obj, nil
}

func (p *parser) parseArray(depth int) (value.Value, error) {
	arr := value.NewArray(0)
	for i := 0; p.dec.More(); i++ {
		tok, err := p.dec.Token()
		if err != nil {
			return nil, p.wrap(err)
		}
		v, err := p.parseValue(tok, depth)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		arr.Push(v)
	}
	if _, err := p.dec.Token(); err != nil {
		return nil, p.wrap(err)
	}
	return arr, nil
}

func (p *parser) offset() int {
	return int(p.dec.InputOffset())
}

// wrap converts decoder failures into PARSE_ERROR values carrying a byte
// offset into the original input.
func (p *parser) wrap(err error) error {
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &syntaxErr):
		return value.NewParseError(int(syntaxErr.Offset), "%s", syntaxErr.Error())
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return value.NewParseError(len(p.data), "unexpected end of input")
	default:
		return value.NewParseError(p.offset(), "%v", err)
	}
}

func skipSpace(data []byte, i int) int {
	for i < len(data) {
		switch data[i] {
		case ' ', '\t', '\n', '\r':
			i++
		default:
			return i
		}
	}
	return i
}
