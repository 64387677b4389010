// Package wire implements the SLIM list codec: a recursive, fixed-width
// length-prefixed encoding used for every request and response on the SLIM
// wire. See fitnesse.slim.ListSerializer for the format this mirrors.
//
// Encoding:  [CCCCCC:LLLLLL:item:LLLLLL:item:...:]
// All lists, including nested ones, begin with '[' and end with ']'. After
// the '[' comes the six-digit decimal item count followed by ':'. Each item
// is then a six-digit decimal byte length, a ':', the item payload (a
// stringified scalar or a recursively-packed nested list), and a trailing
// ':'.
//
// Length-prefixing sidesteps escaping entirely: nested lengths make nested
// lists self-delimiting, so decoding never needs lookahead or backtracking.
package wire

import (
	"fmt"
	"strconv"
)

// countWidth is the fixed decimal width of every length and count field.
const countWidth = 6

// countLimit is one past the largest count or length pack can encode in
// countWidth decimal digits; reaching it is a fatal encoding error.
const countLimit = 1000000

// UnpackingError reports a malformed frame or list encountered while
// decoding. Input is the exact text passed to Unpack (or the offending
// sub-list), Reason describes what was wrong with it.
type UnpackingError struct {
	Input  string
	Reason string
}

func (e *UnpackingError) Error() string {
	return fmt.Sprintf("%q %s", e.Input, e.Reason)
}

// EncodingError reports a value that Pack cannot represent, currently only
// a count or length at or beyond the six-digit limit.
type EncodingError struct {
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("cannot pack: %s", e.Reason)
}

// NotAStringError reports that UnpackValue was handed a non-string payload.
// The wire only ever carries strings; this exists for callers that accept
// payloads as interface{} (e.g. straight off a decoded outer frame).
type NotAStringError struct {
	Value interface{}
}

func (e *NotAStringError) Error() string {
	return fmt.Sprintf("%v is not a string", e.Value)
}

// Pack encodes items as a SLIM list. Each element of items is either a
// string, nil (encoded as the literal "null"), another value stringified
// with fmt.Sprint, or a nested []interface{} which is packed recursively.
func Pack(items []interface{}) (string, error) {
	return packList(items)
}

func packList(items []interface{}) (string, error) {
	if len(items) >= countLimit {
		return "", &EncodingError{Reason: fmt.Sprintf("list of %d items exceeds %d-digit count", len(items), countWidth)}
	}

	frames := make([]byte, 0, 32*len(items))
	for _, item := range items {
		payload, err := payloadFor(item)
		if err != nil {
			return "", err
		}
		if len(payload) >= countLimit {
			return "", &EncodingError{Reason: fmt.Sprintf("item of %d bytes exceeds %d-digit length", len(payload), countWidth)}
		}
		frames = append(frames, fmt.Sprintf("%0*d:%s:", countWidth, len(payload), payload)...)
	}

	return fmt.Sprintf("[%0*d:%s]", countWidth, len(items), frames), nil
}

// payloadFor stringifies a single list element per Pack's rules.
func payloadFor(v interface{}) (string, error) {
	switch t := v.(type) {
	case nil:
		return "null", nil
	case []interface{}:
		return packList(t)
	case string:
		return t, nil
	default:
		return fmt.Sprint(t), nil
	}
}

// Unpack decodes a SLIM list payload into nested strings and []interface{}
// values. It requires a leading '[' and trailing ']'; anything else is an
// UnpackingError naming the offending input.
func Unpack(text string) ([]interface{}, error) {
	items, consumed, err := parseList(text)
	if err != nil {
		return nil, err
	}
	if consumed != len(text) {
		return nil, &UnpackingError{Input: text, Reason: "has trailing data after list"}
	}
	return items, nil
}

// UnpackValue is Unpack for callers that received the payload as
// interface{} rather than string; a non-string payload is a NotAStringError.
func UnpackValue(v interface{}) ([]interface{}, error) {
	s, ok := v.(string)
	if !ok {
		return nil, &NotAStringError{Value: v}
	}
	return Unpack(s)
}

// parseList parses one SLIM list starting at text[0] and returns the
// decoded items along with the number of bytes consumed, so that a list
// embedded as an item payload can be parsed in place without substring
// copies beyond what Unpack already did to isolate the payload.
func parseList(text string) ([]interface{}, int, error) {
	if len(text) == 0 || text[0] != '[' {
		return nil, 0, &UnpackingError{Input: text, Reason: "has no leading '['"}
	}
	if text[len(text)-1] != ']' {
		return nil, 0, &UnpackingError{Input: text, Reason: "has no trailing ']'"}
	}

	pos := 1
	count, pos, err := readDecimal(text, pos)
	if err != nil {
		return nil, 0, err
	}
	pos, err = expect(text, pos, ':')
	if err != nil {
		return nil, 0, err
	}

	items := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		var itemLen int
		itemLen, pos, err = readDecimal(text, pos)
		if err != nil {
			return nil, 0, err
		}
		pos, err = expect(text, pos, ':')
		if err != nil {
			return nil, 0, err
		}
		if pos+itemLen > len(text) {
			return nil, 0, &UnpackingError{Input: text, Reason: "item payload runs past end of input"}
		}
		payload := text[pos : pos+itemLen]
		pos += itemLen
		pos, err = expect(text, pos, ':')
		if err != nil {
			return nil, 0, err
		}

		if len(payload) > 0 && payload[0] == '[' {
			nested, consumed, nestedErr := parseList(payload)
			if nestedErr != nil {
				return nil, 0, nestedErr
			}
			if consumed != len(payload) {
				return nil, 0, &UnpackingError{Input: payload, Reason: "has trailing data after list"}
			}
			items = append(items, nested)
		} else {
			items = append(items, payload)
		}
	}

	pos, err = expect(text, pos, ']')
	if err != nil {
		return nil, 0, err
	}
	return items, pos, nil
}

// readDecimal reads exactly countWidth decimal digits starting at pos and
// returns the parsed value and the position just past them.
func readDecimal(text string, pos int) (int, int, error) {
	if pos+countWidth > len(text) {
		return 0, 0, &UnpackingError{Input: text, Reason: "truncated before a 6-digit count"}
	}
	digits := text[pos : pos+countWidth]
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, 0, &UnpackingError{Input: text, Reason: fmt.Sprintf("%q is not a 6-digit count", digits)}
	}
	if n < 0 {
		return 0, 0, &UnpackingError{Input: text, Reason: fmt.Sprintf("%q is not a 6-digit count", digits)}
	}
	return n, pos + countWidth, nil
}

// expect requires text[pos] == want and returns pos+1, or an UnpackingError
// naming what was actually found (or that input ran out first).
func expect(text string, pos int, want byte) (int, error) {
	if pos >= len(text) {
		return 0, &UnpackingError{Input: text, Reason: fmt.Sprintf("ran out of input expecting %q", want)}
	}
	if text[pos] != want {
		return 0, &UnpackingError{Input: text, Reason: fmt.Sprintf("expected %q at offset %d, found %q", want, pos, text[pos])}
	}
	return pos + 1, nil
}
