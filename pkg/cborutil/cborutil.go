// Package cborutil holds the CBOR building blocks used by the Byron binary
// format: indefinite-length arrays, tag 24 embedding and maps that keep
// insertion order.
package cborutil

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

const (
	majorUnsigned = 0
	majorBytes    = 2
	majorArray    = 4
	majorMap      = 5

	// TagEmbeddedCBOR is the tag number marking a byte string that holds an
	// encoded CBOR item.
	TagEmbeddedCBOR = 24

	indefiniteArrayStart = 0x9f
	indefiniteMapStart   = 0xbf
	breakCode            = 0xff
)

var (
	// ErrUnexpectedType is returned when decoding finds a different major
	// type than the one required by the target.
	ErrUnexpectedType = errors.New("unexpected cbor major type")
	// ErrNotIndefinite is returned when a definite array is found where the
	// format mandates an indefinite one.
	ErrNotIndefinite = errors.New("array must be indefinite-length encoded")
	// ErrTruncated ...
	ErrTruncated = errors.New("truncated cbor data")
	// ErrTrailingBytes ...
	ErrTrailingBytes = errors.New("unexpected trailing bytes after cbor item")
	// ErrUnexpectedTag ...
	ErrUnexpectedTag = errors.New("unexpected cbor tag")
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	// Maps are never sorted: the byte layout must follow insertion order.
	encMode, err = cbor.EncOptions{Sort: cbor.SortNone}.EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{
		IndefLength: cbor.IndefLengthAllowed,
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// Marshal encodes v with the package encoding options.
func Marshal(v interface{}) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes exactly one CBOR item from data into v.
func Unmarshal(data []byte, v interface{}) error {
	return decMode.Unmarshal(data, v)
}

// UnmarshalFirst decodes the first CBOR item of data into v and returns the
// remaining bytes.
func UnmarshalFirst(data []byte, v interface{}) ([]byte, error) {
	return decMode.UnmarshalFirst(data, v)
}

// Wellformed returns an error if data is not exactly one well-formed item.
func Wellformed(data []byte) error {
	return cbor.Wellformed(data)
}

// IndefiniteArray is encoded as 0x9f, every element, 0xff. The length of the
// sequence is never declared up front.
type IndefiniteArray []interface{}

// MarshalCBOR implements cbor.Marshaler.
func (a IndefiniteArray) MarshalCBOR() ([]byte, error) {
	buf := []byte{indefiniteArrayStart}
	for i, item := range a {
		b, err := Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		buf = append(buf, b...)
	}
	return append(buf, breakCode), nil
}

// SplitIndefiniteArray returns the raw elements of an indefinite-length
// array, failing if data holds a definite-length one.
func SplitIndefiniteArray(data []byte) ([]cbor.RawMessage, error) {
	if len(data) <= 0 {
		return nil, ErrTruncated
	}
	if data[0] != indefiniteArrayStart {
		major, _, _, _, err := ReadHead(data)
		if err != nil {
			return nil, err
		}
		if major != majorArray {
			return nil, ErrUnexpectedType
		}
		return nil, ErrNotIndefinite
	}

	items := make([]cbor.RawMessage, 0)
	rest := data[1:]
	for {
		if len(rest) <= 0 {
			return nil, ErrTruncated
		}
		if rest[0] == breakCode {
			rest = rest[1:]
			break
		}
		var item cbor.RawMessage
		var err error
		if rest, err = UnmarshalFirst(rest, &item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if len(rest) > 0 {
		return nil, ErrTrailingBytes
	}
	return items, nil
}

// EmbedCBOR encodes v and wraps the result as #6.24(bytes).
func EmbedCBOR(v interface{}) (cbor.Tag, error) {
	inner, err := Marshal(v)
	if err != nil {
		return cbor.Tag{}, err
	}
	return cbor.Tag{Number: TagEmbeddedCBOR, Content: inner}, nil
}

// UnembedCBOR reads a #6.24(bytes) item and decodes the embedded bytes into v.
func UnembedCBOR(data []byte, v interface{}) error {
	var tag cbor.RawTag
	if err := Unmarshal(data, &tag); err != nil {
		return err
	}
	if tag.Number != TagEmbeddedCBOR {
		return fmt.Errorf("%w: %d", ErrUnexpectedTag, tag.Number)
	}
	var inner []byte
	if err := Unmarshal(tag.Content, &inner); err != nil {
		return err
	}
	return Unmarshal(inner, v)
}

// MapEntry is a single key/value pair of an OrderedMap.
type MapEntry struct {
	Key   interface{}
	Value interface{}
}

// OrderedMap is a CBOR map whose pairs are written in slice order, with no
// key sorting. Decoded entries hold cbor.RawMessage keys and values.
type OrderedMap []MapEntry

// MarshalCBOR implements cbor.Marshaler.
func (m OrderedMap) MarshalCBOR() ([]byte, error) {
	buf := AppendHead(nil, majorMap, uint64(len(m)))
	for _, entry := range m {
		k, err := Marshal(entry.Key)
		if err != nil {
			return nil, fmt.Errorf("map key: %w", err)
		}
		v, err := Marshal(entry.Value)
		if err != nil {
			return nil, fmt.Errorf("map value: %w", err)
		}
		buf = append(buf, k...)
		buf = append(buf, v...)
	}
	return buf, nil
}

// UnmarshalCBOR implements cbor.Unmarshaler preserving the pair order found
// in data. Both definite and indefinite maps are accepted.
func (m *OrderedMap) UnmarshalCBOR(data []byte) error {
	major, count, indefinite, headLen, err := ReadHead(data)
	if err != nil {
		return err
	}
	if major != majorMap {
		return ErrUnexpectedType
	}

	entries := make(OrderedMap, 0)
	rest := data[headLen:]
	for i := uint64(0); indefinite || i < count; i++ {
		if len(rest) <= 0 {
			return ErrTruncated
		}
		if indefinite && rest[0] == breakCode {
			rest = rest[1:]
			break
		}
		var key, value cbor.RawMessage
		if rest, err = UnmarshalFirst(rest, &key); err != nil {
			return err
		}
		if rest, err = UnmarshalFirst(rest, &value); err != nil {
			return err
		}
		entries = append(entries, MapEntry{key, value})
	}
	if len(rest) > 0 {
		return ErrTrailingBytes
	}

	*m = entries
	return nil
}

// AppendHead appends the initial byte(s) of an item of the given major type
// and argument, always in the shortest form.
func AppendHead(buf []byte, major byte, arg uint64) []byte {
	mt := major << 5
	switch {
	case arg < 24:
		return append(buf, mt|byte(arg))
	case arg <= 0xff:
		return append(buf, mt|24, byte(arg))
	case arg <= 0xffff:
		return append(buf, mt|25, byte(arg>>8), byte(arg))
	case arg <= 0xffffffff:
		return append(buf, mt|26,
			byte(arg>>24), byte(arg>>16), byte(arg>>8), byte(arg))
	default:
		return append(buf, mt|27,
			byte(arg>>56), byte(arg>>48), byte(arg>>40), byte(arg>>32),
			byte(arg>>24), byte(arg>>16), byte(arg>>8), byte(arg))
	}
}

// ReadHead parses the initial byte(s) of the item at the start of data. For
// indefinite-length items arg is zero and indefinite is true.
func ReadHead(data []byte) (major byte, arg uint64, indefinite bool, n int, err error) {
	if len(data) <= 0 {
		return 0, 0, false, 0, ErrTruncated
	}
	major = data[0] >> 5
	info := data[0] & 0x1f

	switch {
	case info < 24:
		return major, uint64(info), false, 1, nil
	case info == 31:
		return major, 0, true, 1, nil
	case info > 27:
		return 0, 0, false, 0, fmt.Errorf("invalid additional info %d", info)
	}

	size := 1 << (info - 24)
	if len(data) < 1+size {
		return 0, 0, false, 0, ErrTruncated
	}
	for _, b := range data[1 : 1+size] {
		arg = arg<<8 | uint64(b)
	}
	return major, arg, false, 1 + size, nil
}

// EncodeUint returns the CBOR encoding of an unsigned integer.
func EncodeUint(v uint64) []byte {
	return AppendHead(nil, majorUnsigned, v)
}

// BytesHead returns the head of a byte string of the given length.
func BytesHead(length int) []byte {
	return AppendHead(nil, majorBytes, uint64(length))
}
