package types

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ryogrid/HeapDB/common"
)

// Value is a field value of a tuple
type Value struct {
	valueType TypeID
	integer   *int32
	varchar   *string
}

func NewInteger(value int32) Value {
	return Value{Integer, &value, nil}
}

// NewVarchar truncates value to the max payload length of a string field.
// the cut never splits a UTF-8 encoded rune
func NewVarchar(value string) Value {
	if len(value) > common.StringMaxLength {
		cut := common.StringMaxLength
		for cut > 0 && !utf8.RuneStart(value[cut]) {
			cut--
		}
		value = value[:cut]
	}
	return Value{Varchar, nil, &value}
}

// NewValueFromBytes decodes a fixed width field. returns nil when data is not a valid encoding
func NewValueFromBytes(data []byte, valueType TypeID) *Value {
	if uint32(len(data)) < valueType.Size() {
		return nil
	}
	switch valueType {
	case Integer:
		v := NewInteger(int32(NewInt32FromBytes(data[:4])))
		return &v
	case Varchar:
		length := uint32(NewUInt32FromBytes(data[:4]))
		if length > common.StringMaxLength {
			return nil
		}
		v := NewVarchar(string(data[4 : 4+length]))
		return &v
	}
	return nil
}

func (v Value) ValueType() TypeID {
	return v.valueType
}

func (v Value) ToInteger() int32 {
	return *v.integer
}

func (v Value) ToVarchar() string {
	return *v.varchar
}

func (v Value) Size() uint32 {
	return v.valueType.Size()
}

func (v Value) CompareEquals(right Value) bool {
	if v.valueType != right.valueType {
		return false
	}
	switch v.valueType {
	case Integer:
		return *v.integer == *right.integer
	case Varchar:
		return *v.varchar == *right.varchar
	}
	return false
}

func (v Value) CompareNotEquals(right Value) bool {
	return !v.CompareEquals(right)
}

func (v Value) CompareLessThan(right Value) bool {
	if v.valueType != right.valueType {
		return false
	}
	switch v.valueType {
	case Integer:
		return *v.integer < *right.integer
	case Varchar:
		return *v.varchar < *right.varchar
	}
	return false
}

func (v Value) CompareGreaterThan(right Value) bool {
	if v.valueType != right.valueType {
		return false
	}
	switch v.valueType {
	case Integer:
		return *v.integer > *right.integer
	case Varchar:
		return *v.varchar > *right.varchar
	}
	return false
}

// NewValueFromString parses text as a value of valueType
func NewValueFromString(text string, valueType TypeID) (Value, error) {
	switch valueType {
	case Integer:
		i, err := strconv.ParseInt(strings.TrimSpace(text), 10, 32)
		if err != nil {
			return Value{}, err
		}
		return NewInteger(int32(i)), nil
	case Varchar:
		return NewVarchar(text), nil
	}
	return Value{}, fmt.Errorf("can not parse %q as %s", text, valueType)
}

// Serialize encodes the value into exactly Size() bytes
func (v Value) Serialize() []byte {
	switch v.valueType {
	case Integer:
		return Int32(*v.integer).Serialize()
	case Varchar:
		buf := make([]byte, common.StringFieldSize)
		copy(buf, UInt32(len(*v.varchar)).Serialize())
		copy(buf[4:], *v.varchar)
		return buf
	}
	return []byte{}
}

func (v Value) ToString() string {
	switch v.valueType {
	case Integer:
		return strconv.Itoa(int(*v.integer))
	case Varchar:
		return *v.varchar
	}
	return "null"
}

func (v Value) String() string {
	return v.ToString()
}
