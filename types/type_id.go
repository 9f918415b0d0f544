package types

import (
	"fmt"
	"strings"

	"github.com/ryogrid/HeapDB/common"
	"github.com/ryogrid/HeapDB/errors"
)

type TypeID int

const (
	Invalid TypeID = iota
	Integer
	// fixed length string
	Varchar
)

// Size returns the encoded byte length of a field of this type
func (t TypeID) Size() uint32 {
	switch t {
	case Integer:
		return 4
	case Varchar:
		return common.StringFieldSize
	}
	return 0
}

func (t TypeID) String() string {
	switch t {
	case Integer:
		return "INT_TYPE"
	case Varchar:
		return "STRING_TYPE"
	}
	return "INVALID_TYPE"
}

// ParseTypeID maps the type names of schema description files ("int", "string") to TypeID
func ParseTypeID(name string) (TypeID, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "int":
		return Integer, nil
	case "string":
		return Varchar, nil
	}
	return Invalid, fmt.Errorf("unknown type %s: %w", name, errors.ErrInvalidCatalogEntry)
}
