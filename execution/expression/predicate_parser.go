package expression

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/ryogrid/HeapDB/errors"
	"github.com/ryogrid/HeapDB/storage/table/schema"
	"github.com/ryogrid/HeapDB/types"
)

// grammar of a WHERE like predicate text:
//   a = 1 AND (name != "bob" OR NOT b > 3)

type orClause struct {
	Left  *andClause   `@@`
	Right []*andClause `( "OR" @@ )*`
}

type andClause struct {
	Left  *notClause   `@@`
	Right []*notClause `( "AND" @@ )*`
}

type notClause struct {
	Not *notClause `  "NOT" @@`
	Sub *orClause  `| "(" @@ ")"`
	Cmp *cmpClause `| @@`
}

type cmpClause struct {
	Field string  `@Ident`
	Op    string  `@Op`
	Int   *string `( @Int`
	Str   *string `| @String )`
}

var predicateLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `(?i)\b(AND|OR|NOT)\b`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_.]*`},
	{Name: "Int", Pattern: `-?\d+`},
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Op", Pattern: `!=|[=<>]`},
	{Name: "Punct", Pattern: `[()]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

var predicateParser = participle.MustBuild[orClause](
	participle.Lexer(predicateLexer),
	participle.Elide("Whitespace"),
	participle.Unquote("String"),
	participle.CaseInsensitive("Keyword"),
)

// ParsePredicate builds a Predicate over tuples of sc from text.
// A field name is either the full name in sc ("t.a" on an aliased schema) or the part after the alias ("a").
func ParsePredicate(sc *schema.Schema, text string) (Predicate, error) {
	parsed, err := predicateParser.ParseString("", text)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", text, err, errors.ErrInvalidPredicate)
	}
	return parsed.build(sc)
}

func (c *orClause) build(sc *schema.Schema) (Predicate, error) {
	ret, err := c.Left.build(sc)
	if err != nil {
		return nil, err
	}
	for _, right := range c.Right {
		rp, err := right.build(sc)
		if err != nil {
			return nil, err
		}
		ret = NewLogicalOp(ret, rp, OR)
	}
	return ret, nil
}

func (c *andClause) build(sc *schema.Schema) (Predicate, error) {
	ret, err := c.Left.build(sc)
	if err != nil {
		return nil, err
	}
	for _, right := range c.Right {
		rp, err := right.build(sc)
		if err != nil {
			return nil, err
		}
		ret = NewLogicalOp(ret, rp, AND)
	}
	return ret, nil
}

func (c *notClause) build(sc *schema.Schema) (Predicate, error) {
	switch {
	case c.Not != nil:
		inner, err := c.Not.build(sc)
		if err != nil {
			return nil, err
		}
		return NewLogicalOp(inner, nil, NOT), nil
	case c.Sub != nil:
		return c.Sub.build(sc)
	default:
		return c.Cmp.build(sc)
	}
}

func (c *cmpClause) build(sc *schema.Schema) (Predicate, error) {
	colIdx, err := resolveField(sc, c.Field)
	if err != nil {
		return nil, err
	}
	colType, _ := sc.GetFieldType(colIdx)

	var literal string
	switch {
	case colType == types.Integer && c.Int != nil:
		literal = *c.Int
	case colType == types.Varchar && c.Str != nil:
		literal = *c.Str
	default:
		return nil, fmt.Errorf("field %s is %s: %w", c.Field, colType, errors.ErrInvalidPredicate)
	}
	val, err := types.NewValueFromString(literal, colType)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", literal, err, errors.ErrInvalidPredicate)
	}

	var cmpType ComparisonType
	switch c.Op {
	case "=":
		cmpType = Equal
	case "!=":
		cmpType = NotEqual
	case "<":
		cmpType = LessThan
	case ">":
		cmpType = GreaterThan
	}
	return NewComparison(NewColumnValue(colIdx, colType), NewConstantValue(val), cmpType), nil
}

func resolveField(sc *schema.Schema, name string) (uint32, error) {
	if colIdx, err := sc.GetColIndex(name); err == nil {
		return colIdx, nil
	}
	if !strings.Contains(name, ".") {
		for i, colName := range sc.GetNames() {
			if strings.HasSuffix(colName, "."+name) {
				return uint32(i), nil
			}
		}
	}
	return 0, fmt.Errorf("field %s: %w", name, errors.ErrNotFound)
}
