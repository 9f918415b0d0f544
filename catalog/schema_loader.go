package catalog

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/notEpsilon/go-pair"
	"github.com/ryogrid/HeapDB/common"
	"github.com/ryogrid/HeapDB/errors"
	"github.com/ryogrid/HeapDB/storage/access"
	"github.com/ryogrid/HeapDB/storage/buffer"
	"github.com/ryogrid/HeapDB/storage/disk"
	"github.com/ryogrid/HeapDB/storage/table/schema"
	"github.com/ryogrid/HeapDB/types"
)

// schemaLine is one line of a schema description file: name(field type [pk], ...)
type schemaLine struct {
	Name   string       `@Ident "("`
	Fields []*fieldDecl `@@ ( "," @@ )* ")"`
}

type fieldDecl struct {
	Name       string `@Ident`
	Type       string `@Ident`
	Annotation string `@Ident?`
}

var schemaLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_.]*`},
	{Name: "Punct", Pattern: `[(),]`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
})

var schemaParser = participle.MustBuild[schemaLine](
	participle.Lexer(schemaLexer),
	participle.Elide("Whitespace"),
)

// TableDef is a parsed schema description line
type TableDef struct {
	Name       string
	Fields     []pair.Pair[string, types.TypeID]
	PrimaryKey string
}

func (def *TableDef) Schema() *schema.Schema {
	typeIds := make([]types.TypeID, 0, len(def.Fields))
	names := make([]string, 0, len(def.Fields))
	for _, field := range def.Fields {
		names = append(names, field.First)
		typeIds = append(typeIds, field.Second)
	}
	return schema.NewSchemaFromTypes(typeIds, names)
}

// ParseSchemaLine parses "name(field type, field type pk, ...)". Types are int or string (any case),
// the only annotation is pk.
func ParseSchemaLine(line string) (*TableDef, error) {
	parsed, err := schemaParser.ParseString("", line)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", line, err, errors.ErrInvalidCatalogEntry)
	}

	def := &TableDef{parsed.Name, make([]pair.Pair[string, types.TypeID], 0, len(parsed.Fields)), ""}
	for _, field := range parsed.Fields {
		typeId, err := types.ParseTypeID(field.Type)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", line, err)
		}
		switch field.Annotation {
		case "":
		case "pk":
			def.PrimaryKey = field.Name
		default:
			return nil, fmt.Errorf("%s: unknown annotation %s: %w", line, field.Annotation, errors.ErrInvalidCatalogEntry)
		}
		def.Fields = append(def.Fields, pair.Pair[string, types.TypeID]{First: field.Name, Second: typeId})
	}
	return def, nil
}

// LoadSchema reads catalogFile and registers one table per line. The backing file of
// table name is name.dat in the directory of catalogFile. Blank lines are skipped.
// Tables registered before a malformed line stay registered.
func (c *Catalog) LoadSchema(catalogFile string, bpm *buffer.BufferPoolManager) ([]uint32, error) {
	f, err := os.Open(catalogFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	baseFolder := filepath.Dir(catalogFile)
	loaded := make([]uint32, 0)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		def, err := ParseSchemaLine(line)
		if err != nil {
			return loaded, err
		}
		dm, err := disk.NewDiskManagerImpl(filepath.Join(baseFolder, def.Name+".dat"))
		if err != nil {
			return loaded, err
		}
		tableSchema := def.Schema()
		hf := access.NewHeapFile(dm, tableSchema, bpm)
		c.AddTable(hf, def.Name, def.PrimaryKey)
		loaded = append(loaded, hf.GetId())
		common.ShPrintf(common.INFO, "Added table : %s with schema %s\n", def.Name, tableSchema)
	}
	return loaded, scanner.Err()
}

// MustLoadSchema is LoadSchema for process startup. Any error terminates the process.
func (c *Catalog) MustLoadSchema(catalogFile string, bpm *buffer.BufferPoolManager) []uint32 {
	loaded, err := c.LoadSchema(catalogFile, bpm)
	if err != nil {
		log.Fatalln("can't load schema:", err)
	}
	return loaded
}
