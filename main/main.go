package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ryogrid/HeapDB/common"
	"github.com/ryogrid/HeapDB/heapdb"
)

const version = "0.1.0"

// CLI defines the command-line interface for heapdb.
var CLI struct {
	Catalog     string `name:"catalog" short:"c" help:"Schema description file, one table per line" type:"path"`
	BufferPages int    `name:"buffer-pages" help:"Buffer pool size in pages" default:"50"`
	Verbose     bool   `name:"verbose" short:"v" help:"Print informational and debug logs"`

	Tables  TablesCmd  `cmd:"" help:"List tables with their schema"`
	Scan    ScanCmd    `cmd:"" help:"Sequential scan of a table"`
	Load    LoadCmd    `cmd:"" help:"Load comma separated rows into a table"`
	Gen     GenCmd     `cmd:"" help:"Insert generated rows into a table"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

type TablesCmd struct{}

type ScanCmd struct {
	Table   string `arg:"" help:"Table name"`
	Alias   string `help:"Alias prefixed to field names (default: table name)"`
	Where   string `help:"Filter predicate, e.g. 'age > 20 AND name != \"bob\"'"`
	JSON    bool   `name:"json" help:"Print rows as JSON" xor:"format"`
	Msgpack bool   `name:"msgpack" help:"Write rows as msgpack" xor:"format"`
}

type LoadCmd struct {
	Table    string `arg:"" help:"Table name"`
	DataFile string `arg:"" help:"Text file of comma separated rows" type:"existingfile"`
}

type GenCmd struct {
	Table string `arg:"" help:"Table name"`
	Rows  uint32 `arg:"" help:"Number of rows"`
	Seed  int64  `help:"Seed of generated values" default:"1"`
}

type VersionCmd struct{}

func openDB() (*heapdb.HeapDB, error) {
	if CLI.Catalog == "" {
		return nil, fmt.Errorf("--catalog is required")
	}
	if CLI.Verbose {
		common.LogLevelSetting |= common.INFO | common.DEBUG_INFO
		common.EnableDebug = true
	}
	return heapdb.NewHeapDB(CLI.Catalog, CLI.BufferPages)
}

func (c *TablesCmd) Run() error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Shutdown()
	return writeTables(os.Stdout, db.Tables())
}

func (c *ScanCmd) Run() error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Shutdown()

	result, desc, err := db.Scan(c.Table, c.Alias, c.Where)
	if err != nil {
		return err
	}
	switch {
	case c.JSON:
		return writeRowsEncoded(os.Stdout, desc, result, jsonHandle())
	case c.Msgpack:
		return writeRowsEncoded(os.Stdout, desc, result, msgpackHandle())
	}
	return writeRowsText(os.Stdout, desc, result)
}

func (c *LoadCmd) Run() error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Shutdown()

	f, err := os.Open(c.DataFile)
	if err != nil {
		return err
	}
	defer f.Close()

	count, err := db.LoadRows(c.Table, f)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", c.DataFile, err)
	}
	fmt.Printf("loaded %d rows into %s\n", count, c.Table)
	return nil
}

func (c *GenCmd) Run() error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Shutdown()

	if err = db.Generate(c.Table, c.Rows, c.Seed); err != nil {
		return err
	}
	fmt.Printf("generated %d rows into %s\n", c.Rows, c.Table)
	return nil
}

func (c *VersionCmd) Run() error {
	fmt.Printf("heapdb %s\n", version)
	return nil
}

func main() {
	// informational logs go to stdout, keep them out of scan output unless asked for
	common.LogLevelSetting = common.WARN | common.ERROR | common.FATAL

	ctx := kong.Parse(&CLI,
		kong.Name("heapdb"),
		kong.Description("Heap file storage engine with sequential scans"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
