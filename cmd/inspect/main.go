package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/spoolkit/spool/codec"
	"github.com/spoolkit/spool/schema"
)

func main() {
	var (
		schemaFile  = flag.String("schema", "", "Path to schema TOML file")
		typeName    = flag.String("type", "", "Schema type to decode as")
		exprSrc     = flag.String("expr", "", "Ad-hoc type expression instead of -type")
		inputFile   = flag.String("in", "", "Binary input file (.zst is decompressed)")
		hexInput    = flag.String("hex", "", "Inline hex input")
		list        = flag.Bool("list", false, "List schema types and exit")
		debug       = flag.Bool("debug", false, "Log schema compilation")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *schemaFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: inspect -schema <types.toml> -type <name> (-in <file> | -hex <bytes>)")
		fmt.Fprintln(os.Stderr, "       inspect -schema <types.toml> -list")
		fmt.Fprintln(os.Stderr, "       inspect -schema <types.toml> -i  (interactive mode)")
		os.Exit(1)
	}

	if *debug {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		schema.SetLogger(logger)
	}

	if *interactive {
		if err := runInteractive(*schemaFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*schemaFile, *typeName, *exprSrc, *inputFile, *hexInput, *list); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(schemaFile, typeName, exprSrc, inputFile, hexInput string, listOnly bool) error {
	f, err := schema.Load(schemaFile)
	if err != nil {
		return err
	}
	s, err := schema.Compile(f)
	if err != nil {
		return err
	}

	fmt.Printf("Schema: %s\n", schemaFile)
	fmt.Printf("Types:\n")
	for _, name := range s.Types() {
		fmt.Printf("  %s  %s\n", name, describeType(f.Types[name]))
	}

	if listOnly {
		return nil
	}

	var c codec.Codec[any]
	var label string
	switch {
	case exprSrc != "":
		label = exprSrc
		c, err = s.Expr(exprSrc)
	case typeName != "":
		label = typeName
		c, err = s.Codec(typeName)
	default:
		return fmt.Errorf("specify -type or -expr to decode")
	}
	if err != nil {
		return err
	}

	data, err := readInput(inputFile, hexInput)
	if err != nil {
		return err
	}

	v, err := codec.Unmarshal(c, data)
	if err != nil {
		fmt.Printf("\n%s", hex.Dump(data))
		return err
	}

	fmt.Printf("\nDecoded %s (%d bytes):\n", label, len(data))
	fmt.Printf("%s", hex.Dump(data))
	fmt.Printf("\n%s\n", renderValue(v, ""))
	return nil
}

func describeType(def schema.TypeDef) string {
	switch {
	case len(def.Record) > 0:
		return fmt.Sprintf("record, %d fields", len(def.Record))
	case len(def.Union) > 0:
		return fmt.Sprintf("union<%s>, %d variants", def.Tag, len(def.Union))
	default:
		return "alias = " + def.Alias
	}
}

// parseHex decodes a hex string, ignoring whitespace between bytes.
func parseHex(s string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' {
			return -1
		}
		return r
	}, s)
	data, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("parse hex: %w", err)
	}
	return data, nil
}

// readInput resolves the input bytes from -hex or -in, decompressing
// files with a .zst suffix.
func readInput(inputFile, hexInput string) ([]byte, error) {
	if hexInput != "" {
		return parseHex(hexInput)
	}
	if inputFile == "" {
		return nil, fmt.Errorf("specify -in or -hex for input")
	}
	data, err := os.ReadFile(inputFile)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if strings.HasSuffix(inputFile, ".zst") {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		data, err = dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("decompress %s: %w", inputFile, err)
		}
	}
	return data, nil
}

var (
	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	strStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	numStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

var colorized = term.IsTerminal(int(os.Stdout.Fd()))

func styled(st lipgloss.Style, s string) string {
	if !colorized {
		return s
	}
	return st.Render(s)
}

// renderValue pretty-prints a decoded dynamic value as an indented tree.
func renderValue(v any, indent string) string {
	switch t := v.(type) {
	case nil:
		return styled(dimStyle, "none")
	case map[string]any:
		if len(t) == 0 {
			return "{}"
		}
		var b strings.Builder
		b.WriteString("{\n")
		for _, k := range sortedKeys(t) {
			b.WriteString(indent + "  ")
			b.WriteString(styled(keyStyle, k))
			b.WriteString(": ")
			b.WriteString(renderValue(t[k], indent+"  "))
			b.WriteString("\n")
		}
		b.WriteString(indent + "}")
		return b.String()
	case []any:
		if len(t) == 0 {
			return "[]"
		}
		var b strings.Builder
		b.WriteString("[\n")
		for _, e := range t {
			b.WriteString(indent + "  ")
			b.WriteString(renderValue(e, indent+"  "))
			b.WriteString("\n")
		}
		b.WriteString(indent + "]")
		return b.String()
	case []byte:
		return styled(numStyle, fmt.Sprintf("0x%x", t))
	case schema.Tagged:
		if t.Value == nil {
			return styled(tagStyle, t.Name)
		}
		return styled(tagStyle, t.Name) + " " + renderValue(t.Value, indent)
	case string:
		return styled(strStyle, strconv.Quote(t))
	default:
		return styled(numStyle, fmt.Sprintf("%v", t))
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
