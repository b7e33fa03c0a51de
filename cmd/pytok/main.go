package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	pytok "github.com/olyzko/pytok"
)

const (
	appName     = "pytok"
	historyFile = ".pytok_history"
	promptMain  = ">>> "
	promptCont  = "... "
)

var banner = fmt.Sprintf("pytok %s token REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", pytok.Version)

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	switch cmd {
	case "lex":
		os.Exit(cmdLex(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(pytok.Version)
		return
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`pytok %s (built %s)

Usage:
  %s lex <file.py> [-k keywords-file] [--color]   Tokenize a file and print the stream.
  %s repl [-k keywords-file]                      Interactive tokenizer.
  %s version                                      Print the compiled version.

The keywords file is either a whitespace-separated word list or a
YAML document with a "keywords" sequence (.yaml/.yml).

`, pytok.Version, pytok.BuildDate, appName, appName, appName)
}

func loadKeywords(path string) (pytok.KeywordSet, error) {
	if path == "" {
		return pytok.DefaultKeywords(), nil
	}
	return pytok.ReadKeywordsFile(path)
}

// -----------------------------------------------------------------------------
// lex
// -----------------------------------------------------------------------------

func cmdLex(args []string) int {
	fs := flag.NewFlagSet("lex", flag.ContinueOnError)
	keywordsPath := fs.String("k", "", "keywords file (text or YAML)")
	color := fs.Bool("color", false, "colorize the token stream")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s lex <file.py> [-k keywords-file] [--color]\n", appName)
		return 2
	}
	file := fs.Arg(0)
	// Flags may also follow the file name.
	if err := fs.Parse(fs.Args()[1:]); err != nil {
		return 2
	}

	keywords, err := loadKeywords(*keywordsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot load keywords: %v\n", appName, err)
		return 1
	}

	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}

	pytok.EnableColor = *color
	tokens, err := pytok.NewLexer(pytok.NewSource(src), keywords).Analyze()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s: %v\n", appName, file, err)
		return 1
	}

	fmt.Print(pytok.FormatTokens(tokens))

	errTokens := pytok.ErrorTokens(tokens)
	for _, tok := range errTokens {
		fmt.Fprintln(os.Stderr, red(fmt.Sprintf("%s in %s", strings.TrimRight(pytok.FormatErrorWithSource(tok, string(src)), "\n"), fileAbsOrOrig(file))))
	}
	if len(errTokens) > 0 {
		return 1
	}
	return 0
}

func fileAbsOrOrig(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(args []string) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	keywordsPath := fs.String("k", "", "keywords file (text or YAML)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	keywords, err := loadKeywords(*keywordsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot load keywords: %v\n", appName, err)
		return 1
	}

	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	pytok.EnableColor = true

	for {
		code, ok := readByLexProbe(ln, keywords, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}

		if strings.HasPrefix(strings.TrimSpace(code), ":") {
			switch strings.TrimSpace(strings.ToLower(code)) {
			case ":quit":
				return 0
			default:
				fmt.Printf("unknown command. Type :quit to exit.\n")
			}
			continue
		}

		if strings.TrimSpace(code) == "" {
			continue
		}

		tokens, err := pytok.LexString(code, keywords)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			continue
		}
		fmt.Print(pytok.FormatTokens(tokens))
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	return 0
}

// readByLexProbe reads lines until the accumulated chunk no longer
// ends mid-token: inside an unterminated triple-quoted string or on an
// active backslash continuation.
func readByLexProbe(ln *liner.State, keywords pytok.KeywordSet, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if lexIncomplete(src, keywords) {
			continue
		}
		return src, true
	}
}

func lexIncomplete(src string, keywords pytok.KeywordSet) bool {
	if strings.HasSuffix(src, "\\") {
		return true
	}
	tokens, err := pytok.LexString(src, keywords)
	if err != nil {
		return false
	}
	for _, tok := range pytok.ErrorTokens(tokens) {
		if tok.Value == "Missing closing triple quote." {
			return true
		}
	}
	return false
}
