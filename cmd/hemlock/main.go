// Command hemlock is a REPL and file/string runner for the hemlock
// language, grounded on daios-ai-msg's mindscript CLI
// (mindscript/cmd/main.go): liner-backed line editing with a persisted
// history file and a multiline continuation probe, adapted from
// parse-error classification to hemlock's simpler brace/paren/bracket
// depth count since hemlock's parser does not distinguish "incomplete"
// from "malformed" the way mindscript's does.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/hemlocklang/hemlock"
	"github.com/hemlocklang/hemlock/pkg/object"
)

const (
	appName     = "hemlock"
	historyFile = ".hemlock_history"
	promptMain  = ">> "
	promptCont  = ".. "
	banner      = "hemlock REPL — Ctrl+C to cancel input, Ctrl+D to exit. Type :help for commands."
	helpText    = `
REPL commands:
  :help            Show this help
  :quit / :exit    Exit the REPL
  :load <file>     Load & execute a file into the current session
  :reset           Reset the interpreter (new empty global scope)
`
)

func main() {
	var evalStr string
	flag.StringVar(&evalStr, "e", "", "Evaluate the given hemlock snippet and exit")
	flag.Parse()

	args := flag.Args()

	switch {
	case evalStr != "":
		os.Exit(runEvalString(evalStr))
	case len(args) > 0:
		os.Exit(runFile(args[0]))
	default:
		os.Exit(runREPL())
	}
}

func runFile(path string) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, path, err)
		return 1
	}
	env := hemlock.NewEnvironment()
	env.SetOutput(os.Stdout)
	return evalAndReport(string(src), env)
}

func runEvalString(code string) int {
	env := hemlock.NewEnvironment()
	env.SetOutput(os.Stdout)
	return evalAndReport(code, env)
}

func evalAndReport(src string, env *object.Environment) int {
	val, errs := hemlock.Eval(src, env)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", appName, e)
		}
		return 1
	}
	fmt.Println(hemlock.Inspect(val))
	return 0
}

func runREPL() int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	env := hemlock.NewEnvironment()
	env.SetOutput(os.Stdout)

	for {
		code, ok := readByDepthProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}

		trimmed := strings.TrimSpace(code)
		if strings.HasPrefix(trimmed, ":") {
			if done := handleReplCommand(&env, ln, trimmed); done {
				break
			}
			continue
		}
		if trimmed == "" {
			continue
		}

		val, errs := hemlock.Eval(code, env)
		if len(errs) > 0 {
			for _, e := range errs {
				fmt.Println(e)
			}
		} else {
			fmt.Println(hemlock.Inspect(val))
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
	return 0
}

// handleReplCommand handles :help, :quit, :reset, :load. env is a
// pointer to the REPL's binding so :reset can swap it for a fresh one.
func handleReplCommand(env **object.Environment, ln *liner.State, line string) (exit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd := strings.ToLower(fields[0])

	switch cmd {
	case ":help":
		fmt.Print(helpText)

	case ":quit", ":exit":
		return true

	case ":reset":
		*env = hemlock.NewEnvironment()
		(*env).SetOutput(os.Stdout)
		fmt.Println("interpreter reset.")

	case ":load":
		if len(fields) < 2 {
			fmt.Println("usage: :load <file>")
			return false
		}
		path := fields[1]
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("cannot read %s: %v\n", path, err)
			return false
		}
		val, errs := hemlock.Eval(string(src), *env)
		if len(errs) > 0 {
			for _, e := range errs {
				fmt.Println(e)
			}
		} else {
			fmt.Println(hemlock.Inspect(val))
			ln.AppendHistory(fmt.Sprintf(":load %s", path))
		}

	default:
		fmt.Println("unknown command. Type :help for help.")
	}
	return false
}

// readByDepthProbe reads one or more lines until the count of
// (/[/{ brackets balances, or returns early on Ctrl+D/Ctrl+C. Unlike a
// full reparse, this is a cheap syntactic heuristic good enough for an
// interactive session: a genuinely malformed expression is still caught
// by the parser once submitted, just one line later than mindscript's
// reparse-based probe would catch it.
func readByDepthProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder
	depth := 0

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
		depth += bracketDelta(line)

		if depth <= 0 {
			return b.String(), true
		}
	}
}

func bracketDelta(line string) int {
	delta := 0
	inString := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inString = !inString
		case '(', '[', '{':
			if !inString {
				delta++
			}
		case ')', ']', '}':
			if !inString {
				delta--
			}
		}
	}
	return delta
}
