/*
Command richtext is an interactive editor shell for rich text documents.

Usage:

	richtext [-trace level] [-markup html | -file path]

Commands are read line by line, e.g.

	rt > type Hello world
	rt > select 0 5
	rt > bold
	rt > html
	<strong>Hello</strong> world

Enter "help" for a list of commands. Quit with <ctrl>D or "quit".

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file in the repository root.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/richtext/console"
	"github.com/npillmayer/richtext/editor"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'richtext'
func tracer() tracing.Trace {
	return tracing.Select("richtext")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
		"trace.richtext":  "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	markup := flag.String("markup", "", "Initial content as inline HTML")
	filename := flag.String("file", "", "File to load initial content from")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError)
	pterm.Info.Println("Welcome to the rich text shell")
	tracer().Infof("Trace level is %s", *tlevel)
	//
	if *filename != "" {
		content, err := os.ReadFile(*filename)
		if err != nil {
			tracer().Errorf(err.Error())
			os.Exit(2)
		}
		*markup = string(content)
	}
	ed, err := editor.New(*markup)
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer ed.Close()
	//
	// set up REPL
	repl, err := readline.New("rt > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	defer repl.Close()
	intp := &Intp{editor: ed, repl: repl}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	intp.watch(ctx)
	//
	pterm.Info.Println("Quit with <ctrl>D")
	setTraceLevel(*tlevel)
	intp.REPL()
}

func setTraceLevel(l string) {
	switch strings.ToLower(l) {
	case "debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().SetTraceLevel(tracing.LevelInfo)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	editor *editor.Editor
	repl   *readline.Instance
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		name, args := parseCommand(line)
		quit, err := intp.execute(name, args)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// watch traces document changes as they are published by the editor.
func (intp *Intp) watch(ctx context.Context) {
	changes, ok := intp.editor.Subscribe(ctx, 16)
	if !ok {
		return
	}
	go func() {
		for c := range changes {
			tracer().Debugf("%s -> %q", c.Action, c.HTML)
		}
	}()
}

// parseCommand splits a line into a command name and its arguments. Commands
// which take text receive the remainder of the line as a single argument.
//
//	type Hello world     => "type", ["Hello world"]
//	insert 5 Hello       => "insert", ["Hello", "5"]
//	select 0 5           => "select", ["0", "5"]
func parseCommand(line string) (string, []string) {
	name, rest := line, ""
	if i := strings.IndexByte(line, ' '); i >= 0 {
		name, rest = line[:i], line[i+1:]
	}
	switch name {
	case "type", "paste", "link", "help":
		if rest == "" {
			return name, nil
		}
		return name, []string{rest}
	case "insert":
		at, text := rest, ""
		if i := strings.IndexByte(rest, ' '); i >= 0 {
			at, text = rest[:i], rest[i+1:]
		}
		if text == "" {
			return name, nil
		}
		return name, []string{text, at}
	}
	return name, strings.Fields(rest)
}

func (intp *Intp) execute(name string, args []string) (bool, error) {
	tracer().Infof("command %s %v", name, args)
	ed := intp.editor
	switch name {
	case "quit":
		return true, nil
	case "help":
		help()
	case "html":
		pterm.Println(ed.ToHTML())
	case "text":
		pterm.Println(ed.ToText())
	case "json":
		pterm.Println(ed.ToJSON())
	case "show":
		return false, console.NewPrinter(nil).Print(os.Stdout, ed.Document())
	case "dump":
		return false, console.Dump(os.Stdout, ed.Document())
	case "formats":
		sel := ed.Selection()
		pterm.Printfln("[%d,%d) %v", sel.Start, sel.End(), ed.ActiveFormats())
	default:
		if err := ed.Command(name, args...); err != nil {
			return false, err
		}
		sel := ed.Selection()
		pterm.Printfln("%s   [%d,%d)", ed.ToHTML(), sel.Start, sel.End())
	}
	return false, nil
}

func help() {
	pterm.Info.Println("Commands")
	pterm.Println(`
	type text            replace the selection by text
	insert pos text      insert text at position pos
	delete               backspace
	deleteForward        delete the character after the caret
	enter                insert a line break
	paste markup         paste HTML at the caret
	select start [len]   set the selection
	selectAll            select the complete document
	bold, italic, code, strikeThrough, subscript, superscript
	                     toggle a format for the selection
	link href, unlink    add or remove a link
	undo, redo           step through the history
	formats              list the formats active in the selection
	html, text, json     output the document
	show, dump           print the document to the console
	quit                 leave the shell
	`)
}
