package main

import (
	"context"
	"flag"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/jcorbin/forth79/internal/fileinput"
	"github.com/jcorbin/forth79/internal/flushio"
	"github.com/jcorbin/forth79/internal/logio"
	"github.com/jcorbin/forth79/internal/panicerr"
	"github.com/jcorbin/forth79/internal/runeio"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx := context.Background()

	var (
		timeout  time.Duration
		trace    bool
		memLimit uint
		dump     bool
		teeName  string
		prompt   string
	)
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.UintVar(&memLimit, "mem-limit", 0, "limit the stack to this many bytes, 2 per cell")
	flag.BoolVar(&dump, "dump", false, "log a dump of engine state when done")
	flag.StringVar(&teeName, "tee", "", "copy all output into a transcript file")
	flag.StringVar(&prompt, "prompt", "ok> ", "interactive prompt")
	flag.Parse()

	var log logio.Logger
	log.SetOutput(os.Stderr)

	var opts []Option
	if trace {
		opts = append(opts, WithLogf(log.Leveledf("TRACE")))
	}
	if memLimit != 0 {
		opts = append(opts, WithMemLimit(memLimit))
	}
	e := New(opts...)

	out := flushio.NewWriteFlusher(os.Stdout)
	if teeName != "" {
		f, err := os.Create(teeName)
		if err != nil {
			log.Errorf("failed to create transcript: %v", err)
			return log.ExitCode()
		}
		defer func() { log.ErrorIf(f.Close()) }()
		out = flushio.WriteFlushers(out, flushio.NewWriteFlusher(f))
	}

	sess := session{Engine: e, out: out}
	if args := flag.Args(); len(args) > 0 {
		in := &fileinput.Input{}
		defer in.Close()
		for _, name := range args {
			if name == "-" {
				in.Queue = append(in.Queue, runeio.Named("<stdin>", os.Stdin))
				continue
			}
			f, err := os.Open(name)
			if err != nil {
				log.Errorf("failed to open %v: %v", name, err)
				return log.ExitCode()
			}
			in.Queue = append(in.Queue, f)
		}
		sess.in = in
	} else if term.IsTerminal(int(os.Stdin.Fd())) {
		repl, err := newREPL(e, prompt)
		if err != nil {
			log.Errorf("failed to start interactive session: %v", err)
			return log.ExitCode()
		}
		defer repl.Close()
		sess.in = repl
		sess.endLines = true
	} else {
		sess.in = &fileinput.Input{Queue: []io.Reader{runeio.Named("<stdin>", os.Stdin)}}
	}

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	logSessionError(&log, sess.Run(ctx), trace)
	if trace && sess.failed > 0 {
		log.Printf("TRACE", "%v line(s) failed", sess.failed)
	}

	if dump {
		lw := &logio.Writer{Logf: log.Leveledf("DUMP")}
		engineDumper{e: e, out: lw, compiled: trace}.dump()
		log.ErrorIf(lw.Close())
	}
	return log.ExitCode()
}

// logSessionError logs any session error; a recovered panic is logged as a
// one line error, with its stack following only when tracing.
func logSessionError(log *logio.Logger, err error, trace bool) {
	if !panicerr.IsPanic(err) {
		log.ErrorIf(err)
		return
	}
	log.Errorf("%v", err)
	if trace {
		log.Printf("TRACE", "panic stack: %s", panicerr.PanicStack(err))
	}
}
