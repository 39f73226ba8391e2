package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/philipp01105/sessionlog/core"
	"github.com/philipp01105/sessionlog/handler"
	"github.com/philipp01105/sessionlog/logger"
)

type renderOptions struct {
	engine string
	input  string
	output string
	at     string
}

func newRenderCommand(a *app) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render records read from stdin or a file",
		Long: `Render reads one record per line and writes a complete session
document. A line has the form

  LEVEL|primary|detail|...

where LEVEL is optional (default info) and every detail becomes a
continuation line of the record. Empty lines are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRender(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.engine, "engine", "e", "", "formatting engine (default from config)")
	flags.StringVarP(&opts.input, "input", "i", "", "input file (default stdin)")
	flags.StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	flags.StringVar(&opts.at, "at", "", "render every time as this RFC 3339 instant")

	return cmd
}

func (a *app) runRender(cmd *cobra.Command, opts *renderOptions) error {
	cfg := *a.cfg
	if opts.engine != "" {
		cfg.Engine = opts.engine
	}
	engine, err := cfg.NewEngine()
	if err != nil {
		return err
	}

	session := cfg.NewSession()
	if opts.at != "" {
		t, err := time.Parse(time.RFC3339, opts.at)
		if err != nil {
			return fmt.Errorf("--at: %w", err)
		}
		session.Clock = core.FixedClock(t)
	}

	var in io.Reader = cmd.InOrStdin()
	if opts.input != "" {
		f, err := os.Open(opts.input)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	var out io.Writer = cmd.OutOrStdout()
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	a.diag.Debug("rendering session",
		logger.String("engine", engine.Name()),
		logger.String("session", session.Name),
	)

	bw := bufio.NewWriter(out)
	sink, err := handler.NewSink(bw, engine, session, nil)
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		entry, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		if !entry.Level.Renderable() {
			a.diag.Warning("skipping record with filter-only level",
				logger.Int("line", lineNo),
				logger.String("level", entry.Level.String()),
			)
			core.PutEntry(entry)
			continue
		}
		entry.Time = session.Now()
		err := sink.Write(entry)
		core.PutEntry(entry)
		if err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		a.diag.Error("reading input failed", logger.Int("line", lineNo), logger.Err(err))
		_ = sink.Finalize()
		_ = bw.Flush()
		return err
	}

	if err := sink.Finalize(); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	a.diag.Debug("session rendered",
		logger.Int("lines", lineNo),
		logger.Int64("records", int64(sink.Stats().GetProcessed())),
	)
	return nil
}

// parseLine splits "LEVEL|primary|detail..." into an entry. A first field
// that is not a level name is part of the message. Blank lines yield false.
func parseLine(line string) (*core.Entry, bool) {
	if strings.TrimSpace(line) == "" {
		return nil, false
	}

	fields := strings.Split(line, "|")
	level := core.InfoLevel
	if len(fields) > 1 {
		if l, err := core.ParseLevel(strings.TrimSpace(fields[0])); err == nil {
			level = l
			fields = fields[1:]
		}
	}

	entry := core.GetEntry()
	entry.Level = level
	entry.Parts = append(entry.Parts, core.Texts(fields...)...)
	return entry, true
}
