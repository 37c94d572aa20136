package ui

import (
	"fmt"
	"io"
	"strings"
)

// Printer renders styled status output. A nil tee discards nothing; when
// set, every line is also written unstyled to the tee (the run log).
type Printer struct {
	out io.Writer
	tee io.Writer
}

// NewPrinter creates a Printer writing styled output to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// WithTee returns a copy of the Printer that duplicates every line,
// unstyled, to w.
func (p *Printer) WithTee(w io.Writer) *Printer {
	return &Printer{out: p.out, tee: w}
}

func (p *Printer) line(mark string, style func(...string) string, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(p.out, style(mark+" "+msg))
	if p.tee != nil {
		fmt.Fprintln(p.tee, mark+" "+msg)
	}
}

// Title prints the run banner.
func (p *Printer) Title(text string) {
	fmt.Fprintln(p.out, titleStyle.Render(text))
	fmt.Fprintln(p.out, dimStyle.Render(strings.Repeat("=", len(text))))
	if p.tee != nil {
		fmt.Fprintln(p.tee, text)
	}
}

// Section prints a step heading.
func (p *Printer) Section(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(p.out, sectionStyle.Render(msg))
	if p.tee != nil {
		fmt.Fprintln(p.tee, "== "+msg)
	}
}

// Success prints a green [OK] line.
func (p *Printer) Success(format string, args ...any) {
	p.line(checkMark, okStyle.Render, format, args...)
}

// Warn prints a yellow [??] line.
func (p *Printer) Warn(format string, args ...any) {
	p.line(warnMark, warnStyle.Render, format, args...)
}

// Fail prints a red [!!] line.
func (p *Printer) Fail(format string, args ...any) {
	p.line(crossMark, failStyle.Render, format, args...)
}

// Info prints a dim [--] line.
func (p *Printer) Info(format string, args ...any) {
	p.line(infoMark, dimStyle.Render, format, args...)
}

// Command prints a literal command the operator can copy and run.
func (p *Printer) Command(cmd string) {
	fmt.Fprintln(p.out, "    "+commandStyle.Render(cmd))
	if p.tee != nil {
		fmt.Fprintln(p.tee, "    $ "+cmd)
	}
}

// Instructions prints a numbered manual-steps block.
func (p *Printer) Instructions(heading string, steps []string) {
	fmt.Fprintln(p.out, warnStyle.Render(heading))
	for i, s := range steps {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, s)
	}
	if p.tee != nil {
		fmt.Fprintln(p.tee, heading)
		for i, s := range steps {
			fmt.Fprintf(p.tee, "  %d. %s\n", i+1, s)
		}
	}
}

// Blank prints an empty line.
func (p *Printer) Blank() {
	fmt.Fprintln(p.out)
	if p.tee != nil {
		fmt.Fprintln(p.tee)
	}
}
