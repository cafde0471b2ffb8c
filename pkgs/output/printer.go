package output

import "fmt"

type Printer interface {
	Printf(format string, a ...any) (n int, err error)
}

type ConsolePrinter struct{}

func (c ConsolePrinter) Printf(format string, a ...any) (n int, err error) {
	return fmt.Printf(format, a...)
}

// TaggedPrinter prefixes every line with a source tag, so robot console
// output is distinguishable from the driver station's own status lines.
type TaggedPrinter struct {
	Tag string
	P   Printer
}

func (t TaggedPrinter) Printf(format string, a ...any) (n int, err error) {
	return t.P.Printf("[%s] "+format, append([]any{t.Tag}, a...)...)
}
