package output

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingPrinter struct {
	lines []string
}

func (r *recordingPrinter) Printf(format string, a ...any) (n int, err error) {
	line := fmt.Sprintf(format, a...)
	r.lines = append(r.lines, line)
	return len(line), nil
}

func TestTaggedPrinter(t *testing.T) {
	rec := &recordingPrinter{}
	tagged := TaggedPrinter{Tag: "robot", P: rec}

	tagged.Printf("hello %d\n", 42)

	assert.Equal(t, []string{"[robot] hello 42\n"}, rec.lines)
}
