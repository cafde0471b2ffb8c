package netconsole

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/frc-utilities/libds/pkgs/output"
	"github.com/frc-utilities/libds/pkgs/protocol"
)

// Console mirrors the robot's console output: every UDP datagram arriving
// on the netconsole port is printed line by line. The text stream is
// one-way here; nothing is sent back.
type Console struct {
	spec protocol.SocketSpec
	p    output.Printer
}

func New(spec protocol.SocketSpec, p output.Printer) *Console {
	return &Console{spec: spec, p: p}
}

// Run listens until ctx is cancelled. A disabled spec returns immediately.
func (c *Console) Run(ctx context.Context) error {
	if c.spec.Disabled {
		return nil
	}

	conn, err := net.ListenUDP("udp", &net.UDPAddr{Port: int(c.spec.InPort)})
	if err != nil {
		return fmt.Errorf("cannot listen for console output on port %d: %w", c.spec.InPort, err)
	}

	logrus.Debugf("Listening for robot console output on %s", conn.LocalAddr())
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	buf := make([]byte, 4096)
	for {
		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("console receive error: %w", err)
		}
		for _, line := range strings.Split(strings.TrimRight(string(buf[:n]), "\n"), "\n") {
			c.p.Printf("%s\n", line)
		}
	}
}
