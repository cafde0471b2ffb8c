package sockets

import (
	"fmt"
	"net"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/frc-utilities/libds/pkgs/protocol"
)

// Handler receives every inbound datagram of a peer, together with its
// source address. It runs on the peer's receive goroutine.
type Handler func(data []byte, source *net.UDPAddr)

// Peer owns the UDP endpoint pair of one protocol peer: a listener on the
// input port and a dialed connection towards <address>:<output port>.
// Datagrams are fire-and-forget; the protocol tolerates loss.
type Peer struct {
	name    string
	spec    protocol.SocketSpec
	address func() string

	mu      sync.Mutex
	in      *net.UDPConn
	out     *net.UDPConn
	outHost string
	learned string
	closed  bool
}

// NewPeer prepares a peer socket. address supplies the outbound host; when
// it returns an empty string the peer stays quiet until the remote side
// talks first, and the source of the most recent inbound datagram becomes
// the outbound host.
func NewPeer(name string, spec protocol.SocketSpec, address func() string) *Peer {
	return &Peer{name: name, spec: spec, address: address}
}

// Open binds the input port and starts the receive loop. Disabled peers
// open as inert no-ops.
func (p *Peer) Open(handler Handler) error {
	if p.spec.Disabled {
		return nil
	}

	in, err := net.ListenUDP("udp", &net.UDPAddr{Port: int(p.spec.InPort)})
	if err != nil {
		return fmt.Errorf("cannot listen for %s packets on port %d: %w", p.name, p.spec.InPort, err)
	}

	p.mu.Lock()
	p.in = in
	p.mu.Unlock()

	logrus.Debugf("Listening for %s packets on %s", p.name, in.LocalAddr())
	go p.receiveLoop(in, handler)
	return nil
}

func (p *Peer) receiveLoop(in *net.UDPConn, handler Handler) {
	buf := make([]byte, 1500)
	for {
		n, source, err := in.ReadFromUDP(buf)
		if err != nil {
			p.mu.Lock()
			closed := p.closed
			p.mu.Unlock()
			if !closed {
				logrus.Warnf("Receive error on %s socket: %v", p.name, err)
			}
			return
		}

		p.mu.Lock()
		p.learned = source.IP.String()
		p.mu.Unlock()

		data := make([]byte, n)
		copy(data, buf[:n])
		handler(data, source)
	}
}

// InPort reports the actually bound input port.
func (p *Peer) InPort() uint16 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.in == nil {
		return p.spec.InPort
	}
	return uint16(p.in.LocalAddr().(*net.UDPAddr).Port)
}

// Send emits one datagram towards the peer. A peer without a known host
// yet (FMS before its first packet) drops the datagram silently.
func (p *Peer) Send(data []byte) error {
	if p.spec.Disabled {
		return nil
	}

	host := p.address()
	p.mu.Lock()
	if host == "" {
		host = p.learned
	}
	if host == "" {
		p.mu.Unlock()
		return nil
	}
	if p.closed {
		p.mu.Unlock()
		return fmt.Errorf("cannot send to %s: socket closed", p.name)
	}

	// redial when the target host changed (team renumbered, FMS roamed)
	if p.out == nil || p.outHost != host {
		if p.out != nil {
			p.out.Close()
			p.out = nil
		}
		addr, err := net.ResolveUDPAddr("udp", net.JoinHostPort(host, strconv.Itoa(int(p.spec.OutPort))))
		if err != nil {
			p.mu.Unlock()
			return fmt.Errorf("cannot resolve %s address %s: %w", p.name, host, err)
		}
		conn, err := net.DialUDP("udp", nil, addr)
		if err != nil {
			p.mu.Unlock()
			return fmt.Errorf("cannot dial %s at %s: %w", p.name, addr, err)
		}
		p.out = conn
		p.outHost = host
	}
	out := p.out
	p.mu.Unlock()

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("cannot send %s packet: %w", p.name, err)
	}
	return nil
}

// Close tears down both endpoints.
func (p *Peer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	if p.in != nil {
		p.in.Close()
		p.in = nil
	}
	if p.out != nil {
		p.out.Close()
		p.out = nil
	}
	return nil
}
