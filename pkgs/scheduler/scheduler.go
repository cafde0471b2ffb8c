package scheduler

import (
	"context"
	"net"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/frc-utilities/libds/pkgs/metrics"
	"github.com/frc-utilities/libds/pkgs/protocol"
	"github.com/frc-utilities/libds/pkgs/sockets"
	"github.com/frc-utilities/libds/pkgs/state"
)

// Default grace windows before a silent peer is considered gone.
const (
	DefaultRobotGrace = 1 * time.Second
	DefaultFMSGrace   = 2 * time.Second
)

// Options tune the loop. Zero values pick the defaults; a nil Metrics
// disables instrumentation.
type Options struct {
	RobotGrace time.Duration
	FMSGrace   time.Duration
	Metrics    *metrics.DsMetrics
}

// Scheduler owns the threads the protocol core does not: one emission
// ticker per peer with a non-zero cadence, one watchdog per peer that can
// talk back. Inbound datagrams are parsed on the socket goroutines; a
// parse success raises the peer's comms flag and feeds its watchdog, an
// expiry lowers the flag and fires the protocol's reset hook.
type Scheduler struct {
	proto protocol.Protocol
	state *state.DsState
	opts  Options

	fms   *sockets.Peer
	robot *sockets.Peer

	fmsFeed   chan struct{}
	robotFeed chan struct{}
}

func New(proto protocol.Protocol, st *state.DsState, fms, robot *sockets.Peer, opts Options) *Scheduler {
	if opts.RobotGrace <= 0 {
		opts.RobotGrace = DefaultRobotGrace
	}
	if opts.FMSGrace <= 0 {
		opts.FMSGrace = DefaultFMSGrace
	}
	return &Scheduler{
		proto:     proto,
		state:     st,
		opts:      opts,
		fms:       fms,
		robot:     robot,
		fmsFeed:   make(chan struct{}, 1),
		robotFeed: make(chan struct{}, 1),
	}
}

// Run drives the loop until ctx is cancelled, then closes both sockets.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.robot.Open(s.handleRobotPacket); err != nil {
		return err
	}
	if err := s.fms.Open(s.handleFMSPacket); err != nil {
		s.robot.Close()
		return err
	}

	logrus.Infof("Starting %s loop", s.proto.Name())

	go s.emitLoop(ctx, "robot", s.proto.RobotInterval(), s.proto.BuildRobotPacket, s.robot)
	go s.emitLoop(ctx, "fms", s.proto.FMSInterval(), s.proto.BuildFMSPacket, s.fms)
	if interval := s.proto.RadioInterval(); interval > 0 {
		radio := sockets.NewPeer("radio", s.proto.Sockets().Radio, s.proto.RadioAddress)
		defer radio.Close()
		go s.emitLoop(ctx, "radio", interval, s.proto.BuildRadioPacket, radio)
	}

	go s.watchPeer(ctx, "robot", s.opts.RobotGrace, s.robotFeed, s.robotLost)
	go s.watchPeer(ctx, "fms", s.opts.FMSGrace, s.fmsFeed, s.fmsLost)

	<-ctx.Done()
	s.robot.Close()
	s.fms.Close()
	return ctx.Err()
}

func (s *Scheduler) emitLoop(ctx context.Context, peer string, interval time.Duration, build func() []byte, socket *sockets.Peer) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			data := build()
			if err := socket.Send(data); err != nil {
				logrus.Debugf("Dropping %s packet: %v", peer, err)
				continue
			}
			s.countSent(peer)
		}
	}
}

// watchPeer considers the peer gone when no feed arrives within the grace
// window, and keeps reporting it gone once per window until it talks again.
func (s *Scheduler) watchPeer(ctx context.Context, peer string, grace time.Duration, feed <-chan struct{}, expired func()) {
	timer := time.NewTimer(grace)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-feed:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(grace)
		case <-timer.C:
			expired()
			s.countExpired(peer)
			timer.Reset(grace)
		}
	}
}

func (s *Scheduler) handleRobotPacket(data []byte, source *net.UDPAddr) {
	if err := s.proto.ParseRobotPacket(data); err != nil {
		logrus.Debugf("Rejected robot packet from %s: %v", source, err)
		s.countFailure("robot")
		return
	}
	s.state.SetRobotComms(true)
	feedWatchdog(s.robotFeed)
	s.countReceived("robot")
}

func (s *Scheduler) handleFMSPacket(data []byte, source *net.UDPAddr) {
	if err := s.proto.ParseFMSPacket(data); err != nil {
		logrus.Debugf("Rejected FMS packet from %s: %v", source, err)
		s.countFailure("fms")
		return
	}
	s.state.SetFMSComms(true)
	feedWatchdog(s.fmsFeed)
	s.countReceived("fms")
}

func (s *Scheduler) robotLost() {
	if s.state.RobotComms() {
		logrus.Warn("Robot stopped responding")
	}
	s.state.SetRobotComms(false)
	s.state.SetRobotCode(false)
	s.state.SetVoltage(0)
	s.proto.ResetRobot()
}

func (s *Scheduler) fmsLost() {
	if s.state.FMSComms() {
		logrus.Warn("FMS stopped responding")
	}
	s.state.SetFMSComms(false)
	s.proto.ResetFMS()
}

func feedWatchdog(feed chan<- struct{}) {
	select {
	case feed <- struct{}{}:
	default:
	}
}

func (s *Scheduler) countSent(peer string) {
	if s.opts.Metrics != nil {
		s.opts.Metrics.PacketsSent.WithLabelValues(peer).Inc()
	}
}

func (s *Scheduler) countReceived(peer string) {
	if s.opts.Metrics != nil {
		s.opts.Metrics.PacketsReceived.WithLabelValues(peer).Inc()
	}
}

func (s *Scheduler) countFailure(peer string) {
	if s.opts.Metrics != nil {
		s.opts.Metrics.ParseFailures.WithLabelValues(peer).Inc()
	}
}

func (s *Scheduler) countExpired(peer string) {
	if s.opts.Metrics != nil {
		s.opts.Metrics.WatchdogExpirations.WithLabelValues(peer).Inc()
	}
}
