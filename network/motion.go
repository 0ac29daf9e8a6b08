package network

import (
	"io"
	"sync"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/knockback/game"
	"github.com/oomph-ac/knockback/knockback"
	"github.com/sandertv/gophertunnel/minecraft/protocol/packet"
	"github.com/sirupsen/logrus"
)

// PacketWriter is a connection packets may be written to, such as a *minecraft.Conn.
type PacketWriter interface {
	WritePacket(pk packet.Packet) error
}

// RuntimeIdentifiable is a victim that has a runtime ID on the network.
type RuntimeIdentifiable interface {
	RuntimeID() uint64
}

// motionEpsilon is the difference below which two motions sent on the same tick are considered equal.
const motionEpsilon = 1e-4

// MotionNotifier is a knockback.Notifier that sends the velocity of a victim to everyone viewing it using a
// SetActorMotion packet. Victims that do not implement RuntimeIdentifiable are ignored.
type MotionNotifier struct {
	log *logrus.Logger

	viewers func(victim knockback.Victim) []PacketWriter
	tick    func() uint64
	scale   float32

	mu sync.Mutex
	// sent holds the last motion sent per runtime ID on sentTick, so that strikes resolved twice in a tick
	// with the same result are sent only once. It is cleared when the tick changes.
	sent     map[uint64]mgl32.Vec3
	sentTick uint64
}

// NewMotionNotifier returns a MotionNotifier. The viewers function returns the connections of everyone
// viewing a victim, including the victim itself, and the tick function returns the current server tick.
// Without a tick function every strike is treated as happening on tick 0.
// The scale is the velocity scale of the knockback.System: velocities are divided by it to get blocks per
// tick. A scale of 0 is treated as game.TicksPerSecond.
func NewMotionNotifier(log *logrus.Logger, viewers func(victim knockback.Victim) []PacketWriter, tick func() uint64, scale float64) *MotionNotifier {
	if scale <= 0 {
		scale = game.TicksPerSecond
	}
	if tick == nil {
		tick = func() uint64 { return 0 }
	}
	if log == nil {
		log = logrus.New()
		log.Out = io.Discard
	}
	return &MotionNotifier{
		log:     log,
		viewers: viewers,
		tick:    tick,
		scale:   float32(scale),
		sent:    make(map[uint64]mgl32.Vec3),
	}
}

// NotifyVelocity ...
func (n *MotionNotifier) NotifyVelocity(victim knockback.Victim, velocity mgl64.Vec3) {
	id, ok := victim.(RuntimeIdentifiable)
	if !ok {
		return
	}
	rid, tick := id.RuntimeID(), n.tick()
	motion := game.Vec64To32(velocity).Mul(1 / n.scale)

	n.mu.Lock()
	if tick != n.sentTick {
		clear(n.sent)
		n.sentTick = tick
	}
	last, ok := n.sent[rid]
	if ok && approxEqual(last, motion) {
		n.mu.Unlock()
		return
	}
	n.sent[rid] = motion
	n.mu.Unlock()

	pk := &packet.SetActorMotion{EntityRuntimeID: rid, Velocity: motion, Tick: tick}
	for _, w := range n.viewers(victim) {
		if err := w.WritePacket(pk); err != nil {
			n.log.Debugf("failed sending motion of %d: %v", rid, err)
		}
	}
}

// Forget removes all state held for the runtime ID passed, for example when the entity despawns. State is
// otherwise only dropped once the tick advances, so hosts without a tick function should call Forget.
func (n *MotionNotifier) Forget(rid uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.sent, rid)
}

func approxEqual(a, b mgl32.Vec3) bool {
	return math32.Abs(a[0]-b[0]) < motionEpsilon && math32.Abs(a[1]-b[1]) < motionEpsilon && math32.Abs(a[2]-b[2]) < motionEpsilon
}
