package knockback

import (
	"io"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/knockback/game"
	"github.com/sirupsen/logrus"
)

// Request describes a single strike that should produce knockback. A Request is created per strike and is
// not retained after System.Apply returns.
type Request struct {
	// Victim is the entity struck. A request without a victim is ignored.
	Victim Victim
	// Attacker is the entity responsible for the strike. It is nil for environmental knockback.
	Attacker Entity
	// Source is the entity that directly dealt the strike: the attacker for melee strikes, the projectile
	// for ranged strikes. It may be nil.
	Source Entity
	// ProjectileOrigin is the position the projectile was launched from, if any.
	ProjectileOrigin *mgl64.Vec3

	// Weapon and World are the held item and the world of the strike. Either may be nil. They are only
	// used to look up override layers.
	Weapon any
	World  any

	Strike StrikeType
	// Sprinting is true if the attacker was sprinting when the strike was dealt.
	Sprinting bool
	// BonusLevel is the level of a knockback enchantment on the weapon.
	BonusLevel int
	// Tick is the current tick of the host, compared against SprintTracker.LastSprintTick.
	Tick int64
}

// Result is the outcome of a strike.
type Result struct {
	// Velocity is the velocity written to the victim.
	Velocity mgl64.Vec3
	// Previous is the velocity of the victim read before the strike.
	Previous mgl64.Vec3

	Profile   Profile
	State     VictimState
	Direction Direction
	Strength  Strength
	SprintHit bool
	// SprintStopped is true if the attacker's sprint was stopped by the strike.
	SprintStopped bool
}

// Config holds the settings of a System.
type Config struct {
	// Log is the logger strikes are logged to at debug level. If nil, nothing is logged.
	Log *logrus.Logger
	// Default is the server default profile. If nil, LegacyProfile is used.
	Default *Profile
	// Store is consulted for override layers of objects not implementing HasOverrideLayer. It may be nil.
	Store LayerStore
	// Notifier is notified after every velocity write. It may be nil.
	Notifier Notifier
	// Tracer receives a trace of every strike. It may be nil.
	Tracer Tracer
	// Rand is the random source of FallbackRandom. If nil, a randomly seeded source is used.
	Rand *rand.Rand
	// Fallback is used by profiles with the FallbackCustom policy.
	Fallback DegenerateFallback
	// VelocityScale converts blocks per tick into the velocity unit of the host. If 0,
	// game.TicksPerSecond is used, meaning velocities are in blocks per second.
	VelocityScale float64
	// FallingThreshold is the vertical velocity, in the velocity unit of the host, at or below which an
	// airborne victim is falling. If nil, game.FallingVelocityThreshold is used.
	FallingThreshold *float64
}

// New creates a System using the settings in the Config.
func (conf Config) New() *System {
	if conf.Log == nil {
		conf.Log = logrus.New()
		conf.Log.Out = io.Discard
	}
	def := LegacyProfile()
	if conf.Default != nil {
		def = *conf.Default
	}
	if conf.Notifier == nil {
		conf.Notifier = NopNotifier{}
	}
	if conf.Tracer == nil {
		conf.Tracer = NopTracer{}
	}
	threshold := game.FallingVelocityThreshold
	if conf.FallingThreshold != nil {
		threshold = *conf.FallingThreshold
	}
	integrator := Integrator{Scale: conf.VelocityScale}
	return &System{
		log:              conf.Log,
		resolver:         NewResolver(def, conf.Store),
		direction:        NewDirectionResolver(conf.Rand, conf.Fallback),
		integrator:       integrator,
		fallingThreshold: threshold,
		notifier:         conf.Notifier,
		tracer:           conf.Tracer,
	}
}

// System turns strikes into victim velocities. A System holds no per-strike state and may be shared, but
// the same victim must not be struck from multiple goroutines at once.
type System struct {
	log *logrus.Logger

	resolver   *Resolver
	direction  *DirectionResolver
	integrator Integrator
	// fallingThreshold is in the velocity unit of the host.
	fallingThreshold float64

	notifier Notifier
	tracer   Tracer
}

// Resolver returns the Resolver of the System.
func (s *System) Resolver() *Resolver {
	return s.resolver
}

// Apply resolves the strike, writes the resulting velocity to the victim and stops the sprint of the
// attacker if the strike was a sprint hit. The victim's velocity is read once and written once.
func (s *System) Apply(req Request) Result {
	if req.Victim == nil {
		return Result{}
	}
	res := s.Compute(req)

	req.Victim.SetVelocity(res.Velocity)
	if res.SprintHit {
		res.SprintStopped = stopSprint(req.Attacker)
	}
	s.notifier.NotifyVelocity(req.Victim, res.Velocity)
	s.tracer.TraceKnockback(req, res)

	s.log.WithFields(logrus.Fields{
		"strike":    req.Strike,
		"state":     res.State,
		"mode":      res.Direction.Mode,
		"sprint":    res.SprintHit,
		"h":         game.Round64(res.Strength.Horizontal, 4),
		"v":         game.Round64(res.Strength.Vertical, 4),
		"velocity":  game.RoundVec64(res.Velocity, 4),
		"fallback":  res.Direction.Degenerate,
		"apply":     res.Profile.ApplyMode(),
		"bonus_lvl": req.BonusLevel,
	}).Debug("knockback applied")
	return res
}

// Compute resolves the strike without writing anything: the victim's velocity and the attacker's sprint
// are left untouched and no notifier or tracer is called.
func (s *System) Compute(req Request) Result {
	if req.Victim == nil {
		return Result{}
	}
	res := Result{Previous: req.Victim.Velocity()}

	p := s.resolver.Resolve(Subjects{
		Weapon:   req.Weapon,
		Attacker: req.Attacker,
		Victim:   req.Victim,
		World:    req.World,
	})
	res.State = ClassifyVictim(req.Victim.OnGround(), res.Previous[1], s.fallingThreshold)
	res.Profile = SelectState(p, res.State)
	res.SprintHit = SprintHit(res.Profile, req)

	res.Direction = s.direction.Resolve(res.Profile, req, res.SprintHit)
	res.Strength = ResolveStrength(res.Profile, req, res.State, res.Direction, res.SprintHit)
	res.Velocity = s.integrator.Integrate(res.Profile, res.Direction, res.Strength, res.Previous, res.State, res.SprintHit)
	return res
}

// stopSprint stops the sprint of a live, directional attacker. It returns true if the sprint was stopped.
func stopSprint(attacker Entity) bool {
	if attacker == nil || !live(attacker) {
		return false
	}
	if _, ok := attacker.(Directional); !ok {
		return false
	}
	sp, ok := attacker.(Sprinter)
	if !ok || !sp.Sprinting() {
		return false
	}
	sp.StopSprinting()
	return true
}
