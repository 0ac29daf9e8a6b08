package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/knockback/entity"
	"github.com/oomph-ac/knockback/knockback"
	"github.com/oomph-ac/knockback/settings"
	"github.com/oomph-ac/knockback/trace"
	"github.com/oomph-ac/knockback/worker"
	"github.com/sirupsen/logrus"
)

// scenario is a single strike on a victim standing at the origin.
type scenario struct {
	distance, height float64
	yaw              float64
	sprinting        bool
	bonus            int
	airborne         bool
	fall             float64
	projectile       bool
	weapon, world    string
}

type name string

func (n name) Name() string {
	return string(n)
}

// request creates the entities of the scenario and returns the request of its strike. The attacker stands
// distance blocks away from the victim on the z axis, height blocks above it.
func (s scenario) request() knockback.Request {
	victim := entity.NewEntity(1, mgl64.Vec3{}, cube.Rotation{})
	if s.airborne {
		victim.SetOnGround(false)
		victim.SetVelocity(mgl64.Vec3{0, -s.fall, 0})
	}
	attacker := entity.NewEntity(2, mgl64.Vec3{0, s.height, s.distance}, cube.Rotation{s.yaw, 0})
	if s.sprinting {
		attacker.StartSprinting(0)
	}

	req := knockback.Request{
		Victim:     victim,
		Attacker:   attacker,
		Source:     attacker,
		Strike:     knockback.StrikeMelee,
		Sprinting:  s.sprinting,
		BonusLevel: s.bonus,
	}
	if s.projectile {
		origin := attacker.Position()
		req.Strike, req.ProjectileOrigin = knockback.StrikeProjectile, &origin
		req.Source = entity.Point(origin.Sub(mgl64.Vec3{0, 0, s.distance / 2}))
	}
	if s.weapon != "" {
		req.Weapon = name(s.weapon)
	}
	if s.world != "" {
		req.World = name(s.world)
	}
	return req
}

func main() {
	var s scenario
	path := flag.String("settings", "knockback.toml", "Settings file (.toml, .yaml or .yml), created if it does not exist")
	flag.Float64Var(&s.distance, "distance", 3, "Horizontal distance between attacker and victim")
	flag.Float64Var(&s.height, "height", 0, "Height of the attacker above the victim")
	flag.Float64Var(&s.yaw, "yaw", 180, "Yaw of the attacker")
	flag.BoolVar(&s.sprinting, "sprint", false, "Attacker is sprinting")
	flag.IntVar(&s.bonus, "bonus", 0, "Knockback enchantment level")
	flag.BoolVar(&s.airborne, "air", false, "Victim is airborne")
	flag.Float64Var(&s.fall, "fall", 0, "Falling speed of an airborne victim, in blocks per second")
	flag.BoolVar(&s.projectile, "projectile", false, "Strike with a projectile launched by the attacker")
	flag.StringVar(&s.weapon, "weapon", "", "Weapon name used for layer bindings")
	flag.StringVar(&s.world, "world", "", "World name used for layer bindings")
	sweep := flag.Int("sweep", 0, "Evaluate the strike at this many distances from 0 to -distance")
	watch := flag.Bool("watch", false, "Reload the settings file when it changes and evaluate the strike again")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{ForceColors: true}
	if *debug {
		log.Level = logrus.DebugLevel
	}

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			log.Fatalf("error initialising sentry: %v", err)
		}
		defer sentry.Flush(time.Second * 5)
	}
	if os.Getenv("PPROF_ENABLED") != "" {
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))
		go statsview.New().Start()
	}

	if _, err := os.Stat(*path); errors.Is(err, os.ErrNotExist) {
		if err := settings.SaveDefault(*path); err != nil {
			log.Fatalf("error creating settings: %v", err)
		}
		log.Infof("created default settings at %v", *path)
	}
	registry, err := settings.Open(*path)
	if err != nil {
		log.Fatalf("error loading settings: %v", err)
	}

	conf := knockback.Config{Log: log, Store: registry}
	if *debug {
		conf.Tracer = trace.Multi{trace.Logger{Log: log, Level: logrus.DebugLevel}, trace.Sentry{Hub: sentry.CurrentHub()}}
	}

	if *sweep > 0 {
		for _, line := range sweepLines(conf, s, *sweep) {
			fmt.Println(line)
		}
		return
	}

	last := evaluate(conf, s)
	fmt.Println(last)
	if !*watch {
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	if err := settings.Watch(ctx, *path, registry, log); err != nil {
		log.Fatalf("error watching settings: %v", err)
	}
	t := time.NewTicker(time.Second)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if line := evaluate(conf, s); line != last {
				fmt.Println(line)
				last = line
			}
		}
	}
}

// evaluate applies the strike of the scenario on fresh entities and returns a line describing the result.
func evaluate(conf knockback.Config, s scenario) string {
	req := s.request()
	res := conf.New().Apply(req)
	return trace.Format(trace.Data(req, res))
}

// sweepLines evaluates the scenario at n distances evenly spaced between 0 and its distance, on the worker
// pool. The lines are returned ordered by distance.
func sweepLines(conf knockback.Config, s scenario, n int) []string {
	lines := make([]string, n)
	worker.Each(n, func(i int) {
		sc := s
		if n > 1 {
			sc.distance = s.distance * float64(i) / float64(n-1)
		}
		lines[i] = evaluate(conf, sc)
	})
	return lines
}
