// Package current combines two Gauss-Markov processes, one for current
// speed and one for heading, into a periodically published velocity vector.
package current

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/seastate/currentsim/internal/gmprocess"
)

// Role names one of the coordinator's processes.
type Role string

const (
	RoleVelocity Role = "velocity"
	RoleAngle    Role = "angle"
)

// ErrUnknownRole indicates a role other than velocity or angle.
var ErrUnknownRole = errors.New("current: unknown role")

// Derived envelope applied by SetCurrent.
const (
	velocitySpread   = 0.05
	velocityNoiseAmp = 0.005
	velocityMu       = 0.05
	angleSpreadDeg   = 10.0
	angleNoiseAmp    = 0.05
	angleMu          = 0.1
)

// Publisher receives each composed signal.
type Publisher interface {
	Publish(ctx context.Context, s Signal) error
}

// Coordinator owns the two processes and composes their values into a
// velocity vector. Serialization against concurrent control requests happens
// inside each process; the coordinator itself holds no mutable state after
// construction.
type Coordinator struct {
	frame      string
	velocity   *gmprocess.Process
	angle      *gmprocess.Process
	publishers []Publisher
}

// New creates a coordinator with the given frame label and initial models.
func New(frame string, velocity, angle gmprocess.Model, seed uint64) (*Coordinator, error) {
	vp, err := gmprocess.New(velocity, seed)
	if err != nil {
		return nil, fmt.Errorf("velocity model: %w", err)
	}
	ap, err := gmprocess.New(angle, seed+1)
	if err != nil {
		return nil, fmt.Errorf("angle model: %w", err)
	}
	return &Coordinator{frame: frame, velocity: vp, angle: ap}, nil
}

// AddPublisher registers a sink for composed signals. Not safe to call once
// ticking has started.
func (c *Coordinator) AddPublisher(p Publisher) { c.publishers = append(c.publishers, p) }

// Frame returns the output frame label.
func (c *Coordinator) Frame() string { return c.frame }

// Tick advances both processes to now, composes the velocity vector and
// sends it to all registered publishers. The magnitude/angle pair is formed
// in the north-east-down convention and converted to east-north-up by
// negating the second axis.
func (c *Coordinator) Tick(ctx context.Context, now time.Time) (Signal, error) {
	t := timeSeconds(now)
	v := c.velocity.Update(t)
	phi := c.angle.Update(t)

	s := Signal{
		Time:  now,
		Frame: c.frame,
		Velocity: Vector3{
			X: v * math.Cos(phi),
			Y: -v * math.Sin(phi),
			Z: 0,
		},
	}

	var errs []error
	for _, p := range c.publishers {
		if err := p.Publish(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}
	return s, errors.Join(errs...)
}

// Model returns the parameter set of the named process.
func (c *Coordinator) Model(role Role) (gmprocess.Model, error) {
	p, err := c.process(role)
	if err != nil {
		return gmprocess.Model{}, err
	}
	return p.Read(), nil
}

// SetModel reconfigures the named process. On an invalid parameter set the
// previous parameters remain in effect.
func (c *Coordinator) SetModel(role Role, m gmprocess.Model) error {
	p, err := c.process(role)
	if err != nil {
		return err
	}
	return p.Configure(m)
}

// SetCurrent derives envelopes for both processes from a mean speed (m/s)
// and a horizontal heading (degrees) and applies them as a unit: both
// parameter sets are validated before either process is touched.
func (c *Coordinator) SetCurrent(speed, headingDeg float64) error {
	heading := headingDeg * math.Pi / 180
	angleSpread := angleSpreadDeg * math.Pi / 180

	vm := gmprocess.Model{
		Mean:     speed,
		Min:      speed - velocitySpread,
		Max:      speed + velocitySpread,
		NoiseAmp: velocityNoiseAmp,
		Mu:       velocityMu,
	}
	am := gmprocess.Model{
		Mean:     heading,
		Min:      heading - angleSpread,
		Max:      heading + angleSpread,
		NoiseAmp: angleNoiseAmp,
		Mu:       angleMu,
	}

	if err := vm.Validate(); err != nil {
		return err
	}
	if err := am.Validate(); err != nil {
		return err
	}
	if err := c.velocity.Configure(vm); err != nil {
		return err
	}
	return c.angle.Configure(am)
}

// Values returns the raw magnitude and angle of the two processes.
func (c *Coordinator) Values() (speed, angle float64) {
	return c.velocity.Value(), c.angle.Value()
}

func (c *Coordinator) process(role Role) (*gmprocess.Process, error) {
	switch role {
	case RoleVelocity:
		return c.velocity, nil
	case RoleAngle:
		return c.angle, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
}

func timeSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
