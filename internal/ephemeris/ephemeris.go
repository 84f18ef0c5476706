// Package ephemeris holds literal barycentric state tables for the Sun,
// the planets and Pluto, used to seed simulations and to score them.
//
// Epochs are Terrestrial Time in days relative to 1 January 2000 noon.
// Positions are in AU, velocities in AU/day and GM in AU^3/day^2.
package ephemeris

import (
	"fmt"
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

// ReferenceEpoch is the TT of the reference table returned by SolarSystemReference.
const ReferenceEpoch = 36000.0

// Record is one row of an ephemeris table.
type Record struct {
	Name string
	GM   float64
	Pos  dynamo.Vector
	Vel  dynamo.Vector
}

func (r Record) body() dynamo.Body       { return dynamo.Body{Name: r.Name, GM: r.GM} }
func (r Record) state() dynamo.BodyState { return dynamo.BodyState{Pos: r.Pos, Vel: r.Vel} }

var initial = []Record{
	{"Sun", 0.2959122082855911e-03,
		dynamo.Vec(-7.1364589399065259e-03, -2.6470228609322332e-03, -9.2294970156656141e-04),
		dynamo.Vec(+5.3784602410181226e-06, -6.7581870218649809e-06, -3.0328502580586604e-06)},
	{"Mercury", 0.4912547451450812e-10,
		dynamo.Vec(-1.3723006195467538e-01, -4.0324074408148058e-01, -2.0141225506190355e-01),
		dynamo.Vec(+2.1371774112416420e-02, -4.9330574149022378e-03, -4.8504663531593545e-03)},
	{"Venus", 0.7243452486162703e-09,
		dynamo.Vec(-7.2543875484147236e-01, -4.8921273467320933e-02, +2.3717693023504526e-02),
		dynamo.Vec(+8.0349602705784566e-04, -1.8498595719303294e-02, -8.3727680737444125e-03)},
	{"Earth", 0.8997011346712499e-09,
		dynamo.Vec(-1.8429524682327703e-01, +8.8475983851898110e-01, +3.8381376140494267e-01),
		dynamo.Vec(-1.7197730582930743e-02, -2.9096002963053319e-03, -1.2615424279804276e-03)},
	{"Mars", 0.9549535105779258e-10,
		dynamo.Vec(+1.3835794628924982e+00, -1.2458004988146892e-03, -3.7883117515271375e-02),
		dynamo.Vec(+6.7687793460626899e-04, +1.3807279375402957e-02, +6.3148674835543615e-03)},
	{"Jupiter", 0.2825345909524226e-06,
		dynamo.Vec(+3.9940404222298844e+00, +2.7339319061545413e+00, +1.0745894287353270e+00),
		dynamo.Vec(-4.5629355212736143e-03, +5.8747037012365335e-03, +2.6292702270069392e-03)},
	{"Saturn", 0.8459715185680659e-07,
		dynamo.Vec(+6.3992748800141177e+00, +6.1720103478444583e+00, +2.2738496033938227e+00),
		dynamo.Vec(-4.2869717425808437e-03, +3.5215864712979240e-03, +1.6388988371031218e-03)},
	{"Uranus", 0.1292024916781969e-07,
		dynamo.Vec(+1.4424723139268364e+01, -1.2508906775795596e+01, -5.6826051942721962e+00),
		dynamo.Vec(+2.6834832774578900e-03, +2.4552472167487850e-03, +1.0373771677589703e-03)},
	{"Neptune", 0.1524358900784276e-07,
		dynamo.Vec(+1.6804919524159171e+01, -2.2982756707473023e+01, -9.8253477507922486e+00),
		dynamo.Vec(+2.5846540556240267e-03, +1.6616650376509003e-03, +6.1578224469068194e-04)},
	{"Pluto", 0.2188699765425970e-11,
		dynamo.Vec(-9.8824799249935378e+00, -2.7981499149074953e+01, -5.7546082780601502e+00),
		dynamo.Vec(+3.0341297634731501e-03, -1.1343428301178919e-03, -1.2681607296589918e-03)},
}

var reference = []Record{
	{"Sun", 0.2959122082855911e-03,
		dynamo.Vec(+7.7442330999319582e-03, -2.8958174622971387e-03, -1.4843523935615082e-03),
		dynamo.Vec(+3.7976242804768201e-06, +6.8873739539434805e-06, +2.8328030391439036e-06)},
	{"Mercury", 0.4912547451450812e-10,
		dynamo.Vec(+2.9998909445899702e-01, -2.5167075958321738e-01, -1.6463825444706792e-01),
		dynamo.Vec(+1.4347702925469906e-02, +1.9275892909860873e-02, +8.8151240781442156e-03)},
	{"Venus", 0.7243452486162703e-09,
		dynamo.Vec(-1.2730466485862729e-01, -6.5678416128711048e-01, -2.8733612731354014e-01),
		dynamo.Vec(+1.9741393720748273e-02, -3.0433142723558051e-03, -2.6179095787213476e-03)},
	{"Earth", 0.8997011346712499e-09,
		dynamo.Vec(+5.4268057037700779e-01, -7.9519201392980288e-01, -3.4479026527466322e-01),
		dynamo.Vec(+1.4350563192874279e-02, +8.2605607839611600e-03, +3.5787087909035209e-03)},
	{"Mars", 0.9549535105779258e-10,
		dynamo.Vec(-1.3233061280808283e+00, +8.8734071813401461e-01, +4.4254312899760900e-01),
		dynamo.Vec(-7.8463585498583580e-03, -9.1754296426277467e-03, -3.9988125767134418e-03)},
	{"Jupiter", 0.2825345909524226e-06,
		dynamo.Vec(-4.6210326953510954e+00, +2.4621350057089506e+00, +1.1674708023170912e+00),
		dynamo.Vec(-3.9185718437625807e-03, -5.6887319737186108e-03, -2.3428130677038798e-03)},
	{"Saturn", 0.8459715185680659e-07,
		dynamo.Vec(-9.4886338896573026e+00, -3.3627229859393043e-01, +2.7058431810050654e-01),
		dynamo.Vec(-1.8651175280703436e-04, -5.1701674264839478e-03, -2.1281654055284450e-03)},
	{"Uranus", 0.1292024916781969e-07,
		dynamo.Vec(+1.9467801910417869e+01, +4.3750090028448021e+00, +1.6411273005424660e+00),
		dynamo.Vec(-9.4602209093205781e-04, +3.3311613626557600e-03, +1.4722799034082145e-03)},
	{"Neptune", 0.1524358900784276e-07,
		dynamo.Vec(-2.8549810690325550e+01, +8.8069648185486447e+00, +4.3155638698954348e+00),
		dynamo.Vec(-1.0362322640330788e-03, -2.7392211213405310e-03, -1.0953738661569298e-03)},
	{"Pluto", 0.2188699765425970e-11,
		dynamo.Vec(+4.0183705547014910e+01, +2.7566070190543023e+01, -3.5042261894867393e+00),
		dynamo.Vec(-9.2786393703440592e-04, +1.7551921708389899e-03, +8.2733972886151190e-04)},
}

func build(records []Record, tt float64) (*dynamo.System, error) {
	sys := dynamo.NewSystem(dynamo.MaxBodies)
	for _, r := range records {
		if err := sys.Add(r.body(), r.state()); err != nil {
			return nil, fmt.Errorf("ephemeris: %w", err)
		}
	}
	sys.SetTime(tt)
	return sys, nil
}

// SolarSystem returns the ten tabulated bodies at TT=0.
func SolarSystem() (*dynamo.System, error) {
	return build(initial, 0)
}

// SolarSystemReference returns the same bodies at ReferenceEpoch.
func SolarSystemReference() (*dynamo.System, error) {
	return build(reference, ReferenceEpoch)
}

// SunEarth returns a heliocentric two-body system with the Earth on a
// circular orbit of radius 1 AU in the x-y plane.
func SunEarth() (*dynamo.System, error) {
	return circularPair("Sun", "Earth")
}

// circularPair places secondary 1 AU from primary, moving at the two-body
// circular speed in the x-y plane.
func circularPair(primary, secondary string) (*dynamo.System, error) {
	p, err := Lookup(primary)
	if err != nil {
		return nil, err
	}
	s, err := Lookup(secondary)
	if err != nil {
		return nil, err
	}

	speed := math.Sqrt(p.GM + s.GM)
	return build([]Record{
		{Name: p.Name, GM: p.GM},
		{Name: s.Name, GM: s.GM, Pos: dynamo.Vec(1, 0, 0), Vel: dynamo.Vec(0, speed, 0)},
	}, 0)
}

// Names lists the tabulated bodies in table order.
func Names() []string {
	names := make([]string, len(initial))
	for i, r := range initial {
		names[i] = r.Name
	}
	return names
}

// Lookup returns the TT=0 record of the named body.
func Lookup(name string) (Record, error) {
	for _, r := range initial {
		if r.Name == name {
			return r, nil
		}
	}
	return Record{}, fmt.Errorf("%w: %s", dynamo.ErrUnknownBody, name)
}
