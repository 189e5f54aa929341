// Package feature implements the railway classifier and the closed
// feature-kind union (spec §3.2/§5), grounded on
// original_source/src/railway/class.rs.
package feature

import "github.com/railwayhistory/railmap/internal/symbolset"

// ScopeRailway is the minimal view of a DSL scope the classifier needs:
// the railway class inherited from an enclosing `with` block, and the
// region's configured base gauge (spec §6.1's `base_gauge`).
type ScopeRailway interface {
	Railway() Railway
	BaseGauge() int
}

// Category is the kind of railway a feature belongs to.
type Category int

const (
	CategoryFirst Category = iota
	CategorySecond
	CategoryThird
	CategoryTram
	CategoryPrivate
	CategorySiding
)

// DefaultCategory is used when a feature's category is never set.
const DefaultCategory = CategorySiding

func categoryFromSymbols(s *symbolset.Set) (Category, bool) {
	switch {
	case s.Take("first"):
		return CategoryFirst, true
	case s.Take("second"):
		return CategorySecond, true
	case s.Take("third"):
		return CategoryThird, true
	case s.Take("tram"):
		return CategoryTram, true
	case s.Take("private"):
		return CategoryPrivate, true
	case s.Take("side"):
		return CategorySiding, true
	default:
		return 0, false
	}
}

// IsMain reports whether c is a first or second class railway.
func (c Category) IsMain() bool { return c == CategoryFirst || c == CategorySecond }

// IsRailway reports whether c is a railway line, excluding trams,
// private lines and sidings.
func (c Category) IsRailway() bool {
	return c != CategoryTram && c != CategoryPrivate && c != CategorySiding
}

// IsTram reports whether c is a tram line.
func (c Category) IsTram() bool { return c == CategoryTram }

// Status is the lifecycle state of a feature. Variants are ordered so
// that later statuses draw on top of earlier ones.
type Status int

const (
	StatusGone Status = iota
	StatusExplanned
	StatusRemoved
	StatusClosed
	StatusSuspended
	StatusPlanned
	StatusOpen
)

// DefaultStatus is used when a feature's status is never set.
const DefaultStatus = StatusOpen

func statusFromSymbols(s *symbolset.Set) (Status, bool) {
	var res Status
	var ok bool
	switch {
	case s.Take("exproject"):
		res, ok = StatusExplanned, true
	case s.Take("project"):
		if s.Take("removed") {
			res, ok = StatusExplanned, true
		} else {
			res, ok = StatusPlanned, true
		}
	case s.Take("open"):
		res, ok = StatusOpen, true
	case s.Take("closed"):
		res, ok = StatusClosed, true
	case s.Take("suspended"):
		res, ok = StatusSuspended, true
	case s.Take("removed"):
		res, ok = StatusRemoved, true
	case s.Take("gone"):
		res, ok = StatusGone, true
	}
	// :former overrides whatever status was derived, matching the
	// original's late check against symbols.contains (not take) --
	// "former" is also used elsewhere and must stay available.
	if s.Has("former") {
		return StatusRemoved, true
	}
	return res, ok
}

// IsOpen reports whether the status is Open.
func (s Status) IsOpen() bool { return s == StatusOpen }

// IsProject reports whether the feature is merely planned (including an
// abandoned plan).
func (s Status) IsProject() bool { return s == StatusExplanned || s == StatusPlanned }

// LayerOffset returns the z-order nudge applied so closed/removed/gone
// features draw beneath open ones of the same group (spec §5's group
// ordering, feeding into the renderer's stage sort).
func (s Status) LayerOffset() int16 {
	switch s {
	case StatusOpen:
		return 0
	case StatusClosed, StatusSuspended:
		return -10
	case StatusRemoved:
		return -20
	case StatusGone:
		return -30
	default:
		return -40
	}
}

// Surface is what the track sits on.
type Surface int

const (
	SurfaceGround Surface = iota
	SurfaceBridge
	SurfaceTunnel
)

func surfaceFromSymbols(s *symbolset.Set) (Surface, bool) {
	switch {
	case s.Take("ground"):
		return SurfaceGround, true
	case s.Take("bridge"):
		return SurfaceBridge, true
	case s.Take("tunnel"):
		return SurfaceTunnel, true
	default:
		return 0, false
	}
}

// IsTunnel reports whether the surface is a tunnel.
func (s Surface) IsTunnel() bool { return s == SurfaceTunnel }

// ElectricStatus is whether an electrification system is present, open,
// or merely historical.
type ElectricStatus int

const (
	ElectricNone ElectricStatus = iota
	ElectricOpen
	ElectricRemoved
)

// ElectricSystem distinguishes AC from DC electrification.
type ElectricSystem int

const (
	ElectricAC ElectricSystem = iota
	ElectricDC
)

// VoltageGroup buckets an electrification system's nominal voltage for
// styling purposes.
type VoltageGroup int

const (
	VoltageLow VoltageGroup = iota
	VoltageHigh
	VoltageUnknown
)

// ElectricCat is the overhead-line ("catenary") electrification system.
type ElectricCat struct {
	Status  ElectricStatus
	Voltage uint16
	System  ElectricSystem
	hasVS   bool // whether Voltage/System were set
}

var catSystems = []struct {
	name    string
	voltage uint16
	system  ElectricSystem
}{
	{"ac0k725", 725, ElectricAC},
	{"ac6k6", 6600, ElectricAC},
	{"ac65", 6500, ElectricAC},
	{"ac15", 15000, ElectricAC},
	{"ac11", 11000, ElectricAC},
	{"ac25", 25000, ElectricAC},
	{"dc30", 3000, ElectricDC},
	{"dc33", 3300, ElectricDC},
	{"dc3", 3000, ElectricDC},
	{"dc18", 1800, ElectricDC},
	{"dc15", 1500, ElectricDC},
	{"dc12", 1200, ElectricDC},
	{"dc10", 1000, ElectricDC},
	{"dc9", 900, ElectricDC},
	{"dc85", 850, ElectricDC},
	{"dc8", 800, ElectricDC},
	{"dc75", 750, ElectricDC},
	{"dc7", 700, ElectricDC},
	{"dc6", 600, ElectricDC},
	{"dc55", 550, ElectricDC},
}

func electricCatFromSymbols(s *symbolset.Set) (ElectricCat, bool) {
	var res ElectricCat
	switch {
	case s.Take("cat"):
		res = ElectricCat{Status: ElectricOpen}
	case s.Take("excat"):
		res = ElectricCat{Status: ElectricRemoved}
	case s.Take("nocat"):
		return ElectricCat{Status: ElectricNone}, true
	default:
		return ElectricCat{}, false
	}
	for _, sys := range catSystems {
		if s.Take(sys.name) {
			res.Voltage = sys.voltage
			res.System = sys.system
			res.hasVS = true
			break
		}
	}
	return res, true
}

// VoltageGroup buckets the catenary system's voltage.
func (c ElectricCat) VoltageGroup() VoltageGroup {
	if !c.hasVS {
		return VoltageUnknown
	}
	switch c.System {
	case ElectricAC:
		if c.Voltage >= 20000 {
			return VoltageHigh
		}
		return VoltageLow
	default:
		if c.Voltage >= 2000 {
			return VoltageHigh
		}
		return VoltageLow
	}
}

// ElectricRail is third/fourth-rail electrification.
type ElectricRail struct {
	Status  ElectricStatus
	Voltage uint16
	Fourth  bool
	hasV    bool
}

var railSystems = []struct {
	name    string
	voltage uint16
}{
	{"rc12", 1200},
	{"rc85", 850},
	{"rc75", 750},
	{"rc63", 630},
}

func electricRailFromSymbols(s *symbolset.Set) (ElectricRail, bool) {
	var res ElectricRail
	switch {
	case s.Take("rail"):
		res = ElectricRail{Status: ElectricOpen}
	case s.Take("exrail"):
		res = ElectricRail{Status: ElectricRemoved}
	case s.Take("rail4"):
		res = ElectricRail{Status: ElectricOpen, Fourth: true}
	case s.Take("exrail4"):
		res = ElectricRail{Status: ElectricRemoved, Fourth: true}
	case s.Take("norail"):
		return ElectricRail{Status: ElectricNone}, true
	default:
		return ElectricRail{}, false
	}
	for _, sys := range railSystems {
		if s.Take(sys.name) {
			res.Voltage = sys.voltage
			res.hasV = true
			break
		}
	}
	return res, true
}

// VoltageGroup buckets the third/fourth-rail system's voltage.
func (r ElectricRail) VoltageGroup() VoltageGroup {
	if !r.hasV {
		return VoltageUnknown
	}
	if r.Voltage >= 1000 {
		return VoltageHigh
	}
	return VoltageLow
}

// Speed is the maximum line speed band.
type Speed int

const (
	SpeedV160 Speed = iota
	SpeedV200
	SpeedV250
	SpeedV300
)

// DefaultSpeed is used when a feature's speed is never set.
const DefaultSpeed = SpeedV160

func speedFromSymbols(s *symbolset.Set) (Speed, bool) {
	switch {
	case s.Take("v160"):
		return SpeedV160, true
	case s.Take("v200"):
		return SpeedV200, true
	case s.Take("v250"):
		return SpeedV250, true
	case s.Take("v300"):
		return SpeedV300, true
	default:
		return 0, false
	}
}

// IsHSL reports whether the line is classified as high speed.
func (sp Speed) IsHSL() bool { return sp != SpeedV160 }

// Pax is the level of passenger service.
type Pax int

const (
	PaxNone Pax = iota
	PaxHeritage
	PaxSeasonal
	PaxFull
)

// DefaultPax is used when a feature's passenger service is never set.
const DefaultPax = PaxNone

func paxFromSymbols(s *symbolset.Set) (Pax, bool) {
	switch {
	case s.Take("nopax"):
		return PaxNone, true
	case s.Take("pax"):
		return PaxFull, true
	case s.Take("heritage") || s.Take("museum") || s.Take("tourist"):
		return PaxHeritage, true
	case s.Take("seasonal"):
		return PaxSeasonal, true
	default:
		return 0, false
	}
}

// IsFull reports whether passenger service is scheduled and daily.
func (p Pax) IsFull() bool { return p == PaxFull }

// Gauge is the track gauge in millimetres, with an optional secondary
// gauge for three/four-rail track.
type Gauge struct {
	Main         uint16
	Secondary    uint16
	HasSecondary bool
}

// DefaultGauge is standard gauge, used when never explicitly set.
var DefaultGauge = Gauge{Main: 1435}

var mainGauges = []struct {
	name  string
	gauge uint16
}{
	{"g600", 600}, {"g750", 750}, {"g760", 760}, {"g762", 762},
	{"g785", 785}, {"g800", 800}, {"g802", 802}, {"g891", 891},
	{"g900", 900}, {"g950", 950}, {"g1000", 1000}, {"g1093", 1093},
	{"g1100", 1100}, {"g1101", 1101}, {"g1200", 1200}, {"g1435", 1435},
	{"g1520", 1520}, {"g1524", 1524},
}

var secondaryGauges = []struct {
	name  string
	gauge uint16
}{
	{"gg750", 750}, {"gg1000", 1000}, {"gg1435", 1435}, {"gg1524", 1524},
}

func gaugeFromSymbols(s *symbolset.Set) (Gauge, bool) {
	var main uint16
	var found bool
	for _, g := range mainGauges {
		if s.Take(g.name) {
			main, found = g.gauge, true
			break
		}
	}
	if !found {
		return Gauge{}, false
	}
	res := Gauge{Main: main}
	for _, g := range secondaryGauges {
		if s.Take(g.name) {
			res.Secondary, res.HasSecondary = g.gauge, true
			break
		}
	}
	return res, true
}

// GaugeGroup buckets a gauge relative to its region's base gauge.
type GaugeGroup int

const (
	GaugeNarrow GaugeGroup = iota
	GaugeStandardNarrow
	GaugeBase
	GaugeStandardBroad
	GaugeBroad
)

// newGaugeGroup computes the group of an optional explicit gauge against
// the region's base gauge (spec §3.2, mirroring class.rs's GaugeGroup::new).
func newGaugeGroup(gauge *Gauge, baseGauge int) GaugeGroup {
	if gauge == nil {
		return GaugeBase
	}
	g := int(gauge.Main)
	switch {
	case baseGauge < 1435:
		switch {
		case g == 1435:
			return GaugeStandardBroad
		case g < baseGauge:
			return GaugeNarrow
		case g == baseGauge:
			return GaugeBase
		default:
			return GaugeBroad
		}
	case baseGauge == 1435:
		switch {
		case g < 1435:
			return GaugeNarrow
		case g == 1435:
			return GaugeBase
		default:
			return GaugeBroad
		}
	default:
		switch {
		case g == 1435:
			return GaugeStandardNarrow
		case g < baseGauge:
			return GaugeNarrow
		case g == baseGauge:
			return GaugeBase
		default:
			return GaugeBroad
		}
	}
}

// gaugeGroupTakeSymbols consumes the gauge-group hint tokens
// (:narrower/:narrow/:standard/:broad/:broader), which carry no
// independent data once a numeric gauge is also given -- they exist only
// so authors can tag a railway's group without naming an exact gauge.
func gaugeGroupTakeSymbols(s *symbolset.Set) {
	for _, name := range []string{"narrower", "narrow", "standard", "broad", "broader"} {
		if s.Take(name) {
			return
		}
	}
}

// IsNarrow reports whether the group is narrower than the region's base.
func (g GaugeGroup) IsNarrow() bool { return g == GaugeNarrow }

// Railway is the full classification of a track, area or marker feature,
// accumulated from nested `with` blocks and the symbols given to the
// feature's own procedure call (spec §3.2). Each field is optional so
// `Update` can fill in only what an outer scope left unset.
type Railway struct {
	category   *Category
	status     *Status
	surface    *Surface
	cat        *ElectricCat
	rail       *ElectricRail
	speed      *Speed
	pax        *Pax
	gaugeGroup *GaugeGroup
	gauge      *Gauge
	double     *bool
	station    *bool
}

// applySymbols consumes every classifier token it recognises from
// symbols, overwriting any field it found a value for.
func (r *Railway) applySymbols(symbols *symbolset.Set) {
	if v, ok := categoryFromSymbols(symbols); ok {
		r.category = &v
	}
	if v, ok := statusFromSymbols(symbols); ok {
		r.status = &v
	}
	if v, ok := surfaceFromSymbols(symbols); ok {
		r.surface = &v
	}
	if v, ok := electricCatFromSymbols(symbols); ok {
		r.cat = &v
	}
	if v, ok := electricRailFromSymbols(symbols); ok {
		r.rail = &v
	}
	if v, ok := speedFromSymbols(symbols); ok {
		r.speed = &v
	}
	if v, ok := paxFromSymbols(symbols); ok {
		r.pax = &v
	}
	if v, ok := gaugeFromSymbols(symbols); ok {
		r.gauge = &v
	}
	gaugeGroupTakeSymbols(symbols)

	if symbols.Take("double") {
		v := true
		r.double = &v
	} else if symbols.Take("single") {
		v := false
		r.double = &v
	}

	if symbols.Take("station") {
		v := true
		r.station = &v
	} else if symbols.Take("nostation") {
		v := false
		r.station = &v
	}
}

// FromSymbols builds a Railway by layering symbols over the class
// inherited from scope, then computing the gauge group against the
// region's base gauge (mirrors Railway::from_symbols).
func FromSymbols(symbols *symbolset.Set, scope ScopeRailway) Railway {
	class := scope.Railway()
	class.applySymbols(symbols)
	group := newGaugeGroup(class.gauge, scope.BaseGauge())
	class.gaugeGroup = &group
	return class
}

// FromSymbolsOnly builds a Railway from symbols alone, with no inherited
// scope class and no gauge-group resolution (mirrors
// Railway::from_symbols_only).
func FromSymbolsOnly(symbols *symbolset.Set) Railway {
	var class Railway
	class.applySymbols(symbols)
	return class
}

// FromScope returns the class currently active in scope, unmodified.
func FromScope(scope ScopeRailway) Railway { return scope.Railway() }

// Update fills in every field of r that is unset from class, without
// overwriting fields r already has (mirrors Railway::update).
func (r *Railway) Update(class Railway) {
	if r.category == nil {
		r.category = class.category
	}
	if r.status == nil {
		r.status = class.status
	}
	if r.surface == nil {
		r.surface = class.surface
	}
	if r.cat == nil {
		r.cat = class.cat
	}
	if r.rail == nil {
		r.rail = class.rail
	}
	if r.speed == nil {
		r.speed = class.speed
	}
	if r.pax == nil {
		r.pax = class.pax
	}
	if r.gauge == nil {
		r.gauge = class.gauge
	}
	if r.gaugeGroup == nil {
		r.gaugeGroup = class.gaugeGroup
	}
	if r.double == nil {
		r.double = class.double
	}
	if r.station == nil {
		r.station = class.station
	}
}

// Category returns the railway's category, defaulting to Siding.
func (r Railway) Category() Category {
	if r.category != nil {
		return *r.category
	}
	return DefaultCategory
}

// Status returns the railway's status, defaulting to Open.
func (r Railway) Status() Status {
	if r.status != nil {
		return *r.status
	}
	return DefaultStatus
}

// SetStatus overrides the railway's status.
func (r *Railway) SetStatus(status Status) { r.status = &status }

// IsOpen reports whether the railway's status is Open.
func (r Railway) IsOpen() bool { return r.Status().IsOpen() }

// IsOpenNoPax reports whether the railway is open but has no scheduled
// daily passenger service.
func (r Railway) IsOpenNoPax() bool { return r.IsOpen() && !r.Pax().IsFull() }

// Surface returns the railway's surface, defaulting to Ground.
func (r Railway) Surface() Surface {
	if r.surface != nil {
		return *r.surface
	}
	return SurfaceGround
}

// Cat returns the overhead-line electrification system, if set.
func (r Railway) Cat() (ElectricCat, bool) {
	if r.cat == nil {
		return ElectricCat{}, false
	}
	return *r.cat, true
}

// HasActiveCat reports whether overhead-line electrification is present
// and open.
func (r Railway) HasActiveCat() bool {
	return r.cat != nil && r.cat.Status == ElectricOpen
}

// ActiveCat returns the overhead-line system only if it is open.
func (r Railway) ActiveCat() (ElectricCat, bool) {
	if r.HasActiveCat() {
		return *r.cat, true
	}
	return ElectricCat{}, false
}

// Rail returns the third/fourth-rail electrification system, if set.
func (r Railway) Rail() (ElectricRail, bool) {
	if r.rail == nil {
		return ElectricRail{}, false
	}
	return *r.rail, true
}

// HasActiveRail reports whether third/fourth-rail electrification is
// present and open.
func (r Railway) HasActiveRail() bool {
	return r.rail != nil && r.rail.Status == ElectricOpen
}

// ActiveRail returns the third/fourth-rail system only if it is open.
func (r Railway) ActiveRail() (ElectricRail, bool) {
	if r.HasActiveRail() {
		return *r.rail, true
	}
	return ElectricRail{}, false
}

// Speed returns the railway's speed band, defaulting to V160.
func (r Railway) Speed() Speed {
	if r.speed != nil {
		return *r.speed
	}
	return DefaultSpeed
}

// Pax returns the railway's passenger-service level, defaulting to None.
func (r Railway) Pax() Pax {
	if r.pax != nil {
		return *r.pax
	}
	return DefaultPax
}

// OptPax returns the explicitly set passenger-service level, if any.
func (r Railway) OptPax() (Pax, bool) {
	if r.pax == nil {
		return 0, false
	}
	return *r.pax, true
}

// Gauge returns the railway's gauge, defaulting to 1435mm standard.
func (r Railway) Gauge() Gauge {
	if r.gauge != nil {
		return *r.gauge
	}
	return DefaultGauge
}

// GaugeGroup returns the railway's gauge group, defaulting to Base.
func (r Railway) GaugeGroup() GaugeGroup {
	if r.gaugeGroup != nil {
		return *r.gaugeGroup
	}
	return GaugeBase
}

// Double reports whether the track is double-tracked.
func (r Railway) Double() bool {
	if r.double != nil {
		return *r.double
	}
	return false
}

// Station reports whether the feature is at a station.
func (r Railway) Station() bool {
	if r.station != nil {
		return *r.station
	}
	return false
}
