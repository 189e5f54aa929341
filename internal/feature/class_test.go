package feature

import (
	"testing"

	"github.com/railwayhistory/railmap/internal/symbolset"
)

type fakeScope struct {
	railway   Railway
	baseGauge int
}

func (f fakeScope) Railway() Railway { return f.railway }
func (f fakeScope) BaseGauge() int   { return f.baseGauge }

func TestFromSymbolsAppliesOverScope(t *testing.T) {
	scope := fakeScope{baseGauge: 1435}
	symbols := symbolset.New("first", "double", "pax", "v200")
	class := FromSymbols(&symbols, scope)

	if class.Category() != CategoryFirst {
		t.Errorf("category = %v, want First", class.Category())
	}
	if !class.Double() {
		t.Error("expected double to be true")
	}
	if class.Pax() != PaxFull {
		t.Errorf("pax = %v, want Full", class.Pax())
	}
	if class.Speed() != SpeedV200 {
		t.Errorf("speed = %v, want V200", class.Speed())
	}
	if class.GaugeGroup() != GaugeBase {
		t.Errorf("gauge group = %v, want Base (no gauge symbol given)", class.GaugeGroup())
	}
	if rem := symbols.Remaining(); len(rem) != 0 {
		t.Errorf("expected all symbols consumed, left: %v", rem)
	}
}

func TestFormerOverridesStatus(t *testing.T) {
	symbols := symbolset.New("open", "former")
	class := FromSymbolsOnly(&symbols)
	if class.Status() != StatusRemoved {
		t.Errorf("status = %v, want Removed (overridden by :former)", class.Status())
	}
}

func TestProjectRemovedIsExplanned(t *testing.T) {
	symbols := symbolset.New("project", "removed")
	class := FromSymbolsOnly(&symbols)
	if class.Status() != StatusExplanned {
		t.Errorf("status = %v, want Explanned", class.Status())
	}
}

func TestDefaultsWhenUnset(t *testing.T) {
	symbols := symbolset.New()
	class := FromSymbolsOnly(&symbols)
	if class.Category() != CategorySiding {
		t.Errorf("default category = %v, want Siding", class.Category())
	}
	if class.Status() != StatusOpen {
		t.Errorf("default status = %v, want Open", class.Status())
	}
	if class.Pax() != PaxNone {
		t.Errorf("default pax = %v, want None", class.Pax())
	}
}

func TestUpdateFillsOnlyUnsetFields(t *testing.T) {
	outerSymbols := symbolset.New("first", "v300")
	outer := FromSymbolsOnly(&outerSymbols)

	innerSymbols := symbolset.New("third")
	inner := FromSymbolsOnly(&innerSymbols)
	inner.Update(outer)

	if inner.Category() != CategoryThird {
		t.Errorf("category = %v, want Third (own value kept)", inner.Category())
	}
	if inner.Speed() != SpeedV300 {
		t.Errorf("speed = %v, want V300 (inherited)", inner.Speed())
	}
}

func TestGaugeGroupNarrowBelowBase(t *testing.T) {
	scope := fakeScope{baseGauge: 1435}
	symbols := symbolset.New("g1000")
	class := FromSymbols(&symbols, scope)
	if class.GaugeGroup() != GaugeNarrow {
		t.Errorf("gauge group = %v, want Narrow", class.GaugeGroup())
	}
}

func TestGaugeGroupStandardNarrowWhenBaseIsBroad(t *testing.T) {
	scope := fakeScope{baseGauge: 1520}
	symbols := symbolset.New("g1435")
	class := FromSymbols(&symbols, scope)
	if class.GaugeGroup() != GaugeStandardNarrow {
		t.Errorf("gauge group = %v, want StandardNarrow", class.GaugeGroup())
	}
}

func TestElectricCatVoltageGroup(t *testing.T) {
	symbols := symbolset.New("cat", "ac25")
	class := FromSymbolsOnly(&symbols)
	cat, ok := class.ActiveCat()
	if !ok {
		t.Fatal("expected active cat")
	}
	if cat.VoltageGroup() != VoltageHigh {
		t.Errorf("voltage group = %v, want High", cat.VoltageGroup())
	}
}

func TestNoCatIsNotActive(t *testing.T) {
	symbols := symbolset.New("nocat")
	class := FromSymbolsOnly(&symbols)
	if class.HasActiveCat() {
		t.Error("expected nocat to not be active")
	}
	if _, ok := class.Cat(); !ok {
		t.Error("expected nocat to still set Cat (status None)")
	}
}

func TestLayerOffsetOrdering(t *testing.T) {
	if StatusOpen.LayerOffset() <= StatusClosed.LayerOffset() {
		t.Error("expected open status to layer above closed")
	}
	if StatusClosed.LayerOffset() <= StatusGone.LayerOffset() {
		t.Error("expected closed status to layer above gone")
	}
}
