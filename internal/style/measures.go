// Package style implements the zoom-to-style derivation, the six
// detail-keyed measures tables, and the two colour palettes (spec §3.4,
// §4.5), grounded on original_source/src/railway/measures.rs and
// maps/overnight/style.rs.
package style

// measuresLen is the number of scalar measures in a table.
const measuresLen = 19

// Measures is a flat table of dimension/font-size measures for one
// detail level, scaled by canvas_bp*mag at style construction time.
type Measures [measuresLen]float64

// Field indices into a Measures table, matching measures.rs's accessor
// methods in order.
const (
	mDt = iota
	mMainTrack
	mMainDouble
	mMainSkip
	mLightTrack
	mLightDouble
	mLightSkip
	mGuideWidth
	mBorderWidth
	mSeg
	mStationWidth
	mStationHeight
	mInsideStationHeight
	mXSmallFont
	mSmallFont
	mMediumFont
	mLargeFont
	mXLargeFont
	mBadgeFont
)

func (m Measures) Dt() float64                  { return m[mDt] }
func (m Measures) MainTrack() float64           { return m[mMainTrack] }
func (m Measures) MainDouble() float64          { return m[mMainDouble] }
func (m Measures) MainSkip() float64            { return m[mMainSkip] }
func (m Measures) LightTrack() float64          { return m[mLightTrack] }
func (m Measures) LightDouble() float64         { return m[mLightDouble] }
func (m Measures) LightSkip() float64           { return m[mLightSkip] }
func (m Measures) GuideWidth() float64          { return m[mGuideWidth] }
func (m Measures) BorderWidth() float64         { return m[mBorderWidth] }
func (m Measures) Seg() float64                 { return m[mSeg] }
func (m Measures) StationWidth() float64        { return m[mStationWidth] }
func (m Measures) StationHeight() float64       { return m[mStationHeight] }
func (m Measures) InsideStationHeight() float64 { return m[mInsideStationHeight] }
func (m Measures) XSmallFont() float64          { return m[mXSmallFont] }
func (m Measures) SmallFont() float64           { return m[mSmallFont] }
func (m Measures) MediumFont() float64          { return m[mMediumFont] }
func (m Measures) LargeFont() float64           { return m[mLargeFont] }
func (m Measures) XLargeFont() float64          { return m[mXLargeFont] }
func (m Measures) BadgeFont() float64           { return m[mBadgeFont] }

// Dl is the length of a cross-over between two parallel tracks.
func (m Measures) Dl() float64 { return m.Dt() * 2 / 3 }

// MainOffset is the centre-to-centre spacing of a double main track.
func (m Measures) MainOffset() float64 { return m.MainTrack() + m.MainSkip() }

// LightOffset is the centre-to-centre spacing of a double light track.
func (m Measures) LightOffset() float64 { return m.LightTrack() + m.LightSkip() }

// Scaled returns m with every entry multiplied by f (canvas_bp*mag at
// style construction).
func (m Measures) Scaled(f float64) Measures {
	for i := range m {
		m[i] *= f
	}
	return m
}

// TrackKey is the subset of a track's classification that the measures
// tables dispatch on. Kept as a plain struct rather than taking
// feature.Railway directly so internal/style never imports
// internal/feature -- the translation lives in internal/feature
// alongside ColorKey's (spec §4.5).
type TrackKey struct {
	// IsMain is true for main-category tracks on a non-narrow gauge.
	IsMain bool
}

// ClassTrack returns the stroke width for a single track of class key.
func (m Measures) ClassTrack(key TrackKey) float64 {
	if key.IsMain {
		return m.MainTrack()
	}
	return m.LightTrack()
}

// ClassDouble returns the stroke width for a double track of class key.
func (m Measures) ClassDouble(key TrackKey) float64 {
	if key.IsMain {
		return m.MainDouble()
	}
	return m.LightDouble()
}

// ClassSkip returns the empty space between key's double-track rails.
func (m Measures) ClassSkip(key TrackKey) float64 {
	if key.IsMain {
		return m.MainSkip()
	}
	return m.LightSkip()
}

// ClassOffset returns the centre-to-centre spacing of key's
// double-track rails.
func (m Measures) ClassOffset(key TrackKey) float64 {
	if key.IsMain {
		return m.MainOffset()
	}
	return m.LightOffset()
}

// The six base measures tables, one per detail level 0-5, indexed
// directly by detail level. The original source names these BASE_D0,
// BASE_D2..BASE_D6 (BASE_D1 is a literal duplicate of BASE_D0 and is
// skipped), so detail level 1 uses the BASE_D2 row.
var baseMeasures = [6]Measures{
	{2.0, 1.1, 1.6, 0.4, 0.7, 1.2, 0.3, 0.3, 0.4, 12, 6, 5.5, 3.7, 5, 6, 7, 9, 11, 5.4},
	{2.0, 1.1, 1.8, 0.4, 0.7, 1.4, 0.3, 0.3, 0.4, 12, 6, 5.5, 5.5, 5, 6, 7, 9, 11, 5.4},
	{1.8, 1.4, 2.6, 0.4, 1.0, 1.8, 0.3, 0.3, 0.4, 10.8, 4, 4, 2.7, 5, 6, 7, 9, 11, 5.4},
	{2.0, 1.1, 1.1, 0.9, 0.6, 0.6, 1.4, 0.3, 0.4, 12, 6, 6, 4, 5, 6, 7, 9, 11, 5.4},
	{2.0, 1.2, 1.2, 1.4, 0.8, 0.8, 1.2, 0.3, 0.4, 12, 6, 6, 4, 5.5, 6.25, 7.5, 9, 11, 5.4},
	{2.0, 1.2, 1.1, 3.8, 1.0, 0.6, 1.4, 0.3, 0.4, 12, 6, 6, 4, 5, 6, 7, 9, 11, 5.4},
}

// MaxDetail is the highest detail level the style tables support.
const MaxDetail = 5

// BaseMeasures returns the unscaled measures table for a detail level,
// clamped to [0, MaxDetail].
func BaseMeasures(detail int) Measures {
	if detail < 0 {
		detail = 0
	}
	if detail > MaxDetail {
		detail = MaxDetail
	}
	return baseMeasures[detail]
}
