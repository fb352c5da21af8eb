package layout

import (
	"math"
	"strings"

	"github.com/matzehuels/repograph/pkg/errors"
)

// Direction is the flow of ranks across the drawing.
type Direction string

const (
	LeftToRight Direction = "LR"
	RightToLeft Direction = "RL"
	TopToBottom Direction = "TB"
	BottomToTop Direction = "BT"
)

var directionAliases = map[string]Direction{
	"lr": LeftToRight, "left-to-right": LeftToRight,
	"rl": RightToLeft, "right-to-left": RightToLeft,
	"tb": TopToBottom, "top-to-bottom": TopToBottom,
	"bt": BottomToTop, "bottom-to-top": BottomToTop,
}

// ParseDirection accepts "LR", "RL", "TB", "BT" or their spelled-out forms
// ("left-to-right", ...), case-insensitively. The empty string means
// [LeftToRight].
func ParseDirection(s string) (Direction, error) {
	if s == "" {
		return LeftToRight, nil
	}
	if d, ok := directionAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return d, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "invalid direction: %q (must be one of: LR, RL, TB, BT)", s)
}

// Horizontal reports whether ranks advance along the x axis.
func (d Direction) Horizontal() bool { return d != TopToBottom && d != BottomToTop }

// reversed reports whether ranks advance towards decreasing coordinates.
func (d Direction) reversed() bool { return d == RightToLeft || d == BottomToTop }

// Side is the face of a node box an edge attaches to.
type Side string

const (
	SideLeft   Side = "left"
	SideRight  Side = "right"
	SideTop    Side = "top"
	SideBottom Side = "bottom"
)

// Ports returns the inbound and outbound sides for every node in a layout
// flowing in direction d. Ports depend only on the direction, never on the
// edges a node actually has.
func (d Direction) Ports() (in, out Side) {
	switch d {
	case RightToLeft:
		return SideRight, SideLeft
	case TopToBottom:
		return SideTop, SideBottom
	case BottomToTop:
		return SideBottom, SideTop
	default:
		return SideLeft, SideRight
	}
}

// Config holds the geometry of a layered layout. All lengths are in pixels.
type Config struct {
	Direction      Direction `json:"direction" toml:"direction"`
	RankSeparation float64   `json:"rankSeparation" toml:"rank_separation"`
	NodeSeparation float64   `json:"nodeSeparation" toml:"node_separation"`
	NodeWidth      float64   `json:"nodeWidth" toml:"node_width"`
	NodeHeight     float64   `json:"nodeHeight" toml:"node_height"`
	MarginX        float64   `json:"marginX" toml:"margin_x"`
	MarginY        float64   `json:"marginY" toml:"margin_y"`
	// Passes caps the number of barycenter sweeps.
	Passes int `json:"passes,omitempty" toml:"passes"`
}

// Default geometry.
const (
	DefaultRankSeparation = 100
	DefaultNodeSeparation = 80
	DefaultNodeWidth      = 180
	DefaultNodeHeight     = 40
	DefaultMargin         = 50
	DefaultPasses         = 24
)

// DefaultConfig returns a left-to-right layout with 180x40 nodes.
func DefaultConfig() Config {
	return Config{
		Direction:      LeftToRight,
		RankSeparation: DefaultRankSeparation,
		NodeSeparation: DefaultNodeSeparation,
		NodeWidth:      DefaultNodeWidth,
		NodeHeight:     DefaultNodeHeight,
		MarginX:        DefaultMargin,
		MarginY:        DefaultMargin,
		Passes:         DefaultPasses,
	}
}

// Normalized returns c with unusable values replaced: an unknown or empty
// direction, a non-positive node size and non-positive passes take their
// defaults; negative separations and margins clamp to zero. Non-finite
// numbers are treated as unset.
func (c Config) Normalized() Config {
	if d, err := ParseDirection(string(c.Direction)); err == nil {
		c.Direction = d
	} else {
		c.Direction = LeftToRight
	}
	c.NodeWidth = positiveOr(c.NodeWidth, DefaultNodeWidth)
	c.NodeHeight = positiveOr(c.NodeHeight, DefaultNodeHeight)
	c.RankSeparation = nonNegative(c.RankSeparation, DefaultRankSeparation)
	c.NodeSeparation = nonNegative(c.NodeSeparation, DefaultNodeSeparation)
	c.MarginX = nonNegative(c.MarginX, DefaultMargin)
	c.MarginY = nonNegative(c.MarginY, DefaultMargin)
	if c.Passes <= 0 {
		c.Passes = DefaultPasses
	}
	return c
}

// Validate reports values that Normalized would silently replace.
func (c Config) Validate() error {
	if _, err := ParseDirection(string(c.Direction)); err != nil {
		return err
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"rank separation", c.RankSeparation},
		{"node separation", c.NodeSeparation},
		{"margin x", c.MarginX},
		{"margin y", c.MarginY},
	} {
		if f.v < 0 || math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be a finite non-negative number, got %v", f.name, f.v)
		}
	}
	if c.NodeWidth < 0 || c.NodeHeight < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "node size must not be negative")
	}
	if c.Passes < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "passes must not be negative")
	}
	return nil
}

func positiveOr(v, def float64) float64 {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

func nonNegative(v, def float64) float64 {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return def
	case v < 0:
		return 0
	}
	return v
}
