package block

import "strings"

// recognizeWidth is how many sentinel characters a line must start with to
// be treated as a terminator by scanners and the animal rewrite.
const recognizeWidth = 3

// Sentinel is a terminator line made of one repeated character.
type Sentinel struct {
	Char  byte
	Width int
}

var (
	// AnimalSentinel closes animal blocks.
	AnimalSentinel = Sentinel{Char: '=', Width: 87}
	// DashSentinel closes staff blocks and trails milk entries.
	DashSentinel = Sentinel{Char: '-', Width: 50}
	// SummarySentinel closes milk daily-summary blocks.
	SummarySentinel = Sentinel{Char: '=', Width: 50}
)

// Line renders the full terminator line, without a newline.
func (s Sentinel) Line() string {
	return strings.Repeat(string(s.Char), s.Width)
}

// Matches reports whether line starts like this sentinel ("===", "---").
func (s Sentinel) Matches(line string) bool {
	return strings.HasPrefix(line, strings.Repeat(string(s.Char), recognizeWidth))
}

// MatchesFull reports whether line starts with the complete sentinel.
func (s Sentinel) MatchesFull(line string) bool {
	return strings.HasPrefix(line, s.Line())
}

// PolicyKind names how a scanner decides a block has ended.
type PolicyKind int

const (
	// ExplicitLong closes a block on a line of '=' characters.
	ExplicitLong PolicyKind = iota
	// ExplicitShort closes a block on a line of '-' characters.
	ExplicitShort
	// ImplicitByHeader closes a block when the next header appears or at EOF.
	ImplicitByHeader
)

func (k PolicyKind) String() string {
	switch k {
	case ExplicitLong:
		return "explicit-long"
	case ExplicitShort:
		return "explicit-short"
	case ImplicitByHeader:
		return "implicit-by-header"
	default:
		return "unknown"
	}
}

// Policy is a terminator policy: a kind plus, for explicit kinds, the
// sentinel that ends a block.
type Policy struct {
	Kind     PolicyKind
	Sentinel Sentinel
}

// Explicit reports whether blocks under this policy end on a sentinel line.
func (p Policy) Explicit() bool {
	return p.Kind != ImplicitByHeader
}

// IsTerminator reports whether line closes a block under this policy.
func (p Policy) IsTerminator(line string) bool {
	return p.Explicit() && p.Sentinel.Matches(line)
}

// Predefined policies for each store.
var (
	AnimalPolicy = Policy{Kind: ExplicitLong, Sentinel: AnimalSentinel}
	StaffPolicy  = Policy{Kind: ExplicitShort, Sentinel: DashSentinel}
	MilkPolicy   = Policy{Kind: ImplicitByHeader}
)

// StartFunc recognizes the first line of a block.
type StartFunc func(line string) bool

// HeaderPrefix returns a StartFunc matching lines that begin with prefix.
func HeaderPrefix(prefix string) StartFunc {
	return func(line string) bool {
		return strings.HasPrefix(line, prefix)
	}
}
