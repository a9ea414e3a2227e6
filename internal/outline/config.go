package outline

// Config carries the heuristic tunables. The listed defaults were tuned
// against a labeled document corpus; treat them as configuration surfaces,
// not constants.
type Config struct {
	SamplePages int // Pages sampled for the body-style estimate.

	MinBodySize float64 // Sizes below this are ignored when sampling.
	MaxBodySize float64 // Sizes above this are ignored when sampling.

	SizeMargin      float64 // Std-dev multiples above the median that count as "large".
	AcceptThreshold float64 // Minimum normalized score to accept a candidate.
	MaxHeadingWords int     // Outright-reject ceiling on word count.

	HeaderBandPt   float64 // Y band width for recurring header/footer matching.
	HeaderMinPages int     // Distinct pages before a recurring span is suppressed.
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		SamplePages:     5,
		MinBodySize:     7,
		MaxBodySize:     24,
		SizeMargin:      0.5,
		AcceptThreshold: 0.35,
		MaxHeadingWords: 25,
		HeaderBandPt:    4,
		HeaderMinPages:  3,
	}
}

// withDefaults fills any zero-valued field so a partially populated Config
// behaves sensibly.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.SamplePages <= 0 {
		c.SamplePages = d.SamplePages
	}
	if c.MinBodySize <= 0 {
		c.MinBodySize = d.MinBodySize
	}
	if c.MaxBodySize <= 0 {
		c.MaxBodySize = d.MaxBodySize
	}
	if c.SizeMargin <= 0 {
		c.SizeMargin = d.SizeMargin
	}
	if c.AcceptThreshold <= 0 {
		c.AcceptThreshold = d.AcceptThreshold
	}
	if c.MaxHeadingWords <= 0 {
		c.MaxHeadingWords = d.MaxHeadingWords
	}
	if c.HeaderBandPt <= 0 {
		c.HeaderBandPt = d.HeaderBandPt
	}
	if c.HeaderMinPages <= 0 {
		c.HeaderMinPages = d.HeaderMinPages
	}
	return c
}

// maxLevels caps the hierarchy at three levels regardless of how many
// distinct heading styles a document uses. This is a deliberate
// precision/recall trade-off inherited from the tuned heuristic; widening it
// is a product decision, not a bug fix.
const maxLevels = 3
