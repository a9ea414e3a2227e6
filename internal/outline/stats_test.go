package outline

import (
	"math"
	"testing"
)

func bodySpan(size float64, page int) Span {
	return Span{Text: "body text", FontSize: size, Page: page, Y: 100}
}

func TestEstimateBodyProfile_MedianAndStdDev(t *testing.T) {
	var spans []Span
	for n := 0; n < 10; n++ {
		spans = append(spans, bodySpan(12, 1))
	}
	spans = append(spans, bodySpan(14, 1), bodySpan(10, 2))

	p := EstimateBodyProfile(spans, DefaultConfig())

	if p.Empty() {
		t.Fatal("expected non-empty profile")
	}
	if p.MedianSize != 12 {
		t.Errorf("median: expected 12, got %v", p.MedianSize)
	}
	if p.StdDev <= 0 {
		t.Errorf("stddev: expected positive, got %v", p.StdDev)
	}
	if p.Samples != 12 {
		t.Errorf("samples: expected 12, got %d", p.Samples)
	}
}

func TestEstimateBodyProfile_EmptySampleIsSentinel(t *testing.T) {
	p := EstimateBodyProfile(nil, DefaultConfig())
	if !p.Empty() {
		t.Fatalf("expected sentinel profile, got %+v", p)
	}
}

func TestEstimateBodyProfile_SampleWindowBoundsCost(t *testing.T) {
	// Spans beyond the sample window must not influence the estimate.
	spans := []Span{
		bodySpan(12, 1),
		bodySpan(12, 2),
		bodySpan(20, 50), // Outside the 5-page window.
	}
	p := EstimateBodyProfile(spans, DefaultConfig())
	if p.MedianSize != 12 {
		t.Errorf("expected median 12 from sampled pages only, got %v", p.MedianSize)
	}
	if p.Samples != 2 {
		t.Errorf("expected 2 samples, got %d", p.Samples)
	}
}

func TestEstimateBodyProfile_IgnoresImplausibleSizes(t *testing.T) {
	spans := []Span{
		bodySpan(12, 1),
		bodySpan(12, 1),
		bodySpan(3, 1),   // Below the body band.
		bodySpan(60, 1),  // Above the body band.
		bodySpan(-12, 1), // Malformed.
	}
	p := EstimateBodyProfile(spans, DefaultConfig())
	if p.Samples != 2 {
		t.Errorf("expected 2 samples, got %d", p.Samples)
	}
	if p.MedianSize != 12 {
		t.Errorf("expected median 12, got %v", p.MedianSize)
	}
}

func TestEstimateBodyProfile_SkipsMalformedSpans(t *testing.T) {
	spans := []Span{
		{Text: "x", FontSize: math.NaN(), Page: 1},
		{Text: "x", FontSize: math.Inf(1), Page: 1},
		{Text: "x", FontSize: 12, Page: -1},
	}
	p := EstimateBodyProfile(spans, DefaultConfig())
	if !p.Empty() {
		t.Fatalf("expected sentinel profile for all-malformed input, got %+v", p)
	}
}

func TestEstimateBodyProfile_SingleStyleFloorsStdDev(t *testing.T) {
	var spans []Span
	for n := 0; n < 20; n++ {
		spans = append(spans, bodySpan(11, 1))
	}
	p := EstimateBodyProfile(spans, DefaultConfig())
	if p.StdDev != 1.0 {
		t.Errorf("expected stddev floor of 1.0 for uniform sample, got %v", p.StdDev)
	}
}

func TestMedian_EvenCount(t *testing.T) {
	if got := median([]float64{10, 12, 14, 16}); got != 13 {
		t.Errorf("expected 13, got %v", got)
	}
}
