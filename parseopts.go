package calculator

// ScanOption is an option for scanning and parsing source text.
type ScanOption interface {
	scanOption(scanconf) scanconf
}

// scanconf holds scanner settings. It is also a ScanOption.
type scanconf struct {
	// kwonly rejects words that are not keywords instead of scanning them as
	// identifiers.
	kwonly bool
}

type kwonlyopt struct{}

// KeywordsOnly makes the scanner reject any word that is not a keyword with an
// UnrecognizedWordError, disabling variables. Without it, unknown words scan
// as identifiers.
func KeywordsOnly() ScanOption {
	return kwonlyopt{}
}

func (kwonlyopt) scanOption(c scanconf) scanconf {
	c.kwonly = true
	return c
}

// ScanningPreset combines several options into one.
func ScanningPreset(opts ...ScanOption) ScanOption {
	var c scanconf
	for _, opt := range opts {
		c = opt.scanOption(c)
	}
	return &c
}

func (o *scanconf) scanOption(c scanconf) scanconf {
	c.kwonly = c.kwonly || o.kwonly
	return c
}
