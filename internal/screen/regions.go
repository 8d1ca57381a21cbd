package screen

// Region is a named sub-range of rows. All component writes go through
// region-relative offsets so nothing needs to know absolute row numbers.
type Region struct {
	Top    int
	Height int
}

// Contains reports whether the region-relative offset falls inside the
// region.
func (r Region) Contains(offset int) bool {
	return offset >= 0 && offset < r.Height
}

// Abs translates a region-relative offset into an absolute row index.
func (r Region) Abs(offset int) int {
	return r.Top + offset
}

// Regions is the vertical layout of a frame. The regions never overlap
// and their union covers the terminal height; the content region absorbs
// rounding and is floored at one row.
type Regions struct {
	Header      Region
	Separator   Region
	CommandLine Region
	Content     Region
	Footer      Region
}

const (
	separatorHeight   = 1
	commandLineHeight = 1
	footerHeight      = 1

	// DefaultHeaderHeight is the header-size preference applied when the
	// configuration does not say otherwise.
	DefaultHeaderHeight = 3
)

// ComputeRegions lays out the frame for the given terminal height and
// header-size preference.
func ComputeRegions(terminalHeight, headerHeight int) Regions {
	if headerHeight < 1 {
		headerHeight = 1
	}
	content := terminalHeight - headerHeight - separatorHeight - commandLineHeight - footerHeight
	if content < 1 {
		content = 1
	}
	r := Regions{}
	r.Header = Region{Top: 0, Height: headerHeight}
	r.Separator = Region{Top: r.Header.Top + r.Header.Height, Height: separatorHeight}
	r.CommandLine = Region{Top: r.Separator.Top + r.Separator.Height, Height: commandLineHeight}
	r.Content = Region{Top: r.CommandLine.Top + r.CommandLine.Height, Height: content}
	r.Footer = Region{Top: r.Content.Top + r.Content.Height, Height: footerHeight}
	return r
}

// TotalHeight returns the summed height of all regions.
func (r Regions) TotalHeight() int {
	return r.Header.Height + r.Separator.Height + r.CommandLine.Height + r.Content.Height + r.Footer.Height
}
