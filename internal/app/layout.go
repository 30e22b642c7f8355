// layout.go centralizes all terminal layout calculations.
//
// The main screen is a header row, the inputs and results panes, and an
// adaptive footer. Wide terminals show the panes side by side; narrow ones
// stack them. The chooser popup and info panel are sized from the same
// content area so resizes reach every widget in one place.
package app

// LayoutDimensions holds all calculated layout dimensions for the UI.
type LayoutDimensions struct {
	ContentHeight int  // rows between header and footer
	SideBySide    bool // inputs and results share a row
	InputsWidth   int  // outer width of the inputs pane
	ResultsWidth  int  // outer width of the results pane

	FlyoutViewportWidth  int // help text area inside the info panel
	FlyoutViewportHeight int
	ChooserTableHeight   int // visible table rows including its header
}

// calculateLayout computes all UI dimensions based on terminal size.
func (m *Model) calculateLayout() LayoutDimensions {
	contentHeight := max(0, m.height-1-m.footerHeightForWidth(m.width))

	l := LayoutDimensions{
		ContentHeight: contentHeight,
		SideBySide:    m.width >= SideBySideMinWidth,
		InputsWidth:   m.width,
		ResultsWidth:  m.width,
	}
	if l.SideBySide {
		l.InputsWidth = InputsPaneWidth
		l.ResultsWidth = max(0, m.width-InputsPaneWidth)
	}

	l.FlyoutViewportWidth = max(0, FlyoutWidth-m.styles.flyout.GetHorizontalFrameSize())
	l.FlyoutViewportHeight = max(0, contentHeight-flyoutHeaderRows)

	_, popupHeight := chooserPopupSize(m.width, contentHeight)
	// popup border, title and fixed-gear line
	l.ChooserTableHeight = max(3, popupHeight-m.styles.popup.GetVerticalFrameSize()-2)
	return l
}

// footerHeightForWidth returns how many rows should be reserved for the footer.
// It prefers FooterMinRows and expands to FooterMaxRows when the footer
// segments cannot fit without dropping content.
func (m *Model) footerHeightForWidth(width int) int {
	_, fit := m.buildStatusRows(width, FooterMinRows)
	if fit {
		return FooterMinRows
	}
	return FooterMaxRows
}

// applyLayout resizes the widgets to match the calculated layout. This is
// called after every window resize.
func (m *Model) applyLayout(layout LayoutDimensions) {
	m.flyoutView.Width = layout.FlyoutViewportWidth
	m.flyoutView.Height = layout.FlyoutViewportHeight
	m.chooserTable.SetHeight(layout.ChooserTableHeight)
	if m.isOverlay(overlayFlyout) {
		m.renderFlyoutContent()
	}
}
