package app

// Layout constants define the default dimensions and spacing for the UI
const (
	// InputsPaneWidth is the width of the inputs pane when the terminal is
	// wide enough to show inputs and results side by side.
	InputsPaneWidth = 44

	// SideBySideMinWidth is the narrowest terminal that still gets two panes.
	SideBySideMinWidth = 84

	// FlyoutWidth is the width of the info panel, including its border.
	FlyoutWidth = 46

	// ChooserPopupPadding is the horizontal margin kept around the chooser.
	ChooserPopupPadding = 8

	// ChooserPopupHeight is the preferred height of the chooser popup.
	ChooserPopupHeight = 20

	// FooterMinRows is the default number of rows reserved for the bottom
	// status/help area.
	FooterMinRows = 2
	// FooterMaxRows is the expanded footer height used when content does not
	// fit within FooterMinRows.
	FooterMaxRows = 3
)

// Input limits define maximum sizes for user input
const (
	// InputCharLimit is the maximum number of characters in a numeric field.
	InputCharLimit = 12

	// InputWidth is the visible width of a numeric field.
	InputWidth = 10
)

// themeKey is the store key holding the chosen palette.
const themeKey = "theme"
