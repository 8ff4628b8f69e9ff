package config

// Screen layout configuration
const (
	// Logical screen size in pixels
	ScreenWidth  = 1280
	ScreenHeight = 720

	// Pixels per world cell in the top-down walk view
	WalkCellSize = 12

	// Pixels per world cell in the map overview at zoom 1
	MapCellSize = 1

	// Height of the status bar at the top of every screen
	StatusBarHeight = 20
)

// GetScreenDimensions returns the logical screen dimensions in pixels
func GetScreenDimensions() (width, height int) {
	return ScreenWidth, ScreenHeight
}

// GetWindowSize returns the recommended window size (may be different from actual screen dimensions)
func GetWindowSize() (width, height int) {
	return 1280, 720
}
