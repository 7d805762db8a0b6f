package constants

// Terminal color codes used for table output
const (
	ColorRed        = "9"
	ColorGreen      = "10"
	ColorYellow     = "11"
	ColorCyan       = "14"
	ColorWhite      = "15"
	ColorBrightCyan = "51"
	ColorDarkGray   = "240"
	ColorDimGray    = "242"
)
