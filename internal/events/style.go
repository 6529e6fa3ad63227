package events

// Colors used for marker fills and status dots.
const (
	ColorEmerald = "#10b981"
	ColorAmber   = "#f59e0b"
	ColorViolet  = "#8b5cf6"
	ColorRed     = "#ef4444"
	ColorBlue    = "#3b82f6"
	ColorGray    = "#6b7280"
)

// MarkerStyle is the visual encoding of a map pin: the outer fill follows the
// pin type and the inner dot follows the status.
type MarkerStyle struct {
	Fill string
	Dot  string
}

// StyleFor returns the marker style for a pin type and status. Unknown values fall back to gray.
func StyleFor(pinType PinType, status Status) MarkerStyle {
	return MarkerStyle{
		Fill: FillColor(pinType),
		Dot:  DotColor(status),
	}
}

// FillColor returns the outer marker color for a pin type.
func FillColor(pinType PinType) string {
	switch pinType {
	case PinTypeBuoy:
		return ColorEmerald
	case PinTypePier:
		return ColorAmber
	case PinTypeTransport:
		return ColorViolet
	default:
		return ColorGray
	}
}

// DotColor returns the inner marker color for a status.
func DotColor(status Status) string {
	switch status {
	case StatusOrdered:
		return ColorRed
	case StatusDone:
		return ColorAmber
	case StatusInvoiced:
		return ColorBlue
	case StatusReady:
		return ColorEmerald
	default:
		return ColorGray
	}
}
