package events

import "testing"

func TestStyleForUsesTypeFillAndStatusDot(t *testing.T) {
	style := StyleFor(PinTypeBuoy, StatusReady)
	if style.Fill != "#10b981" {
		t.Fatalf("unexpected buoy fill %s", style.Fill)
	}
	if style.Dot != "#10b981" {
		t.Fatalf("unexpected valmis dot %s", style.Dot)
	}

	for _, pinType := range PinTypes() {
		for _, status := range Statuses() {
			style := StyleFor(pinType, status)
			if style.Fill != FillColor(pinType) {
				t.Fatalf("fill for %s/%s depends on status", pinType, status)
			}
			if style.Dot != DotColor(status) {
				t.Fatalf("dot for %s/%s depends on type", pinType, status)
			}
		}
	}
}

func TestStyleForFallsBackToGray(t *testing.T) {
	style := StyleFor(PinType("submarine"), Status("lost"))
	if style.Fill != ColorGray || style.Dot != ColorGray {
		t.Fatalf("expected gray fallback, got %+v", style)
	}
}

func TestStyleColorTable(t *testing.T) {
	fills := map[PinType]string{
		PinTypeBuoy:      "#10b981",
		PinTypePier:      "#f59e0b",
		PinTypeTransport: "#8b5cf6",
	}
	for pinType, want := range fills {
		if got := FillColor(pinType); got != want {
			t.Fatalf("FillColor(%s) = %s, want %s", pinType, got, want)
		}
	}
	dots := map[Status]string{
		StatusOrdered:  "#ef4444",
		StatusDone:     "#f59e0b",
		StatusInvoiced: "#3b82f6",
		StatusReady:    "#10b981",
	}
	for status, want := range dots {
		if got := DotColor(status); got != want {
			t.Fatalf("DotColor(%s) = %s, want %s", status, got, want)
		}
	}
}
