package live

import (
	json "github.com/goccy/go-json"

	"textbook-logistics/internal/domain"
)

// Frame is the wire form of a live fragment. Absent fields are omitted.
type Frame struct {
	Status    *domain.DeliveryStatus `json:"status,omitempty"`
	Latitude  *float64               `json:"latitude,omitempty"`
	Longitude *float64               `json:"longitude,omitempty"`
}

// FrameOf converts a fragment to its wire form.
func FrameOf(f domain.Fragment) Frame {
	return Frame{Status: f.Status, Latitude: f.Latitude, Longitude: f.Longitude}
}

// Fragment converts the frame back to a domain fragment.
func (f Frame) Fragment() domain.Fragment {
	return domain.Fragment{Status: f.Status, Latitude: f.Latitude, Longitude: f.Longitude}
}

// Terminal reports whether the frame announces a terminal status.
func (f Frame) Terminal() bool {
	return f.Status != nil && f.Status.Terminal()
}

// RiderSample is what the rider device sends.
type RiderSample struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// EncodeFragment encodes f as a frame.
func EncodeFragment(f domain.Fragment) ([]byte, error) {
	return json.Marshal(FrameOf(f))
}

// DecodeFrame decodes a frame.
func DecodeFrame(b []byte) (Frame, error) {
	var f Frame
	err := json.Unmarshal(b, &f)
	return f, err
}
