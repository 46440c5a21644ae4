package common

import "encoding/json"

// ProgressStatus names the phase a ProgressEvent reports.
type ProgressStatus string

const (
	// StatusRendering is reported before the first frame (Frame 0) and after each rendered frame.
	StatusRendering ProgressStatus = "rendering"

	// StatusAssembling is reported once all frames exist and the GIF is being encoded.
	StatusAssembling ProgressStatus = "assembling"

	// StatusComplete is reported once the output has been written.
	StatusComplete ProgressStatus = "complete"
)

// ProgressEvent reports rendering progress to an optional observer.
// Frame and Total are set for StatusRendering. Output, Frames and SizeBytes are set for StatusComplete;
// SizeBytes is zero for PNG sequences.
type ProgressEvent struct {
	Status    ProgressStatus
	Frame     uint32
	Total     uint32
	Output    string
	Frames    uint32
	SizeBytes uint64
}

// ProgressFunc receives progress events. A nil ProgressFunc ignores them.
type ProgressFunc func(ProgressEvent)

// Emit calls f with ev when f is set.
func (f ProgressFunc) Emit(ev ProgressEvent) {
	if f != nil {
		f(ev)
	}
}

// MarshalJSON encodes only the fields that belong to the event's status.
func (e ProgressEvent) MarshalJSON() ([]byte, error) {
	switch e.Status {
	case StatusRendering:
		return json.Marshal(struct {
			Status ProgressStatus `json:"status"`
			Frame  uint32         `json:"frame"`
			Total  uint32         `json:"total"`
		}{e.Status, e.Frame, e.Total})
	case StatusComplete:
		return json.Marshal(struct {
			Status    ProgressStatus `json:"status"`
			Output    string         `json:"output"`
			Frames    uint32         `json:"frames"`
			SizeBytes uint64         `json:"size_bytes,omitempty"`
		}{e.Status, e.Output, e.Frames, e.SizeBytes})
	default:
		return json.Marshal(struct {
			Status ProgressStatus `json:"status"`
		}{e.Status})
	}
}
