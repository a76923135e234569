package types

import "fmt"

// Task identifies one processing step the server runs on a submitted image.
type Task string

const (
	// TaskDetection locates vehicles and license plates in the image.
	TaskDetection Task = "DETECTION"
	// TaskOCR reads the license plate text.
	TaskOCR Task = "OCR"
	// TaskMMR classifies the vehicle make and model.
	TaskMMR Task = "MMR"
)

// DefaultOCRModuleID selects the global OCR backend on the server.
const DefaultOCRModuleID = 801

// DefaultTasks returns the task list used when the caller does not pick one.
// A fresh slice is returned on every call so callers can never alias a shared
// default.
func DefaultTasks() []Task {
	return []Task{TaskDetection, TaskOCR, TaskMMR}
}

// RecognitionRequest mirrors the JSON "request" form field sent alongside the
// image. Field names match the wire format exactly.
type RecognitionRequest struct {
	SaveImage     bool   `json:"saveImage"`
	SavePlateText bool   `json:"savePlateText"`
	Tasks         []Task `json:"tasks"`
	OCRModuleID   int    `json:"ocrModuleId"`
}

// DefaultRecognitionRequest returns a request with the server defaults:
// the image is not stored, plate text is kept in the request history, all
// three tasks run, and the global OCR module is used.
func DefaultRecognitionRequest() RecognitionRequest {
	return RecognitionRequest{
		SaveImage:     false,
		SavePlateText: true,
		Tasks:         DefaultTasks(),
		OCRModuleID:   DefaultOCRModuleID,
	}
}

// Validate checks the request invariants before it is put on the wire.
func (r RecognitionRequest) Validate() error {
	if len(r.Tasks) == 0 {
		return fmt.Errorf("tasks cannot be empty")
	}
	for _, t := range r.Tasks {
		switch t {
		case TaskDetection, TaskOCR, TaskMMR:
		default:
			return fmt.Errorf("unknown task %q", t)
		}
	}
	if r.OCRModuleID <= 0 {
		return fmt.Errorf("ocrModuleId must be positive, got %d", r.OCRModuleID)
	}
	return nil
}

// InfoResult is the decoded JSON body of a successful info call. The client
// passes it through without interpreting its contents.
type InfoResult map[string]any

// RecognitionResult is the decoded JSON body of a successful recognition
// call, passed through unmodified.
type RecognitionResult map[string]any

// Plate is a best-effort typed view over one recognized vehicle extracted
// from a RecognitionResult. Fields the server did not return stay zero.
type Plate struct {
	Text       string  `json:"plate"`
	Confidence float64 `json:"confidence"`
	Make       string  `json:"make,omitempty"`
	Model      string  `json:"model,omitempty"`
	Category   string  `json:"category,omitempty"`
}
