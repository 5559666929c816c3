package imagegen

// GenerateRequest is the client-facing image-generation payload.
type GenerateRequest struct {
	Prompt string `json:"prompt" validate:"required"`
	Size   string `json:"size,omitempty"`
	N      int    `json:"n,omitempty"`
}

// Image describes one generated image.
type Image struct {
	URL string `json:"url"`
}

// JobStatus is the upstream task state as seen by one poll.
type JobStatus struct {
	Done   bool
	Failed bool
	Error  string
	Images []Image
}
