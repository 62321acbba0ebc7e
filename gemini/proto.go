package gemini

// GenerateContentRequest is the body of models/{model}:generateContent.
type GenerateContentRequest struct {
	Contents []*Content `json:"contents"`
}

type Content struct {
	Role  string  `json:"role"`
	Parts []*Part `json:"parts"`
}

type Part struct {
	Text string `json:"text"`
}

// PredictRequest is the body of models/{model}:predict as used by Imagen.
type PredictRequest struct {
	Instances  []*Instance `json:"instances"`
	Parameters *Parameters `json:"parameters"`
}

type Instance struct {
	Prompt string `json:"prompt"`
}

type Parameters struct {
	SampleCount int `json:"sampleCount"`
}

// ErrorResponse is the error envelope Google APIs answer with.
type ErrorResponse struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func NewTextRequest(prompt string) *GenerateContentRequest {
	return &GenerateContentRequest{
		Contents: []*Content{
			{
				Role:  "user",
				Parts: []*Part{{Text: prompt}},
			},
		},
	}
}

func NewImageRequest(prompt string) *PredictRequest {
	return &PredictRequest{
		Instances:  []*Instance{{Prompt: prompt}},
		Parameters: &Parameters{SampleCount: 1},
	}
}
