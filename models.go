package pixeldojo

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Model identifies an image generation model on the API.
type Model string

const (
	ModelFluxPro           Model = "flux-pro"
	ModelFlux11Pro         Model = "flux-1.1-pro"
	ModelFlux11ProUltra    Model = "flux-1.1-pro-ultra"
	ModelFluxDev           Model = "flux-dev"
	ModelFluxDevSingleLora Model = "flux-dev-single-lora"
	ModelQwenImage         Model = "qwen-image"
	ModelWanImage          Model = "wan-image"
)

// Models lists every supported model in display order.
func Models() []Model {
	return []Model{
		ModelFluxPro,
		ModelFlux11Pro,
		ModelFlux11ProUltra,
		ModelFluxDev,
		ModelFluxDevSingleLora,
		ModelQwenImage,
		ModelWanImage,
	}
}

func (m Model) Valid() bool {
	switch m {
	case ModelFluxPro, ModelFlux11Pro, ModelFlux11ProUltra,
		ModelFluxDev, ModelFluxDevSingleLora, ModelQwenImage, ModelWanImage:
		return true
	}
	return false
}

func (m Model) String() string { return string(m) }

// DisplayName is a human-readable model name for UI surfaces.
func (m Model) DisplayName() string {
	switch m {
	case ModelFluxPro:
		return "Flux Pro"
	case ModelFlux11Pro:
		return "Flux 1.1 Pro"
	case ModelFlux11ProUltra:
		return "Flux 1.1 Pro Ultra"
	case ModelFluxDev:
		return "Flux Dev"
	case ModelFluxDevSingleLora:
		return "Flux Dev (Single LoRA)"
	case ModelQwenImage:
		return "Qwen Image (Text Rendering)"
	case ModelWanImage:
		return "WAN Image (Fast Cinematic)"
	}
	return string(m)
}

func (m Model) Description() string {
	switch m {
	case ModelFluxPro:
		return "High-quality professional image generation"
	case ModelFlux11Pro:
		return "Enhanced Flux Pro with improved quality"
	case ModelFlux11ProUltra:
		return "Maximum quality Flux model"
	case ModelFluxDev:
		return "Development/testing Flux model"
	case ModelFluxDevSingleLora:
		return "Flux Dev with single LoRA support"
	case ModelQwenImage:
		return "Optimized for text rendering in images"
	case ModelWanImage:
		return "Fast generation with cinematic style"
	}
	return ""
}

// AspectRatio is a width:height category mapped to fixed pixel dimensions.
type AspectRatio string

const (
	RatioSquare      AspectRatio = "1:1"
	RatioLandscape   AspectRatio = "16:9"
	RatioPortrait    AspectRatio = "9:16"
	RatioLandscape43 AspectRatio = "4:3"
	RatioPortrait34  AspectRatio = "3:4"
	RatioLandscape32 AspectRatio = "3:2"
	RatioPortrait23  AspectRatio = "2:3"
)

// AspectRatios lists every supported ratio in display order.
func AspectRatios() []AspectRatio {
	return []AspectRatio{
		RatioSquare,
		RatioLandscape,
		RatioPortrait,
		RatioLandscape43,
		RatioPortrait34,
		RatioLandscape32,
		RatioPortrait23,
	}
}

func (r AspectRatio) Valid() bool {
	switch r {
	case RatioSquare, RatioLandscape, RatioPortrait,
		RatioLandscape43, RatioPortrait34, RatioLandscape32, RatioPortrait23:
		return true
	}
	return false
}

func (r AspectRatio) String() string { return string(r) }

// Dimensions returns the approximate output size at a 1024px base.
// The mapping is fixed: the same ratio always yields the same pair.
func (r AspectRatio) Dimensions() (width, height int) {
	switch r {
	case RatioSquare:
		return 1024, 1024
	case RatioLandscape:
		return 1365, 768
	case RatioPortrait:
		return 768, 1365
	case RatioLandscape43:
		return 1182, 886
	case RatioPortrait34:
		return 886, 1182
	case RatioLandscape32:
		return 1254, 836
	case RatioPortrait23:
		return 836, 1254
	}
	return 1024, 1024
}

func (r AspectRatio) DisplayName() string {
	switch r {
	case RatioSquare:
		return "Square (1:1)"
	case RatioLandscape:
		return "Landscape 16:9"
	case RatioPortrait:
		return "Portrait 9:16"
	case RatioLandscape43:
		return "Landscape 4:3"
	case RatioPortrait34:
		return "Portrait 3:4"
	case RatioLandscape32:
		return "Landscape 3:2"
	case RatioPortrait23:
		return "Portrait 2:3"
	}
	return string(r)
}

const (
	maxPromptLen  = 4000
	minNumOutputs = 1
	maxNumOutputs = 4
)

// GenerateRequest describes a single image generation call. Zero values for
// Model, AspectRatio and NumOutputs are filled with defaults by Validate.
type GenerateRequest struct {
	Prompt      string      `json:"prompt"`
	Model       Model       `json:"model"`
	AspectRatio AspectRatio `json:"aspect_ratio"`
	NumOutputs  int         `json:"num_outputs"`
	Seed        *int64      `json:"seed,omitempty"`
}

// Validate normalizes defaults and checks every field against the documented
// enumerations. It is called before any network I/O.
func (r *GenerateRequest) Validate() error {
	r.Prompt = strings.TrimSpace(r.Prompt)
	if r.Prompt == "" {
		return fmt.Errorf("%w: prompt cannot be empty", ErrInvalidRequest)
	}
	if utf8.RuneCountInString(r.Prompt) > maxPromptLen {
		return fmt.Errorf("%w: prompt exceeds %d characters", ErrInvalidRequest, maxPromptLen)
	}

	if r.Model == "" {
		r.Model = ModelFluxPro
	}
	if !r.Model.Valid() {
		return fmt.Errorf("%w: unknown model %q", ErrInvalidRequest, r.Model)
	}

	if r.AspectRatio == "" {
		r.AspectRatio = RatioSquare
	}
	if !r.AspectRatio.Valid() {
		return fmt.Errorf("%w: unknown aspect ratio %q", ErrInvalidRequest, r.AspectRatio)
	}

	if r.NumOutputs == 0 {
		r.NumOutputs = minNumOutputs
	}
	if r.NumOutputs < minNumOutputs || r.NumOutputs > maxNumOutputs {
		return fmt.Errorf("%w: num_outputs must be between %d and %d",
			ErrInvalidRequest, minNumOutputs, maxNumOutputs)
	}

	return nil
}

// ImageResult is a single generated image descriptor.
type ImageResult struct {
	URL    string `json:"url"`
	Seed   *int64 `json:"seed,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Dimensions is a human-readable size string, "Unknown" when the API
// omitted the fields.
func (i ImageResult) Dimensions() string {
	if i.Width > 0 && i.Height > 0 {
		return fmt.Sprintf("%dx%d", i.Width, i.Height)
	}
	return "Unknown"
}

// GenerateResponse holds the parsed result of a generation call. It is not
// mutated after parsing; treat it as read-only.
type GenerateResponse struct {
	Images           []ImageResult `json:"images"`
	RequestID        string        `json:"request_id,omitempty"`
	CreditsUsed      float64       `json:"credits_used"`
	CreditsRemaining float64       `json:"credits_remaining"`
}

// FirstImage returns the first image or nil when the response is empty.
func (r *GenerateResponse) FirstImage() *ImageResult {
	if len(r.Images) == 0 {
		return nil
	}
	return &r.Images[0]
}

// ImageURLs returns the image URLs in response order.
func (r *GenerateResponse) ImageURLs() []string {
	urls := make([]string, len(r.Images))
	for i, img := range r.Images {
		urls[i] = img.URL
	}
	return urls
}
