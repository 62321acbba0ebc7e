package relay

import "github.com/zjx20/genai-relay/gemini"

const (
	TextFunction  = "gemini-text"
	ImageFunction = "imagen-generate"
)

var TextEndpoint = Endpoint{
	Name:         TextFunction,
	Method:       gemini.MethodGenerateContent,
	DefaultModel: gemini.DefaultTextModel,
	Payload: func(prompt string) any {
		return gemini.NewTextRequest(prompt)
	},
	Messages: Messages{
		Configuration: "Error de configuración del servidor: Clave de API de Gemini no encontrada en el entorno de la función.",
		Upstream:      "Error al generar texto desde Google",
		Internal:      "Error interno del servidor en la función de texto.",
	},
}

var ImageEndpoint = Endpoint{
	Name:         ImageFunction,
	Method:       gemini.MethodPredict,
	DefaultModel: gemini.DefaultImageModel,
	Payload: func(prompt string) any {
		return gemini.NewImageRequest(prompt)
	},
	Messages: Messages{
		Configuration: "Error de configuración del servidor: Clave de API de Imagen no encontrada en el entorno de la función.",
		Upstream:      "Error al generar la imagen desde Google",
		Internal:      "Error interno del servidor en la función de imagen.",
	},
}

// NewText relays prompts to a Gemini generateContent model.
func NewText(opts Options) *Handler {
	return New(TextEndpoint, opts)
}

// NewImage relays prompts to an Imagen predict model.
func NewImage(opts Options) *Handler {
	return New(ImageEndpoint, opts)
}
