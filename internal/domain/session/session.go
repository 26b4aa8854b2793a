package session

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Defaults for a realtime voice session.
const (
	DefaultModel      = "gpt-4o-realtime-preview-2024-12-17"
	DefaultVoice      = "alloy"
	DefaultToolChoice = "auto"

	DefaultInstructions = "Start conversation with the user by saying 'Hello, how can I help you today?' " +
		"Use the available tools when relevant. After executing a tool, you will need to respond " +
		"(create a subsequent conversation item) to the user sharing the function result or error. " +
		"If you do not respond with additional message with function result, user will not know you " +
		"successfully executed the tool. Speak and respond in english."
)

var validModalities = []string{"audio", "text"}

// Tool is a function the voice model may call during the session.
type Tool struct {
	Type        string          `json:"type"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

// TurnDetection configures server-side voice activity detection.
type TurnDetection struct {
	Type              string   `json:"type"`
	Threshold         *float64 `json:"threshold,omitempty"`
	PrefixPaddingMS   *int     `json:"prefix_padding_ms,omitempty"`
	SilenceDurationMS *int     `json:"silence_duration_ms,omitempty"`
}

// Transcription configures input audio transcription.
type Transcription struct {
	Model string `json:"model"`
}

// Config is the realtime session request. Clients send a partial Config that
// overlays DefaultConfig field by field.
type Config struct {
	Model                   string         `json:"model"`
	Modalities              []string       `json:"modalities"`
	Instructions            string         `json:"instructions"`
	Voice                   string         `json:"voice"`
	InputAudioFormat        string         `json:"input_audio_format,omitempty"`
	OutputAudioFormat       string         `json:"output_audio_format,omitempty"`
	InputAudioTranscription *Transcription `json:"input_audio_transcription,omitempty"`
	TurnDetection           *TurnDetection `json:"turn_detection,omitempty"`
	Tools                   []Tool         `json:"tools"`
	ToolChoice              string         `json:"tool_choice"`
	Temperature             *float64       `json:"temperature,omitempty"`
	// MaxResponseOutputTokens is an integer or the string "inf".
	MaxResponseOutputTokens json.RawMessage `json:"max_response_output_tokens,omitempty"`
}

// DefaultConfig returns the session configuration used when the client overrides nothing.
func DefaultConfig() Config {
	return Config{
		Model:        DefaultModel,
		Modalities:   []string{"audio", "text"},
		Instructions: DefaultInstructions,
		Voice:        DefaultVoice,
		Tools:        []Tool{},
		ToolChoice:   DefaultToolChoice,
	}
}

// Validate checks the merged configuration before it is sent upstream.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.Voice == "" {
		return fmt.Errorf("voice is required")
	}
	if len(c.Modalities) == 0 {
		return fmt.Errorf("at least one modality is required")
	}
	for _, m := range c.Modalities {
		if !slices.Contains(validModalities, m) {
			return fmt.Errorf("unsupported modality %q", m)
		}
	}
	for i := range c.Tools {
		if c.Tools[i].Name == "" {
			return fmt.Errorf("tool %d: name is required", i)
		}
		if c.Tools[i].Type == "" {
			c.Tools[i].Type = "function"
		}
	}
	if c.Tools == nil {
		c.Tools = []Tool{}
	}
	if c.ToolChoice == "" {
		c.ToolChoice = DefaultToolChoice
	}
	return nil
}
