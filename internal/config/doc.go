// Package config provides configuration loading and validation for the
// microphone transcription tool. The tool runs with built-in defaults; a
// YAML file only overrides them.
package config
