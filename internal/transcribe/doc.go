// Package transcribe provides the speech recognition client. The engine is
// an opaque collaborator behind the Transcriber interface; the shipped
// implementation wraps the whisper.cpp Go bindings with a locally loaded
// ggml model.
package transcribe
