// Package gemini speaks the Google Generative Language REST API for the three
// capabilities the studio uses: text generation (optionally grounded with
// Google Search), image generation through an Imagen predict endpoint, and
// prebuilt-voice speech synthesis.
//
// The package builds the JSON payloads ([BuildTextRequest],
// [BuildImageRequest], [BuildSpeechRequest]), parses the responses
// ([ParseTextResponse], [ParseImageResponse], [ParseSpeechResponse]), and
// ties both to a [transport.Transport] in [Provider]. Failures surface as
// errors here; turning them into user-facing outcomes is the caller's job.
package gemini
