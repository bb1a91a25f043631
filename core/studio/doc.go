// Package studio is the generation facade used by every front end. It turns
// the three provider capabilities into outcomes a UI can show directly:
//
//   - [Studio.GenerateText] always returns displayable text. Failures become a
//     localized apology and an empty answer becomes a "could not generate"
//     notice.
//   - [Studio.GenerateImage] returns an [ImageResult] with Success=false and a
//     user-facing message instead of an error.
//   - [Studio.SynthesizeSpeech] returns a playable resource or nil.
//
// Without an API key every capability short-circuits to its "not configured"
// outcome without touching the network.
//
// On top of the facade, [Chat] runs the character roleplay and assistant
// conversations, and [Presets] lists the one-shot writing tools.
package studio
