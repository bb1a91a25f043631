// Package player plays WAV resources produced by the audio codec.
//
// [Command] shells out to whichever system player is installed (afplay on
// macOS, paplay or aplay on Linux, ffplay anywhere). [Null] accepts every
// resource and finishes at once; hosts use it when no player is available
// and the user only downloads audio.
//
// Both implement playback.Player.
package player
