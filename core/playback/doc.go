// Package playback serializes speech synthesis and playback.
//
// A [Coordinator] allows at most one synthesis in flight and at most one live
// playback. Its observable state is one of [StateIdle], [StateSynthesizing]
// or [StatePlaying]:
//
//	Idle|Playing --Speak--> Synthesizing        (ErrBusy if already Synthesizing)
//	Synthesizing --ok-----> Playing             (prior playback stopped, prior resource released)
//	Synthesizing --fail---> Idle | Playing      (whatever was live before)
//	Playing --done|error|Stop--> Idle
//
// Synthesis exclusivity is held by a single-use lease, so a finished request
// can never release a lease that a later request acquired. The most recent
// resource stays available for download until it is replaced or the
// coordinator is closed.
package playback
