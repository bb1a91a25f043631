// Package conversation keeps the state of each chat surface as a single
// append-only event log. The transcript shown to the user ([Conversation.Display])
// and the turn sequence sent to the model ([Conversation.Turns]) are both
// derived from that log, so they cannot drift apart.
//
// A response is recorded in two steps: [Conversation.BeginPendingResponse]
// appends a pending entry (the placeholder a UI renders as "typing..."), and
// [Conversation.ResolvePendingResponse] collapses it into a resolved agent turn
// exactly once. While a response is pending no new user turn is accepted.
// [Conversation.Submit] does the user turn and the placeholder in one step,
// which is what concurrent callers should use.
package conversation
