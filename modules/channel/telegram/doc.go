// Package telegram implements the bot command surface. Operators talk to a
// Bot API bot: /parse collects targets, an inline keyboard adjusts the
// collection criteria, and the run button hands the list to the orchestrator
// while progress streams back through message edits.
//
// The HTTP client is a thin typed wrapper over the Bot API with long polling;
// no third-party bot framework sits in between.
package telegram
