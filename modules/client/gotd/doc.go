// Package gotd implements the MTProto user-session client module. It owns the
// single shared Telegram session the collection engine runs over: connection
// lifecycle with reconnect, file-backed session storage with an interactive
// login fallback, group resolution (including the substitution of a broadcast
// channel by its linked discussion group) and the paged, filtered collection
// of group members.
//
// The module registers itself as "client.gotd" and publishes the client under
// the "scraper.client" service name for the wiring layer.
package gotd
