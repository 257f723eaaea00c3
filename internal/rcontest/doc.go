// Package rcontest runs an in-process game server console for tests.
//
// The server speaks both console generations: the v2 JSON envelope with its
// XOR key exchange, and the legacy v1 text protocol with its unsolicited
// 4-byte key. By default it authenticates against Options.Password and
// echoes every command's content body back; a Handler can be installed for
// scripted responses.
package rcontest
