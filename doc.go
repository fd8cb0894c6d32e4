// Package cookiekeeper tracks the lifecycle of a marketplace bot's session
// cookie: parsing the semicolon-delimited credential string, checking it for
// completeness and freshness, and persisting it back into the bot's env file
// with backup-before-write semantics.
//
// This is intended for local tooling (the cookiekeeper CLI, maintenance
// scripts, test harnesses). It reads and rewrites local bot state and should
// not be embedded in server request paths.
package cookiekeeper
