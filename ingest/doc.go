// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ingest turns a selected file into text for the engine's
// process_file_content entry point.
//
// Reads run on their own goroutine and post their result back to the loop.
// The content is passed through untouched; interpretation belongs to the
// engine.
//
// Every read ends in exactly one terminal Status:
//
//	Delivered   content handed to the gate
//	Cancelled   no file chosen, or the caller cancelled
//	Failed      open or read error
//	Superseded  a newer selection won; result dropped
package ingest
