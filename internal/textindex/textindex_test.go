package textindex

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestPositionToOffset(t *testing.T) {
	// "𝕏" (U+1D54F) is one codepoint, 4 UTF-8 bytes, 2 UTF-16 units.
	text := "abc\ndef 𝕏 ghi\nlast"
	ix := New(text)

	tests := []struct {
		name       string
		line, char uint32
		want       int
		ok         bool
	}{
		{"start of document", 0, 0, 0, true},
		{"middle of first line", 0, 2, 2, true},
		{"start of second line", 1, 0, 4, true},
		{"before surrogate pair", 1, 4, 8, true},
		{"after surrogate pair", 1, 6, 12, true},
		{"inside surrogate pair snaps to start", 1, 5, 8, true},
		{"column past line end clamps", 0, 99, 4, true},
		{"last line", 2, 4, len(text), true},
		{"line out of range", 3, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ix.PositionToOffset(protocol.Position{Line: tt.line, Character: tt.char})
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("offset = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOffsetToPosition(t *testing.T) {
	text := "abc\ndef 𝕏 ghi\nlast"
	ix := New(text)

	tests := []struct {
		name   string
		offset int
		line   uint32
		char   uint32
	}{
		{"document start", 0, 0, 0},
		{"line start", 4, 1, 0},
		{"after surrogate pair", 12, 1, 6},
		{"offset past end clamps", len(text) + 10, 2, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := ix.OffsetToPosition(tt.offset)
			if pos.Line != tt.line || pos.Character != tt.char {
				t.Errorf("position = %d:%d, want %d:%d", pos.Line, pos.Character, tt.line, tt.char)
			}
		})
	}
}

func TestRoundTripOnCodepointBoundaries(t *testing.T) {
	text := "abc\ndef 𝕏 ghi\r\nmixed 𝔘𝔙 tail\n"
	ix := New(text)

	for offset := range text {
		// Skip offsets inside a multi-byte codepoint.
		if text[offset]&0xC0 == 0x80 {
			continue
		}
		pos := ix.OffsetToPosition(offset)
		back, ok := ix.PositionToOffset(pos)
		if !ok {
			t.Fatalf("offset %d: conversion failed", offset)
		}
		if back != offset {
			t.Errorf("offset %d round-tripped to %d (position %d:%d)", offset, back, pos.Line, pos.Character)
		}
	}
}

func TestLineStartForOffset(t *testing.T) {
	text := "one\ntwo\nthree"
	ix := New(text)

	tests := []struct {
		offset int
		want   int
	}{
		{0, 0},
		{3, 0},
		{4, 4},
		{6, 4},
		{8, 8},
		{12, 8},
	}

	for _, tt := range tests {
		if got := ix.LineStartForOffset(tt.offset); got != tt.want {
			t.Errorf("LineStartForOffset(%d) = %d, want %d", tt.offset, got, tt.want)
		}
	}
}

func TestEmptyDocument(t *testing.T) {
	ix := New("")

	offset, ok := ix.PositionToOffset(protocol.Position{Line: 0, Character: 0})
	if !ok || offset != 0 {
		t.Errorf("PositionToOffset(0,0) = %d,%v, want 0,true", offset, ok)
	}
	if _, ok := ix.PositionToOffset(protocol.Position{Line: 1, Character: 0}); ok {
		t.Error("line 1 should be outside an empty document")
	}

	pos := ix.OffsetToPosition(0)
	if pos.Line != 0 || pos.Character != 0 {
		t.Errorf("OffsetToPosition(0) = %d:%d, want 0:0", pos.Line, pos.Character)
	}
}
