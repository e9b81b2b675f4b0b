package mimetype

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
)

const (
	jsKeywordWindow = 256
	svMaxLines      = 5
)

var htmlTags = [][]byte{
	[]byte("<!doctype html"),
	[]byte("<html"),
	[]byte("<head"),
	[]byte("<script"),
	[]byte("<iframe"),
	[]byte("<h1"),
	[]byte("<div"),
	[]byte("<font"),
	[]byte("<table"),
	[]byte("<a"),
	[]byte("<style"),
	[]byte("<title"),
	[]byte("<b"),
	[]byte("<body"),
	[]byte("<br"),
	[]byte("<p"),
}

func html(buf []byte) bool {
	buf = trimLWS(buf)
	for _, tag := range htmlTags {
		if len(buf) <= len(tag) || !hasPrefixFold(buf, tag) {
			continue
		}
		if b := buf[len(tag)]; b == '>' || isWS(b) {
			return true
		}
	}
	return bytes.HasPrefix(buf, []byte("<!--"))
}

func xml(buf []byte) bool {
	return bytes.HasPrefix(trimLWS(buf), []byte("<?xml"))
}

// xmlWith matches XML documents containing any of marks.
func xmlWith(marks ...string) func([]byte) bool {
	return func(buf []byte) bool {
		if !xml(buf) {
			return false
		}
		for _, mark := range marks {
			if bytes.Contains(buf, []byte(mark)) {
				return true
			}
		}
		return false
	}
}

func svg(buf []byte) bool {
	buf = trimLWS(buf)
	if bytes.HasPrefix(buf, []byte("<?xml")) {
		return bytes.Contains(buf, []byte("<svg")) || bytes.Contains(buf, []byte("http://www.w3.org/2000/svg"))
	}
	return bytes.HasPrefix(buf, []byte("<svg"))
}

var (
	rtf    = prefix("{\\rtf")
	php    = prefix("<?php", "<?\n", "<?\r", "<? ")
	python = prefix("#!/usr/bin/env python", "#!/usr/bin/python", "#!python", "# -*- coding:")
	perl   = prefix("#!/usr/bin/env perl", "#!/usr/bin/perl", "#!perl")
	ruby   = prefix("#!/usr/bin/env ruby", "#!/usr/bin/ruby", "#!ruby")
	lua    = prefix("#!/usr/bin/env lua", "#!/usr/bin/lua", "#!lua", "\x1BLua")
	shell  = prefix("#!/bin/sh", "#!/bin/bash", "#!/usr/bin/env bash", "#!/bin/zsh", "#!/usr/bin/env sh")
	tcl    = prefix("#!/usr/bin/env tclsh", "#!/usr/bin/tclsh", "#!tclsh")

	rss     = xmlWith("<rss")
	atom    = xmlWith("<feed")
	x3d     = xmlWith("<X3D")
	kml     = xmlWith("<kml")
	xliff   = xmlWith("<xliff")
	dae     = xmlWith("<COLLADA")
	gml     = xmlWith("<gml")
	gpx     = xmlWith("<gpx")
	tcx     = xmlWith("TrainingCenterDataba")
	amf     = xmlWith("<amf")
	threeMF = xmlWith("<model")
	xfdf    = xmlWith("<xfdf")
	owl2    = xmlWith("<owl", "<RDF")
	xhtml   = xmlWith("http://www.w3.org/1999/xht")

	jsShebang  = prefix("#!/usr/bin/env node", "#!/usr/bin/node", "/*", "//")
	jsKeywords = [][]byte{
		[]byte("function"),
		[]byte("var "),
		[]byte("let "),
		[]byte("const "),
		[]byte("class "),
		[]byte("import "),
		[]byte("export "),
	}
)

func javascript(buf []byte) bool {
	if jsShebang(buf) {
		return true
	}

	window := buf[:min(len(buf), jsKeywordWindow)]
	for _, kw := range jsKeywords {
		if bytes.Contains(window, kw) {
			return true
		}
	}
	return false
}

// jsonDoc matches a JSON object or array. The document may be cut anywhere
// by the end of buf, but everything before the cut must be well formed.
func jsonDoc(buf []byte) bool {
	buf = trimLWS(buf)
	if len(buf) == 0 || (buf[0] != '{' && buf[0] != '[') {
		return false
	}

	dec := json.NewDecoder(bytes.NewReader(buf))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return true
		}
		if err != nil {
			return false
		}
	}
}

// jsonWith matches JSON documents containing all of keys.
func jsonWith(keys ...string) func([]byte) bool {
	return func(buf []byte) bool {
		if !jsonDoc(buf) {
			return false
		}
		for _, key := range keys {
			if !bytes.Contains(buf, []byte(`"`+key+`"`)) {
				return false
			}
		}
		return true
	}
}

var (
	geojson = jsonWith("type", "FeatureCollection", "features")
	har     = jsonWith("log", "version")
	gltf    = jsonWith("scenes", "nodes", "asset")
)

// ndjson matches newline delimited JSON: the first lines are JSON values or
// empty lines.
func ndjson(buf []byte) bool {
	lines := bytes.SplitN(buf, []byte("\n"), 4)
	if len(lines) > 3 {
		lines = lines[:3]
	}
	if len(lines) < 2 {
		return false
	}

	for _, line := range lines {
		if len(bytes.TrimSpace(line)) > 0 && !jsonDoc(line) {
			return false
		}
	}
	return true
}

func csvDoc(buf []byte) bool {
	return separatedValues(buf, ',')
}

func tsv(buf []byte) bool {
	return separatedValues(buf, '\t')
}

// separatedValues reads the first complete lines of buf as records and
// requires at least two of them, all with the same number of fields.
func separatedValues(buf []byte, comma rune) bool {
	r := csv.NewReader(bytes.NewReader(completeLines(buf)))
	r.Comma = comma
	r.LazyQuotes = true
	r.ReuseRecord = true

	lines := 0
	for lines < svMaxLines {
		_, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return false
		}
		lines++
	}
	return lines >= 2 && r.FieldsPerRecord > 1
}

// completeLines drops the trailing line of buf when it is not terminated,
// since it is likely to be cut by the read limit.
func completeLines(buf []byte) []byte {
	if i := bytes.LastIndexByte(buf, '\n'); i >= 0 && i < len(buf)-1 {
		return buf[:i+1]
	}
	return buf
}

func srt(buf []byte) bool {
	buf = trimLWS(buf)

	var rest []byte
	switch {
	case bytes.HasPrefix(buf, []byte("1\n")):
		rest = buf[2:]
	case bytes.HasPrefix(buf, []byte("1\r\n")):
		rest = buf[3:]
	default:
		return false
	}

	timing, _, _ := bytes.Cut(rest, []byte("\n"))
	return bytes.Contains(timing, []byte(" --> "))
}

func vtt(buf []byte) bool {
	buf = bytes.TrimPrefix(buf, []byte("\xEF\xBB\xBF"))
	if !bytes.HasPrefix(buf, []byte("WEBVTT")) {
		return false
	}
	return len(buf) == 6 || buf[6] == '\n' || buf[6] == '\r' || buf[6] == ' ' || buf[6] == '\t'
}

func vcard(buf []byte) bool {
	return hasPrefixFold(buf, []byte("BEGIN:VCARD"))
}

func icalendar(buf []byte) bool {
	return hasPrefixFold(buf, []byte("BEGIN:VCALENDAR"))
}

func hasPrefixFold(buf, prefix []byte) bool {
	return len(buf) >= len(prefix) && bytes.EqualFold(buf[:len(prefix)], prefix)
}

// trimLWS trims whitespace from beginning of the input.
func trimLWS(in []byte) []byte {
	firstNonWS := 0
	for ; firstNonWS < len(in) && isWS(in[firstNonWS]); firstNonWS++ {
	}
	return in[firstNonWS:]
}

func isWS(b byte) bool {
	return b == '\t' || b == '\n' || b == '\x0c' || b == '\r' || b == ' '
}
